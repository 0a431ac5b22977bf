package salarycomponent

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filter struct {
	Type       string
	ActiveOnly bool
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *SalaryComponent) error
	FindAllByCompany(ctx context.Context, companyID string, filter Filter) ([]SalaryComponent, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryComponent, error)
	FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]SalaryComponent, error)
	Update(ctx context.Context, c *SalaryComponent) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, c *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter Filter) ([]SalaryComponent, error) {
	var rows []SalaryComponent
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("type ASC").Order("code ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryComponent, error) {
	var c SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindActiveByIDs returns the active components among ids. Row order is
// unspecified; callers that care about order re-sort by their own id list.
func (r *repository) FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]SalaryComponent, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, c *SalaryComponent) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&SalaryComponent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
