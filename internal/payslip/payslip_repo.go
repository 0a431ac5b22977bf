package payslip

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filter struct {
	PayrollRunID string
	EmployeeID   string
	Status       string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	FindAllByCompany(ctx context.Context, companyID string, filter Filter) ([]Payslip, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
	FindByEntry(ctx context.Context, companyID, entryID string) (*Payslip, error)
	Update(ctx context.Context, p *Payslip) error
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter Filter) ([]Payslip, error) {
	var rows []Payslip
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.PayrollRunID != "" {
		q = q.Where("payroll_run_id = ?", filter.PayrollRunID)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("generated_at DESC").Order("payslip_number DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEntry(ctx context.Context, companyID, entryID string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_entry_id = ?", entryID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Save(p).Error
}
