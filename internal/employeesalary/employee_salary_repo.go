package employeesalary

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filter struct {
	EmployeeID string
	ActiveOnly bool
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAllByCompany(ctx context.Context, companyID string, filter Filter) ([]EmployeeSalary, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeSalary, error)
	DeactivateOthers(ctx context.Context, companyID, employeeID, keepID string) error
	Update(ctx context.Context, salary *EmployeeSalary) error
	Delete(ctx context.Context, companyID string, id string) error
	EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

func (r *repository) joined(ctx context.Context, companyID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Scopes(tenant.ScopeTable("employee_salaries", companyID))
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter Filter) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	q := r.joined(ctx, companyID)
	if filter.EmployeeID != "" {
		q = q.Where("employee_salaries.employee_id = ?", filter.EmployeeID)
	}
	if filter.ActiveOnly {
		q = q.Where("employee_salaries.is_active = ?", true)
	}
	err := q.
		Order("employees.full_name ASC").
		Order("employee_salaries.effective_date DESC").
		Order("employee_salaries.created_at DESC").
		Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.joined(ctx, companyID).
		Where("employee_salaries.id = ?", id).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		Order("effective_date DESC").
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *repository) DeactivateOthers(ctx context.Context, companyID, employeeID, keepID string) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeSalary{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND id <> ? AND is_active = ?", employeeID, keepID, true).
		Update("is_active", false).Error
}

func (r *repository) Update(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).Omit("employee_name").Save(salary).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&EmployeeSalary{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
