package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationFilter struct {
	EmployeeID string
	Status     string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, t *LeaveType) error
	FindTypes(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error)
	UpdateType(ctx context.Context, t *LeaveType) error
	DeleteType(ctx context.Context, companyID, id string) error

	SavePolicy(ctx context.Context, p *LeavePolicy) error
	FindPolicies(ctx context.Context, companyID string) ([]LeavePolicy, error)
	FindPolicyByType(ctx context.Context, companyID, leaveTypeID string) (*LeavePolicy, error)
	DeletePolicy(ctx context.Context, companyID, id string) error

	Create(ctx context.Context, l *LeaveApplication) error
	FindAll(ctx context.Context, companyID string, filter ApplicationFilter) ([]LeaveApplication, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
	Delete(ctx context.Context, companyID, id string) error
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	FindApprovedInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveApplication, error)

	CreateBalance(ctx context.Context, b *LeaveBalance) error
	UpdateBalance(ctx context.Context, b *LeaveBalance) error
	FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindBalanceByID(ctx context.Context, companyID, id string) (*LeaveBalance, error)
	FindBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)

	FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error)
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

func (r *repository) CreateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTypes(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error) {
	var types []LeaveType
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) UpdateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) DeleteType(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeaveType{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SavePolicy(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *repository) FindPolicies(ctx context.Context, companyID string) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindPolicyByType(ctx context.Context, companyID, leaveTypeID string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("leave_type_id = ?", leaveTypeID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) DeletePolicy(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeavePolicy{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ApplicationFilter) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Preload("Employee")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Preload("Employee").
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeaveApplication{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveApplication{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) CreateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *repository) UpdateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *repository) FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalanceByID(ctx context.Context, companyID, id string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Where("employee_id = ? AND year = ?", employeeID, year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
