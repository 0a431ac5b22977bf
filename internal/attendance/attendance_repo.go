package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Status     string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *AttendanceRecord) error
	Update(ctx context.Context, a *AttendanceRecord) error
	FindByID(ctx context.Context, companyID, id string) (*AttendanceRecord, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceRecord, error)
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]AttendanceRecord, error)
	ListByEmployeeInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
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

func (r *repository) Create(ctx context.Context, a *AttendanceRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *AttendanceRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]AttendanceRecord, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee")

	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.From != nil {
		q = q.Where("attendance_date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		q = q.Where("attendance_date <= ?", filter.To.Format(dateLayout))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []AttendanceRecord
	err := q.Order("attendance_date DESC, clock_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListByEmployeeInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
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
