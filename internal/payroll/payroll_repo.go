package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RunTotals struct {
	Status          string
	TotalGross      decimal.Decimal
	TotalNet        decimal.Decimal
	TotalDeductions decimal.Decimal
	EmployeeCount   int
	ProcessedAt     *time.Time
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	FindAllRuns(ctx context.Context, companyID, status string) ([]PayrollRun, error)
	FindRunByID(ctx context.Context, companyID, id string) (*PayrollRun, error)
	UpdateRunStatus(ctx context.Context, companyID, id, status string) error
	CompleteRun(ctx context.Context, companyID, id string, totals RunTotals) error
	DeleteRun(ctx context.Context, companyID, id string) error
	CreateEntry(ctx context.Context, entry *PayrollEntry) error
	FindEntriesByRun(ctx context.Context, companyID, runID string) ([]PayrollEntry, error)
	FindEntryByID(ctx context.Context, companyID, id string) (*PayrollEntry, error)
	FindProcessedEmployeeIDs(ctx context.Context, companyID, runID string) (map[string]struct{}, error)
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

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindAllRuns(ctx context.Context, companyID, status string) ([]PayrollRun, error) {
	var runs []PayrollRun
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("pay_period_start DESC").Order("created_at DESC").Find(&runs).Error
	return runs, err
}

func (r *repository) FindRunByID(ctx context.Context, companyID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) UpdateRunStatus(ctx context.Context, companyID, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CompleteRun(ctx context.Context, companyID, id string, totals RunTotals) error {
	res := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           totals.Status,
			"total_gross":      totals.TotalGross,
			"total_net":        totals.TotalNet,
			"total_deductions": totals.TotalDeductions,
			"employee_count":   totals.EmployeeCount,
			"processed_at":     totals.ProcessedAt,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRun removes the run together with any entries left by an
// interrupted best-effort run.
func (r *repository) DeleteRun(ctx context.Context, companyID, id string) error {
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_run_id = ?", id).
		Delete(&PayrollEntry{}).Error; err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&PayrollRun{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateEntry(ctx context.Context, entry *PayrollEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindEntriesByRun(ctx context.Context, companyID, runID string) ([]PayrollEntry, error) {
	var entries []PayrollEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_run_id = ?", runID).
		Order("employee_number ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindEntryByID(ctx context.Context, companyID, id string) (*PayrollEntry, error) {
	var entry PayrollEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindProcessedEmployeeIDs(ctx context.Context, companyID, runID string) (map[string]struct{}, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&PayrollEntry{}).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_run_id = ?", runID).
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}
