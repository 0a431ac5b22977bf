package payroll

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-hrm/internal/attendance"
	"go-hrm/internal/bootstrap"
	"go-hrm/internal/employee"
	"go-hrm/internal/employeesalary"
	employeesalaryerrors "go-hrm/internal/employeesalary/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ModeBestEffort    = "best_effort"
	ModeTransactional = "transactional"

	dateLayout = "2006-01-02"

	revertTimeout = 5 * time.Second
)

type EmployeeLister interface {
	FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

type SalaryResolver interface {
	GetActiveBreakdown(ctx context.Context, companyID, employeeID string) (employeesalary.Breakdown, error)
}

type AttendanceReader interface {
	ListByEmployeeInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error)
}

type LeaveReader interface {
	FindApprovedInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveApplication, error)
}

// Deps are the collaborators a run reads from and writes to besides its
// own repository.
type Deps struct {
	Employees  EmployeeLister
	Salaries   SalaryResolver
	Attendance AttendanceReader
	Leaves     LeaveReader
	Counter    counter.Repository
	Outbox     kafka.OutboxRepository
	// Audit receives one PAYROLL_RUN_COMPLETED entry per completed run.
	Audit bootstrap.AuditLogger
}

type Config struct {
	Mode string
	Now  func() time.Time
}

type Service interface {
	CreateRun(ctx context.Context, companyID, actorID string, req CreatePayrollRunRequest) (PayrollRunResponse, error)
	Process(ctx context.Context, companyID, actorID, runID string) (PayrollRunResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPayrollRunsFilterRequest) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error)
	GetEntries(ctx context.Context, companyID, runID string) ([]PayrollEntryResponse, error)
	GetEntry(ctx context.Context, companyID, entryID string) (PayrollEntryResponse, error)
	ExportXLSX(ctx context.Context, companyID, runID string) ([]byte, string, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	deps   Deps
	cfg    Config
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Deps, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeBestEffort
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{db: db, repo: repo, deps: deps, cfg: cfg, logger: l}
}

func (s *service) CreateRun(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayrollRunRequest,
) (PayrollRunResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}
	start, err := time.Parse(dateLayout, req.PayPeriodStart)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, req.PayPeriodEnd)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.deps.Counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypePayrollRun)
	if err != nil {
		return PayrollRunResponse{}, err
	}

	run := &PayrollRun{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		Reference:      fmt.Sprintf("PR-%s-%04d", start.Format("200601"), seq),
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		Status:         StatusDraft,
		CreatedBy:      actorUUID,
	}
	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRunError(err)
	}
	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("payroll run created",
		zap.String("company_id", companyID),
		zap.String("payroll_run_id", run.ID.String()),
		zap.String("reference", run.Reference),
	)
	return mapRunToResponse(*run), nil
}

// Process computes one entry per active employee with an active salary and
// completes the run. In best-effort mode entries commit one by one and a
// failure puts the run back to draft, so a retry resumes where it stopped.
// In transactional mode a failure leaves no trace.
func (s *service) Process(ctx context.Context, companyID, actorID, runID string) (PayrollRunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("company_id", companyID),
		zap.String("payroll_run_id", runID),
		zap.String("mode", s.cfg.Mode),
	)

	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return PayrollRunResponse{}, mapRunError(err)
	}
	if run.Status != StatusDraft {
		return PayrollRunResponse{}, payrollerrors.ErrProcessOnlyDraft
	}

	if s.cfg.Mode == ModeTransactional {
		completed, err := s.processInTx(ctx, run, actorID)
		if err != nil {
			log.Error("payroll run failed, rolled back", zap.Error(err))
			return PayrollRunResponse{}, err
		}
		s.recordCompletion(ctx, log, actorID, completed)
		return mapRunToResponse(*completed), nil
	}

	if err := s.repo.UpdateRunStatus(ctx, companyID, runID, StatusProcessing); err != nil {
		return PayrollRunResponse{}, mapRunError(err)
	}

	// Anything short of completion, a panic included, puts the run back to
	// draft so it can be processed again.
	completedOK := false
	defer func() {
		if !completedOK {
			s.revertToDraft(ctx, log, companyID, runID)
		}
	}()

	completed, err := s.processBestEffort(ctx, run, actorID)
	if err != nil {
		log.Error("payroll run failed, reverting to draft", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	completedOK = true

	s.recordCompletion(ctx, log, actorID, completed)
	return mapRunToResponse(*completed), nil
}

// revertToDraft detaches from ctx: the request may already be cancelled,
// which is often why processing stopped.
func (s *service) revertToDraft(ctx context.Context, log *zap.Logger, companyID, runID string) {
	revertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), revertTimeout)
	defer cancel()

	if err := s.repo.UpdateRunStatus(revertCtx, companyID, runID, StatusDraft); err != nil {
		log.Error("revert payroll run to draft failed", zap.Error(err))
	}
}

func (s *service) processBestEffort(ctx context.Context, run *PayrollRun, actorID string) (*PayrollRun, error) {
	if err := s.buildEntries(ctx, s.repo, run); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	completed, err := s.complete(ctx, tx, run, actorID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return completed, nil
}

func (s *service) recordCompletion(ctx context.Context, log *zap.Logger, actorID string, run *PayrollRun) {
	log.Info("payroll run completed",
		zap.Int("employee_count", run.EmployeeCount),
		zap.String("total_net", run.TotalNet.StringFixed(2)),
	)
	if s.deps.Audit == nil {
		return
	}
	s.deps.Audit.Log(ctx, bootstrap.AuditLog{
		Action:  "PAYROLL_RUN_COMPLETED",
		Message: "Payroll run " + run.Reference + " completed",
		Meta: map[string]any{
			"company_id":     run.CompanyID.String(),
			"payroll_run_id": run.ID.String(),
			"processed_by":   actorID,
			"employee_count": run.EmployeeCount,
			"total_net":      run.TotalNet.StringFixed(2),
		},
	})
}

func (s *service) processInTx(ctx context.Context, run *PayrollRun, actorID string) (*PayrollRun, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateRunStatus(ctx, run.CompanyID.String(), run.ID.String(), StatusProcessing); err != nil {
		return nil, mapRunError(err)
	}
	if err := s.buildEntries(ctx, qtx, run); err != nil {
		return nil, err
	}
	completed, err := s.complete(ctx, tx, run, actorID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return completed, nil
}

func (s *service) buildEntries(ctx context.Context, repo Repository, run *PayrollRun) error {
	companyID := run.CompanyID.String()
	runID := run.ID.String()

	employees, err := s.deps.Employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	processed, err := repo.FindProcessedEmployeeIDs(ctx, companyID, runID)
	if err != nil {
		return err
	}
	workingDays := CountWorkingDays(run.PayPeriodStart, run.PayPeriodEnd)

	for _, emp := range employees {
		employeeID := emp.ID.String()
		if _, ok := processed[employeeID]; ok {
			continue
		}

		salary, err := s.deps.Salaries.GetActiveBreakdown(ctx, companyID, employeeID)
		if errors.Is(err, employeesalaryerrors.ErrActiveSalaryNotFound) {
			s.logger.Warn("employee skipped, no active salary",
				zap.String("payroll_run_id", runID),
				zap.String("employee_id", employeeID),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("salary of employee %s: %w", employeeID, err)
		}

		records, err := s.deps.Attendance.ListByEmployeeInRange(ctx, companyID, employeeID, run.PayPeriodStart, run.PayPeriodEnd)
		if err != nil {
			return fmt.Errorf("attendance of employee %s: %w", employeeID, err)
		}
		apps, err := s.deps.Leaves.FindApprovedInRange(ctx, companyID, employeeID, run.PayPeriodStart, run.PayPeriodEnd)
		if err != nil {
			return fmt.Errorf("leaves of employee %s: %w", employeeID, err)
		}

		entry := newEntry(run, emp, salary, SummarizeAttendance(records), SumLeaveDays(apps, run.PayPeriodStart, run.PayPeriodEnd), workingDays)
		if err := repo.CreateEntry(ctx, entry); err != nil {
			return fmt.Errorf("entry of employee %s: %w", employeeID, err)
		}
	}
	return nil
}

// complete totals the run's entries, marks it completed and queues one
// payslip request per entry, all on tx.
func (s *service) complete(ctx context.Context, tx *sql.Tx, run *PayrollRun, actorID string) (*PayrollRun, error) {
	companyID := run.CompanyID.String()
	runID := run.ID.String()
	qtx := s.repo.WithTx(tx)

	entries, err := qtx.FindEntriesByRun(ctx, companyID, runID)
	if err != nil {
		return nil, err
	}
	totals := CalculateTotals(entries)
	now := s.cfg.Now()

	if err := qtx.CompleteRun(ctx, companyID, runID, RunTotals{
		Status:          StatusCompleted,
		TotalGross:      totals.TotalGross,
		TotalNet:        totals.TotalNet,
		TotalDeductions: totals.TotalDeductions,
		EmployeeCount:   totals.EmployeeCount,
		ProcessedAt:     &now,
	}); err != nil {
		return nil, mapRunError(err)
	}

	outbox := s.deps.Outbox.WithTx(tx)
	requestID := contextutil.GetRequestID(ctx)
	for _, e := range entries {
		event, err := kafka.NewOutboxEvent(requestID, "payroll_entry", e.ID.String(), events.PayslipRequestedType, events.PayslipRequestedTopic, events.PayslipRequestedEvent{
			EventType:      events.PayslipRequestedType,
			PayrollRunID:   runID,
			PayrollEntryID: e.ID.String(),
			CompanyID:      companyID,
			RequestedBy:    actorID,
			OccurredAt:     now,
		})
		if err != nil {
			return nil, err
		}
		if err := outbox.Create(ctx, event); err != nil {
			return nil, err
		}
	}

	completed := *run
	completed.Status = StatusCompleted
	completed.TotalGross = totals.TotalGross
	completed.TotalNet = totals.TotalNet
	completed.TotalDeductions = totals.TotalDeductions
	completed.EmployeeCount = totals.EmployeeCount
	completed.ProcessedAt = &now
	return &completed, nil
}

func newEntry(
	run *PayrollRun,
	emp employee.Employee,
	salary employeesalary.Breakdown,
	att AttendanceSummary,
	leaves LeaveSummary,
	workingDays int,
) *PayrollEntry {
	calc := ComputeEntry(EntryInput{
		Salary:      salary,
		Attendance:  att,
		Leave:       leaves,
		WorkingDays: workingDays,
	})

	var salaryID *uuid.UUID
	if id, err := uuid.Parse(salary.SalaryID); err == nil {
		salaryID = &id
	}

	return &PayrollEntry{
		ID:                   uuid.New(),
		CompanyID:            run.CompanyID,
		PayrollRunID:         run.ID,
		EmployeeID:           emp.ID,
		EmployeeSalaryID:     salaryID,
		EmployeeNumber:       emp.EmployeeNumber,
		EmployeeName:         emp.FullName,
		BasicSalary:          calc.BasicSalary,
		ComponentEarnings:    calc.ComponentEarnings,
		TotalEarnings:        calc.TotalEarnings,
		TotalDeductions:      calc.TotalDeductions,
		GrossPay:             calc.GrossPay,
		NetPay:               calc.NetPay,
		WorkingDays:          workingDays,
		PresentDays:          att.PresentDays,
		HalfDays:             att.HalfDays,
		HolidayDays:          att.HolidayDays,
		LeaveDays:            leaves.Total(),
		PaidLeaveDays:        leaves.PaidDays,
		UnpaidLeaveDays:      leaves.UnpaidDays,
		AbsentDays:           att.AbsentDays,
		UnpaidLeaveDaysTotal: calc.UnpaidLeaveDaysTotal,
		OvertimeHours:        calc.OvertimeHours,
		OvertimeAmount:       calc.OvertimeAmount,
		PerDaySalary:         calc.PerDaySalary,
		UnpaidLeaveDeduction: calc.UnpaidLeaveDeduction,
		EarningsBreakdown:    salary.Earnings,
		DeductionsBreakdown:  salary.Deductions,
	}
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetPayrollRunsFilterRequest) ([]PayrollRunResponse, error) {
	switch filter.Status {
	case "", StatusDraft, StatusProcessing, StatusCompleted:
	default:
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	runs, err := s.repo.FindAllRuns(ctx, companyID, filter.Status)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollRunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, mapRunToResponse(r))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error) {
	run, err := s.repo.FindRunByID(ctx, companyID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRunError(err)
	}
	return mapRunToResponse(*run), nil
}

func (s *service) GetEntries(ctx context.Context, companyID, runID string) ([]PayrollEntryResponse, error) {
	if _, err := s.repo.FindRunByID(ctx, companyID, runID); err != nil {
		return nil, mapRunError(err)
	}
	entries, err := s.repo.FindEntriesByRun(ctx, companyID, runID)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapEntryToResponse(e))
	}
	return out, nil
}

func (s *service) GetEntry(ctx context.Context, companyID, entryID string) (PayrollEntryResponse, error) {
	entry, err := s.repo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return PayrollEntryResponse{}, mapEntryError(err)
	}
	return mapEntryToResponse(*entry), nil
}

func (s *service) ExportXLSX(ctx context.Context, companyID, runID string) ([]byte, string, error) {
	run, err := s.repo.FindRunByID(ctx, companyID, runID)
	if err != nil {
		return nil, "", mapRunError(err)
	}
	entries, err := s.repo.FindEntriesByRun(ctx, companyID, runID)
	if err != nil {
		return nil, "", err
	}

	f, err := BuildRunWorkbook(*run, entries)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), run.Reference + ".xlsx", nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	run, err := qtx.FindRunByID(ctx, companyID, id)
	if err != nil {
		return mapRunError(err)
	}
	if run.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}
	if err := qtx.DeleteRun(ctx, companyID, id); err != nil {
		return mapRunError(err)
	}
	return tx.Commit()
}

func mapRunToResponse(r PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:              r.ID.String(),
		CompanyID:       r.CompanyID.String(),
		Reference:       r.Reference,
		PayPeriodStart:  r.PayPeriodStart.Format(dateLayout),
		PayPeriodEnd:    r.PayPeriodEnd.Format(dateLayout),
		Status:          r.Status,
		TotalGross:      r.TotalGross,
		TotalNet:        r.TotalNet,
		TotalDeductions: r.TotalDeductions,
		EmployeeCount:   r.EmployeeCount,
		CreatedBy:       r.CreatedBy.String(),
	}
	if r.ProcessedAt != nil {
		v := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func mapEntryToResponse(e PayrollEntry) PayrollEntryResponse {
	resp := PayrollEntryResponse{
		ID:                   e.ID.String(),
		PayrollRunID:         e.PayrollRunID.String(),
		EmployeeID:           e.EmployeeID.String(),
		EmployeeNumber:       e.EmployeeNumber,
		EmployeeName:         e.EmployeeName,
		BasicSalary:          e.BasicSalary,
		ComponentEarnings:    e.ComponentEarnings,
		TotalEarnings:        e.TotalEarnings,
		TotalDeductions:      e.TotalDeductions,
		GrossPay:             e.GrossPay,
		NetPay:               e.NetPay,
		WorkingDays:          e.WorkingDays,
		PresentDays:          e.PresentDays,
		HalfDays:             e.HalfDays,
		HolidayDays:          e.HolidayDays,
		LeaveDays:            e.LeaveDays,
		PaidLeaveDays:        e.PaidLeaveDays,
		UnpaidLeaveDays:      e.UnpaidLeaveDays,
		AbsentDays:           e.AbsentDays,
		UnpaidLeaveDaysTotal: e.UnpaidLeaveDaysTotal,
		OvertimeHours:        e.OvertimeHours,
		OvertimeAmount:       e.OvertimeAmount,
		PerDaySalary:         e.PerDaySalary,
		UnpaidLeaveDeduction: e.UnpaidLeaveDeduction,
		Earnings:             []employeesalary.ComponentLine(e.EarningsBreakdown),
		Deductions:           []employeesalary.ComponentLine(e.DeductionsBreakdown),
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
	}
	if e.EmployeeSalaryID != nil {
		v := e.EmployeeSalaryID.String()
		resp.EmployeeSalaryID = &v
	}
	if resp.Earnings == nil {
		resp.Earnings = []employeesalary.ComponentLine{}
	}
	if resp.Deductions == nil {
		resp.Deductions = []employeesalary.ComponentLine{}
	}
	return resp
}
