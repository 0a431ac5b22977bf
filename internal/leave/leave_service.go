package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttendanceStamper writes on_leave attendance inside the approval transaction.
type AttendanceStamper interface {
	StampOnLeave(ctx context.Context, tx *sql.Tx, companyID, employeeID string, days []time.Time, note string) error
}

type Service interface {
	CreateType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
	GetTypeByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeleteType(ctx context.Context, companyID, id string) error

	UpsertPolicy(ctx context.Context, companyID string, req UpsertLeavePolicyRequest) (LeavePolicyResponse, error)
	GetPolicies(ctx context.Context, companyID string) ([]LeavePolicyResponse, error)
	DeletePolicy(ctx context.Context, companyID, id string) error

	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetLeavesFilterRequest) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	InitializeBalances(ctx context.Context, companyID, employeeID string) error
	GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error)
	AdjustBalance(ctx context.Context, companyID, actorID, id string, req AdjustBalanceRequest) (LeaveBalanceResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	stamper AttendanceStamper
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, stamper AttendanceStamper, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, stamper: stamper, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	totalDays := CountWeekdays(startDate, endDate)
	if totalDays == 0 {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, companyID, req.EmployeeID)
	if err != nil || !emp.IsActive {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, err
		}
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	lt, err := qtx.FindTypeByID(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if !lt.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("company_id", companyID),
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	if lt.IsPaid {
		balance, err := qtx.FindBalance(ctx, companyID, req.EmployeeID, req.LeaveTypeID, s.now().Year())
		switch {
		case err == nil && balance.RemainingDays.LessThan(decimal.NewFromInt(int64(totalDays))):
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]string{
				"requested_days": strconv.Itoa(totalDays),
				"remaining_days": balance.RemainingDays.String(),
			})
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return LeaveResponse{}, err
		}
	}

	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		createdBy = emp.ID
	}
	l := &LeaveApplication{
		ID:          uuid.New(),
		CompanyID:   emp.CompanyID,
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
		CreatedBy:   createdBy,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", totalDays),
	)

	l.LeaveType = lt
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetLeavesFilterRequest) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, companyID, ApplicationFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
	})
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return mapToResponse(*l), nil
}

// Approve moves a pending application to approved. Attendance stamping and
// the balance update share the approval transaction: either all of it
// commits or none of it does.
func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	approver, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !l.CanTransitionTo(StatusApproved) {
		s.logger.Warn("approve leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	l.Status = StatusApproved
	l.ApprovedBy = &approver
	l.ApprovedAt = &now
	l.RejectionReason = nil
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	typeName := ""
	if l.LeaveType != nil {
		typeName = l.LeaveType.Name
	}
	days := Weekdays(l.StartDate, l.EndDate)
	note := fmt.Sprintf("On leave: %s", typeName)
	if err := s.stamper.StampOnLeave(ctx, tx, companyID, l.EmployeeID.String(), days, note); err != nil {
		s.logger.Error("approve leave attendance stamping failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.consumeBalance(ctx, qtx, l, now.Year()); err != nil {
		s.logger.Error("approve leave balance update failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.Int("stamped_days", len(days)),
	)
	return mapToResponse(*l), nil
}

// consumeBalance adds the application's days to used_days of the year's
// balance, opening the balance first if the employee has none.
func (s *service) consumeBalance(ctx context.Context, qtx Repository, l *LeaveApplication, year int) error {
	companyID := l.CompanyID.String()
	employeeID := l.EmployeeID.String()
	leaveTypeID := l.LeaveTypeID.String()
	used := decimal.NewFromInt(int64(l.TotalDays))

	b, err := qtx.FindBalance(ctx, companyID, employeeID, leaveTypeID, year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		b.UsedDays = b.UsedDays.Add(used)
		b.Recalculate()
		return qtx.UpdateBalance(ctx, b)
	}

	policy, err := qtx.FindPolicyByType(ctx, companyID, leaveTypeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	b = &LeaveBalance{
		ID:          uuid.New(),
		CompanyID:   l.CompanyID,
		EmployeeID:  l.EmployeeID,
		LeaveTypeID: l.LeaveTypeID,
		Year:        year,
		UsedDays:    used,
	}
	b.AllocatedDays = policy.AllocatedDays()
	b.Recalculate()
	return qtx.CreateBalance(ctx, b)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveResponse, error) {
	if rejectionReason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, companyID, actorID, id, StatusRejected, func(l *LeaveApplication) error {
		l.RejectionReason = &rejectionReason
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, companyID, actorID, id, StatusCancelled, func(l *LeaveApplication) error {
		if l.EmployeeID.String() != actorID && l.CreatedBy.String() != actorID {
			return leaveerrors.ErrNotApplicant
		}
		return nil
	})
}

func (s *service) transition(ctx context.Context, companyID, actorID, id, target string, apply func(l *LeaveApplication) error) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !l.CanTransitionTo(target) {
		s.logger.Warn("leave transition refused",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", target),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if err := apply(l); err != nil {
		return LeaveResponse{}, err
	}
	l.Status = target

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("leave transition persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	s.logger.Info("leave transition success",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("status", target),
	)
	return mapToResponse(*l), nil
}

// Delete removes an application that never took effect.
func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if l.Status == StatusApproved {
		return leaveerrors.ErrInvalidStatusTransition
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return tx.Commit()
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		CompanyID:       l.CompanyID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		CreatedBy:       l.CreatedBy.String(),
		RejectionReason: l.RejectionReason,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.LeaveType != nil {
		resp.LeaveTypeName = l.LeaveType.Name
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
