package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/attendancepolicy"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/timeofday"
	"go-hrm/internal/shift"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShiftLookup interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*shift.Shift, error)
}

type PolicyLookup interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*attendancepolicy.AttendancePolicy, error)
}

type Config struct {
	// Location decides which calendar day a clock-in belongs to.
	Location *time.Location
	Now      func() time.Time
}

type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	Regularize(ctx context.Context, companyID, actorID string, req RegularizeRequest) (AttendanceResponse, error)
	SetStatus(ctx context.Context, companyID, actorID, id string, req SetStatusRequest) (AttendanceResponse, error)
	Process(ctx context.Context, companyID, id string) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool, filter GetAttendancesFilterRequest) ([]AttendanceResponse, error)
	GetByID(ctx context.Context, companyID, actorID string, canReadAll bool, id string) (AttendanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	shifts   ShiftLookup
	policies PolicyLookup
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, shifts ShiftLookup, policies PolicyLookup, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		db:       db,
		repo:     repo,
		shifts:   shifts,
		policies: policies,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   l,
	}
}

// calendarDate keeps y-m-d of t in UTC midnight, the form stored in date columns.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.now().In(s.loc)
	today := calendarDate(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	emp, err := qtx.FindEmployee(ctx, companyID, employeeID)
	if err != nil || !emp.IsActive {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, err
		}
		s.logger.Warn("clock in for unknown employee", zap.String("request_id", rid), zap.String("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	in := timeofday.FromTime(now)
	rec, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = &AttendanceRecord{
			ID:                 uuid.New(),
			CompanyID:          uuid.MustParse(companyID),
			EmployeeID:         uuid.MustParse(employeeID),
			AttendanceDate:     today,
			ShiftID:            emp.ShiftID,
			AttendancePolicyID: emp.AttendancePolicyID,
			ClockIn:            &in,
			Status:             StatusPresent,
			Source:             SourceSelf,
			IsWeekend:          isWeekend(today),
			Notes:              req.Notes,
		}
		if err := qtx.Create(ctx, rec); err != nil {
			s.logger.Error("clock in persist failed", zap.String("request_id", rid), zap.Error(err))
			return AttendanceResponse{}, mapRepositoryError(err)
		}
	case err != nil:
		return AttendanceResponse{}, err
	case rec.Status == StatusOnLeave:
		return AttendanceResponse{}, attendanceerrors.ErrOnLeave
	case rec.ClockIn != nil:
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	default:
		// A placeholder row (e.g. a holiday set ahead of time).
		rec.SetClockTimes(&in, nil)
		rec.Source = SourceSelf
		if req.Notes != nil {
			rec.Notes = req.Notes
		}
		if err := qtx.Update(ctx, rec); err != nil {
			return AttendanceResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("clock_in", in.String()),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.now().In(s.loc)
	today := calendarDate(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := s.findOpenRecord(ctx, qtx, companyID, employeeID, today)
	if err != nil {
		return AttendanceResponse{}, err
	}

	out := timeofday.FromTime(now)
	rec.SetClockTimes(rec.ClockIn, &out)
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := s.finalize(ctx, companyID, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("clock out persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Float64("total_hours", rec.TotalHours),
		zap.String("status", rec.Status),
	)
	return mapToResponse(*rec), nil
}

// findOpenRecord returns today's open record, or yesterday's when an
// overnight shift is being closed after midnight.
func (s *service) findOpenRecord(ctx context.Context, qtx Repository, companyID, employeeID string, today time.Time) (*AttendanceRecord, error) {
	rec, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && rec.ClockIn != nil {
		if rec.ClockOut != nil {
			return nil, attendanceerrors.ErrAlreadyClockedOut
		}
		return rec, nil
	}

	prev, prevErr := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today.AddDate(0, 0, -1))
	if prevErr == nil && prev.ClockIn != nil && prev.ClockOut == nil {
		return prev, nil
	}
	if prevErr != nil && !errors.Is(prevErr, gorm.ErrRecordNotFound) {
		return nil, prevErr
	}
	return nil, attendanceerrors.ErrClockInNotFound
}

func (s *service) Regularize(ctx context.Context, companyID, actorID string, req RegularizeRequest) (AttendanceResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	in, err := timeofday.Parse(req.ClockIn)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTime
	}
	out, err := timeofday.Parse(req.ClockOut)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTime
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	emp, err := qtx.FindEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	rec, err := qtx.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, date)
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return AttendanceResponse{}, err
	}
	if isNew {
		rec = &AttendanceRecord{
			ID:                 uuid.New(),
			CompanyID:          uuid.MustParse(companyID),
			EmployeeID:         emp.ID,
			AttendanceDate:     date,
			ShiftID:            emp.ShiftID,
			AttendancePolicyID: emp.AttendancePolicyID,
		}
	}
	if req.ShiftID != nil {
		id := uuid.MustParse(*req.ShiftID)
		rec.ShiftID = &id
	}

	rec.SetClockTimes(&in, &out)
	rec.Source = SourceRegularized
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := s.finalize(ctx, companyID, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if isNew {
		err = qtx.Create(ctx, rec)
	} else {
		err = qtx.Update(ctx, rec)
	}
	if err != nil {
		s.logger.Error("regularize persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance regularized",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", rec.Status),
	)
	return mapToResponse(*rec), nil
}

func (s *service) SetStatus(ctx context.Context, companyID, actorID, id string, req SetStatusRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if req.IsHoliday != nil {
		rec.IsHoliday = *req.IsHoliday
	}
	rec.SetManualStatus(req.Status)
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := s.finalize(ctx, companyID, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := qtx.Update(ctx, rec); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance status set manually",
		zap.String("actor_id", actorID),
		zap.String("attendance_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*rec), nil
}

func (s *service) Process(ctx context.Context, companyID, id string) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := s.finalize(ctx, companyID, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := qtx.Update(ctx, rec); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*rec), nil
}

// finalize loads the record's shift and policy and runs Finalize. A link to
// a deleted shift or policy is treated as unset.
func (s *service) finalize(ctx context.Context, companyID string, rec *AttendanceRecord) error {
	var sh *shift.Shift
	if rec.ShiftID != nil {
		found, err := s.shifts.FindByIDAndCompany(ctx, companyID, rec.ShiftID.String())
		switch {
		case err == nil:
			sh = found
		case errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Warn("attendance shift missing", zap.String("shift_id", rec.ShiftID.String()))
		default:
			return err
		}
	}

	var policy *attendancepolicy.AttendancePolicy
	if rec.AttendancePolicyID != nil {
		found, err := s.policies.FindByIDAndCompany(ctx, companyID, rec.AttendancePolicyID.String())
		switch {
		case err == nil:
			policy = found
		case errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Warn("attendance policy missing", zap.String("policy_id", rec.AttendancePolicyID.String()))
		default:
			return err
		}
	}

	Finalize(rec, sh, policy)
	return nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool, filter GetAttendancesFilterRequest) ([]AttendanceResponse, error) {
	f := ListFilter{EmployeeID: filter.EmployeeID, Status: filter.Status}
	if !canReadAll {
		if _, err := uuid.Parse(actorID); err != nil {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		f.EmployeeID = actorID
	}
	if filter.From != "" {
		from, err := time.Parse(dateLayout, filter.From)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		f.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(dateLayout, filter.To)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindAll(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, actorID string, canReadAll bool, id string) (AttendanceResponse, error) {
	rec, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if !canReadAll && rec.EmployeeID.String() != actorID {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}
	return mapToResponse(*rec), nil
}

func mapToResponse(a AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		CompanyID:        a.CompanyID.String(),
		EmployeeID:       a.EmployeeID.String(),
		AttendanceDate:   a.AttendanceDate.Format(dateLayout),
		ClockIn:          timeofday.Ptr(a.ClockIn),
		ClockOut:         timeofday.Ptr(a.ClockOut),
		TotalHours:       a.TotalHours,
		BreakHours:       a.BreakHours,
		OvertimeHours:    a.OvertimeHours,
		OvertimeAmount:   a.OvertimeAmount,
		IsLate:           a.IsLate,
		IsEarlyDeparture: a.IsEarlyDeparture,
		IsAbsent:         a.IsAbsent,
		IsHoliday:        a.IsHoliday,
		IsWeekend:        a.IsWeekend,
		Status:           a.Status,
		StatusIsManual:   a.StatusIsManual,
		Source:           a.Source,
		Notes:            a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ShiftID != nil {
		v := a.ShiftID.String()
		resp.ShiftID = &v
	}
	if a.AttendancePolicyID != nil {
		v := a.AttendancePolicyID.String()
		resp.AttendancePolicyID = &v
	}
	return resp
}
