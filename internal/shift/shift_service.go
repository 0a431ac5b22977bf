package shift

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/timeofday"
	shifterrors "go-hrm/internal/shift/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateShiftRequest) (ShiftResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ShiftResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

type shiftTimes struct {
	start, end           timeofday.Clock
	breakStart, breakEnd *timeofday.Clock
	breakDuration        int
}

func parseShiftTimes(start, end string, breakStart, breakEnd *string, breakDuration *int, nightShift bool) (shiftTimes, error) {
	var out shiftTimes
	var err error

	if out.start, err = timeofday.Parse(start); err != nil {
		return out, shifterrors.ErrInvalidTime
	}
	if out.end, err = timeofday.Parse(end); err != nil {
		return out, shifterrors.ErrInvalidTime
	}
	if out.end.Before(out.start) && !nightShift {
		return out, shifterrors.ErrDayShiftCrossesMidnight
	}

	if (breakStart == nil) != (breakEnd == nil) {
		return out, shifterrors.ErrIncompleteBreakWindow
	}
	if breakStart != nil {
		bs, err := timeofday.Parse(*breakStart)
		if err != nil {
			return out, shifterrors.ErrInvalidTime
		}
		be, err := timeofday.Parse(*breakEnd)
		if err != nil {
			return out, shifterrors.ErrInvalidTime
		}
		out.breakStart, out.breakEnd = &bs, &be
	}

	switch {
	case breakDuration != nil:
		out.breakDuration = *breakDuration
	case out.breakStart != nil:
		// Default to the window length.
		d := out.breakEnd.Minutes() - out.breakStart.Minutes()
		if d < 0 {
			d += timeofday.MinutesPerDay
		}
		out.breakDuration = d
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateShiftRequest) (ShiftResponse, error) {
	times, err := parseShiftTimes(req.StartTime, req.EndTime, req.BreakStartTime, req.BreakEndTime, req.BreakDuration, req.IsNightShift)
	if err != nil {
		s.logger.Warn("create shift invalid times", zap.String("company_id", companyID), zap.Error(err))
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	row := &Shift{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		Name:           req.Name,
		StartTime:      times.start,
		EndTime:        times.end,
		BreakStartTime: times.breakStart,
		BreakEndTime:   times.breakEnd,
		BreakDuration:  times.breakDuration,
		GracePeriod:    req.GracePeriod,
		IsNightShift:   req.IsNightShift,
		IsActive:       true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("create shift persist failed", zap.String("company_id", companyID), zap.Error(err))
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("shift created", zap.String("company_id", companyID), zap.String("shift_id", row.ID.String()))
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ShiftResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]ShiftResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	times, err := parseShiftTimes(req.StartTime, req.EndTime, req.BreakStartTime, req.BreakEndTime, req.BreakDuration, req.IsNightShift)
	if err != nil {
		s.logger.Warn("update shift invalid times", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}

	row.Name = req.Name
	row.StartTime = times.start
	row.EndTime = times.end
	row.BreakStartTime = times.breakStart
	row.BreakEndTime = times.breakEnd
	row.BreakDuration = times.breakDuration
	row.GracePeriod = req.GracePeriod
	row.IsNightShift = req.IsNightShift
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update shift persist failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("shift updated", zap.String("company_id", companyID), zap.String("shift_id", id))
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("shift deleted", zap.String("company_id", companyID), zap.String("shift_id", id))
	return nil
}

func mapToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:             s.ID.String(),
		CompanyID:      s.CompanyID.String(),
		Name:           s.Name,
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		BreakStartTime: timeofday.Ptr(s.BreakStartTime),
		BreakEndTime:   timeofday.Ptr(s.BreakEndTime),
		BreakDuration:  s.BreakDuration,
		GracePeriod:    s.GracePeriod,
		IsNightShift:   s.IsNightShift,
		IsActive:       s.IsActive,
		WorkingHours:   s.WorkingHours(),
	}
}
