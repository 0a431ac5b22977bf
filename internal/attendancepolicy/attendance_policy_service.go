package attendancepolicy

import (
	"context"
	"database/sql"

	attendancepolicyerrors "go-hrm/internal/attendancepolicy/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateAttendancePolicyRequest) (AttendancePolicyResponse, error)
	GetAll(ctx context.Context, companyID string) ([]AttendancePolicyResponse, error)
	GetByID(ctx context.Context, companyID, id string) (AttendancePolicyResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateAttendancePolicyRequest) (AttendancePolicyResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendancepolicy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendancepolicy.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateAttendancePolicyRequest) (AttendancePolicyResponse, error) {
	if req.OvertimeRatePerHour.IsNegative() {
		return AttendancePolicyResponse{}, attendancepolicyerrors.ErrInvalidOvertimeRate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendancePolicyResponse{}, err
	}
	defer tx.Rollback()

	row := &AttendancePolicy{
		ID:                  uuid.New(),
		CompanyID:           uuid.MustParse(companyID),
		Name:                req.Name,
		LateArrivalGrace:    req.LateArrivalGrace,
		EarlyDepartureGrace: req.EarlyDepartureGrace,
		OvertimeRatePerHour: req.OvertimeRatePerHour.Round(2),
		IsActive:            true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("create attendance policy failed", zap.String("company_id", companyID), zap.Error(err))
		return AttendancePolicyResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendancePolicyResponse{}, err
	}

	s.logger.Info("attendance policy created", zap.String("company_id", companyID), zap.String("policy_id", row.ID.String()))
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]AttendancePolicyResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]AttendancePolicyResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (AttendancePolicyResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AttendancePolicyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateAttendancePolicyRequest) (AttendancePolicyResponse, error) {
	if req.OvertimeRatePerHour.IsNegative() {
		return AttendancePolicyResponse{}, attendancepolicyerrors.ErrInvalidOvertimeRate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendancePolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AttendancePolicyResponse{}, mapRepositoryError(err)
	}

	row.Name = req.Name
	row.LateArrivalGrace = req.LateArrivalGrace
	row.EarlyDepartureGrace = req.EarlyDepartureGrace
	row.OvertimeRatePerHour = req.OvertimeRatePerHour.Round(2)
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update attendance policy failed", zap.String("policy_id", id), zap.Error(err))
		return AttendancePolicyResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendancePolicyResponse{}, err
	}
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
	return tx.Commit()
}

func mapToResponse(p AttendancePolicy) AttendancePolicyResponse {
	return AttendancePolicyResponse{
		ID:                  p.ID.String(),
		CompanyID:           p.CompanyID.String(),
		Name:                p.Name,
		LateArrivalGrace:    p.LateArrivalGrace,
		EarlyDepartureGrace: p.EarlyDepartureGrace,
		OvertimeRatePerHour: p.OvertimeRatePerHour,
		IsActive:            p.IsActive,
	}
}

