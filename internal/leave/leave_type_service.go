package leave

import (
	"context"
	"errors"
	"strings"

	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *service) CreateType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	t := &LeaveType{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		IsPaid:    req.IsPaid,
		IsActive:  true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateType(ctx, t); err != nil {
		s.logger.Error("create leave type failed", zap.String("company_id", companyID), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type created", zap.String("leave_type_id", t.ID.String()), zap.String("code", t.Code))
	return mapTypeToResponse(*t), nil
}

func (s *service) GetTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindTypes(ctx, companyID, false)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapTypeToResponse(t)
	}
	return resp, nil
}

func (s *service) GetTypeByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	t, err := s.repo.FindTypeByID(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	return mapTypeToResponse(*t), nil
}

func (s *service) UpdateType(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindTypeByID(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	t.Name = strings.TrimSpace(req.Name)
	t.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	t.IsPaid = req.IsPaid
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := qtx.UpdateType(ctx, t); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}
	return mapTypeToResponse(*t), nil
}

func (s *service) DeleteType(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteType(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	return tx.Commit()
}

// UpsertPolicy creates the leave type's policy or replaces its values.
func (s *service) UpsertPolicy(ctx context.Context, companyID string, req UpsertLeavePolicyRequest) (LeavePolicyResponse, error) {
	if req.MaxDaysPerYear.IsNegative() || req.MaxCarryForwardDays.IsNegative() {
		return LeavePolicyResponse{}, leaveerrors.ErrInvalidDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeavePolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	lt, err := qtx.FindTypeByID(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeavePolicyResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	p, err := qtx.FindPolicyByType(ctx, companyID, req.LeaveTypeID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = &LeavePolicy{
			ID:          uuid.New(),
			CompanyID:   lt.CompanyID,
			LeaveTypeID: lt.ID,
		}
	case err != nil:
		return LeavePolicyResponse{}, err
	}
	p.MaxDaysPerYear = req.MaxDaysPerYear.Round(2)
	p.AllowCarryForward = req.AllowCarryForward
	p.MaxCarryForwardDays = req.MaxCarryForwardDays.Round(2)

	if err := qtx.SavePolicy(ctx, p); err != nil {
		return LeavePolicyResponse{}, mapRepositoryError(err, leaveerrors.ErrLeavePolicyNotFound)
	}
	if err := tx.Commit(); err != nil {
		return LeavePolicyResponse{}, err
	}

	p.LeaveType = lt
	s.logger.Info("leave policy saved",
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("max_days_per_year", p.MaxDaysPerYear.String()),
	)
	return mapPolicyToResponse(*p), nil
}

func (s *service) GetPolicies(ctx context.Context, companyID string) ([]LeavePolicyResponse, error) {
	policies, err := s.repo.FindPolicies(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeavePolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapPolicyToResponse(p)
	}
	return resp, nil
}

func (s *service) DeletePolicy(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeletePolicy(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeavePolicyNotFound)
	}
	return tx.Commit()
}

func mapTypeToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:        t.ID.String(),
		CompanyID: t.CompanyID.String(),
		Name:      t.Name,
		Code:      t.Code,
		IsPaid:    t.IsPaid,
		IsActive:  t.IsActive,
	}
}

func mapPolicyToResponse(p LeavePolicy) LeavePolicyResponse {
	resp := LeavePolicyResponse{
		ID:                  p.ID.String(),
		LeaveTypeID:         p.LeaveTypeID.String(),
		MaxDaysPerYear:      p.MaxDaysPerYear,
		AllowCarryForward:   p.AllowCarryForward,
		MaxCarryForwardDays: p.MaxCarryForwardDays,
	}
	if p.LeaveType != nil {
		resp.LeaveTypeName = p.LeaveType.Name
	}
	return resp
}
