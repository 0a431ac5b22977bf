package leave

import (
	"context"
	"errors"

	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitializeBalances opens the current year's balance for every active leave
// type the employee does not have one for yet. Unused days of last year are
// carried over when the policy allows it, capped at max_carry_forward_days.
func (s *service) InitializeBalances(ctx context.Context, companyID, employeeID string) error {
	year := s.now().Year()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, companyID, employeeID)
	if err != nil {
		return mapRepositoryError(err, leaveerrors.ErrEmployeeNotInCompany)
	}

	types, err := qtx.FindTypes(ctx, companyID, true)
	if err != nil {
		return err
	}

	opened := 0
	for _, t := range types {
		typeID := t.ID.String()
		if _, err := qtx.FindBalance(ctx, companyID, employeeID, typeID, year); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		policy, err := qtx.FindPolicyByType(ctx, companyID, typeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		carried := decimal.Zero
		if policy != nil && policy.AllowCarryForward {
			prev, err := qtx.FindBalance(ctx, companyID, employeeID, typeID, year-1)
			switch {
			case err == nil && prev.RemainingDays.IsPositive():
				carried = decimal.Min(prev.RemainingDays, policy.MaxCarryForwardDays)
			case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		b := &LeaveBalance{
			ID:             uuid.New(),
			CompanyID:      emp.CompanyID,
			EmployeeID:     emp.ID,
			LeaveTypeID:    t.ID,
			Year:           year,
			AllocatedDays:  policy.AllocatedDays(),
			CarriedForward: carried,
		}
		b.Recalculate()
		if err := qtx.CreateBalance(ctx, b); err != nil {
			return err
		}
		opened++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("leave balances initialized",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("opened", opened),
	)
	return nil
}

func (s *service) GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = s.now().Year()
	}
	balances, err := s.repo.FindBalances(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapBalanceToResponse(b)
	}
	return resp, nil
}

// AdjustBalance adds req.Adjustment (may be negative) to manual_adjustment.
func (s *service) AdjustBalance(ctx context.Context, companyID, actorID, id string, req AdjustBalanceRequest) (LeaveBalanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	b, err := qtx.FindBalanceByID(ctx, companyID, id)
	if err != nil {
		return LeaveBalanceResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveBalanceNotFound)
	}

	b.ManualAdjustment = b.ManualAdjustment.Add(req.Adjustment).Round(2)
	b.Recalculate()
	if err := qtx.UpdateBalance(ctx, b); err != nil {
		return LeaveBalanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveBalanceResponse{}, err
	}

	s.logger.Info("leave balance adjusted",
		zap.String("balance_id", id),
		zap.String("actor_id", actorID),
		zap.String("adjustment", req.Adjustment.String()),
		zap.String("reason", req.Reason),
		zap.String("remaining_days", b.RemainingDays.String()),
	)
	return mapBalanceToResponse(*b), nil
}

func mapBalanceToResponse(b LeaveBalance) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		ID:               b.ID.String(),
		EmployeeID:       b.EmployeeID.String(),
		LeaveTypeID:      b.LeaveTypeID.String(),
		Year:             b.Year,
		AllocatedDays:    b.AllocatedDays,
		CarriedForward:   b.CarriedForward,
		ManualAdjustment: b.ManualAdjustment,
		UsedDays:         b.UsedDays,
		RemainingDays:    b.RemainingDays,
	}
	if b.LeaveType != nil {
		resp.LeaveTypeName = b.LeaveType.Name
	}
	return resp
}
