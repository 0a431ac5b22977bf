package salarycomponent

import (
	"context"
	"database/sql"
	"strings"

	salarycomponenterrors "go-hrm/internal/salarycomponent/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetSalaryComponentsFilterRequest) ([]SalaryComponentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryComponentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryComponentRequest) (SalaryComponentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycomponent.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func validateAmounts(calculationType string, amount, pct decimal.Decimal) error {
	if amount.IsNegative() {
		return salarycomponenterrors.ErrInvalidAmount
	}
	if calculationType == CalculationPercentage && (pct.IsNegative() || pct.GreaterThan(hundred)) {
		return salarycomponenterrors.ErrInvalidPercentage
	}
	return nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateSalaryComponentRequest) (SalaryComponentResponse, error) {
	if err := validateAmounts(req.CalculationType, req.DefaultAmount, req.PercentageOfBasic); err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	row := &SalaryComponent{
		ID:                uuid.New(),
		CompanyID:         uuid.MustParse(companyID),
		Name:              req.Name,
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:              req.Type,
		CalculationType:   req.CalculationType,
		DefaultAmount:     req.DefaultAmount.Round(2),
		PercentageOfBasic: req.PercentageOfBasic.Round(2),
		IsActive:          true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("create salary component failed", zap.String("company_id", companyID), zap.String("code", row.Code), zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return SalaryComponentResponse{}, err
	}

	s.logger.Info("salary component created",
		zap.String("company_id", companyID),
		zap.String("component_id", row.ID.String()),
		zap.String("code", row.Code),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetSalaryComponentsFilterRequest) ([]SalaryComponentResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID, Filter{Type: filter.Type, ActiveOnly: filter.ActiveOnly})
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]SalaryComponentResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryComponentResponse, error) {
	row, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateSalaryComponentRequest) (SalaryComponentResponse, error) {
	if err := validateAmounts(req.CalculationType, req.DefaultAmount, req.PercentageOfBasic); err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	row.Name = req.Name
	row.Type = req.Type
	row.CalculationType = req.CalculationType
	row.DefaultAmount = req.DefaultAmount.Round(2)
	row.PercentageOfBasic = req.PercentageOfBasic.Round(2)
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update salary component failed", zap.String("component_id", id), zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return SalaryComponentResponse{}, err
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

func mapToResponse(c SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:                c.ID.String(),
		CompanyID:         c.CompanyID.String(),
		Name:              c.Name,
		Code:              c.Code,
		Type:              c.Type,
		CalculationType:   c.CalculationType,
		DefaultAmount:     c.DefaultAmount,
		PercentageOfBasic: c.PercentageOfBasic,
		IsActive:          c.IsActive,
	}
}
