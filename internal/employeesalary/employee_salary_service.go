package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeesalaryerrors "go-hrm/internal/employeesalary/errors"
	"go-hrm/internal/salarycomponent"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ComponentLookup resolves salary component ids of one tenant.
type ComponentLookup interface {
	FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]salarycomponent.SalaryComponent, error)
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetEmployeeSalariesFilterRequest) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	Activate(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetBreakdown(ctx context.Context, companyID, id string) (Breakdown, error)
	GetActiveBreakdown(ctx context.Context, companyID, employeeID string) (Breakdown, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	components ComponentLookup
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, components ComponentLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, components: components, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}
	if !req.BasicSalary.IsPositive() {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidBasicSalary
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, companyID, req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	if !exists {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrEmployeeNotFound
	}

	ids := req.ComponentIDs
	if ids == nil {
		ids = []string{}
	}
	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    employeeID,
		BasicSalary:   req.BasicSalary.Round(2),
		ComponentIDs:  datatypes.JSONSlice[string](ids),
		IsActive:      active,
		EffectiveDate: effectiveDate,
	}

	if err := qtx.Create(ctx, salary); err != nil {
		s.logger.Error("create employee salary failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	if active {
		if err := qtx.DeactivateOthers(ctx, companyID, req.EmployeeID, salary.ID.String()); err != nil {
			return EmployeeSalaryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	s.logger.Info("employee salary created",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("salary_id", salary.ID.String()),
		zap.Bool("is_active", active),
	)
	return mapToResponse(*salary), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetEmployeeSalariesFilterRequest,
) ([]EmployeeSalaryResponse, error) {
	salaries, err := s.repo.FindAllByCompany(ctx, companyID, Filter{EmployeeID: filter.EmployeeID, ActiveOnly: filter.ActiveOnly})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeSalaryResponse, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*salary), nil
}

// Activate makes id the employee's only active salary.
func (s *service) Activate(
	ctx context.Context,
	companyID, id string,
) (EmployeeSalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}
	if err := qtx.DeactivateOthers(ctx, companyID, salary.EmployeeID.String(), id); err != nil {
		return EmployeeSalaryResponse{}, err
	}
	if !salary.IsActive {
		salary.IsActive = true
		if err := qtx.Update(ctx, salary); err != nil {
			return EmployeeSalaryResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeSalaryResponse{}, err
	}

	s.logger.Info("employee salary activated",
		zap.String("salary_id", id),
		zap.String("employee_id", salary.EmployeeID.String()),
	)
	return mapToResponse(*salary), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	salary, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if salary.IsActive {
		return employeesalaryerrors.ErrDeleteActiveSalary
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) (Breakdown, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return Breakdown{}, mapRepositoryError(err)
	}
	return s.breakdown(ctx, companyID, salary)
}

// GetActiveBreakdown is the payroll entry point: the breakdown of the
// employee's active salary, or ErrActiveSalaryNotFound.
func (s *service) GetActiveBreakdown(ctx context.Context, companyID, employeeID string) (Breakdown, error) {
	salary, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Breakdown{}, employeesalaryerrors.ErrActiveSalaryNotFound
		}
		return Breakdown{}, err
	}
	return s.breakdown(ctx, companyID, salary)
}

func (s *service) breakdown(ctx context.Context, companyID string, salary *EmployeeSalary) (Breakdown, error) {
	ids := []string(salary.ComponentIDs)
	components, err := s.components.FindActiveByIDs(ctx, companyID, ids)
	if err != nil {
		s.logger.Error("load salary components failed", zap.String("salary_id", salary.ID.String()), zap.Error(err))
		return Breakdown{}, err
	}

	b := CalculateAllComponents(salary.BasicSalary, ids, components)
	b.SalaryID = salary.ID.String()
	return b, nil
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	ids := []string(salary.ComponentIDs)
	if ids == nil {
		ids = []string{}
	}
	return EmployeeSalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		EmployeeName:  salary.EmployeeName,
		BasicSalary:   salary.BasicSalary,
		ComponentIDs:  ids,
		IsActive:      salary.IsActive,
		EffectiveDate: salary.EffectiveDate.Format("2006-01-02"),
	}
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}
