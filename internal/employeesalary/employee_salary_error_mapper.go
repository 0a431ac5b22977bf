package employeesalary

import (
	"errors"

	employeesalaryerrors "go-hrm/internal/employeesalary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_salary_effective" {
		return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
	}

	return err
}
