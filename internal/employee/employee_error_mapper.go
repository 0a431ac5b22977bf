package employee

import (
	"errors"

	employeeerrors "go-hrm/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_employees_company_number":
				return employeeerrors.ErrEmployeeNumberAlreadyExists
			case "uq_employees_company_email":
				return employeeerrors.ErrEmployeeAlreadyExists
			}
		case "23503":
			return employeeerrors.ErrEmployeeInUse
		}
	}

	return err
}
