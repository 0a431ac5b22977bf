package payroll

import (
	"errors"

	payrollerrors "go-hrm/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRunError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollRunNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_runs_company_reference" {
		return payrollerrors.ErrPayrollRunReferenceExists
	}
	return err
}

func mapEntryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollEntryNotFound
	}
	return err
}
