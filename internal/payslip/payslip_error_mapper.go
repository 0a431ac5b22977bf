package payslip

import (
	"errors"

	paysliperrors "go-hrm/internal/payslip/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paysliperrors.ErrPayslipNotFound
	}
	return err
}

// isEntryConflict reports a lost race on the one-payslip-per-entry rule.
func isEntryConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payslips_entry"
}
