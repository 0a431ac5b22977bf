package shift

import (
	"errors"

	shifterrors "go-hrm/internal/shift/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shifterrors.ErrShiftNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_shifts_company_name" {
		return shifterrors.ErrShiftNameExists
	}

	return err
}
