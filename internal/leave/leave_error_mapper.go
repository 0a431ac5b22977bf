package leave

import (
	"errors"

	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError turns persistence errors into leave errors; notFound
// picks the entity-specific not-found error.
func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_leave_types_company_code":
			return leaveerrors.ErrLeaveTypeCodeExists
		case "uq_leave_policies_company_type":
			return leaveerrors.ErrLeavePolicyExists
		}
	}

	return err
}
