package attendancepolicy

import (
	"errors"

	attendancepolicyerrors "go-hrm/internal/attendancepolicy/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendancepolicyerrors.ErrPolicyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_policies_company_name" {
		return attendancepolicyerrors.ErrPolicyNameExists
	}
	return err
}
