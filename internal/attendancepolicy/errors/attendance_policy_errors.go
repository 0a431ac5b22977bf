package attendancepolicyerrors

import (
	"go-hrm/internal/shared/apperror"
	"net/http"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance policy not found",
		http.StatusNotFound,
	)

	ErrPolicyNameExists = apperror.New(
		apperror.CodeConflict,
		"Attendance policy name already exists",
		http.StatusConflict,
	)

	ErrInvalidOvertimeRate = apperror.New(
		apperror.CodeInvalidInput,
		"overtime_rate_per_hour must be a non-negative number",
		http.StatusBadRequest,
	)
)
