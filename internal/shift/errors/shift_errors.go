package shifterrors

import (
	"go-hrm/internal/shared/apperror"
	"net/http"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift not found",
		http.StatusNotFound,
	)

	ErrShiftNameExists = apperror.New(
		apperror.CodeConflict,
		"Shift name already exists",
		http.StatusConflict,
	)

	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid time format, expected HH:mm",
		http.StatusBadRequest,
	)

	ErrIncompleteBreakWindow = apperror.New(
		apperror.CodeInvalidInput,
		"break_start_time and break_end_time must be set together",
		http.StatusBadRequest,
	)

	ErrDayShiftCrossesMidnight = apperror.New(
		apperror.CodeInvalidInput,
		"end_time before start_time requires is_night_shift",
		http.StatusBadRequest,
	)
)
