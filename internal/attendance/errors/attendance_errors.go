package attendanceerrors

import (
	"go-hrm/internal/shared/apperror"
	"net/http"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found or inactive",
		http.StatusNotFound,
	)

	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in for today",
		http.StatusConflict,
	)

	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeConflict,
		"Already clocked out for today",
		http.StatusConflict,
	)

	ErrClockInNotFound = apperror.New(
		apperror.CodeInvalidState,
		"No open clock-in found",
		http.StatusBadRequest,
	)

	ErrOnLeave = apperror.New(
		apperror.CodeInvalidState,
		"Employee is on approved leave for this date",
		http.StatusBadRequest,
	)

	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid time format, expected HH:mm",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)

	ErrRecordAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Attendance record for this employee and date already exists",
		http.StatusConflict,
	)
)
