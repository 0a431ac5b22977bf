package payrollerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"pay_period_start must be before or equal pay_period_end",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll status filter",
		http.StatusBadRequest,
	)
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrPayrollEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll entry not found",
		http.StatusNotFound,
	)
	ErrProcessOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be processed while status is draft",
		http.StatusBadRequest,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll run can only be deleted while status is draft",
		http.StatusBadRequest,
	)
	ErrRunNotCompleted = apperror.New(
		apperror.CodeInvalidState,
		"payroll run is not completed",
		http.StatusBadRequest,
	)
	ErrPayrollRunReferenceExists = apperror.New(
		apperror.CodeConflict,
		"payroll run reference already exists",
		http.StatusConflict,
	)
)
