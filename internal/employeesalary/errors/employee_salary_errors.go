package employeesalaryerrors

import (
	"go-hrm/internal/shared/apperror"
	"net/http"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee salary not found",
		http.StatusNotFound,
	)

	ErrActiveSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee has no active salary",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)

	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"effective_date must use YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidBasicSalary = apperror.New(
		apperror.CodeInvalidInput,
		"basic_salary must be greater than zero",
		http.StatusBadRequest,
	)

	ErrDeleteActiveSalary = apperror.New(
		apperror.CodeInvalidState,
		"Active salary cannot be deleted",
		http.StatusBadRequest,
	)

	ErrSalaryEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary for this employee and effective date already exists",
		http.StatusConflict,
	)
)
