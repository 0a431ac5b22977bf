package salarycomponenterrors

import (
	"go-hrm/internal/shared/apperror"
	"net/http"
)

var (
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary component not found",
		http.StatusNotFound,
	)

	ErrComponentCodeExists = apperror.New(
		apperror.CodeConflict,
		"Salary component code already exists",
		http.StatusConflict,
	)

	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage_of_basic must be between 0 and 100",
		http.StatusBadRequest,
	)

	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"default_amount must be a non-negative number",
		http.StatusBadRequest,
	)
)
