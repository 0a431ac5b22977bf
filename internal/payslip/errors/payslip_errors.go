package paysliperrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayrollEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll entry not found",
		http.StatusNotFound,
	)
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrRunNotCompleted = apperror.New(
		apperror.CodeInvalidState,
		"payslips can only be generated for a completed payroll run",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payslip status transition",
		http.StatusBadRequest,
	)
	ErrPayslipFileMissing = apperror.New(
		apperror.CodeNotFound,
		"payslip file is missing",
		http.StatusNotFound,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payslip status filter",
		http.StatusBadRequest,
	)
)
