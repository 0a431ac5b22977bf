package apperror

import "net/http"

// Shared errors used by middleware and the HTTP mapper. Feature packages
// declare their own in <feature>/errors.
var (
	ErrInvalidInput = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)

	ErrServiceUnavailable = New(CodeServiceUnavailable, "Service is temporarily unavailable", http.StatusServiceUnavailable)
)

// Auth.
var (
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrInvalidToken = New(CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = New(CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
)

// ErrRequestInProgress is returned while an earlier request with the same
// idempotency key still holds the lock.
var ErrRequestInProgress = New("PROCESSING", "Permintaan yang sama sedang diproses, mohon tunggu sebentar.", http.StatusConflict)
