package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a recoverable error kind callers can branch on
type ErrorCode string

const (
	CodeUnknownTreatment  ErrorCode = "unknown_treatment"
	CodeClinicClosed      ErrorCode = "clinic_closed"
	CodeSlotUnavailable   ErrorCode = "slot_unavailable"
	CodeInvalidTransition ErrorCode = "invalid_transition"
	CodeStoreUnavailable  ErrorCode = "store_unavailable"
	CodeNotFound          ErrorCode = "not_found"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of err, or the empty string for non-AppErrors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Error constructors
func UnknownTreatment(id int) *AppError {
	return &AppError{
		Code:    CodeUnknownTreatment,
		Message: fmt.Sprintf("unknown treatment %d", id),
	}
}

func ClinicClosed(date string) *AppError {
	return &AppError{
		Code:    CodeClinicClosed,
		Message: fmt.Sprintf("clinic is closed on %s", date),
	}
}

func SlotUnavailable(date, start, end string) *AppError {
	return &AppError{
		Code:    CodeSlotUnavailable,
		Message: fmt.Sprintf("slot %s-%s on %s is not available", start, end, date),
	}
}

func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("invalid status transition %s -> %s", from, to),
	}
}

func StoreUnavailable(err error) *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: "store unavailable",
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}
