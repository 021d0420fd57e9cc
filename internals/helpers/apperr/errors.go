// Package apperr holds the typed domain errors returned by feature services.
package apperr

import (
	"errors"
	"fmt"
)

// Kind categorizes a domain error. The value doubles as the error_code in responses.
type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindValidation           Kind = "VALIDATION_ERROR"
	KindConflict             Kind = "CONFLICT"
	KindWorkOrderClosed      Kind = "WORK_ORDER_CLOSED"
	KindInvalidJobRole       Kind = "INVALID_JOB_ROLE"
	KindAllocationExceeded   Kind = "ALLOCATION_EXCEEDED"
	KindResourceUnavailable  Kind = "RESOURCE_UNAVAILABLE"
	KindDuplicateSDCName     Kind = "DUPLICATE_SDC_NAME"
	KindAlreadyCompleted     Kind = "ALREADY_COMPLETED"
	KindAlreadyAssigned      Kind = "ALREADY_ASSIGNED"
	KindNotAssigned          Kind = "NOT_ASSIGNED"
	KindTargetMismatch       Kind = "TARGET_MISMATCH"
	KindInvalidDistrict      Kind = "INVALID_DISTRICT"
	KindDistrictQuotaReached Kind = "DISTRICT_QUOTA_REACHED"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
	KindInvariantViolation   Kind = "INVARIANT_VIOLATION"
)

// Error is a domain error with enough context for the caller to self-correct.
type Error struct {
	Kind    Kind
	Message string

	// Remaining is set for AllocationExceeded.
	Remaining *int

	Details map[string]any
}

func (e *Error) Error() string {
	if e.Remaining != nil {
		return fmt.Sprintf("%s: %s (remaining=%d)", e.Kind, e.Message, *e.Remaining)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches on Kind so callers can write errors.Is(err, apperr.ErrNotAssigned).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrValidation           = &Error{Kind: KindValidation}
	ErrConflict             = &Error{Kind: KindConflict}
	ErrWorkOrderClosed      = &Error{Kind: KindWorkOrderClosed}
	ErrInvalidJobRole       = &Error{Kind: KindInvalidJobRole}
	ErrAllocationExceeded   = &Error{Kind: KindAllocationExceeded}
	ErrResourceUnavailable  = &Error{Kind: KindResourceUnavailable}
	ErrDuplicateSDCName     = &Error{Kind: KindDuplicateSDCName}
	ErrAlreadyCompleted     = &Error{Kind: KindAlreadyCompleted}
	ErrAlreadyAssigned      = &Error{Kind: KindAlreadyAssigned}
	ErrNotAssigned          = &Error{Kind: KindNotAssigned}
	ErrTargetMismatch       = &Error{Kind: KindTargetMismatch}
	ErrInvalidDistrict      = &Error{Kind: KindInvalidDistrict}
	ErrDistrictQuotaReached = &Error{Kind: KindDistrictQuotaReached}
	ErrInvalidTransition    = &Error{Kind: KindInvalidTransition}
	ErrInvariantViolation   = &Error{Kind: KindInvariantViolation}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func AllocationExceeded(remaining int) *Error {
	r := remaining
	return &Error{
		Kind:      KindAllocationExceeded,
		Message:   fmt.Sprintf("only %d seats remaining for this job role", remaining),
		Remaining: &r,
	}
}

func InvariantViolation(format string, args ...any) *Error {
	return New(KindInvariantViolation, format, args...)
}

// WithDetail attaches a key/value to the error and returns it.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// KindOf returns the Kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
