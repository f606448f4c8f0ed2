package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the failure modes a mutation can report. Every failed
// operation returns exactly one Kind plus a human-readable detail naming the
// offending entity. Only Transient errors are worth retrying as-is.
type Kind string

const (
	// KindValidation flags a missing or malformed required field.
	KindValidation Kind = "VALIDATION"
	// KindRangeViolation flags a date range outside its parent bounds, or start > end.
	KindRangeViolation Kind = "RANGE_VIOLATION"
	// KindOverlap flags a non-break term range conflicting with an existing one.
	KindOverlap Kind = "OVERLAP"
	// KindBreakTimeslot flags a timetable entry targeting a break timeslot.
	KindBreakTimeslot Kind = "BREAK_TIMESLOT_ASSIGNMENT"
	// KindReferentialBlock flags a refused delete: the record is still referenced.
	KindReferentialBlock Kind = "REFERENTIAL_BLOCK"
	// KindTransient flags an unreachable or timed-out remote store; retryable.
	KindTransient Kind = "TRANSIENT"
)

type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func NewErrorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func WrapError(err error, kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func (err *Error) Error() string {
	if err.Err != nil {
		return err.Detail + ": " + err.Err.Error()
	}
	return err.Detail
}

func (err *Error) Unwrap() error { return err.Err }

// IsKind reports whether the cause of `err` is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	if kerr, ok := errors.Cause(err).(*Error); ok {
		return kerr.Kind == kind
	}
	return false
}

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
