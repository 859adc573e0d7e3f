package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// Error kinds. Callers branch on these with errors.Is; messages stay
// human-readable and never carry driver internals.
var (
	ErrValidation  = errors.New("validation")
	ErrNotFound    = errors.New("not-found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence")
)

type LedgerError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *LedgerError) Error() string { return e.Message }

func (e *LedgerError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func ValidationErrorf(format string, args ...any) error {
	return &LedgerError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundErrorf(format string, args ...any) error {
	return &LedgerError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictErrorf(format string, args ...any) error {
	return &LedgerError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// PersistenceError keeps the driver error inspectable via errors.Is/As while
// the message stays generic.
func PersistenceError(context string, err error) error {
	return &LedgerError{Kind: ErrPersistence, Message: context + ": storage failure", Cause: err}
}
