package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientConfiguration indicates that no capital account exists for a referenced currency.
var ErrInsufficientConfiguration = errors.New("no capital configured")

// ErrInsufficientFunds indicates that a capital balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrTransaction indicates an unexpected persistence failure during a multi-step ledger mutation.
var ErrTransaction = errors.New("transaction failure")

// ErrConflict indicates that a concurrent transaction won a race (deadlock, serialization
// failure, or a uniqueness collision on a ledger invariant). The unit of work may be retried.
var ErrConflict = errors.New("concurrent update conflict")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// ValidationError reports field-level input problems. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientFundsError names the currency whose capital could not cover a debit.
type InsufficientFundsError struct {
	CurrencyCode string
	Remaining    decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough capital in %s (remaining %s, requested %s)",
		e.CurrencyCode, e.Remaining.String(), e.Requested.String())
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }
