package services

import "fmt"

// ValidationError reports caller-supplied data that violates a stated
// bound. Never retried; surfaced verbatim with the violated field named.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entry/ledger/user that does not
// exist (or is not owned by the requesting user).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError surfaces a unique-key race only after the
// retry-as-update path itself failed.
type ConflictError struct {
	Key string
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Key, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// StorageError wraps transport/persistence failures from the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Estimation failure sub-reasons.
const (
	EstimationMalformedResponse = "malformed-response"
	EstimationInvalidInput      = "invalid-input"
	EstimationQuota             = "quota"
)

// EstimationError reports an upstream estimator failure. The engine
// never substitutes a zero estimate when one was required and failed.
type EstimationError struct {
	Reason string
	Err    error
}

func (e *EstimationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("estimation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("estimation failed (%s)", e.Reason)
}

func (e *EstimationError) Unwrap() error { return e.Err }
