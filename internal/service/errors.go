package service

import "fmt"

// ValidationError reports caller-supplied data that violates a precondition.
// No partial write has occurred when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a mutation targeting a nonexistent record. Reads
// return nil instead of this error.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func notFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
