package services

import (
	"fmt"
	"strings"
)

// NotFoundError -> table/order/recipe/ingredient id did not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PreconditionError -> a transition was attempted from a status that does
// not permit it. The caller sees expected vs. actual; the entity is never
// silently coerced.
type PreconditionError struct {
	Resource string
	Expected []string
	Actual   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s is in status '%s', expected %s",
		e.Resource, e.Actual, strings.Join(e.Expected, " or "))
}

// ValidationError -> bad input rejected before any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidStatusError -> target status is not in the fixed enumeration, or
// the edge to it does not exist.
type InvalidStatusError struct {
	Status string
	Valid  []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status '%s', must be one of: %s",
		e.Status, strings.Join(e.Valid, ", "))
}

// StoreError -> the underlying persistence call failed. The transition is
// not considered applied; the caller must retry the whole step.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
