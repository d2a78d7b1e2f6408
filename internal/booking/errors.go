package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfirmInFlight rejects a second confirmation while one is already
// outstanding for the same draft.
var ErrConfirmInFlight = errors.New("a confirmation is already in progress")

// ValidationError reports an incomplete or invalid draft. It is always
// recoverable locally: the caller supplies the missing fields and retries.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid booking draft: " + strings.Join(e.Fields, ", ")
}

// UnavailableError reports that a chosen slot or court is no longer
// available. The user is prompted to re-select; only the invalid field is
// cleared.
type UnavailableError struct {
	Resource string
	ID       string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s %s is no longer available", e.Resource, e.ID)
}

// ServiceError reports a failed external operation. Retryable; the draft is
// fully preserved.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return e.Op + " failed"
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// StateError reports a transition attempted from the wrong step.
type StateError struct {
	Op   string
	Step Step
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s is not valid from step %s", e.Op, e.Step)
}
