package logic

import (
	"fmt"

	"github.com/abhinay-x/studymate-sub001/pkg"
)

// QuotaExceededError means the user hit the daily question limit. Terminal,
// nothing was attempted.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit of %d questions reached", e.Limit)
}

// NotFoundError means the resource does not exist or is not owned by the
// caller. The two cases are deliberately indistinguishable.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError reports malformed input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GenerationFailedError wraps the model invoker's classified failure after
// retries are exhausted
type GenerationFailedError struct {
	Cause *pkg.GenerationError
}

func (e *GenerationFailedError) Error() string {
	return "generation failed: " + e.Cause.Error()
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Cause
}

// PersistenceError reports a store failure. When Answer is non-empty the
// generation succeeded but could not be durably recorded; callers must
// surface the answer rather than drop it.
type PersistenceError struct {
	Op     string
	Answer string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
