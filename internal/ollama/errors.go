package ollama

import (
	"fmt"
	"time"
)

// ServiceUnavailableError indicates the runtime refused the connection
// or is otherwise unreachable.
type ServiceUnavailableError struct {
	URL   string
	Cause error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ollama runtime unavailable at %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("ollama runtime unavailable at %s", e.URL)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}

// ModelUnavailableError indicates the named model is absent from the
// runtime catalog and could not be pulled.
type ModelUnavailableError struct {
	Model string
	Cause error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model %q unavailable: %v", e.Model, e.Cause)
	}
	return fmt.Sprintf("model %q unavailable", e.Model)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// GenerationError indicates the runtime accepted the request but returned
// an error status.
type GenerationError struct {
	Model      string
	StatusCode int
	Message    string
	Cause      error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed for model %q: status %d: %s", e.Model, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("generation failed for model %q: %v", e.Model, e.Cause)
	}
	return fmt.Sprintf("generation failed for model %q: %s", e.Model, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates a generation call exceeded its per-attempt timeout.
type TimeoutError struct {
	Model   string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out for model %q after %s", e.Model, e.Elapsed)
}
