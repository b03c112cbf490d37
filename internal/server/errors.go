// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/analyze"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/interview"
	"github.com/jonathan/resume-analyzer/internal/ollama"
	"github.com/jonathan/resume-analyzer/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		schemaErr  *schemas.ValidationError
		configErr  *interview.InvalidConfigError
		formatErr  *ingestion.UnsupportedFormatError
		extractErr *ingestion.ExtractionError
		serviceErr *ollama.ServiceUnavailableError
		modelErr   *ollama.ModelUnavailableError
		timeoutErr *ollama.TimeoutError
	)
	switch {
	case errors.As(err, &validation),
		errors.As(err, &schemaErr),
		errors.As(err, &configErr),
		errors.As(err, &formatErr),
		errors.As(err, &extractErr),
		errors.Is(err, analyze.ErrEmptyResume):
		return http.StatusBadRequest
	case errors.As(err, &serviceErr), errors.As(err, &modelErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
