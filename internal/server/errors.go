package server

import (
	"fmt"
	"net/http"
)

// ErrInvalidInput indicates a request with a missing or malformed field
type ErrInvalidInput struct {
	Field   string
	Message string
}

func (e *ErrInvalidInput) Error() string {
	return e.Message
}

// ErrCapabilityUnavailable indicates an optional collaborator that is not configured
type ErrCapabilityUnavailable struct {
	Capability string
}

func (e *ErrCapabilityUnavailable) Error() string {
	return fmt.Sprintf("%s is not available on this server", e.Capability)
}

// ErrExtraction indicates that no essay text could be read from an image
type ErrExtraction struct {
	Cause error
}

func (e *ErrExtraction) Error() string {
	return fmt.Sprintf("could not extract essay text: %v", e.Cause)
}

func (e *ErrExtraction) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidInput:
		return http.StatusBadRequest
	case *ErrCapabilityUnavailable:
		return http.StatusServiceUnavailable
	case *ErrExtraction:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
