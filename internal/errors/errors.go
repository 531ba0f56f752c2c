package errors

import (
	"errors"
	"fmt"
)

// Application-specific errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrModelUnavailable = errors.New("trained model unavailable")
	ErrInvalidArtifact  = errors.New("invalid trained artifact")
	ErrUnknownLabel     = errors.New("unknown class label")
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error `json:"errors"`
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

// Add adds an error to the MultiError
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (e *MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ErrorOrNil returns the MultiError as an error, or nil when empty
func (e *MultiError) ErrorOrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return *e
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (e MultiError) Unwrap() []error {
	return e.Errors
}

// ArtifactError represents a failure loading or validating a trained artifact
type ArtifactError struct {
	Path  string
	Stage string
	Err   error
}

func (e ArtifactError) Error() string {
	return fmt.Sprintf("artifact error for %s at stage %s: %v", e.Path, e.Stage, e.Err)
}

func (e ArtifactError) Unwrap() error {
	return e.Err
}

// InferenceError represents a model inference failure
type InferenceError struct {
	Stage string
	Err   error
}

func (e InferenceError) Error() string {
	return fmt.Sprintf("inference error at stage %s: %v", e.Stage, e.Err)
}

func (e InferenceError) Unwrap() error {
	return e.Err
}
