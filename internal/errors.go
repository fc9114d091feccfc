package internal

import (
	"errors"
	"fmt"
)

// Category markers shown in front of error messages
const (
	CategoryValidation = "validation error"
	CategoryFetch      = "fetch error"
	CategoryProvider   = "provider error"
)

// ValidationError reports missing or malformed user input
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// FetchError reports a failure to obtain content for a URL
type FetchError struct {
	Msg string
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ProviderFailure classifies why the completion provider failed
type ProviderFailure int

const (
	FailureUnknown ProviderFailure = iota
	FailureAuth
	FailureRateLimit
	FailureContextLength
	FailureEmpty
)

func (f ProviderFailure) String() string {
	switch f {
	case FailureAuth:
		return "authentication failed"
	case FailureRateLimit:
		return "rate limited"
	case FailureContextLength:
		return "content too long for model"
	case FailureEmpty:
		return "empty response"
	default:
		return "request failed"
	}
}

// SummarizationError reports a failure of the completion provider
type SummarizationError struct {
	Failure ProviderFailure
	Err     error
}

func (e *SummarizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Failure, e.Err)
	}
	return e.Failure.String()
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// Category returns the marker used to label err in the UI
func Category(err error) string {
	var (
		validationErr *ValidationError
		fetchErr      *FetchError
		summaryErr    *SummarizationError
	)
	switch {
	case errors.As(err, &validationErr):
		return CategoryValidation
	case errors.As(err, &fetchErr):
		return CategoryFetch
	case errors.As(err, &summaryErr):
		return CategoryProvider
	default:
		return "error"
	}
}

// Describe formats err with its category marker
func Describe(err error) string {
	return fmt.Sprintf("%s: %v", Category(err), err)
}
