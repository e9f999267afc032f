package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProviderID = errors.New("invalid provider ID")
	ErrInvalidAPIHost    = errors.New("invalid API host")
	ErrMissingAPIKey     = errors.New("missing API key")

	ErrEmptyQuery       = errors.New("empty search query")
	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderTimeout  = errors.New("provider timeout")
	ErrInvalidResponse  = errors.New("invalid response from provider")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider ProviderID
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
