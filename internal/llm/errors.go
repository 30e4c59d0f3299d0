package llm

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned when the preferred provider is unavailable and fallback is disabled
var ErrNoProvider = errors.New("no usable AI provider")

// ProviderError represents a failed provider operation
type ProviderError struct {
	Provider  string
	Operation string
	Cause     error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s %s failed", e.Provider, e.Operation)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
