package ingestion

import "fmt"

// FormatError represents an input filename that does not follow the YYYYMMDD_identifier.ext scheme.
// It stops the pipeline because the output directory name cannot be derived.
type FormatError struct {
	File    string
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid filename %q: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid filename %q: %s", e.File, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
