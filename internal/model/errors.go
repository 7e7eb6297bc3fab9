package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure for user messaging and logging
type ErrorKind string

const (
	// ErrorKindUnsupportedSource means the URL matched no known platform
	ErrorKindUnsupportedSource ErrorKind = "UnsupportedSource"

	// ErrorKindSelectionExpired means a choice event arrived with no pending state
	ErrorKindSelectionExpired ErrorKind = "SelectionExpired"

	// ErrorKindUnsupportedURL means the engine rejected the URL outright
	ErrorKindUnsupportedURL ErrorKind = "UnsupportedURL"

	// ErrorKindExtractionFailed means the engine could not extract media info
	ErrorKindExtractionFailed ErrorKind = "ExtractionFailed"

	// ErrorKindSourceUnavailable means the media exists but cannot be fetched
	ErrorKindSourceUnavailable ErrorKind = "SourceUnavailable"

	// ErrorKindEngine is the catch-all for other acquisition failures
	ErrorKindEngine ErrorKind = "Engine"

	// ErrorKindFileNotFound means the locator exhausted every fallback
	ErrorKindFileNotFound ErrorKind = "FileNotFound"

	// ErrorKindFileTooLarge means the file exceeds the transport upload limit
	ErrorKindFileTooLarge ErrorKind = "FileTooLarge"

	// ErrorKindUploadTimeout means the delivery upload timed out
	ErrorKindUploadTimeout ErrorKind = "UploadTimeout"

	// ErrorKindSendFailed is the catch-all for other delivery failures
	ErrorKindSendFailed ErrorKind = "SendFailed"

	// ErrorKindUnexpected covers anything uncategorized
	ErrorKindUnexpected ErrorKind = "Unexpected"
)

// String returns the string representation of ErrorKind
func (ek ErrorKind) String() string {
	return string(ek)
}

// PipelineError attaches an ErrorKind to an underlying failure so the
// boundary can map it to one short user-facing message while the full detail
// goes to the log.
type PipelineError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// WrapError classifies err under the given kind
func WrapError(kind ErrorKind, err error) error {
	return &PipelineError{Kind: kind, Err: err}
}

// KindOf extracts the classification from err, or ErrorKindUnexpected for
// anything unclassified
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrorKindUnexpected
}
