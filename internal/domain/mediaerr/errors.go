// Package mediaerr defines the error taxonomy of the ingestion pipeline.
// Callers branch on these with errors.Is / errors.As; the per-kind split
// matters because the remediation differs for each.
package mediaerr

import (
	"errors"
	"fmt"
)

// ValidationKind discriminates the reasons a file can be rejected before
// any expensive work starts.
type ValidationKind string

const (
	TooLarge         ValidationKind = "too_large"
	UnsupportedType  ValidationKind = "unsupported_type"
	DurationExceeded ValidationKind = "duration_exceeded"
)

// ValidationError is always recoverable: the caller rejects this file and
// continues the batch.
type ValidationError struct {
	Kind     ValidationKind
	FileName string
	Detail   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.FileName, e.Detail, e.Kind)
}

func NewValidation(kind ValidationKind, fileName, detail string) *ValidationError {
	return &ValidationError{Kind: kind, FileName: fileName, Detail: detail}
}

// RemoteUploadError reports an upload that failed after the retry budget
// was exhausted, with enough context for diagnostics.
type RemoteUploadError struct {
	FileName string
	FileSize int64
	FileType string
	Attempts int
	Err      error
}

func (e *RemoteUploadError) Error() string {
	return fmt.Sprintf("remote upload failed after %d attempts: %s (%d bytes, %s): %v",
		e.Attempts, e.FileName, e.FileSize, e.FileType, e.Err)
}

func (e *RemoteUploadError) Unwrap() error {
	return e.Err
}

var (
	// ErrLocalStorageFull means the device quota is exhausted; the user can
	// act on it by freeing space. Never retried.
	ErrLocalStorageFull = errors.New("device storage is full, free up some space and try again")

	// ErrLocalStorageBlocked covers every other local-store failure; the user
	// should check storage availability or permissions. Never retried.
	ErrLocalStorageBlocked = errors.New("device storage is unavailable, check your storage settings")

	// ErrBlobNotFound is returned by blob store lookups for unknown keys.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrMediaNotFound is returned by collection operations for unknown media IDs.
	ErrMediaNotFound = errors.New("media item not found")

	// ErrInvariantViolation is rejected synchronously before any mutation,
	// e.g. promoting a video to cover image.
	ErrInvariantViolation = errors.New("collection invariant violation")
)
