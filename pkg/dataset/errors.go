package dataset

import (
	"errors"
	"fmt"
)

// ErrDatasetUnavailable is returned when a backing artifact is missing and
// could not be extracted or downloaded.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// UnavailableError names the artifact that could not be materialized.
// It matches both ErrDatasetUnavailable and the underlying cause.
type UnavailableError struct {
	Artifact string
	Err      error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dataset unavailable: %s", e.Artifact)
	}
	return fmt.Sprintf("dataset unavailable: %s: %v", e.Artifact, e.Err)
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDatasetUnavailable}
	}
	return []error{ErrDatasetUnavailable, e.Err}
}

// errMemberNotFound reports an archive without the requested member.
var errMemberNotFound = errors.New("archive member not found")

// StatusError is returned by HTTPFetcher for non-200 responses.
type StatusError struct {
	URL    string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download %s: %s", e.URL, e.Status)
}
