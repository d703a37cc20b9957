package engine

import (
	"errors"
	"fmt"
)

// Every error defined here is absorbed at the task boundary and downgraded
// to a soft-failure ExtractionResult. Nothing crosses into the coordinator.

var (
	// ErrTranscriptUnavailable means a strategy ran but found no transcript.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	// ErrNoCaptionTracks means the player response carries no caption list.
	ErrNoCaptionTracks = errors.New("no caption tracks")
)

// ResolutionError reports an input string with no extractable video id.
// The input is dropped from the worklist; the batch continues.
type ResolutionError struct {
	Raw    string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %s", e.Raw, e.Reason)
}

// FetchErrorKind distinguishes connection-level failures from upstream refusals.
type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota
	FetchHTTPStatus
	FetchTimeout
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchHTTPStatus:
		return "status"
	case FetchTimeout:
		return "timeout"
	default:
		return "network"
	}
}

// FetchError wraps a failed page or caption-payload fetch.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Status int // set for FetchHTTPStatus
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchHTTPStatus {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports malformed or absent embedded page data. It triggers
// the next strategy or the final soft failure, never the batch.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse: " + e.What + " not found"
	}
	return fmt.Sprintf("parse %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
