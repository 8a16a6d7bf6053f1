package gemini

import (
	"context"
	"errors"
	"fmt"
)

// Client sends one prompt upstream and returns the text of the first part of
// the first candidate.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Kind int

const (
	NetworkFailure Kind = iota + 1
	UpstreamStatusError
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case UpstreamStatusError:
		return "upstream_status_error"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

var (
	ErrMissingCandidates = errors.New("no candidate in response")
	ErrMissingContent    = errors.New("no content in the first candidate")
	ErrMissingParts      = errors.New("no part in the first candidate")
	ErrMissingText       = errors.New("no text in the first part")
)

// Error is returned by every Client for a failed call.
type Error struct {
	Kind Kind
	// Status is only set for UpstreamStatusError: the HTTP status for
	// RESTClient, the gRPC code for SDKClient.
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UpstreamStatusError:
		return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Err)
	case MalformedResponse:
		return fmt.Sprintf("malformed upstream response: %s", e.Err)
	default:
		return fmt.Sprintf("upstream request failed: %s", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
