// Package imagegen adapts remote generative image APIs behind a small
// Provider interface.
//
// The adapter decides once how a response or failure is classified; callers
// never re-inspect provider-specific response shapes or error types.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Request is the payload sent to a provider: the prompt text plus optional
// structured hints.
type Request struct {
	// Prompt is the full generation prompt.
	Prompt string

	// Resolution is an optional size hint, e.g. "1024x1024".
	Resolution string
}

// Artifact is one generated image.
type Artifact struct {
	Data   []byte
	Format string // "png", "jpeg", ...
}

// Result is the tagged outcome of a successful generation call: one or more
// image artifacts, optionally accompanied by text from the model.
type Result struct {
	Artifacts []Artifact
	Text      string
}

// Provider is the interface for image generation backends.
//
// Generate blocks for the duration of the remote call (typically seconds).
// Failures are returned as *GenerationError with the retry classification
// already decided.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// ErrorKind classifies a generation failure for the retry policy.
type ErrorKind int

const (
	// ErrorTerminal is a client-side or validation failure. Retrying the
	// same request will not help.
	ErrorTerminal ErrorKind = iota

	// ErrorTransient is a server-side (5xx) failure, likely temporary.
	ErrorTransient

	// ErrorTransport is a raised connection or protocol fault. Retried like
	// transient, but recorded separately so operators can tell network
	// flakiness from API-reported errors.
	ErrorTransport
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorTransient:
		return "transient"
	case ErrorTransport:
		return "transport"
	default:
		return "terminal"
	}
}

// GenerationError is a classified generation failure.
type GenerationError struct {
	Kind    ErrorKind
	Message string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("imagegen: %s error: %s", e.Kind, e.Message)
}

// Retryable reports whether the retry policy may attempt this request again.
func (e *GenerationError) Retryable() bool {
	return e.Kind == ErrorTransient || e.Kind == ErrorTransport
}

// AsGenerationError extracts a *GenerationError from an error chain.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// transientMarkers are error-text fragments indicating a server-side fault.
var transientMarkers = []string{
	"status code: 500",
	"status code: 502",
	"status code: 503",
	"status code: 504",
	"internal server error",
	"server_error",
	"service unavailable",
	"overloaded",
}

// IsTransientMessage reports whether error text carries a 5xx-style marker.
// This is the fallback classification for providers that only expose text.
func IsTransientMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range transientMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Classify converts an arbitrary error into a *GenerationError. Errors that
// are already classified pass through unchanged; connection-level faults
// become transport errors; everything else is classified by message text.
func Classify(err error) *GenerationError {
	if err == nil {
		return nil
	}
	if genErr, ok := AsGenerationError(err); ok {
		return genErr
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &GenerationError{Kind: ErrorTransport, Message: err.Error()}
	}

	if IsTransientMessage(err.Error()) {
		return &GenerationError{Kind: ErrorTransient, Message: err.Error()}
	}
	return &GenerationError{Kind: ErrorTerminal, Message: err.Error()}
}
