package imagegen

import (
	"errors"
	"fmt"
	"net/url"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
	}{
		{
			name:     "500 status text is transient",
			err:      errors.New("error, status code: 500, message: internal error"),
			wantKind: ErrorTransient,
		},
		{
			name:     "503 status text is transient",
			err:      errors.New("error, status code: 503, message: try again"),
			wantKind: ErrorTransient,
		},
		{
			name:     "server overloaded is transient",
			err:      errors.New("the model is currently overloaded"),
			wantKind: ErrorTransient,
		},
		{
			name:     "400 status text is terminal",
			err:      errors.New("error, status code: 400, message: invalid prompt"),
			wantKind: ErrorTerminal,
		},
		{
			name:     "content policy rejection is terminal",
			err:      errors.New("your request was rejected by the safety system"),
			wantKind: ErrorTerminal,
		},
		{
			name:     "url error is transport",
			err:      &url.Error{Op: "Post", URL: "https://api.example.com", Err: errors.New("connection refused")},
			wantKind: ErrorTransport,
		},
		{
			name:     "already classified passes through",
			err:      &GenerationError{Kind: ErrorTransport, Message: "dial tcp: timeout"},
			wantKind: ErrorTransport,
		},
		{
			name:     "wrapped classified error passes through",
			err:      fmt.Errorf("generate: %w", &GenerationError{Kind: ErrorTransient, Message: "status code: 502"}),
			wantKind: ErrorTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got == nil {
				t.Fatal("Classify() = nil for non-nil error")
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Classify() kind = %s, want %s", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want bool
	}{
		{kind: ErrorTransient, want: true},
		{kind: ErrorTransport, want: true},
		{kind: ErrorTerminal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			genErr := &GenerationError{Kind: tt.kind, Message: "x"}
			if genErr.Retryable() != tt.want {
				t.Errorf("Retryable() = %v, want %v", genErr.Retryable(), tt.want)
			}
		})
	}
}

func TestIsTransientMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want bool
	}{
		{name: "bare 500 marker", msg: "status code: 500", want: true},
		{name: "uppercase variant", msg: "Internal Server Error", want: true},
		{name: "service unavailable", msg: "503 Service Unavailable", want: true},
		{name: "plain 500 in id is not a match", msg: "item 500 not found", want: false},
		{name: "client error", msg: "status code: 404, message: not found", want: false},
		{name: "empty", msg: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransientMessage(tt.msg); got != tt.want {
				t.Errorf("IsTransientMessage(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestAsGenerationError(t *testing.T) {
	inner := &GenerationError{Kind: ErrorTransient, Message: "status code: 502"}
	wrapped := fmt.Errorf("item 7: %w", inner)

	got, ok := AsGenerationError(wrapped)
	if !ok {
		t.Fatal("AsGenerationError() did not find wrapped error")
	}
	if got != inner {
		t.Error("AsGenerationError() returned a different error value")
	}

	if _, ok := AsGenerationError(errors.New("plain")); ok {
		t.Error("AsGenerationError() matched a plain error")
	}
}
