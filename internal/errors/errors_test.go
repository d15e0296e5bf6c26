package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindAPI, "api error"},
		{KindConfig, "configuration error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "api.Chat", Context: "some context", Err: errors.New("underlying error")},
			expected: "api.Chat: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "api.Chat", Err: errors.New("underlying error")},
			expected: "api.Chat: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_ContextOnlyBecomesError(t *testing.T) {
	err := E(Op("api.Chat"), KindAPI, "boom")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Context != "" {
		t.Errorf("context should be moved into Err, got %q", e.Context)
	}
	if e.Err.Error() != "boom" {
		t.Errorf("Err = %q, want %q", e.Err, "boom")
	}
	if err.Error() != "api.Chat: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsAndGetKind_ThroughWrapping(t *testing.T) {
	base := RequestFailed(Op("api.Chat"), "/api/chat", errors.New("connection refused"))
	wrapped := fmt.Errorf("sending message: %w", base)

	if !Is(wrapped, KindNetwork) {
		t.Error("wrapped error should still be KindNetwork")
	}
	if Is(wrapped, KindAPI) {
		t.Error("wrapped error should not be KindAPI")
	}
	if GetKind(wrapped) != KindNetwork {
		t.Errorf("GetKind = %v, want %v", GetKind(wrapped), KindNetwork)
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain errors should be KindUnknown")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		contains string
	}{
		{"request failed", RequestFailed("api.Collections", "/api/nft_collections", errors.New("eof")), KindNetwork, "request to /api/nft_collections failed"},
		{"unexpected status", UnexpectedStatus("api.Chat", "/api/chat", 502), KindAPI, "HTTP 502"},
		{"decode failed", DecodeFailed("api.Chat", "/api/chat", errors.New("bad json")), KindInvalid, "failed to decode"},
		{"application", Application("api.SimulateTransfer", "unknown collection"), KindAPI, "unknown collection"},
		{"config load", ConfigLoadFailed("/tmp/x.json", errors.New("eof")), KindConfig, "/tmp/x.json"},
		{"config save", ConfigSaveFailed("/tmp/x.json", errors.New("eof")), KindConfig, "failed to save"},
		{"config invalid", ConfigInvalid("api_url is empty"), KindInvalid, "api_url is empty"},
		{"catalog not found", CatalogNotFound("catalog.yaml"), KindNotFound, "catalog.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if GetKind(tt.err) != tt.kind {
				t.Errorf("kind = %v, want %v", GetKind(tt.err), tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
