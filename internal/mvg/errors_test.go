package mvg

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"canceled", context.Canceled, ErrTypeCanceled, false},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), ErrTypeTimeout, true},
		{"timeout", timeoutErr{}, ErrTypeTimeout, true},
		{"dns", &net.DNSError{Name: "www.mvg.de", Err: "no such host"}, ErrTypeDNS, false},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, ErrTypeConnectionRefused, true},
		{"other", errors.New("connection reset"), ErrTypeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err, "/api/test")
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.retryable)
			}
		})
	}

	if ClassifyNetworkError(nil, "/") != nil {
		t.Error("ClassifyNetworkError(nil) should return nil")
	}
}

func TestNewHTTPErrorRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		err := NewHTTPError(tt.status, "/x", "msg")
		if err.Retryable != tt.want {
			t.Errorf("NewHTTPError(%d).Retryable = %v, want %v", tt.status, err.Retryable, tt.want)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	netErr := NewNetworkError("GET failed", "/x", errors.New("reset"))
	httpErr := NewHTTPError(502, "/x", "bad gateway")
	parseErr := NewParseError("bad json", "/x", errors.New("eof"))
	wrapped := fmt.Errorf("fetch: %w", httpErr)

	if !IsNetworkError(netErr) || IsNetworkError(httpErr) {
		t.Error("IsNetworkError() misclassified")
	}
	if !IsHTTPError(wrapped) {
		t.Error("IsHTTPError() should see through wrapping")
	}
	if !IsParseError(parseErr) || IsParseError(netErr) {
		t.Error("IsParseError() misclassified")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors should not be retryable")
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewNetworkError("GET failed", "/x", errors.New("reset"))
	if !strings.Contains(err.Error(), "GET failed") || !strings.Contains(err.Error(), "reset") {
		t.Errorf("Error() = %q, want message and cause", err.Error())
	}

	if got := ShortMessage(NewHTTPError(503, "/x", "down")); got != "MVG error (HTTP 503)" {
		t.Errorf("ShortMessage() = %q", got)
	}
	if got := ShortMessage(errors.New("plain")); got != "plain" {
		t.Errorf("ShortMessage(plain) = %q, want plain", got)
	}
	if hint := TroubleshootingHint(NewHTTPError(503, "/x", "down")); !strings.Contains(hint, "Try again later") {
		t.Errorf("TroubleshootingHint() = %q", hint)
	}
	if hint := TroubleshootingHint(ClassifyNetworkError(timeoutErr{}, "/x")); !strings.Contains(hint, "request_timeout") {
		t.Errorf("TroubleshootingHint(timeout) = %q", hint)
	}
}

func TestCanceledErrorNeverRetried(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		short string
	}{
		{"canceled", context.Canceled, "Request canceled"},
		{"caller deadline", context.DeadlineExceeded, "Search took too long (request timeout)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCanceledError("/x", tt.cause)
			if err.Type != ErrTypeCanceled {
				t.Errorf("Type = %v, want %v", err.Type, ErrTypeCanceled)
			}
			if IsRetryable(err) {
				t.Error("canceled requests should not be retried")
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("errors.Is(%v) = false", tt.cause)
			}
			if got := ShortMessage(err); got != tt.short {
				t.Errorf("ShortMessage() = %q, want %q", got, tt.short)
			}
		})
	}
}
