package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("cohere", "command-r"); err == nil {
		t.Error("New(\"cohere\") should return an error")
	}
}

func TestNewRequiresCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New("openai", "gpt-4o-mini"); err == nil {
		t.Error("New(\"openai\") without OPENAI_API_KEY should return an error")
	} else if !IsAuthError(err) {
		t.Errorf("missing OPENAI_API_KEY should be an auth error, got %v", err)
	}

	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := New("anthropic", "claude-sonnet-4-20250514"); err == nil {
		t.Error("New(\"anthropic\") without ANTHROPIC_API_KEY should return an error")
	} else if !IsAuthError(err) {
		t.Errorf("missing ANTHROPIC_API_KEY should be an auth error, got %v", err)
	}
}

func TestOpenAIClassify(t *testing.T) {
	o := &OpenAI{model: "gpt-4o-mini"}

	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorized", 401, IsAuthError},
		{"forbidden", 403, IsAuthError},
		{"rate limited", 429, IsRateLimitError},
		{"server error", 500, isTransient},
		{"bad gateway", 502, isTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := o.classify(&openai.Error{StatusCode: tt.status})
			if !tt.check(err) {
				t.Errorf("classify(status %d) = %v, wrong type", tt.status, err)
			}
		})
	}
}

func TestOpenAIClassifyTimeout(t *testing.T) {
	o := &OpenAI{model: "gpt-4o-mini"}
	err := o.classify(fmt.Errorf("request: %w", context.DeadlineExceeded))
	if !IsTimeoutError(err) {
		t.Errorf("classify(deadline exceeded) = %v, want TimeoutError", err)
	}
}

func TestAnthropicClassify(t *testing.T) {
	a := &Anthropic{model: "claude-sonnet-4-20250514"}

	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorized", 401, IsAuthError},
		{"rate limited", 429, IsRateLimitError},
		{"overloaded", 529, isTransient},
		{"server error", 500, isTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// anthropic.Error's Error() method dereferences Request and
			// Response, so the fixture must populate them.
			err := a.classify(&anthropic.Error{
				StatusCode: tt.status,
				Request:    httptest.NewRequest(http.MethodPost, "/v1/messages", nil),
				Response:   &http.Response{StatusCode: tt.status},
			})
			if !tt.check(err) {
				t.Errorf("classify(status %d) = %v, wrong type", tt.status, err)
			}
		})
	}
}

func TestRetryTransientRetriesRateLimits(t *testing.T) {
	calls := 0
	err := retryTransient(context.Background(), func() error {
		calls++
		if calls < 2 {
			return &RateLimitError{Provider: "openai"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retryTransient: %v", err)
	}
	if calls != 2 {
		t.Errorf("fn called %d times, want 2", calls)
	}
}

func TestRetryTransientDoesNotRetryAuthErrors(t *testing.T) {
	calls := 0
	err := retryTransient(context.Background(), func() error {
		calls++
		return &AuthError{Provider: "openai", Message: "bad key"}
	})
	if !IsAuthError(err) {
		t.Errorf("retryTransient error = %v, want AuthError", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 (auth errors must not retry)", calls)
	}
}

func TestRetryTransientSurfacesExhaustedRateLimit(t *testing.T) {
	err := retryTransient(context.Background(), func() error {
		return &RateLimitError{Provider: "anthropic"}
	})
	if !IsRateLimitError(err) {
		t.Errorf("retryTransient error = %v, want RateLimitError after exhaustion", err)
	}
}

func TestErrorTypePredicates(t *testing.T) {
	wrapped := fmt.Errorf("pipeline: %w", &TimeoutError{Provider: "openai"})
	if !IsTimeoutError(wrapped) {
		t.Error("IsTimeoutError should see through wrapping")
	}
	if IsAuthError(wrapped) || IsRateLimitError(wrapped) || IsModelError(wrapped) {
		t.Error("predicates should not match other types")
	}
	if IsTimeoutError(errors.New("plain")) {
		t.Error("IsTimeoutError should reject plain errors")
	}
}
