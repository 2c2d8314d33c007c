package goal

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyExplanationError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode string
		expectRetry  bool
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, expectedCode: ErrCodeExplanationTimeout, expectRetry: true},
		{name: "wrapped cancellation", err: fmt.Errorf("generate: %w", context.Canceled), expectedCode: ErrCodeExplanationTimeout, expectRetry: true},
		{name: "quota", err: errors.New("quota exceeded"), expectedCode: ErrCodeExplanationRateLimited, expectRetry: true},
		{name: "resource exhausted", err: errors.New("rpc error: code = ResourceExhausted desc = resource exhausted"), expectedCode: ErrCodeExplanationRateLimited, expectRetry: true},
		{name: "bad key", err: errors.New("invalid api key"), expectedCode: ErrCodeExplanationAuthError, expectRetry: false},
		{name: "not configured", err: errors.New("gemini service is not configured"), expectedCode: ErrCodeExplanationAuthError, expectRetry: false},
		{name: "dial", err: errors.New("dial tcp: connection refused"), expectedCode: ErrCodeExplanationUnavailable, expectRetry: true},
		{name: "503", err: errors.New("HTTP 503"), expectedCode: ErrCodeExplanationUnavailable, expectRetry: true},
		{name: "empty", err: errors.New("empty response from gemini"), expectedCode: ErrCodeExplanationEmpty, expectRetry: true},
		{name: "unknown", err: errors.New("something unexpected happened"), expectedCode: ErrCodeExplanationUnknown, expectRetry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := classifyExplanationError(tt.err)

			if failure.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, failure.Code)
			}
			if failure.Retryable != tt.expectRetry {
				t.Errorf("expected retryable %v, got %v", tt.expectRetry, failure.Retryable)
			}
		})
	}
}
