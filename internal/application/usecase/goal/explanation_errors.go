package goal

import (
	"context"
	"errors"
	"strings"
)

// Failure codes for the explanation collaborator. They only appear in logs.
const (
	ErrCodeExplanationUnavailable = "EXPLANATION_UNAVAILABLE"
	ErrCodeExplanationRateLimited = "EXPLANATION_RATE_LIMITED"
	ErrCodeExplanationAuthError   = "EXPLANATION_AUTH_ERROR"
	ErrCodeExplanationTimeout     = "EXPLANATION_TIMEOUT"
	ErrCodeExplanationEmpty       = "EXPLANATION_EMPTY"
	ErrCodeExplanationUnknown     = "EXPLANATION_UNKNOWN_ERROR"
)

// ExplanationFailure describes why an explanation could not be produced.
type ExplanationFailure struct {
	Code      string
	Retryable bool
}

// classifyExplanationError maps a collaborator error to a failure code and retryable flag.
func classifyExplanationError(err error) ExplanationFailure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ExplanationFailure{Code: ErrCodeExplanationTimeout, Retryable: true}
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case containsAny(errStr, "rate limit", "quota", "429", "resource exhausted"):
		return ExplanationFailure{Code: ErrCodeExplanationRateLimited, Retryable: true}
	case containsAny(errStr, "401", "403", "invalid api key", "unauthorized", "authentication", "not configured"):
		return ExplanationFailure{Code: ErrCodeExplanationAuthError, Retryable: false}
	case containsAny(errStr, "connection", "network", "dial", "timeout", "unavailable", "503"):
		return ExplanationFailure{Code: ErrCodeExplanationUnavailable, Retryable: true}
	case containsAny(errStr, "empty response", "no text content"):
		return ExplanationFailure{Code: ErrCodeExplanationEmpty, Retryable: true}
	default:
		return ExplanationFailure{Code: ErrCodeExplanationUnknown, Retryable: true}
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
