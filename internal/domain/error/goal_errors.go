// Package error defines domain-specific errors for the goal agent.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when the requested goal is not in the supplied goal list.
	ErrGoalNotFound = errors.New("goal not found in provided goals")

	// ErrMissingGoalID is returned when a tracking request has no goal_id.
	ErrMissingGoalID = errors.New("goal_id required")

	// ErrMissingUserID is returned when a request has no user_id.
	ErrMissingUserID = errors.New("user_id required")

	// ErrUnknownAction is returned when the action is not recognised.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnsupportedAction is returned for actions that need a language model to produce their result.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrInvalidRequestBody is returned when the request body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound       GoalErrorCode = "GOL-010001"
	ErrCodeMissingGoalID      GoalErrorCode = "GOL-010002"
	ErrCodeMissingUserID      GoalErrorCode = "GOL-010003"
	ErrCodeUnknownAction      GoalErrorCode = "GOL-010004"
	ErrCodeUnsupportedAction  GoalErrorCode = "GOL-010005"
	ErrCodeInvalidRequestBody GoalErrorCode = "GOL-010006"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
