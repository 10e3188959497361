package state

import (
	"errors"
	"fmt"
)

// ActionError reports a dispatch that was refused before reaching the
// reducer. Refusals are usage-contract violations by the caller; the
// snapshot is never changed.
type ActionError struct {
	// Code identifies the error category.
	Code ActionErrorCode

	// Action is the action name, when known.
	Action string

	// Field is the offending payload field, if any.
	Field string

	// Message is a human-readable description.
	Message string
}

// ActionErrorCode categorizes action errors.
type ActionErrorCode string

const (
	// ErrCodeInvalidAction indicates a payload with an invalid enum or sign.
	ErrCodeInvalidAction ActionErrorCode = "INVALID_ACTION"

	// ErrCodeUnknownAction indicates DecodeAction was given an unknown name.
	ErrCodeUnknownAction ActionErrorCode = "UNKNOWN_ACTION"

	// ErrCodeMalformedPayload indicates DecodeAction could not parse the payload.
	ErrCodeMalformedPayload ActionErrorCode = "MALFORMED_PAYLOAD"
)

// Error implements the error interface.
func (e *ActionError) Error() string {
	if e.Action != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s (action=%s, field=%s)", e.Code, e.Message, e.Action, e.Field)
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s (action=%s)", e.Code, e.Message, e.Action)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidAction reports whether err is an INVALID_ACTION refusal.
// Uses errors.As to handle wrapped errors.
func IsInvalidAction(err error) bool {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeInvalidAction
	}
	return false
}

// IsUnknownAction reports whether err is an UNKNOWN_ACTION decode failure.
func IsUnknownAction(err error) bool {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeUnknownAction
	}
	return false
}

func invalidAction(act Action, field, message string) *ActionError {
	return &ActionError{
		Code:    ErrCodeInvalidAction,
		Action:  act.Name(),
		Field:   field,
		Message: message,
	}
}
