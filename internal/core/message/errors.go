// Package message defines domain-specific errors
package message

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	ErrUnknownRole          = errors.New("unknown message role")
	ErrInvalidToolCall      = errors.New("tool call requires id and name")
	ErrMissingToolCallID    = errors.New("tool message requires a tool call id")
	ErrUnexpectedToolFields = errors.New("tool fields are only valid on ai and tool messages")
	ErrUnansweredToolCall   = errors.New("tool message answers an unknown tool call id")
)
