// Package message provides the core conversation message entities
// following Clean Architecture principles with zero external dependencies.
package message

// Role identifies the author of a message. The set is closed: every
// serialization boundary must handle all four values exhaustively.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
	RoleAI     Role = "ai"
	RoleTool   Role = "tool"
)

// ToolCallRequest is a structured action request emitted by the reasoning
// step. The ID links the eventual tool result back to this request.
type ToolCallRequest struct {
	ID   string                 `json:"id" msgpack:"id"`
	Name string                 `json:"name" msgpack:"name"`
	Args map[string]interface{} `json:"args" msgpack:"args"`
}

// Message is a tagged variant over the four conversation roles.
// PRINCIPLES:
// - KISS: Single struct with a role tag instead of an interface hierarchy
// - SRP: Only responsible for message data structure
//
// ToolCalls is populated only for RoleAI; ToolCallID only for RoleTool.
type Message struct {
	Role      Role              `json:"role" msgpack:"role"`
	Content   string            `json:"content" msgpack:"content"`
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty" msgpack:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty" msgpack:"tool_call_id,omitempty"`
}

// System builds a system instruction message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Human builds a user message.
func Human(content string) Message {
	return Message{Role: RoleHuman, Content: content}
}

// AI builds an assistant message with optional outgoing tool calls.
func AI(content string, toolCalls ...ToolCallRequest) Message {
	return Message{Role: RoleAI, Content: content, ToolCalls: toolCalls}
}

// Tool builds a tool result message answering the given call ID.
func Tool(toolCallID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// HasToolCalls reports whether the message carries outgoing tool calls.
// Only an ai message can request tool execution.
func (m Message) HasToolCalls() bool {
	return m.Role == RoleAI && len(m.ToolCalls) > 0
}

// Validate ensures message integrity against the closed role set.
func (m Message) Validate() error {
	switch m.Role {
	case RoleSystem, RoleHuman:
		if len(m.ToolCalls) > 0 || m.ToolCallID != "" {
			return ErrUnexpectedToolFields
		}
	case RoleAI:
		for _, tc := range m.ToolCalls {
			if tc.ID == "" || tc.Name == "" {
				return ErrInvalidToolCall
			}
		}
	case RoleTool:
		if m.ToolCallID == "" {
			return ErrMissingToolCallID
		}
	default:
		return ErrUnknownRole
	}
	return nil
}

// ValidateSequence checks the cross-message invariant that every tool
// message answers a tool call emitted by an earlier ai message.
func ValidateSequence(msgs []Message) error {
	seen := make(map[string]bool)
	for _, m := range msgs {
		if err := m.Validate(); err != nil {
			return err
		}
		switch m.Role {
		case RoleAI:
			for _, tc := range m.ToolCalls {
				seen[tc.ID] = true
			}
		case RoleTool:
			if !seen[m.ToolCallID] {
				return ErrUnansweredToolCall
			}
		}
	}
	return nil
}
