package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		require.NoError(t, System("be helpful").Validate())
		require.NoError(t, Human("hello").Validate())
		require.NoError(t, AI("hi there").Validate())
		require.NoError(t, AI("", ToolCallRequest{ID: "c1", Name: "search_news"}).Validate())
		require.NoError(t, Tool("c1", "result").Validate())
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		m := Message{Role: Role("robot"), Content: "x"}
		assert.ErrorIs(t, m.Validate(), ErrUnknownRole)
	})

	t.Run("tool message requires call id", func(t *testing.T) {
		m := Message{Role: RoleTool, Content: "x"}
		assert.ErrorIs(t, m.Validate(), ErrMissingToolCallID)
	})

	t.Run("ai tool call requires id and name", func(t *testing.T) {
		m := AI("", ToolCallRequest{Name: "search_news"})
		assert.ErrorIs(t, m.Validate(), ErrInvalidToolCall)
	})

	t.Run("human message cannot carry tool fields", func(t *testing.T) {
		m := Message{Role: RoleHuman, Content: "x", ToolCallID: "c1"}
		assert.ErrorIs(t, m.Validate(), ErrUnexpectedToolFields)
	})
}

func TestMessage_HasToolCalls(t *testing.T) {
	assert.True(t, AI("", ToolCallRequest{ID: "c1", Name: "get_current_date"}).HasToolCalls())
	assert.False(t, AI("done").HasToolCalls())
	assert.False(t, Human("hello").HasToolCalls())
}

func TestValidateSequence(t *testing.T) {
	t.Run("tool answers earlier ai call", func(t *testing.T) {
		msgs := []Message{
			Human("find flights"),
			AI("", ToolCallRequest{ID: "c1", Name: "search_flights"}),
			Tool("c1", "flights [2] {...}"),
			AI("found two options"),
		}
		require.NoError(t, ValidateSequence(msgs))
	})

	t.Run("orphan tool message rejected", func(t *testing.T) {
		msgs := []Message{
			Human("find flights"),
			Tool("c9", "orphan"),
		}
		assert.ErrorIs(t, ValidateSequence(msgs), ErrUnansweredToolCall)
	})

	t.Run("answer from a prior turn is valid", func(t *testing.T) {
		msgs := []Message{
			Human("q1"),
			AI("", ToolCallRequest{ID: "c1", Name: "search_news"}),
			Tool("c1", "ok"),
			AI("a1"),
			Human("q2"),
			AI("", ToolCallRequest{ID: "c2", Name: "search_hotels"}),
			Tool("c2", "ok"),
		}
		require.NoError(t, ValidateSequence(msgs))
	})
}
