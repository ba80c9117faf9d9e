// Package checkpoint provides the core checkpoint domain entities and interfaces
// following Clean Architecture principles with zero external dependencies.
package checkpoint

import (
	"time"

	"github.com/tripflow/tripflow/internal/core/message"
)

// MessagesChannel is the primary channel carrying the conversation history.
const MessagesChannel = "messages"

// SchemaVersion is the current checkpoint wire format version.
const SchemaVersion = 1

// ChannelValues holds the named state slots of one conversation snapshot.
// The channel set is closed: messages is fully typed, anything else is
// stored string-coerced in Extra and is lossy by contract.
type ChannelValues struct {
	Messages []message.Message `json:"messages" msgpack:"messages"`
	Extra    map[string]string `json:"extra,omitempty" msgpack:"extra,omitempty"`
}

// Checkpoint represents one immutable snapshot of conversation state.
// Once written it is never updated or deleted; a thread is an append-only
// log of checkpoints and "latest" wins on (timestamp, write order).
// PRINCIPLES:
// - KISS: Simple struct with clear fields
// - SRP: Only responsible for checkpoint data structure
type Checkpoint struct {
	Version         int                         `json:"v" msgpack:"v"`
	ID              string                      `json:"id" msgpack:"id"`
	ParentID        string                      `json:"parent_id,omitempty" msgpack:"parent_id,omitempty"`
	ThreadID        string                      `json:"thread_id" msgpack:"thread_id"`
	Timestamp       time.Time                   `json:"ts" msgpack:"ts"`
	Channels        ChannelValues               `json:"channel_values" msgpack:"channel_values"`
	ChannelVersions map[string]int64            `json:"channel_versions" msgpack:"channel_versions"`
	VersionsSeen    map[string]map[string]int64 `json:"versions_seen" msgpack:"versions_seen"`
}

// Metadata contains additional information about a checkpoint.
type Metadata struct {
	Source string                 `json:"source"`
	Step   int                    `json:"step"`
	Writes map[string]interface{} `json:"writes,omitempty"`
}

// Validate ensures checkpoint integrity, including the message sequence
// invariant that every tool result answers a previously emitted call.
func (c *Checkpoint) Validate() error {
	if c.ID == "" {
		return ErrInvalidCheckpointID
	}
	if c.ThreadID == "" {
		return ErrInvalidThreadID
	}
	if c.Version <= 0 {
		return ErrInvalidVersion
	}
	return message.ValidateSequence(c.Channels.Messages)
}

// Next derives a successor snapshot carrying the given message history.
// The new checkpoint's parent is c, the messages channel version is bumped
// and recorded as seen. A nil receiver starts a fresh thread log.
func (c *Checkpoint) Next(id, threadID string, msgs []message.Message, now time.Time) *Checkpoint {
	next := &Checkpoint{
		Version:         SchemaVersion,
		ID:              id,
		ThreadID:        threadID,
		Timestamp:       now,
		Channels:        ChannelValues{Messages: msgs},
		ChannelVersions: map[string]int64{MessagesChannel: 1},
		VersionsSeen:    map[string]map[string]int64{},
	}
	if c != nil {
		next.ParentID = c.ID
		next.Channels.Extra = c.Channels.Extra
		next.ChannelVersions[MessagesChannel] = c.ChannelVersions[MessagesChannel] + 1
	}
	next.VersionsSeen[MessagesChannel] = map[string]int64{
		MessagesChannel: next.ChannelVersions[MessagesChannel],
	}
	return next
}

// Messages returns the conversation history held by the checkpoint.
func (c *Checkpoint) Messages() []message.Message {
	if c == nil {
		return nil
	}
	return c.Channels.Messages
}
