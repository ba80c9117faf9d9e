// Package openai adapts the OpenAI chat completions API to the agent's
// reasoning-provider contract.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/tripflow/tripflow/internal/app/tools"
	"github.com/tripflow/tripflow/internal/core/message"
)

// Config holds the reasoning provider settings.
type Config struct {
	APIKey         string
	BaseURL        string // optional, for proxies and compatible providers
	Model          string
	Temperature    float32
	RequestTimeout time.Duration
}

// defaultModel matches the original deployment's chat model family.
const defaultModel = "gpt-4o-mini"

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 60 * time.Second
	}
	return c
}

// Reasoner implements the agent's reasoning step over chat completions
// with function tools.
type Reasoner struct {
	client *openai.Client
	cfg    Config
	log    zerolog.Logger
}

// NewReasoner creates a reasoner over the OpenAI API.
func NewReasoner(cfg Config, log zerolog.Logger) *Reasoner {
	cfg = cfg.withDefaults()
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Reasoner{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		log:    log,
	}
}

// Reason sends the message history and tool descriptors to the model and
// maps the reply back to a single ai message: terminal content or one or
// more tool call requests. Any provider failure is returned as-is; the
// caller decides run-level handling.
func (r *Reasoner) Reason(ctx context.Context, history []message.Message, toolSpecs []tools.Descriptor) (message.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.cfg.Model,
		Messages:    toChatMessages(history),
		Tools:       toTools(toolSpecs),
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return message.Message{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return message.Message{}, fmt.Errorf("chat completion: no choices returned")
	}

	reply, err := fromChoice(resp.Choices[0])
	if err != nil {
		return message.Message{}, err
	}

	r.log.Debug().
		Str("model", resp.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Int("tool_calls", len(reply.ToolCalls)).
		Msg("reasoning step complete")
	return reply, nil
}

// toChatMessages maps the closed role set to wire roles. The switch is
// exhaustive: an unknown role is a programming error upstream and is
// mapped to user to keep the request well-formed.
func toChatMessages(history []message.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		cm := openai.ChatCompletionMessage{Content: m.Content}
		switch m.Role {
		case message.RoleSystem:
			cm.Role = openai.ChatMessageRoleSystem
		case message.RoleHuman:
			cm.Role = openai.ChatMessageRoleUser
		case message.RoleAI:
			cm.Role = openai.ChatMessageRoleAssistant
			for _, tc := range m.ToolCalls {
				args, _ := json.Marshal(tc.Args)
				cm.ToolCalls = append(cm.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(args),
					},
				})
			}
		case message.RoleTool:
			cm.Role = openai.ChatMessageRoleTool
			cm.ToolCallID = m.ToolCallID
		default:
			cm.Role = openai.ChatMessageRoleUser
		}
		out = append(out, cm)
	}
	return out
}

func toTools(specs []tools.Descriptor) []openai.Tool {
	out := make([]openai.Tool, 0, len(specs))
	for _, spec := range specs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return out
}

// fromChoice converts the model's reply into an ai message. Malformed
// tool call arguments are a provider error, not a tool error: the run
// must abort rather than dispatch garbage.
func fromChoice(choice openai.ChatCompletionChoice) (message.Message, error) {
	if len(choice.Message.ToolCalls) == 0 {
		return message.AI(choice.Message.Content), nil
	}

	calls := make([]message.ToolCallRequest, 0, len(choice.Message.ToolCalls))
	for _, tc := range choice.Message.ToolCalls {
		args := map[string]interface{}{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return message.Message{}, fmt.Errorf("malformed arguments for tool %s: %w", tc.Function.Name, err)
			}
		}
		calls = append(calls, message.ToolCallRequest{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return message.AI(choice.Message.Content, calls...), nil
}
