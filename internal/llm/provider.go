package llm

import (
	"context"
	"strings"
)

// Provider completes a conversation with a single model.
type Provider interface {
	// Complete sends the conversation to the model and returns its reply.
	// A reply with no text is reported as *ErrEmptyResponse.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the assistant persona and its constraints.
	System string

	// Messages is the conversation, oldest first. The last message is the
	// one being answered.
	Messages []Message

	// MaxTokens caps the reply length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole maps a stored role string onto a Role. Anything that is not an
// assistant turn is treated as the user.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assistant", "model":
		return RoleAssistant
	default:
		return RoleUser
	}
}

// Response holds the model's reply.
type Response struct {
	Text  string
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func defaultMaxTokens(n int) int {
	if n <= 0 {
		return 1024
	}
	return n
}
