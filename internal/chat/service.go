// Package chat answers user questions with a text-completion provider
// grounded in the knowledge base, and keeps the per-user transcript.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/cogniwise/cogniwise/internal/apperr"
	"github.com/cogniwise/cogniwise/internal/llm"
	"github.com/cogniwise/cogniwise/internal/store"
)

// HistoryLimit is the number of stored messages returned and replayed.
const HistoryLimit = 50

// MaxMessageLen caps a single user message.
const MaxMessageLen = 10000

// ErrNotConfigured is returned by Send when no provider is available.
var ErrNotConfigured = errors.New("AI provider is not configured")

var tracer = otel.Tracer("github.com/cogniwise/cogniwise/internal/chat")

// Turn is one client-supplied history entry.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SendRequest is a chat message from a user. History, when present,
// replaces the stored transcript as conversation context.
type SendRequest struct {
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	History   []Turn `json:"history"`
	Condition string `json:"condition_type,omitempty"`
	AgeGroup  string `json:"age_group,omitempty"`
}

// Service persists the transcript and calls the provider.
type Service struct {
	repo     store.ChatRepo
	provider llm.Provider
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a chat service. A nil provider makes Send fail with
// ErrNotConfigured while History keeps working.
func NewService(repo store.ChatRepo, provider llm.Provider, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, provider: provider, log: log, now: time.Now}
}

// History returns the last HistoryLimit messages for userID, oldest first.
// An empty userID yields an empty transcript.
func (s *Service) History(ctx context.Context, userID string) ([]store.ChatMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return []store.ChatMessage{}, nil
	}
	msgs, err := s.repo.History(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, apperr.Persistence("load chat history", err)
	}
	if msgs == nil {
		msgs = []store.ChatMessage{}
	}
	return msgs, nil
}

// Send stores the user message, asks the provider for a reply and stores
// the reply. The user message stays stored when the provider fails.
func (s *Service) Send(ctx context.Context, req SendRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "chat.Send")
	defer span.End()

	userID := strings.TrimSpace(req.UserID)
	message := strings.TrimSpace(req.Message)
	if userID == "" {
		return "", apperr.Missing("user_id")
	}
	if message == "" {
		return "", apperr.Missing("message")
	}
	if len(message) > MaxMessageLen {
		return "", apperr.Invalid("message", fmt.Errorf("longer than %d bytes", MaxMessageLen))
	}
	if s.provider == nil {
		return "", ErrNotConfigured
	}

	var history []llm.Message
	if len(req.History) > 0 {
		history = fromTurns(req.History)
	} else {
		stored, err := s.repo.History(ctx, userID, HistoryLimit)
		if err != nil {
			return "", apperr.Persistence("load chat history", err)
		}
		history = fromStored(stored)
	}

	if err := s.repo.Append(ctx, &store.ChatMessage{
		UserID:    userID,
		Role:      string(llm.RoleUser),
		Content:   message,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return "", apperr.Persistence("save user message", err)
	}

	llmReq := llm.Request{
		System:   buildSystemPrompt(req.Condition, req.AgeGroup),
		Messages: append(history, llm.Message{Role: llm.RoleUser, Content: message}),
	}
	span.SetAttributes(
		attribute.String("llm.model", s.provider.ModelID()),
		attribute.Int("chat.history_len", len(history)),
	)

	resp, err := s.provider.Complete(llm.WithPurpose(ctx, llm.PurposeChat), llmReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.log.Warn("chat completion failed", zap.String("model", s.provider.ModelID()), zap.Error(err))
		return "", &apperr.UpstreamError{RateLimited: llm.IsRateLimited(err), Err: err}
	}

	reply := resp.Text
	if err := s.repo.Append(ctx, &store.ChatMessage{
		UserID:    userID,
		Role:      string(llm.RoleAssistant),
		Content:   reply,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return "", apperr.Persistence("save assistant message", err)
	}
	return reply, nil
}

func fromTurns(turns []Turn) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		out = append(out, llm.Message{Role: llm.ParseRole(t.Role), Content: t.Content})
	}
	return trim(out)
}

func fromStored(msgs []store.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, llm.Message{Role: llm.ParseRole(m.Role), Content: m.Content})
	}
	return out
}

// trim keeps the newest HistoryLimit messages.
func trim(msgs []llm.Message) []llm.Message {
	if len(msgs) > HistoryLimit {
		return msgs[len(msgs)-HistoryLimit:]
	}
	return msgs
}
