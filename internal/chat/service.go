package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
	"github.com/jalvarado-dev/memberhub-backend/pkg/openai"
)

// systemPrompt is prepended server-side to every upstream call. Clients never
// control it.
const systemPrompt = "You are the MemberHub assistant for a university student organization. " +
	"Answer questions about the org's events, attendance check-ins, points, leaderboard, and membership. " +
	"Be concise and friendly. If asked about something unrelated to the organization, politely redirect."

const logWriteTimeout = 5 * time.Second

// Service defines the behavior needed by the chat controllers.
type Service interface {
	Respond(ctx context.Context, userID *uuid.UUID, req ChatRequest) (*ChatResponse, error)
	RespondPublic(ctx context.Context, req PublicChatRequest) (*ChatResponse, error)
}

type completer interface {
	Complete(ctx context.Context, messages []openai.Message) (string, error)
}

type logStore interface {
	Log(ctx context.Context, log *models.ChatLog) error
}

type service struct {
	completer completer
	logs      logStore
	logger    *logger.Logger
	cfg       config.ChatConfig
}

// ServiceParams bundles the dependencies required to build a chat service.
// Completer may be nil when no API key is configured; the service then serves
// fallback replies only.
type ServiceParams struct {
	Completer  completer
	Logs       logStore
	Logger     *logger.Logger
	ChatConfig config.ChatConfig
}

// NewService constructs a chat service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logs == nil {
		return nil, fmt.Errorf("chat log store is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.ChatConfig.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("upstream timeout must be positive")
	}
	if params.ChatConfig.MaxHistory <= 0 {
		params.ChatConfig.MaxHistory = 20
	}
	if params.ChatConfig.PublicHistory <= 0 {
		params.ChatConfig.PublicHistory = 10
	}
	return &service{
		completer: params.Completer,
		logs:      params.Logs,
		logger:    params.Logger,
		cfg:       params.ChatConfig,
	}, nil
}

// Respond answers the member's message, degrading to the static keyword
// responder when no upstream client is configured or the upstream call fails.
// The exchange is logged best-effort; a log write failure never fails the
// request.
func (s *service) Respond(ctx context.Context, userID *uuid.UUID, req ChatRequest) (*ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Message is required")
	}

	reply, usedFallback := s.complete(ctx, message, req.History)

	resp := &ChatResponse{Message: reply, Fallback: usedFallback}
	go s.persist(userID, message, resp, len(req.History))
	return resp, nil
}

// RespondPublic proxies the unauthenticated widget. Unlike Respond it never
// degrades silently: an unconfigured or failing upstream surfaces as an error,
// and nothing is written to the chat log. Oversized histories are truncated to
// the most recent turns rather than rejected.
func (s *service) RespondPublic(ctx context.Context, req PublicChatRequest) (*ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Message is required")
	}
	if s.completer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assistant is not configured")
	}

	history := truncateHistory(req.History, s.cfg.PublicHistory)
	messages := make([]openai.Message, 0, len(history)+2)
	messages = append(messages, openai.Message{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, openai.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, openai.Message{Role: "user", Content: message})

	upstreamCtx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	reply, err := s.completer.Complete(upstreamCtx, messages)
	if err != nil {
		return nil, err
	}
	return &ChatResponse{Message: reply}, nil
}

func (s *service) complete(ctx context.Context, message string, history []ChatMessage) (string, bool) {
	if s.completer == nil {
		return fallbackReply(message), true
	}

	history = truncateHistory(history, s.cfg.MaxHistory)
	messages := make([]openai.Message, 0, len(history)+2)
	messages = append(messages, openai.Message{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, openai.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, openai.Message{Role: "user", Content: message})

	upstreamCtx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	reply, err := s.completer.Complete(upstreamCtx, messages)
	if err != nil {
		s.logger.Warn(ctx, fmt.Sprintf("chat upstream failed, serving fallback: %v", err))
		return fallbackReply(message), true
	}
	return reply, false
}

func (s *service) persist(userID *uuid.UUID, prompt string, resp *ChatResponse, turns int) {
	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()

	entry := &models.ChatLog{
		UserID:    userID,
		Prompt:    prompt,
		Response:  resp.Message,
		Fallback:  resp.Fallback,
		TurnCount: turns,
	}
	if err := s.logs.Log(ctx, entry); err != nil {
		s.logger.Error(ctx, "persist chat log", err)
	}
}

// truncateHistory keeps the most recent turns.
func truncateHistory(history []ChatMessage, max int) []ChatMessage {
	if max <= 0 || len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}
