package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	repo "github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
)

const (
	defaultHistorySize = 10
	maxHistorySize     = 50
)

// ChatService relays prompts to the completion API with the configured
// system prompt and sampling settings.
type ChatService struct {
	Completer    gateway.Completer // nil when no API key is configured
	History      repo.ChatHistoryRepository
	Logger       logrus.FieldLogger
	SystemPrompt string
	Params       gateway.CompletionParams
}

func NewChatService(completer gateway.Completer, history repo.ChatHistoryRepository, logger logrus.FieldLogger, systemPrompt string, params gateway.CompletionParams) *ChatService {
	return &ChatService{
		Completer:    completer,
		History:      history,
		Logger:       logger,
		SystemPrompt: systemPrompt,
		Params:       params,
	}
}

// Chat returns the model's answer to prompt unmodified.
func (s *ChatService) Chat(ctx context.Context, userID, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	if s.Completer == nil {
		return "", ErrChatNotConfigured
	}

	chatRequests.Add(1)
	out, err := s.Completer.Complete(ctx, s.SystemPrompt, prompt, s.Params)
	if err != nil {
		chatFailures.Add(1)
		return "", upstreamError(err)
	}

	s.record(ctx, userID, prompt, out)
	return out, nil
}

func upstreamError(err error) error {
	switch {
	case errors.Is(err, gateway.ErrUpstreamAuth):
		return apperror.Wrap(ErrUpstreamAuth, err)
	case errors.Is(err, gateway.ErrUpstreamRejected):
		return apperror.Wrap(ErrUpstreamRejected, err)
	default:
		return apperror.Wrap(ErrUpstreamUnavailable, err)
	}
}

// record stores the exchange; failures are logged and otherwise ignored.
func (s *ChatService) record(ctx context.Context, userID, prompt, response string) {
	if s.History == nil {
		return
	}
	ex := &entity.ChatExchange{
		ID:        uuid.NewString(),
		UserID:    userID,
		Prompt:    prompt,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.History.Save(ctx, ex); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("save chat exchange failed")
	}
}

// Recent lists the caller's latest exchanges, newest first. size defaults to
// 10 and is capped at 50.
func (s *ChatService) Recent(ctx context.Context, userID string, size int) ([]entity.ChatExchange, error) {
	if size <= 0 {
		size = defaultHistorySize
	}
	if size > maxHistorySize {
		size = maxHistorySize
	}
	if s.History == nil {
		return []entity.ChatExchange{}, nil
	}
	out, err := s.History.Recent(ctx, userID, size)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}
