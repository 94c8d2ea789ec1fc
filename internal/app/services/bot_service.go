package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/genai"
	"github.com/venturelink/backend/internal/pkg/helpers"
	"github.com/venturelink/backend/internal/pkg/logger"
)

// TextGenerator produces a reply for a free-text prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ExchangeStore persists assistant exchanges.
type ExchangeStore interface {
	Insert(ctx context.Context, e *models.BotExchange) error
	ListByUser(ctx context.Context, userID string) ([]*models.BotExchange, error)
}

// BotService relays prompts to the generative endpoint and keeps per-user
// conversation history.
type BotService struct {
	generator TextGenerator
	exchanges ExchangeStore
}

// NewBotService creates a new BotService
func NewBotService(generator TextGenerator, exchanges ExchangeStore) *BotService {
	return &BotService{generator: generator, exchanges: exchanges}
}

// fallbackText maps each generation failure mode to its user-visible reply.
// Every failure gets a distinct text so the user can tell a dead network from
// an answer the API declined to shape.
func fallbackText(err error) string {
	switch {
	case errors.Is(err, genai.ErrEmptyBody):
		return "Empty response"
	case errors.Is(err, genai.ErrMalformedResponse):
		return "Failed to parse response"
	case errors.Is(err, genai.ErrNoCandidates):
		return "No candidates found"
	case errors.Is(err, genai.ErrNoParts):
		return "No parts found"
	default:
		return "Failed to get response"
	}
}

// Ask forwards the prompt, persists the exchange and returns it. Generation
// failures are folded into the exchange as fallback text rather than
// propagated: the conversation records what the user saw.
func (s *BotService) Ask(ctx context.Context, userID, prompt string) (*models.BotExchange, error) {
	response, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("Generation failed, storing fallback reply")
		response = fallbackText(err)
	}

	exchange := &models.BotExchange{
		ID:       uuid.New().String(),
		UserID:   userID,
		Prompt:   prompt,
		Response: response,
		Ts:       helpers.NowMillis(),
	}

	if err := s.exchanges.Insert(ctx, exchange); err != nil {
		return nil, fmt.Errorf("storing assistant exchange: %w", err)
	}

	return exchange, nil
}

// History returns the user's exchanges in ascending timestamp order
func (s *BotService) History(ctx context.Context, userID string) ([]*models.BotExchange, error) {
	return s.exchanges.ListByUser(ctx, userID)
}
