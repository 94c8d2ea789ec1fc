package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/apperrors"
	"github.com/venturelink/backend/internal/pkg/helpers"
	"github.com/venturelink/backend/internal/pkg/logger"
)

// ThreadStore is the persistence surface ChatService needs for threads and
// messages.
type ThreadStore interface {
	FindByPair(ctx context.Context, low, high string) ([]*models.ChatThread, error)
	InsertConditional(ctx context.Context, t *models.ChatThread) (*models.ChatThread, error)
	GetByID(ctx context.Context, threadID string) (*models.ChatThread, error)
	ListForUser(ctx context.Context, userID string) ([]*models.ChatThread, error)
	InsertMessage(ctx context.Context, m *models.ChatMessage) error
	ListMessages(ctx context.Context, threadID string, before int64, limit int) ([]*models.ChatMessage, error)
	RefreshLastMessage(ctx context.Context, threadID string) error
	DeleteLegacyDuplicates(ctx context.Context, low, high, keepID string) error
}

// ParticipantSource resolves a user id to display name and role.
type ParticipantSource interface {
	LookupParticipant(ctx context.Context, userID string) (string, models.Role, error)
}

// MessageBroadcaster delivers a stored message to live thread subscribers.
type MessageBroadcaster interface {
	BroadcastMessage(m *models.ChatMessage)
}

// ChatService resolves threads between participant pairs and records their
// messages.
type ChatService struct {
	threads      ThreadStore
	participants ParticipantSource
	broadcaster  MessageBroadcaster
}

// NewChatService creates a new ChatService. broadcaster may be nil when no
// live delivery is wired.
func NewChatService(threads ThreadStore, participants ParticipantSource, broadcaster MessageBroadcaster) *ChatService {
	return &ChatService{
		threads:      threads,
		participants: participants,
		broadcaster:  broadcaster,
	}
}

// Resolve maps an unordered user pair to its single thread, creating the
// thread on first contact. Participant order never matters: both ids are
// folded into the canonical sorted pair before lookup or insert.
func (s *ChatService) Resolve(ctx context.Context, userA, userB string) (*models.ChatThread, error) {
	if userA == userB {
		return nil, apperrors.ErrSelfChat
	}

	low, high := models.CanonicalPair(userA, userB)

	existing, err := s.threads.FindByPair(ctx, low, high)
	if err != nil {
		return nil, fmt.Errorf("resolving thread for pair: %w", err)
	}

	if len(existing) > 0 {
		// Rows beyond the first predate the unique pair constraint. Fold
		// their messages into the retained thread instead of ignoring them.
		if len(existing) > 1 {
			logger.Warn().
				Str("participant_low", low).
				Str("participant_high", high).
				Int("count", len(existing)).
				Msg("Duplicate threads found for participant pair, merging into oldest")
			if err := s.threads.DeleteLegacyDuplicates(ctx, low, high, existing[0].ID); err != nil {
				return nil, fmt.Errorf("merging duplicate threads: %w", err)
			}
		}
		return existing[0], nil
	}

	info := make(map[string]models.ParticipantInfo, 2)
	for _, id := range []string{low, high} {
		name, role, err := s.participants.LookupParticipant(ctx, id)
		if err != nil {
			if !errors.Is(err, apperrors.ErrProfileNotFound) {
				return nil, fmt.Errorf("looking up participant %s: %w", id, err)
			}
			name, role = "Unknown", models.RoleUnknown
		}
		info[id] = models.ParticipantInfo{Name: name, Role: role}
	}

	thread := &models.ChatThread{
		ID:              uuid.New().String(),
		ParticipantLow:  low,
		ParticipantHigh: high,
		ParticipantInfo: info,
		LastMessageText: "",
		LastMessageTs:   0,
	}

	// The conditional insert makes resolve race-free: when both ends of a
	// first conversation resolve concurrently, exactly one insert lands and
	// both callers get the surviving row back.
	stored, err := s.threads.InsertConditional(ctx, thread)
	if err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	return stored, nil
}

// RecordMessage appends a message to the thread and refreshes the thread's
// last-message preview from the true maximum-timestamp message.
func (s *ChatService) RecordMessage(ctx context.Context, threadID, senderID, text string) (*models.ChatMessage, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(senderID) {
		return nil, apperrors.ErrNotParticipant
	}

	message := &models.ChatMessage{
		ID:       uuid.New().String(),
		ThreadID: threadID,
		SenderID: senderID,
		Body:     text,
		Ts:       helpers.NowMillis(),
	}

	if err := s.threads.InsertMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("recording message: %w", err)
	}

	if err := s.threads.RefreshLastMessage(ctx, threadID); err != nil {
		return nil, fmt.Errorf("refreshing thread preview: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(message)
	}

	return message, nil
}

// Messages returns a thread's messages in ascending timestamp order,
// restricted to participants. before and limit page backwards through
// history; zero values disable them.
func (s *ChatService) Messages(ctx context.Context, threadID, requesterID string, before int64, limit int) ([]*models.ChatMessage, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(requesterID) {
		return nil, apperrors.ErrNotParticipant
	}

	return s.threads.ListMessages(ctx, threadID, before, limit)
}

// Thread returns a thread by id, restricted to participants.
func (s *ChatService) Thread(ctx context.Context, threadID, requesterID string) (*models.ChatThread, error) {
	thread, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(requesterID) {
		return nil, apperrors.ErrNotParticipant
	}

	return thread, nil
}

// ThreadsForUser returns every thread the user participates in, most recently
// active first.
func (s *ChatService) ThreadsForUser(ctx context.Context, userID string) ([]*models.ChatThread, error) {
	return s.threads.ListForUser(ctx, userID)
}
