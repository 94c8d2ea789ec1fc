package websocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// ThreadAccess checks that a requester may join a thread.
type ThreadAccess interface {
	Thread(ctx context.Context, threadID, requesterID string) (*models.ChatThread, error)
}

// MessageSink persists messages received over the socket.
type MessageSink interface {
	RecordMessage(ctx context.Context, threadID, senderID, text string) (*models.ChatMessage, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub     *Hub
	threads ThreadAccess
	sink    MessageSink
	logger  zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, threads ThreadAccess, sink MessageSink, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		threads: threads,
		sink:    sink,
		logger:  logger,
	}
}

// HandleConnection upgrades the HTTP connection and subscribes the client to
// its thread's live messages.
func (h *Handler) HandleConnection(c *gin.Context) {
	threadID := c.Param("id")
	if threadID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	userID, ok := userIDValue.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	_, err := h.threads.Thread(c.Request.Context(), threadID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		case errors.Is(err, apperrors.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "User is not a participant in this thread"})
		default:
			h.logger.Error().
				Err(err).
				Str("threadID", threadID).
				Str("userID", userID).
				Msg("Failed to check thread access")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check thread access"})
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("threadID", threadID).
			Str("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		threadID: threadID,
		sink:     h.sink,
		logger:   h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("threadID", threadID).
		Str("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
