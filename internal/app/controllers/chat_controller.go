package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/app/models/dto"
	"github.com/venturelink/backend/internal/app/services"
	"github.com/venturelink/backend/internal/middleware"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// ChatController handles thread resolution and message exchange
type ChatController struct {
	chatService *services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService *services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// Resolve returns the single thread between the requester and another user,
// creating it on first contact.
func (c *ChatController) Resolve(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.ResolveThreadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	thread, err := c.chatService.Resolve(ctx.Request.Context(), userID, req.OtherUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: threadResponse(thread, userID)})
}

// Threads lists the requester's threads, most recently active first
func (c *ChatController) Threads(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	threads, err := c.chatService.ThreadsForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		responses = append(responses, threadResponse(t, userID))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// Messages returns a thread's messages in ascending timestamp order
func (c *ChatController) Messages(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	threadID := ctx.Param("id")

	var before int64
	if raw := ctx.Query("before"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid before parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		before = parsed
	}

	var limit int
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		limit = parsed
	}

	messages, err := c.chatService.Messages(ctx.Request.Context(), threadID, userID, before, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, messageResponse(m))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// SendMessage appends a message to a thread
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	threadID := ctx.Param("id")

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	message, err := c.chatService.RecordMessage(ctx.Request.Context(), threadID, userID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: messageResponse(message)})
}

func threadResponse(t *models.ChatThread, viewerID string) dto.ThreadResponse {
	otherID := t.OtherParticipant(viewerID)

	other := models.ParticipantInfo{Name: "Unknown", Role: models.RoleUnknown}
	if info, ok := t.ParticipantInfo[otherID]; ok {
		other = info
	}

	participants := make(map[string]dto.Peer, len(t.ParticipantInfo))
	for id, info := range t.ParticipantInfo {
		participants[id] = dto.Peer{Name: info.Name, Role: string(info.Role)}
	}

	return dto.ThreadResponse{
		ThreadID:             t.ID,
		OtherUserID:          otherID,
		OtherUserName:        other.Name,
		OtherUserRole:        string(other.Role),
		LastMessageText:      t.LastMessageText,
		LastMessageTimestamp: t.LastMessageTs,
		Participants:         participants,
	}
}

func messageResponse(m *models.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Text:      m.Body,
		Timestamp: m.Ts,
	}
}
