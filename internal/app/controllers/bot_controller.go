package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/app/models/dto"
	"github.com/venturelink/backend/internal/app/services"
	"github.com/venturelink/backend/internal/middleware"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// BotController handles the assistant conversation endpoints
type BotController struct {
	botService *services.BotService
	logger     zerolog.Logger
}

// NewBotController creates a new BotController
func NewBotController(botService *services.BotService, logger zerolog.Logger) *BotController {
	return &BotController{
		botService: botService,
		logger:     logger,
	}
}

// Ask forwards a prompt to the assistant and returns the stored exchange
func (c *BotController) Ask(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.BotAskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exchange, err := c.botService.Ask(ctx.Request.Context(), userID, req.Prompt)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: exchangeResponse(exchange)})
}

// History returns the requester's assistant exchanges in timestamp order
func (c *BotController) History(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	exchanges, err := c.botService.History(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.BotExchangeResponse, 0, len(exchanges))
	for _, e := range exchanges {
		responses = append(responses, exchangeResponse(e))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

func exchangeResponse(e *models.BotExchange) dto.BotExchangeResponse {
	return dto.BotExchangeResponse{
		ID:        e.ID,
		Prompt:    e.Prompt,
		Response:  e.Response,
		Timestamp: e.Ts,
	}
}
