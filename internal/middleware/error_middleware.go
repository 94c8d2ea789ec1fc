package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/venturelink/backend/internal/app/models/dto"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrThreadNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})
	case errors.Is(err, apperrors.ErrNotParticipant),
		errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrSelfChat):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Cannot open a chat thread with yourself"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed"),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})
	case errors.Is(err, apperrors.ErrRateLimited):
		c.JSON(429, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Rate limit exceeded"),
		})
	case errors.Is(err, apperrors.ErrMalformedResponse):
		c.JSON(502, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeMalformedRemote, "Malformed response from remote service"),
		})
	case errors.Is(err, apperrors.ErrRemoteFailure):
		c.JSON(502, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeRemoteFailure, "Remote service call failed"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
