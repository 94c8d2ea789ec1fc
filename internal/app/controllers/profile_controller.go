package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/app/models/dto"
	"github.com/venturelink/backend/internal/app/services"
	"github.com/venturelink/backend/internal/middleware"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// ProfileController serves the viewer's profile and peer recommendations
type ProfileController struct {
	authService  *services.AuthService
	matchService *services.MatchService
	logger       zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(authService *services.AuthService, matchService *services.MatchService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		authService:  authService,
		matchService: matchService,
		logger:       logger,
	}
}

func requesterIdentity(ctx *gin.Context) (userID string, role models.Role, ok bool) {
	id, exists := ctx.Get("userID")
	if !exists {
		return "", "", false
	}
	userID, ok = id.(string)
	if !ok {
		return "", "", false
	}

	r, exists := ctx.Get("role")
	if !exists {
		return "", "", false
	}
	roleStr, ok := r.(string)
	if !ok {
		return "", "", false
	}

	return userID, models.Role(roleStr), true
}

// Profile returns the authenticated user's role profile
func (c *ProfileController) Profile(ctx *gin.Context) {
	userID, role, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	bundle, err := c.authService.Profile(ctx.Request.Context(), userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profileResponse(userID, bundle)})
}

func profileResponse(userID string, b *services.ProfileBundle) dto.ProfileResponse {
	resp := dto.ProfileResponse{UserID: userID, Role: string(b.Role)}

	switch b.Role {
	case models.RoleEntrepreneur:
		resp.Name = b.Entrepreneur.Name
		resp.Email = b.Entrepreneur.Email
		resp.Entrepreneur = &dto.EntrepreneurAttributes{
			FundingRequired: b.Entrepreneur.FundingRequired,
			MentorNeeded:    b.Entrepreneur.MentorNeeded,
			CollabNeeded:    b.Entrepreneur.CollabNeeded,
			InvestorType:    b.Entrepreneur.InvestorType,
		}
	case models.RoleStartup:
		resp.Name = b.Startup.Name
		resp.Email = b.Startup.Email
		resp.Startup = &dto.StartupAttributes{
			Description:  b.Startup.Description,
			FundingGoal:  b.Startup.FundingGoal,
			Industry:     b.Startup.Industry,
			OpenToCollab: b.Startup.OpenToCollab,
		}
	case models.RoleMentor:
		resp.Name = b.Mentor.Name
		resp.Email = b.Mentor.Email
		resp.Mentor = &dto.MentorAttributes{
			Industry:       b.Mentor.Industry,
			FeesPerHour:    b.Mentor.FeesPerHour,
			HoursAvailable: b.Mentor.HoursAvailable,
		}
	case models.RoleInvestor:
		resp.Name = b.Investor.Name
		resp.Email = b.Investor.Email
		resp.Investor = &dto.InvestorAttributes{
			InvestmentCapacity: b.Investor.InvestmentCapacity,
			MentoringAvailable: b.Investor.MentoringAvailable,
			PreferredIndustry:  b.Investor.PreferredIndustry,
		}
	}

	return resp
}

// SearchUsers looks up peers by name prefix across the four role collections.
// Like Recommendations, a partial scan still answers 200 with the failed
// collections listed.
func (c *ProfileController) SearchUsers(ctx *gin.Context) {
	userID, _, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	query := strings.TrimSpace(ctx.Query("q"))
	if query == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "q is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, scanErr := c.matchService.Search(ctx.Request.Context(), userID, query)
	if scanErr != nil && len(result.Failed) == len(models.Roles) {
		c.logger.Error().Err(scanErr).Str("userID", userID).Msg("All candidate collection searches failed")
		middleware.HandleAPIError(ctx, apperrors.ErrRemoteFailure)
		return
	}

	users := make([]dto.UserSearchItem, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, dto.UserSearchItem{
			UserID: u.UserID,
			Name:   u.Name,
			Role:   string(u.Role),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.UserSearchResponse{
			Users:   users,
			Partial: len(result.Failed) > 0,
			Failed:  result.Failed,
		},
	})
}

// Recommendations returns the matcher's peer recommendations for the viewer.
// A partial scan still answers 200 with the collections that failed listed;
// only a fully failed scan is an error.
func (c *ProfileController) Recommendations(ctx *gin.Context) {
	userID, role, ok := requesterIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	bundle, err := c.authService.Profile(ctx.Request.Context(), userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, scanErr := c.matchService.Recommend(ctx.Request.Context(), userID, role, bundle.ViewerAttributes())
	if scanErr != nil && len(result.Failed) == len(models.Roles) {
		c.logger.Error().Err(scanErr).Str("userID", userID).Msg("All candidate collection scans failed")
		middleware.HandleAPIError(ctx, apperrors.ErrRemoteFailure)
		return
	}

	items := make([]dto.RecommendationItem, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		items = append(items, dto.RecommendationItem{
			UserID: rec.UserID,
			Name:   rec.Name,
			Role:   string(rec.Role),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.RecommendationResponse{
			Recommendations: items,
			Partial:         len(result.Failed) > 0,
			Failed:          result.Failed,
		},
	})
}
