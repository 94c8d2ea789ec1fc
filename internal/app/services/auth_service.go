package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/app/models/dto"
	"github.com/venturelink/backend/internal/db"
	"github.com/venturelink/backend/internal/pkg/apperrors"
	"github.com/venturelink/backend/internal/pkg/auth"
	"github.com/venturelink/backend/internal/pkg/dberrors"
	"github.com/venturelink/backend/internal/pkg/logger"
)

// TxRunner runs a function within a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// UserStore is the persistence surface AuthService needs for accounts.
type UserStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ProfileStore is the persistence surface for role profiles.
type ProfileStore interface {
	CreateEntrepreneurTx(ctx context.Context, tx pgx.Tx, p *models.Entrepreneur) error
	CreateStartupTx(ctx context.Context, tx pgx.Tx, p *models.Startup) error
	CreateMentorTx(ctx context.Context, tx pgx.Tx, p *models.Mentor) error
	CreateInvestorTx(ctx context.Context, tx pgx.Tx, p *models.Investor) error
	GetEntrepreneur(ctx context.Context, userID string) (*models.Entrepreneur, error)
	GetStartup(ctx context.Context, userID string) (*models.Startup, error)
	GetMentor(ctx context.Context, userID string) (*models.Mentor, error)
	GetInvestor(ctx context.Context, userID string) (*models.Investor, error)
}

// AuthService handles registration, login and profile reads.
type AuthService struct {
	txRunner   TxRunner
	users      UserStore
	profiles   ProfileStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(txRunner TxRunner, users UserStore, profiles ProfileStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		txRunner:   txRunner,
		users:      users,
		profiles:   profiles,
		jwtService: jwtService,
	}
}

// Register creates the account and its role profile in one transaction, so a
// failed profile write never leaves an account without a profile.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if err := validateBundle(role, req); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.createProfileTx(ctx, tx, user, req)
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("User registered")

	return user, nil
}

func (s *AuthService) createProfileTx(ctx context.Context, tx pgx.Tx, user *models.User, req *dto.RegisterRequest) error {
	switch user.Role {
	case models.RoleEntrepreneur:
		return s.profiles.CreateEntrepreneurTx(ctx, tx, &models.Entrepreneur{
			UserID:          user.ID,
			Name:            req.Name,
			Email:           req.Email,
			FundingRequired: req.Entrepreneur.FundingRequired,
			MentorNeeded:    req.Entrepreneur.MentorNeeded,
			CollabNeeded:    req.Entrepreneur.CollabNeeded,
			InvestorType:    req.Entrepreneur.InvestorType,
		})
	case models.RoleStartup:
		return s.profiles.CreateStartupTx(ctx, tx, &models.Startup{
			UserID:       user.ID,
			Name:         req.Name,
			Email:        req.Email,
			Description:  req.Startup.Description,
			FundingGoal:  req.Startup.FundingGoal,
			Industry:     req.Startup.Industry,
			OpenToCollab: req.Startup.OpenToCollab,
		})
	case models.RoleMentor:
		return s.profiles.CreateMentorTx(ctx, tx, &models.Mentor{
			UserID:         user.ID,
			Name:           req.Name,
			Email:          req.Email,
			Industry:       req.Mentor.Industry,
			FeesPerHour:    req.Mentor.FeesPerHour,
			HoursAvailable: req.Mentor.HoursAvailable,
		})
	case models.RoleInvestor:
		return s.profiles.CreateInvestorTx(ctx, tx, &models.Investor{
			UserID:             user.ID,
			Name:               req.Name,
			Email:              req.Email,
			InvestmentCapacity: req.Investor.InvestmentCapacity,
			MentoringAvailable: req.Investor.MentoringAvailable,
			PreferredIndustry:  req.Investor.PreferredIndustry,
		})
	default:
		return apperrors.ErrInvalidRole
	}
}

func validateBundle(role models.Role, req *dto.RegisterRequest) error {
	var present bool
	switch role {
	case models.RoleEntrepreneur:
		present = req.Entrepreneur != nil
	case models.RoleStartup:
		present = req.Startup != nil
	case models.RoleMentor:
		present = req.Mentor != nil
	case models.RoleInvestor:
		present = req.Investor != nil
	}
	if !present {
		return apperrors.NewValidationError(fmt.Sprintf("missing %s attributes", role))
	}
	return nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		UserID:      user.ID,
		Role:        string(user.Role),
	}, nil
}

// ProfileBundle is one user's role profile in whichever variant applies.
type ProfileBundle struct {
	Role         models.Role
	Entrepreneur *models.Entrepreneur
	Startup      *models.Startup
	Mentor       *models.Mentor
	Investor     *models.Investor
}

// ViewerAttributes projects the bundle onto the attribute set the matcher
// consumes. Fields a role does not carry stay at their neutral defaults.
func (b *ProfileBundle) ViewerAttributes() models.ViewerAttributes {
	var attrs models.ViewerAttributes
	switch b.Role {
	case models.RoleEntrepreneur:
		attrs.Funding = b.Entrepreneur.FundingRequired
		attrs.MentorNeeded = b.Entrepreneur.MentorNeeded
	case models.RoleStartup:
		attrs.Funding = b.Startup.FundingGoal
		attrs.Industry = &b.Startup.Industry
	case models.RoleMentor:
		attrs.Industry = &b.Mentor.Industry
	case models.RoleInvestor:
		attrs.Funding = b.Investor.InvestmentCapacity
		attrs.Industry = &b.Investor.PreferredIndustry
	}
	return attrs
}

// Profile loads the role profile for a user
func (s *AuthService) Profile(ctx context.Context, userID string, role models.Role) (*ProfileBundle, error) {
	bundle := &ProfileBundle{Role: role}

	var err error
	switch role {
	case models.RoleEntrepreneur:
		bundle.Entrepreneur, err = s.profiles.GetEntrepreneur(ctx, userID)
	case models.RoleStartup:
		bundle.Startup, err = s.profiles.GetStartup(ctx, userID)
	case models.RoleMentor:
		bundle.Mentor, err = s.profiles.GetMentor(ctx, userID)
	case models.RoleInvestor:
		bundle.Investor, err = s.profiles.GetInvestor(ctx, userID)
	default:
		return nil, apperrors.ErrInvalidRole
	}
	if err != nil {
		return nil, err
	}

	return bundle, nil
}
