package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/venturelink/backend/internal/app/controllers"
	appMigrations "github.com/venturelink/backend/internal/app/migrations"
	appRepos "github.com/venturelink/backend/internal/app/repositories"
	appRoutes "github.com/venturelink/backend/internal/app/routes"
	appServices "github.com/venturelink/backend/internal/app/services"
	"github.com/venturelink/backend/internal/config"
	"github.com/venturelink/backend/internal/db"
	appMiddleware "github.com/venturelink/backend/internal/middleware"
	pkgAuth "github.com/venturelink/backend/internal/pkg/auth"
	"github.com/venturelink/backend/internal/pkg/genai"
	"github.com/venturelink/backend/internal/pkg/helpers"
	"github.com/venturelink/backend/internal/pkg/logger"
	"github.com/venturelink/backend/internal/pkg/websocket"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	MatchService      *appServices.MatchService
	ChatService       *appServices.ChatService
	BotService        *appServices.BotService
	AuthController    *appControllers.AuthController
	ProfileController *appControllers.ProfileController
	ChatController    *appControllers.ChatController
	BotController     *appControllers.BotController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	BotLimiter        *appMiddleware.LimiterStore
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Hub               *websocket.Hub
	WSHandler         *websocket.Handler
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	genaiClient, err := genai.NewClient(&genai.Config{
		BaseURL:    cfg.GenAI.BaseURL,
		APIKey:     cfg.GenAI.APIKey,
		Model:      cfg.GenAI.Model,
		Timeout:    helpers.ParseDuration(cfg.GenAI.Timeout, 30*time.Second),
		MaxRetries: cfg.GenAI.MaxRetries,
		RetryDelay: helpers.ParseDuration(cfg.GenAI.RetryDelay, time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build generative client: %w", err)
	}

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	txRunner := &db.PostgresDB{Pool: dbPool}

	deps.AuthService = appServices.NewAuthService(txRunner, deps.Repos.UserRepository, deps.Repos.ProfileRepository, deps.JWTService)
	deps.MatchService = appServices.NewMatchService(deps.Repos.ProfileRepository)
	deps.ChatService = appServices.NewChatService(deps.Repos.ChatRepository, deps.Repos.ProfileRepository, deps.Hub)
	deps.BotService = appServices.NewBotService(genaiClient, deps.Repos.BotRepository)

	deps.WSHandler = websocket.NewHandler(deps.Hub, deps.ChatService, deps.ChatService, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.AuthService, deps.MatchService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.BotController = appControllers.NewBotController(deps.BotService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.BotLimiter = appMiddleware.NewLimiterStore(cfg.RateLimit.BotPerMinute, cfg.RateLimit.BotBurst, 5*time.Minute)

	return deps, nil
}

// SetupRouter configures the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.ProfileController,
		deps.ChatController,
		deps.BotController,
		deps.WSHandler,
		deps.AuthMiddleware,
		deps.BotLimiter,
	)

	lgr.Info().Msg("Router configured")
	return router
}
