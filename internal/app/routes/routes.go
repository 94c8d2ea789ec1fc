package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/venturelink/backend/internal/app/controllers"
	"github.com/venturelink/backend/internal/middleware"
	"github.com/venturelink/backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	chatController *controllers.ChatController,
	botController *controllers.BotController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	botLimiter *middleware.LimiterStore,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", profileController.Profile)
		authenticated.GET("/recommendations", profileController.Recommendations)
		authenticated.GET("/users/search", profileController.SearchUsers)

		chats := authenticated.Group("/chats")
		{
			chats.GET("", chatController.Threads)
			chats.POST("/resolve", chatController.Resolve)
			chats.GET("/:id/messages", chatController.Messages)
			chats.POST("/:id/messages", chatController.SendMessage)
			chats.GET("/:id/ws", wsHandler.HandleConnection)
		}

		bot := authenticated.Group("/bot")
		{
			bot.GET("/messages", botController.History)
			bot.POST("/messages", middleware.RateLimit(botLimiter), botController.Ask)
		}
	}
}
