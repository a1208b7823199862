package transport

import (
	"net/http"

	"github.com/KadakWNL/crowd-connect/internal/transport/middleware"
	"github.com/KadakWNL/crowd-connect/pkg/token"

	"github.com/gin-gonic/gin"
)

func InitRoutes(eventHandler *EventHandler, userHandler *UserHandler, authHandler *AuthHandler, tokens *token.Manager) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	authRequired := middleware.Auth(tokens)

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", authRequired, eventHandler.CreateEvent)
			events.PUT("/:id", authRequired, eventHandler.UpdateEvent)
			events.DELETE("/:id", authRequired, eventHandler.DeleteEvent)
			events.POST("/:id/attend", authRequired, eventHandler.ToggleAttendance)
			events.GET("/:id/attendees", authRequired, eventHandler.GetRoster)
		}

		// User routes
		users := api.Group("/users", authRequired)
		{
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/toggle-host", userHandler.ToggleHost)
			users.GET("/me/attending", userHandler.GetAttending)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
