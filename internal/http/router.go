// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/internal/http/handlers"
	"tripwise/internal/http/middleware"
	"tripwise/internal/modules/chat"
	"tripwise/internal/modules/trip"
)

func NewRouter(
	tripService *trip.Service,
	chatService *chat.Service,
	allowedOrigins []string,
	log *zap.Logger,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tripHandler := handlers.NewTripHandler(tripService)
	searchGroup := r.Group("/api/search")
	{
		searchGroup.POST("/flights", tripHandler.SearchFlights)
		searchGroup.POST("/hotels", tripHandler.SearchHotels)
		searchGroup.POST("/complete", tripHandler.CompleteSearch)
	}
	r.POST("/api/itinerary", tripHandler.GenerateItinerary)
	r.POST("/api/itinerary/conversation", tripHandler.FromConversation)

	chatHandler := handlers.NewChatHandler(chatService)
	chatGroup := r.Group("/api/chat")
	{
		chatGroup.POST("/start", chatHandler.Start)
		chatGroup.POST("/continue", chatHandler.Continue)
		chatGroup.GET("/:session_id/history", chatHandler.History)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
