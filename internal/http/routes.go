package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caritahub_games/internal/http/handlers"
	"caritahub_games/internal/service"
	"caritahub_games/internal/ws"
)

// RegisterRoutes подключает REST API и WebSocket к роутеру
func RegisterRoutes(r *gin.Engine, sessions *service.SessionService, hub *ws.Hub, allowedOrigin string) {
	h := handlers.NewHandler(sessions)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/games", h.ListGames)

		api.POST("/sessions", h.StartSession)
		api.GET("/sessions/:id", h.GetSession)
		api.POST("/sessions/:id/score", h.ReportScore)
		api.POST("/sessions/:id/complete", h.CompleteSession)
		api.POST("/sessions/:id/replay", h.ReplaySession)

		api.POST("/sessions/:id/arithmetic/answer", h.ArithmeticAnswer)
		api.POST("/sessions/:id/recall/word", h.RecallWord)
		api.POST("/sessions/:id/recall/phase", h.RecallPhase)

		api.POST("/embed/token", h.IssueEmbedToken)
	}

	wsHandler := ws.NewWSHandler(hub, sessions, allowedOrigin)
	r.GET("/ws", wsHandler.HandleWS())
}
