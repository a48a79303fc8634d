package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caritahub_games/internal/game"
	"caritahub_games/internal/service"
	"caritahub_games/internal/session"
)

// Handler держит зависимости REST-слоя
type Handler struct {
	Sessions *service.SessionService
}

func NewHandler(sessions *service.SessionService) *Handler {
	return &Handler{Sessions: sessions}
}

// перевод ошибок сервисного слоя в HTTP-статусы
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrUnknownGame):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown game"})
	case errors.Is(err, service.ErrWrongGame):
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation not supported for this game"})
	case errors.Is(err, session.ErrNotIdle):
		c.JSON(http.StatusConflict, gin.H{"error": "session already started"})
	case errors.Is(err, session.ErrNotPlaying):
		c.JSON(http.StatusConflict, gin.H{"error": "session is not playing"})
	case errors.Is(err, session.ErrNotEnded):
		c.JSON(http.StatusConflict, gin.H{"error": "session is not ended"})
	case errors.Is(err, game.ErrGameFinished):
		c.JSON(http.StatusConflict, gin.H{"error": "game already finished"})
	case errors.Is(err, game.ErrWrongPhase):
		c.JSON(http.StatusConflict, gin.H{"error": "wrong phase"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
