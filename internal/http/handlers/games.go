package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caritahub_games/internal/service"
)

// Каталог доступных игр
func (h *Handler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": service.Games()})
}
