package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caritahub_games/internal/service"
)

// Выпуск embed-токена для участника. Вызывается хостом при встраивании
// игры; когда секрет не настроен, токены не нужны вовсе
func (h *Handler) IssueEmbedToken(c *gin.Context) {
	var req struct {
		MemberID string `json:"memberId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	token, err := service.GenerateJWT(req.MemberID)
	if err != nil {
		if errors.Is(err, service.ErrTokensDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "embed tokens are not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
