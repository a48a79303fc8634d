package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"caritahub_games/internal/domain"
	"caritahub_games/internal/logger"
	"caritahub_games/internal/service"
)

// WSHandler поднимает WebSocket-подключения участников
type WSHandler struct {
	Hub           *Hub
	Sessions      *service.SessionService
	AllowedOrigin string
}

func NewWSHandler(hub *Hub, sessions *service.SessionService, allowedOrigin string) *WSHandler {
	return &WSHandler{
		Hub:           hub,
		Sessions:      sessions,
		AllowedOrigin: allowedOrigin,
	}
}

func (h *WSHandler) HandleWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := c.Query("member_id")

		// при настроенном секрете личность берётся только из токена
		if service.JWTEnabled() {
			token := c.Query("token")
			if token == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "токен обязателен"})
				return
			}
			sub, err := service.ParseJWT(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "неверный токен"})
				return
			}
			memberID = sub
		}
		if memberID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id обязателен"})
			return
		}

		// игра по умолчанию для WS - симуляция ловли фруктов
		gameID := domain.GameID(c.Query("game"))
		if gameID == "" {
			gameID = domain.GameCatchFruit
		}
		if !gameID.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "неизвестная игра"})
			return
		}

		difficulty := domain.ParseDifficulty(c.Query("difficulty"))

		allowedOrigin := h.AllowedOrigin
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ошибка обновления ws", "error", err)
			return
		}

		client := NewClient(memberID, conn, h.Hub, h.Sessions, gameID, difficulty, c.Query("callback_url"))
		go client.Run()
	}
}
