package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"caritahub_games/internal/domain"
	"caritahub_games/internal/logger"
	"caritahub_games/internal/metrics"
)

var ErrNoConnections = errors.New("у участника нет активных подключений")

// Hub отслеживает подключения по участникам. Один участник может
// держать несколько вкладок - broadcast уходит во все
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.MemberID] == nil {
		h.clients[c.MemberID] = make(map[*Client]bool)
	}
	h.clients[c.MemberID][c] = true
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logger.Info("ws подключение открыто", "member_id", c.MemberID, "game_id", c.GameID)
}

func (h *Hub) OnDisconnect(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.MemberID]; ok {
		if set[c] {
			delete(set, c)
			metrics.WSConnections.Dec()
		}
		if len(set) == 0 {
			delete(h.clients, c.MemberID)
		}
	}
	h.mu.Unlock()

	logger.Info("ws подключение закрыто", "member_id", c.MemberID)
}

// BroadcastGameComplete рассылает GAME_COMPLETE всем подключениям
// участника. Отправка неблокирующая: забитый канал пропускается
func (h *Hub) BroadcastGameComplete(memberID string, payload domain.Payload) error {
	frame, err := json.Marshal(struct {
		Type    string         `json:"type"`
		Payload domain.Payload `json:"payload"`
	}{Type: "GAME_COMPLETE", Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.clients[memberID]
	if len(set) == 0 {
		return ErrNoConnections
	}

	delivered := 0
	for c := range set {
		select {
		case c.Send <- frame:
			delivered++
		default:
			// канал переполнен - клиент скорее всего мёртв, пропускаем
		}
	}
	if delivered == 0 {
		return ErrNoConnections
	}
	return nil
}
