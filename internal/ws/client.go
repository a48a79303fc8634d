package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"caritahub_games/internal/domain"
	"caritahub_games/internal/game"
	"caritahub_games/internal/logger"
	"caritahub_games/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	// частота отправки снапшотов симуляции клиенту
	statePeriod = 33 * time.Millisecond
)

// Client - одно WebSocket-подключение участника. Через него идёт
// реальный ввод игры с симуляцией и обратный поток снапшотов
type Client struct {
	MemberID   string
	GameID     domain.GameID
	Difficulty domain.Difficulty

	// переопределение URL доставки результата для партий этого подключения
	CallbackURL string

	Conn *websocket.Conn
	Send chan []byte

	Hub      *Hub
	Sessions *service.SessionService

	mu        sync.Mutex
	sessionID string
	catch     *game.CatchGame

	Done chan struct{}
}

func NewClient(memberID string, conn *websocket.Conn, hub *Hub, sessions *service.SessionService, gameID domain.GameID, difficulty domain.Difficulty, callbackURL string) *Client {
	return &Client{
		MemberID:    memberID,
		GameID:      gameID,
		Difficulty:  difficulty,
		CallbackURL: callbackURL,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Hub:         hub,
		Sessions:    sessions,
		Done:        make(chan struct{}),
	}
}

func (c *Client) Run() {
	c.Hub.Register(c)

	go c.writePump()

	// явный хендшейк готовности, чтобы клиент знал, когда слать start
	c.sendJSON(map[string]any{"type": "ready"})

	c.readPump()
}

// входящее сообщение; лишние поля для конкретного типа игнорируются
type inboundMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Dir  int     `json:"dir"`
	Area struct {
		W float64 `json:"w"`
		H float64 `json:"h"`
	} `json:"area"`
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.OnDisconnect(c)
		_ = c.Conn.Close()
		close(c.Done)
	}()

	c.Conn.SetReadLimit(4096)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warn("ws нечитаемое сообщение", "member_id", c.MemberID, "error", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg inboundMsg) {
	switch msg.Type {
	case "start":
		c.handleStart(msg)

	case "pointer":
		if g := c.catchGame(); g != nil {
			g.SetBasket(msg.X)
		}

	case "key":
		if g := c.catchGame(); g != nil && (msg.Dir == -1 || msg.Dir == 1) {
			g.Nudge(msg.Dir)
		}

	case "tap":
		if g := c.catchGame(); g != nil && (msg.Dir == -1 || msg.Dir == 1) {
			g.Tap(msg.Dir)
		}

	default:
		logger.Warn("ws неизвестный тип сообщения", "member_id", c.MemberID, "type", msg.Type)
	}
}

// handleStart запускает партию. Повторный start после завершения
// партии - это replay; start во время игры игнорируется
func (c *Client) handleStart(msg inboundMsg) {
	c.mu.Lock()
	sessionID := c.sessionID
	c.mu.Unlock()

	var res *service.StartResult
	var err error

	if sessionID != "" {
		engine, engErr := c.Sessions.Engine(sessionID)
		if engErr == nil && engine.Phase() == domain.PhasePlaying {
			return
		}
		res, err = c.Sessions.Replay(sessionID)
		if err != nil {
			res, err = c.Sessions.StartSession(c.MemberID, c.GameID, c.Difficulty, c.CallbackURL)
		}
	} else {
		res, err = c.Sessions.StartSession(c.MemberID, c.GameID, c.Difficulty, c.CallbackURL)
	}
	if err != nil {
		c.sendJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	engine, err := c.Sessions.Engine(res.SessionID)
	if err != nil {
		c.sendJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	var catch *game.CatchGame
	if g, ok := engine.Hosted().(*game.CatchGame); ok {
		catch = g
		if msg.Area.W > 0 && msg.Area.H > 0 {
			catch.SetArea(msg.Area.W, msg.Area.H)
		}
	}

	c.mu.Lock()
	c.sessionID = res.SessionID
	c.catch = catch
	c.mu.Unlock()

	// результат уходит этому подключению синхронно, до broadcast'а
	_ = c.Sessions.SetResultListener(res.SessionID, func(p domain.Payload) {
		c.sendJSON(map[string]any{"type": "result", "payload": p})
	})

	c.sendJSON(map[string]any{"type": "started", "session": res})

	if catch != nil {
		go c.streamState(catch, res.SessionID)
	}
}

// streamState шлёт снапшоты симуляции, пока партия не закончится
func (c *Client) streamState(g *game.CatchGame, sessionID string) {
	ticker := time.NewTicker(statePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done:
			return
		case <-ticker.C:
			snap := g.Snapshot()

			var secondsLeft *int
			if engine, err := c.Sessions.Engine(sessionID); err == nil {
				secondsLeft = engine.SecondsLeft()
			}

			c.sendJSON(map[string]any{
				"type":         "state",
				"state":        snap,
				"seconds_left": secondsLeft,
			})

			if snap.Finished {
				return
			}
		}
	}
}

func (c *Client) catchGame() *game.CatchGame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catch
}

// sendJSON сериализует кадр и ставит его в очередь отправки;
// забитая очередь роняет кадр, а не подключение
func (c *Client) sendJSON(v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		logger.Error("ws не удалось сериализовать кадр", "error", err)
		return
	}
	select {
	case c.Send <- frame:
	default:
	}
}
