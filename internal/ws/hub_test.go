package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"caritahub_games/internal/callback"
	"caritahub_games/internal/domain"
)

// Hub должен удовлетворять контракту broadcast-канала диспетчера
var _ callback.Broadcaster = (*Hub)(nil)

func testClient(memberID string) *Client {
	return &Client{
		MemberID: memberID,
		Send:     make(chan []byte, 4),
		Done:     make(chan struct{}),
	}
}

func TestHub_BroadcastGameComplete(t *testing.T) {
	hub := NewHub()
	c1 := testClient("m1")
	c2 := testClient("m1")
	other := testClient("m2")
	hub.Register(c1)
	hub.Register(c2)
	hub.Register(other)

	payload := callback.Build("m1", "catch-falling-fruit", 3, 7, true, 55)
	if err := hub.BroadcastGameComplete("m1", payload); err != nil {
		t.Fatalf("broadcast не удался: %v", err)
	}

	// кадр уходит во все подключения участника
	for i, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.Send:
			var frame struct {
				Type    string         `json:"type"`
				Payload domain.Payload `json:"payload"`
			}
			if err := json.Unmarshal(raw, &frame); err != nil {
				t.Fatalf("кадр не декодируется: %v", err)
			}
			if frame.Type != "GAME_COMPLETE" {
				t.Fatalf("тип кадра неверен: %s", frame.Type)
			}
			if frame.Payload.Score != 3 || frame.Payload.MaxScore != 7 {
				t.Fatalf("payload кадра искажен: %+v", frame.Payload)
			}
		default:
			t.Fatalf("подключение %d не получило кадр", i)
		}
	}

	// чужой участник кадр не получает
	select {
	case <-other.Send:
		t.Fatalf("кадр ушел чужому участнику")
	default:
	}
}

func TestHub_BroadcastNoConnections(t *testing.T) {
	hub := NewHub()
	payload := callback.Build("ghost", "memory-match", 1, 6, true, 10)
	if err := hub.BroadcastGameComplete("ghost", payload); !errors.Is(err, ErrNoConnections) {
		t.Fatalf("без подключений должен быть ErrNoConnections, получено %v", err)
	}
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub := NewHub()
	c := testClient("m1")
	hub.Register(c)
	hub.OnDisconnect(c)

	payload := callback.Build("m1", "memory-match", 1, 6, true, 10)
	if err := hub.BroadcastGameComplete("m1", payload); !errors.Is(err, ErrNoConnections) {
		t.Fatalf("после отключения участник должен исчезнуть из реестра, получено %v", err)
	}
}
