package callback

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"caritahub_games/internal/domain"
)

type stubBroadcaster struct {
	mu    sync.Mutex
	calls []domain.Payload
	err   error
}

func (s *stubBroadcaster) BroadcastGameComplete(memberID string, payload domain.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, payload)
	return s.err
}

func (s *stubBroadcaster) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testPayload() domain.Payload {
	return Build("m1", "memory-match", 5, 6, true, 30)
}

// локальный колбэк обязан сработать синхронно, до возврата из Dispatch
func TestDispatch_LocalCallbackSynchronous(t *testing.T) {
	b := &stubBroadcaster{}
	d := NewDispatcher(b, "")

	called := false
	d.Dispatch(Delivery{
		Payload: testPayload(),
		OnComplete: func(p domain.Payload) {
			called = true
			if p.Score != 5 {
				t.Fatalf("в колбэк пришел чужой payload: %+v", p)
			}
		},
	})

	if !called {
		t.Fatalf("локальный колбэк не вызван синхронно")
	}
	if b.count() != 1 {
		t.Fatalf("broadcast должен быть вызван один раз, вызван %d", b.count())
	}
}

// отказ broadcast'а не должен ронять доставку и не отменяет остальные каналы
func TestDispatch_BroadcastFailureSwallowed(t *testing.T) {
	b := &stubBroadcaster{err: errors.New("нет подключений")}
	d := NewDispatcher(b, "")

	called := false
	d.Dispatch(Delivery{
		Payload:    testPayload(),
		OnComplete: func(domain.Payload) { called = true },
	})

	if !called {
		t.Fatalf("локальный колбэк должен сработать несмотря на отказ broadcast'а")
	}
}

// при настроенном URL payload уходит POST'ом как JSON
func TestDispatch_WebhookPosted(t *testing.T) {
	received := make(chan domain.Payload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("ожидался POST, получен %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("ожидался application/json, получен %s", ct)
		}
		var p domain.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("тело не декодируется: %v", err)
		}
		received <- p
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, srv.URL)
	d.Dispatch(Delivery{Payload: testPayload()})

	select {
	case p := <-received:
		if p.MemberID != "m1" || p.MaxScore != 6 {
			t.Fatalf("payload искажен при доставке: %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("REST-доставка не пришла")
	}
}

// переопределение URL на уровне доставки побеждает дефолт диспетчера
func TestDispatch_WebhookOverride(t *testing.T) {
	received := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
	}))
	defer srv.Close()

	d := NewDispatcher(nil, "http://127.0.0.1:0/unreachable")
	d.Dispatch(Delivery{Payload: testPayload(), WebhookURL: srv.URL})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatalf("доставка не ушла на переопределенный URL")
	}
}

// без URL и broadcaster'а Dispatch остается no-op без паники
func TestDispatch_NothingConfigured(t *testing.T) {
	d := NewDispatcher(nil, "")
	d.Dispatch(Delivery{Payload: testPayload()})
}
