package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"caritahub_games/internal/domain"
	"caritahub_games/internal/logger"
	"caritahub_games/internal/metrics"
)

// Broadcaster рассылает сообщение о завершении всем подключениям
// встраивающего хоста (аналог postMessage в родительское окно)
type Broadcaster interface {
	BroadcastGameComplete(memberID string, payload domain.Payload) error
}

const webhookTimeout = 5 * time.Second

// Delivery - параметры одной доставки результата
type Delivery struct {
	Payload domain.Payload

	// локальный синхронный колбэк; за его ошибки отвечает вызывающий
	OnComplete func(domain.Payload)

	// переопределение URL для этой сессии; пусто = дефолт диспетчера
	WebhookURL string
}

// Dispatcher доставляет собранный payload по трём независимым каналам.
// Сбой любого канала изолирован: игра завершена для игрока в любом
// случае, худший исход - потерянная аналитика
type Dispatcher struct {
	broadcaster Broadcaster
	webhookURL  string
	client      *http.Client
	log         *slog.Logger
}

// NewDispatcher создаёт диспетчер; broadcaster может быть nil,
// webhookURL - пустым (REST-доставка тогда отключена)
func NewDispatcher(broadcaster Broadcaster, webhookURL string) *Dispatcher {
	return &Dispatcher{
		broadcaster: broadcaster,
		webhookURL:  webhookURL,
		client:      &http.Client{Timeout: webhookTimeout},
		log:         logger.With("component", "dispatcher"),
	}
}

// Dispatch выполняет доставку в фиксированном порядке:
// 1) локальный колбэк - синхронно, всегда первым;
// 2) broadcast хосту - best-effort, ошибка проглатывается;
// 3) REST POST - только при настроенном URL, отцепленной горутиной.
// Никогда не возвращает ошибку и не паникует
func (d *Dispatcher) Dispatch(del Delivery) {
	metrics.ResultsDispatched.Inc()

	if del.OnComplete != nil {
		del.OnComplete(del.Payload)
	}

	if d.broadcaster != nil {
		if err := d.broadcaster.BroadcastGameComplete(del.Payload.MemberID, del.Payload); err != nil {
			// хост может отвергнуть сообщение - это не ошибка сессии
			metrics.BroadcastFailures.Inc()
			d.log.Warn("broadcast результата отклонён", "member_id", del.Payload.MemberID, "error", err)
		}
	}

	url := del.WebhookURL
	if url == "" {
		url = d.webhookURL
	}
	if url != "" {
		// сетевая доставка не блокирует и не откатывает шаги 1-2
		go d.post(url, del.Payload)
	}
}

func (d *Dispatcher) post(url string, payload domain.Payload) {
	body, err := json.Marshal(payload)
	if err != nil {
		metrics.WebhookFailures.Inc()
		d.log.Error("не удалось сериализовать payload", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		metrics.WebhookFailures.Inc()
		d.log.Error("не удалось построить запрос доставки", "url", url, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.WebhookFailures.Inc()
		d.log.Error("REST-доставка результата не удалась", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.WebhookFailures.Inc()
		d.log.Error("REST-доставка отклонена сервером", "url", url, "status", resp.StatusCode)
		return
	}

	d.log.Info("результат доставлен", "url", url, "game_id", payload.GameID)
}
