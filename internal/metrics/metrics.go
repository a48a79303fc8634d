package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsStarted - счётчик стартов сессий по играм
	SessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caritahub_sessions_started_total",
		Help: "Количество стартовавших игровых сессий",
	}, []string{"game"})

	// SessionsCompleted - счётчик завершений по играм и исходу
	SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caritahub_sessions_completed_total",
		Help: "Количество завершённых игровых сессий",
	}, []string{"game", "completed"})

	// ResultsDispatched - сколько payload'ов прошло через диспетчер
	ResultsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caritahub_results_dispatched_total",
		Help: "Количество собранных и отправленных результатов",
	})

	// WebhookFailures - неудачные REST-доставки (не фатальны)
	WebhookFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caritahub_webhook_failures_total",
		Help: "Количество неудачных REST-доставок результата",
	})

	// BroadcastFailures - неудачные broadcast'ы GAME_COMPLETE
	BroadcastFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caritahub_broadcast_failures_total",
		Help: "Количество неудачных broadcast-доставок результата",
	})

	// WSConnections - текущее число WebSocket-подключений
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "caritahub_ws_connections",
		Help: "Текущее количество WebSocket-подключений",
	})
)
