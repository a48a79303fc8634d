package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"caritahub_games/internal/callback"
	"caritahub_games/internal/domain"
	"caritahub_games/internal/game"
	"caritahub_games/internal/logger"
)

var (
	ErrNotIdle    = errors.New("сессия уже запущена")
	ErrNotPlaying = errors.New("сессия не в фазе игры")
	ErrNotEnded   = errors.New("сессия ещё не завершена")
)

// Dispatch вызывается ровно один раз на каждую игровую фазу
type Dispatch func(sess *domain.Session, res domain.Result)

// Engine - оболочка, внутри которой живёт каждая мини-игра:
// конечный автомат idle → playing → ended → idle (replay).
// Оболочка переиспользуема, но каждая фаза playing - это новая
// Session; Result производится не более одного раза на экземпляр
type Engine struct {
	mu sync.Mutex

	memberID   string
	gameID     domain.GameID
	difficulty domain.Difficulty
	timeLimit  *int

	phase     domain.Phase
	sess      *domain.Session
	countdown *Countdown
	hosted    game.Hosted
	lastScore float64

	// знаменатель для запасного пути истечения времени,
	// когда игра сама итог не собирает
	defaultMaxScore float64

	// passthrough живого счёта для UI; на завершение не влияет
	onScore func(score float64)

	dispatch Dispatch
	now      func() time.Time

	// интервал отсчёта; тесты сжимают
	countdownInterval time.Duration
}

// NewEngine создаёт оболочку в фазе idle
func NewEngine(memberID string, gameID domain.GameID, difficulty domain.Difficulty, timeLimit *int, dispatch Dispatch) *Engine {
	return &Engine{
		memberID:          memberID,
		gameID:            gameID,
		difficulty:        difficulty,
		timeLimit:         timeLimit,
		phase:             domain.PhaseIdle,
		dispatch:          dispatch,
		now:               time.Now,
		countdownInterval: time.Second,
	}
}

// Attach подключает размещаемую игру; вызывается до Start
func (e *Engine) Attach(h game.Hosted) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hosted = h
}

// SetDefaultMaxScore задаёт знаменатель для форсированного завершения
func (e *Engine) SetDefaultMaxScore(m float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defaultMaxScore = m
}

// SetScoreListener подписывает UI-слой на живой счёт
func (e *Engine) SetScoreListener(f func(score float64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onScore = f
}

// Start переводит оболочку из idle в playing: создаёт свежую Session,
// фиксирует startedAt, запускает отсчёт и активирует игру
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.phase != domain.PhaseIdle {
		e.mu.Unlock()
		return ErrNotIdle
	}

	e.sess = &domain.Session{
		ID:               uuid.NewString(),
		MemberID:         e.memberID,
		GameID:           e.gameID,
		Difficulty:       e.difficulty,
		TimeLimitSeconds: e.timeLimit,
		StartedAt:        e.now(),
	}
	e.phase = domain.PhasePlaying
	e.lastScore = 0

	e.countdown = NewCountdown(e.timeLimit, e.timeExpired)
	e.countdown.interval = e.countdownInterval
	cd := e.countdown
	hosted := e.hosted
	sessID := e.sess.ID
	e.mu.Unlock()

	cd.Start()
	if hosted != nil {
		hosted.Start(game.Shell{
			ReportScore: e.ReportScore,
			Complete:    e.Complete,
			SecondsLeft: e.SecondsLeft,
		})
	}

	logger.Info("сессия запущена",
		"session_id", sessID, "member_id", e.memberID,
		"game_id", e.gameID, "difficulty", e.difficulty)
	return nil
}

// ReportScore - passthrough живого счёта; валиден только в playing
func (e *Engine) ReportScore(score float64) {
	e.mu.Lock()
	if e.phase != domain.PhasePlaying {
		e.mu.Unlock()
		return
	}
	e.lastScore = score
	onScore := e.onScore
	e.mu.Unlock()

	if onScore != nil {
		onScore(score)
	}
}

// Complete - единственная точка завершения. Действует только первый
// вызов: гонка между исходом игры и истечением таймера разрешается
// этим guard'ом, второй сигнал отбрасывается, не ставится в очередь
func (e *Engine) Complete(raw game.RawOutcome) {
	e.mu.Lock()
	if e.phase != domain.PhasePlaying || e.sess == nil || e.sess.Result != nil {
		e.mu.Unlock()
		return
	}

	e.phase = domain.PhaseEnded

	dur := int(math.Round(e.now().Sub(e.sess.StartedAt).Seconds()))
	if dur < 0 {
		dur = 0
	}

	score, ok := raw["score"]
	if !ok {
		score = raw["finalScore"]
	}
	completed := any(true)
	if v, ok := raw["completed"]; ok {
		completed = v
	}

	res := domain.Result{
		Score:           callback.Number(score),
		MaxScore:        callback.Number(raw["maxScore"]),
		Completed:       callback.Bool(completed),
		DurationSeconds: dur,
	}
	e.sess.Result = &res

	sess := e.sess
	cd := e.countdown
	hosted := e.hosted
	dispatch := e.dispatch
	e.mu.Unlock()

	if cd != nil {
		cd.Stop()
	}
	if hosted != nil {
		hosted.Stop()
	}

	logger.Info("сессия завершена",
		"session_id", sess.ID, "game_id", sess.GameID,
		"score", res.Score, "max_score", res.MaxScore,
		"completed", res.Completed, "duration_s", res.DurationSeconds)

	if dispatch != nil {
		dispatch(sess, res)
	}
}

// timeExpired - путь форсированного завершения от отсчёта.
// Сначала шанс игре собрать собственный итог (TimeUp), затем
// запасной путь с последним отрепорченным счётом; guard в Complete
// гарантирует, что сработает ровно один из них
func (e *Engine) timeExpired() {
	e.mu.Lock()
	if e.phase != domain.PhasePlaying {
		e.mu.Unlock()
		return
	}
	hosted := e.hosted
	lastScore := e.lastScore
	maxScore := e.defaultMaxScore
	e.mu.Unlock()

	if ta, ok := hosted.(game.TimeAware); ok {
		ta.TimeUp()
	}

	e.Complete(game.RawOutcome{
		"score":     lastScore,
		"maxScore":  maxScore,
		"completed": false,
	})
}

// Replay отбрасывает завершённую сессию и возвращает оболочку в idle.
// Прежний Result не переживает возврат - replay начинает с чистого листа
func (e *Engine) Replay() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != domain.PhaseEnded {
		return ErrNotEnded
	}
	e.phase = domain.PhaseIdle
	e.sess = nil
	e.countdown = nil
	e.hosted = nil
	e.lastScore = 0
	return nil
}

// SecondsLeft возвращает остаток времени (nil для игр без лимита и в idle)
func (e *Engine) SecondsLeft() *int {
	e.mu.Lock()
	cd := e.countdown
	e.mu.Unlock()
	if cd == nil {
		return nil
	}
	return cd.SecondsLeft()
}

// Snapshot - снимок состояния оболочки для API
type Snapshot struct {
	Phase       domain.Phase    `json:"phase"`
	Session     *domain.Session `json:"session,omitempty"`
	SecondsLeft *int            `json:"seconds_left"`
	LiveScore   float64         `json:"live_score"`
}

// State возвращает снимок для отдачи клиенту
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	var sess *domain.Session
	if e.sess != nil {
		s := *e.sess
		sess = &s
	}
	phase := e.phase
	lastScore := e.lastScore
	e.mu.Unlock()

	return Snapshot{
		Phase:       phase,
		Session:     sess,
		SecondsLeft: e.SecondsLeft(),
		LiveScore:   lastScore,
	}
}

// Hosted возвращает подключённую игру (для маршрутизации ходов)
func (e *Engine) Hosted() game.Hosted {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hosted
}

// Phase возвращает текущую фазу
func (e *Engine) Phase() domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}
