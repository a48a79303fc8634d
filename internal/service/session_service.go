package service

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"caritahub_games/internal/callback"
	"caritahub_games/internal/domain"
	"caritahub_games/internal/game"
	"caritahub_games/internal/logger"
	"caritahub_games/internal/metrics"
	"caritahub_games/internal/session"
)

var (
	ErrUnknownGame     = errors.New("неизвестная игра")
	ErrSessionNotFound = errors.New("сессия не найдена")
	ErrWrongGame       = errors.New("операция не поддерживается этой игрой")
)

// GameInfo - карточка игры для каталога
type GameInfo struct {
	ID    domain.GameID `json:"id"`
	Title string        `json:"title"`
}

// порядок каталога фиксирован, чтобы фронт не прыгал
var catalogOrder = []domain.GameID{
	domain.GameMemoryMatch,
	domain.GameWordRecall,
	domain.GamePatternSequence,
	domain.GameDailyArithmetic,
	domain.GameWordSearch,
	domain.GameCatchFruit,
}

// Games возвращает каталог доступных игр
func Games() []GameInfo {
	out := make([]GameInfo, 0, len(catalogOrder))
	for _, id := range catalogOrder {
		out = append(out, GameInfo{ID: id, Title: domain.GameTitles[id]})
	}
	return out
}

// StartResult - данные, которые клиент получает при старте сессии:
// идентификатор, бюджет времени и игровые данные партии
type StartResult struct {
	SessionID        string            `json:"session_id"`
	GameID           domain.GameID     `json:"game_id"`
	Title            string            `json:"title"`
	Difficulty       domain.Difficulty `json:"difficulty"`
	TimeLimitSeconds *int              `json:"time_limit_seconds"`
	Game             any               `json:"game,omitempty"`
}

// ArithmeticRound - партия устного счёта для клиента
type ArithmeticRound struct {
	Questions []game.Question `json:"questions"`
	Total     int             `json:"total"`
}

// RecallRound - партия запоминания слов для клиента
type RecallRound struct {
	Words         []string `json:"words"`
	StudySeconds  int      `json:"study_seconds"`
	RecallSeconds int      `json:"recall_seconds"`
	Phase         string   `json:"phase"`
}

// CatchRound - параметры симуляции ловли фруктов для клиента
type CatchRound struct {
	FallSpeed       float64 `json:"fall_speed"`
	SpawnIntervalMs int64   `json:"spawn_interval_ms"`
	Lives           int     `json:"lives"`
	BasketWidth     float64 `json:"basket_width"`
	AreaWidth       float64 `json:"area_width"`
	AreaHeight      float64 `json:"area_height"`
}

// собранная для старта игра: что подключить к оболочке и что отдать клиенту
type gameSetup struct {
	hosted     game.Hosted
	payload    any
	timeLimit  *int
	defaultMax float64
}

func buildGame(gameID domain.GameID, difficulty domain.Difficulty) (gameSetup, error) {
	switch gameID {
	case domain.GameMemoryMatch:
		puzzle := game.NewMemoryPuzzle(difficulty)
		return gameSetup{
			payload:    puzzle,
			timeLimit:  puzzle.TimeLimitSeconds,
			defaultMax: float64(puzzle.Pairs),
		}, nil

	case domain.GamePatternSequence:
		puzzle := game.NewPatternPuzzle(difficulty)
		return gameSetup{
			payload:    puzzle,
			defaultMax: float64(puzzle.MaxScore),
		}, nil

	case domain.GameWordSearch:
		puzzle := game.NewWordSearchPuzzle(difficulty)
		return gameSetup{
			payload:    puzzle,
			defaultMax: float64(len(puzzle.Words)),
		}, nil

	case domain.GameDailyArithmetic:
		g := game.NewArithmeticGame(difficulty)
		return gameSetup{
			hosted:     g,
			payload:    ArithmeticRound{Questions: g.Questions(), Total: g.MaxScore()},
			defaultMax: float64(g.MaxScore()),
		}, nil

	case domain.GameWordRecall:
		g := game.NewRecallGame(difficulty)
		cfg := g.Config()
		total := cfg.StudySeconds + cfg.RecallSeconds
		return gameSetup{
			hosted: g,
			payload: RecallRound{
				Words:         g.Words(),
				StudySeconds:  cfg.StudySeconds,
				RecallSeconds: cfg.RecallSeconds,
				Phase:         g.Phase(),
			},
			timeLimit:  &total,
			defaultMax: float64(g.MaxScore()),
		}, nil

	case domain.GameCatchFruit:
		g := game.NewCatchGame(difficulty)
		cfg := g.Config()
		return gameSetup{
			hosted: g,
			payload: CatchRound{
				FallSpeed:       cfg.FallSpeed,
				SpawnIntervalMs: cfg.SpawnInterval.Milliseconds(),
				Lives:           cfg.Lives,
				BasketWidth:     cfg.BasketWidth,
				AreaWidth:       game.DefaultAreaWidth,
				AreaHeight:      game.DefaultAreaHeight,
			},
			timeLimit:  cfg.TimeLimitSeconds,
			defaultMax: 1, // симуляция сама считает знаменатель
		}, nil

	default:
		return gameSetup{}, ErrUnknownGame
	}
}

type sessionEntry struct {
	engine      *session.Engine
	gameID      domain.GameID
	difficulty  domain.Difficulty
	defaultMax  float64
	callbackURL string // переопределение URL доставки для этой сессии
	onResult    func(domain.Payload)
	touched     time.Time
}

// SessionService - реестр живых сессий: старт, маршрутизация ходов,
// replay и уборка отработавших записей
type SessionService struct {
	mu         sync.RWMutex
	entries    map[string]*sessionEntry
	dispatcher *callback.Dispatcher
	ttl        time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionService создаёт реестр поверх диспетчера результатов
func NewSessionService(dispatcher *callback.Dispatcher, ttl time.Duration) *SessionService {
	return &SessionService{
		entries:    make(map[string]*sessionEntry),
		dispatcher: dispatcher,
		ttl:        ttl,
		stop:       make(chan struct{}),
	}
}

// StartSession создаёт оболочку сессии, подключает игру и запускает её.
// callbackURL переопределяет URL REST-доставки для этой сессии (пусто = дефолт)
func (s *SessionService) StartSession(memberID string, gameID domain.GameID, difficulty domain.Difficulty, callbackURL string) (*StartResult, error) {
	if !gameID.IsValid() {
		return nil, ErrUnknownGame
	}

	setup, err := buildGame(gameID, difficulty)
	if err != nil {
		return nil, err
	}

	engine := session.NewEngine(memberID, gameID, difficulty, setup.timeLimit, s.dispatch)
	if setup.hosted != nil {
		engine.Attach(setup.hosted)
	}
	engine.SetDefaultMaxScore(setup.defaultMax)

	if err := engine.Start(); err != nil {
		return nil, err
	}
	state := engine.State()

	s.mu.Lock()
	s.entries[state.Session.ID] = &sessionEntry{
		engine:      engine,
		gameID:      gameID,
		difficulty:  difficulty,
		defaultMax:  setup.defaultMax,
		callbackURL: callbackURL,
		touched:     time.Now(),
	}
	s.mu.Unlock()

	metrics.SessionsStarted.WithLabelValues(string(gameID)).Inc()

	return &StartResult{
		SessionID:        state.Session.ID,
		GameID:           gameID,
		Title:            domain.GameTitles[gameID],
		Difficulty:       difficulty,
		TimeLimitSeconds: setup.timeLimit,
		Game:             setup.payload,
	}, nil
}

// dispatch - единственный выход результата из оболочки наружу
func (s *SessionService) dispatch(sess *domain.Session, res domain.Result) {
	metrics.SessionsCompleted.
		WithLabelValues(string(sess.GameID), strconv.FormatBool(res.Completed)).Inc()

	payload := callback.Build(
		sess.MemberID, string(sess.GameID),
		res.Score, res.MaxScore, res.Completed, res.DurationSeconds,
	)

	onResult, webhookURL := s.deliveryFor(sess.ID)
	s.dispatcher.Dispatch(callback.Delivery{
		Payload:    payload,
		OnComplete: onResult,
		WebhookURL: webhookURL,
	})
}

func (s *SessionService) deliveryFor(id string) (func(domain.Payload), string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.entries[id]; ok {
		return entry.onResult, entry.callbackURL
	}
	return nil, ""
}

// SetResultListener подписывает транспорт (например, WS-клиента)
// на результат сессии; вызывается синхронно до broadcast'а
func (s *SessionService) SetResultListener(id string, f func(domain.Payload)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return ErrSessionNotFound
	}
	entry.onResult = f
	return nil
}

func (s *SessionService) entry(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.touched = time.Now()
	return entry, nil
}

// Engine возвращает оболочку сессии для прямой работы транспорта
func (s *SessionService) Engine(id string) (*session.Engine, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	return entry.engine, nil
}

// State возвращает снимок сессии
func (s *SessionService) State(id string) (session.Snapshot, error) {
	entry, err := s.entry(id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return entry.engine.State(), nil
}

// ReportScore принимает живой счёт от клиента (декларативные игры)
func (s *SessionService) ReportScore(id string, score float64) error {
	entry, err := s.entry(id)
	if err != nil {
		return err
	}
	entry.engine.ReportScore(score)
	return nil
}

// Complete завершает сессию по сигналу клиента. Пропущенный клиентом
// знаменатель подставляется из параметров партии
func (s *SessionService) Complete(id string, score, maxScore, completed any) error {
	entry, err := s.entry(id)
	if err != nil {
		return err
	}
	if entry.engine.Phase() != domain.PhasePlaying {
		return session.ErrNotPlaying
	}
	if maxScore == nil {
		maxScore = entry.defaultMax
	}
	entry.engine.Complete(game.RawOutcome{
		"score":     score,
		"maxScore":  maxScore,
		"completed": completed,
	})
	return nil
}

// Replay сбрасывает завершённую сессию и запускает новую партию
// той же игры и сложности; прежний результат не переносится
func (s *SessionService) Replay(id string) (*StartResult, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	if err := entry.engine.Replay(); err != nil {
		return nil, err
	}

	setup, err := buildGame(entry.gameID, entry.difficulty)
	if err != nil {
		return nil, err
	}
	if setup.hosted != nil {
		entry.engine.Attach(setup.hosted)
	}
	entry.engine.SetDefaultMaxScore(setup.defaultMax)

	if err := entry.engine.Start(); err != nil {
		return nil, err
	}
	state := entry.engine.State()

	// новая партия регистрируется под новым id, прежний забывается
	s.mu.Lock()
	delete(s.entries, id)
	entry.defaultMax = setup.defaultMax
	entry.onResult = nil
	entry.touched = time.Now()
	s.entries[state.Session.ID] = entry
	s.mu.Unlock()

	metrics.SessionsStarted.WithLabelValues(string(entry.gameID)).Inc()

	return &StartResult{
		SessionID:        state.Session.ID,
		GameID:           entry.gameID,
		Title:            domain.GameTitles[entry.gameID],
		Difficulty:       entry.difficulty,
		TimeLimitSeconds: setup.timeLimit,
		Game:             setup.payload,
	}, nil
}

// SubmitArithmetic проверяет ответ на текущий вопрос устного счёта
func (s *SessionService) SubmitArithmetic(id string, answer int) (correct bool, index int, err error) {
	entry, err := s.entry(id)
	if err != nil {
		return false, 0, err
	}
	g, ok := entry.engine.Hosted().(*game.ArithmeticGame)
	if !ok {
		return false, 0, ErrWrongGame
	}
	return g.Submit(answer)
}

// SubmitRecallWord сверяет введённое слово со списком запоминания
func (s *SessionService) SubmitRecallWord(id, word string) (string, error) {
	entry, err := s.entry(id)
	if err != nil {
		return "", err
	}
	g, ok := entry.engine.Hosted().(*game.RecallGame)
	if !ok {
		return "", ErrWrongGame
	}
	return g.SubmitWord(word)
}

// SetRecallPhase переключает игру запоминания в фазу воспроизведения
func (s *SessionService) SetRecallPhase(id, phase string) error {
	entry, err := s.entry(id)
	if err != nil {
		return err
	}
	g, ok := entry.engine.Hosted().(*game.RecallGame)
	if !ok {
		return ErrWrongGame
	}
	if phase != game.RecallPhaseRecall {
		return game.ErrWrongPhase
	}
	return g.EnterRecall()
}

// StartCleanup запускает периодическую уборку отработавших сессий
func (s *SessionService) StartCleanup() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.cleanupStale()
			}
		}
	}()
}

// Stop останавливает уборку (для тестов и плавной остановки)
func (s *SessionService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionService) cleanupStale() {
	now := time.Now()

	s.mu.Lock()
	var stale []string
	for id, entry := range s.entries {
		if entry.engine.Phase() == domain.PhasePlaying {
			continue
		}
		if now.Sub(entry.touched) > s.ttl {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(s.entries, id)
	}
	count := len(s.entries)
	s.mu.Unlock()

	if len(stale) > 0 {
		logger.Info("уборка сессий", "removed", len(stale), "alive", count)
	}
}
