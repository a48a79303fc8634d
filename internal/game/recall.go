package game

import (
	"errors"
	"strings"
	"sync"

	"caritahub_games/internal/domain"
)

// RecallConfig - параметры уровня для Word Recall
type RecallConfig struct {
	Count         int
	StudySeconds  int
	RecallSeconds int
}

var recallTiers = map[domain.Difficulty]RecallConfig{
	domain.DifficultyEasy:   {Count: 5, StudySeconds: 30, RecallSeconds: 60},
	domain.DifficultyMedium: {Count: 8, StudySeconds: 25, RecallSeconds: 60},
	domain.DifficultyHard:   {Count: 12, StudySeconds: 20, RecallSeconds: 60},
}

// RecallTier возвращает конфигурацию уровня с откатом к easy
func RecallTier(d domain.Difficulty) RecallConfig {
	if cfg, ok := recallTiers[d]; ok {
		return cfg
	}
	return recallTiers[domain.DifficultyEasy]
}

const (
	RecallPhaseStudy  = "study"
	RecallPhaseRecall = "recall"
)

var ErrWrongPhase = errors.New("действие недоступно в текущей фазе")

// Результат попытки вспомнить слово
const (
	RecallFound    = "found"
	RecallAlready  = "already"
	RecallNotFound = "notFound"
)

// RecallGame - серверная игра на запоминание слов: фаза изучения,
// затем фаза воспроизведения со сверкой по списку
type RecallGame struct {
	mu       sync.Mutex
	cfg      RecallConfig
	words    []string
	phase    string
	recalled map[string]bool
	done     bool
	shell    Shell
}

// NewRecallGame выбирает слова уровня и начинает фазу изучения
func NewRecallGame(difficulty domain.Difficulty) *RecallGame {
	cfg := RecallTier(difficulty)
	return &RecallGame{
		cfg:      cfg,
		words:    SampleWords(difficulty, cfg.Count),
		phase:    RecallPhaseStudy,
		recalled: make(map[string]bool),
	}
}

func (g *RecallGame) Start(shell Shell) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shell = shell
}

func (g *RecallGame) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.done = true
}

// Words возвращает список для фазы изучения
func (g *RecallGame) Words() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.words))
	copy(out, g.words)
	return out
}

// Config возвращает параметры уровня
func (g *RecallGame) Config() RecallConfig { return g.cfg }

// MaxScore - знаменатель итога: размер списка
func (g *RecallGame) MaxScore() int { return len(g.words) }

// Phase возвращает текущую фазу
func (g *RecallGame) Phase() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// EnterRecall переключает игру из изучения в воспроизведение
func (g *RecallGame) EnterRecall() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done {
		return ErrGameFinished
	}
	g.phase = RecallPhaseRecall
	return nil
}

// SubmitWord сверяет введённое слово со списком. Повторы не засчитываются.
// Когда вспомнены все слова, сессия завершается
func (g *RecallGame) SubmitWord(word string) (result string, err error) {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return "", ErrGameFinished
	}
	if g.phase != RecallPhaseRecall {
		g.mu.Unlock()
		return "", ErrWrongPhase
	}

	word = strings.ToLower(strings.TrimSpace(word))
	switch {
	case word == "":
		g.mu.Unlock()
		return RecallNotFound, nil
	case g.recalled[word]:
		result = RecallAlready
	case containsWord(g.words, word):
		g.recalled[word] = true
		result = RecallFound
	default:
		result = RecallNotFound
	}

	score := len(g.recalled)
	maxScore := len(g.words)
	finished := score == maxScore
	if finished {
		g.done = true
	}
	shell := g.shell
	g.mu.Unlock()

	if result == RecallFound && shell.ReportScore != nil {
		shell.ReportScore(float64(score))
	}
	if finished && shell.Complete != nil {
		shell.Complete(RawOutcome{
			"score":     score,
			"maxScore":  maxScore,
			"completed": true,
		})
	}
	return result, nil
}

// TimeUp фиксирует результат по вспомненным на данный момент словам
func (g *RecallGame) TimeUp() {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	g.done = true
	score := len(g.recalled)
	maxScore := len(g.words)
	shell := g.shell
	g.mu.Unlock()

	if shell.Complete != nil {
		shell.Complete(RawOutcome{
			"score":     score,
			"maxScore":  maxScore,
			"completed": false,
		})
	}
}

func containsWord(words []string, w string) bool {
	for _, v := range words {
		if v == w {
			return true
		}
	}
	return false
}
