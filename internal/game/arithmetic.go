package game

import (
	"errors"
	"sync"

	"caritahub_games/internal/domain"
)

// ArithmeticConfig - параметры уровня для ежедневной арифметики
type ArithmeticConfig struct {
	Ops       []string
	RangeMin  int
	RangeMax  int
	Questions int
}

var arithmeticTiers = map[domain.Difficulty]ArithmeticConfig{
	domain.DifficultyEasy:   {Ops: []string{"+"}, RangeMin: 1, RangeMax: 20, Questions: 8},
	domain.DifficultyMedium: {Ops: []string{"+", "-"}, RangeMin: 1, RangeMax: 50, Questions: 10},
	domain.DifficultyHard:   {Ops: []string{"+", "-", "×"}, RangeMin: 1, RangeMax: 12, Questions: 12},
}

// ArithmeticTier возвращает конфигурацию уровня с откатом к easy
func ArithmeticTier(d domain.Difficulty) ArithmeticConfig {
	if cfg, ok := arithmeticTiers[d]; ok {
		return cfg
	}
	return arithmeticTiers[domain.DifficultyEasy]
}

// Question - один пример; ответ клиенту не отправляется
type Question struct {
	A      int    `json:"a"`
	Op     string `json:"op"`
	B      int    `json:"b"`
	Answer int    `json:"-"`
}

func randIntRange(min, max int) int {
	return int(secureRandInt(int64(max-min+1))) + min
}

func generateQuestion(cfg ArithmeticConfig) Question {
	op := cfg.Ops[secureRandInt(int64(len(cfg.Ops)))]
	switch op {
	case "×":
		a := randIntRange(1, cfg.RangeMax)
		b := randIntRange(1, cfg.RangeMax)
		return Question{A: a, Op: op, B: b, Answer: a * b}
	case "-":
		a := randIntRange(cfg.RangeMin, cfg.RangeMax)
		b := randIntRange(cfg.RangeMin, a) // b <= a, без отрицательных ответов
		return Question{A: a, Op: op, B: b, Answer: a - b}
	default:
		a := randIntRange(cfg.RangeMin, cfg.RangeMax)
		b := randIntRange(cfg.RangeMin, cfg.RangeMax)
		return Question{A: a, Op: op, B: b, Answer: a + b}
	}
}

var ErrGameFinished = errors.New("игра уже завершена")

// ArithmeticGame - серверная игра в устный счёт: вопросы генерируются
// на старте, ответы проверяются по одному, завершение после последнего
type ArithmeticGame struct {
	mu        sync.Mutex
	questions []Question
	index     int
	score     int
	done      bool
	shell     Shell
}

// NewArithmeticGame генерирует список вопросов для уровня
func NewArithmeticGame(difficulty domain.Difficulty) *ArithmeticGame {
	cfg := ArithmeticTier(difficulty)
	questions := make([]Question, cfg.Questions)
	for i := range questions {
		questions[i] = generateQuestion(cfg)
	}
	return &ArithmeticGame{questions: questions}
}

func (g *ArithmeticGame) Start(shell Shell) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shell = shell
}

func (g *ArithmeticGame) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.done = true
}

// Questions возвращает вопросы для клиента (без ответов - см. json-теги)
func (g *ArithmeticGame) Questions() []Question {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Question, len(g.questions))
	copy(out, g.questions)
	return out
}

// MaxScore - знаменатель итога: общее число вопросов
func (g *ArithmeticGame) MaxScore() int { return len(g.questions) }

// Submit проверяет ответ на текущий вопрос и двигает игру дальше.
// Ответ на последний вопрос завершает сессию через оболочку
func (g *ArithmeticGame) Submit(answer int) (correct bool, index int, err error) {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return false, g.index, ErrGameFinished
	}

	q := g.questions[g.index]
	correct = answer == q.Answer
	if correct {
		g.score++
	}
	index = g.index
	g.index++

	finished := g.index >= len(g.questions)
	if finished {
		g.done = true
	}
	score := g.score
	maxScore := len(g.questions)
	shell := g.shell
	g.mu.Unlock()

	if shell.ReportScore != nil {
		shell.ReportScore(float64(score))
	}
	if finished && shell.Complete != nil {
		shell.Complete(RawOutcome{
			"score":     score,
			"maxScore":  maxScore,
			"completed": true,
		})
	}
	return correct, index, nil
}

// TimeUp фиксирует недоигранный результат по текущему счёту
func (g *ArithmeticGame) TimeUp() {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	g.done = true
	score := g.score
	maxScore := len(g.questions)
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
