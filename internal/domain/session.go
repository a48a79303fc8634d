package domain

import "time"

// Phase описывает фазу жизненного цикла сессии
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

// Difficulty - уровень сложности игры
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty приводит произвольную строку к известному уровню сложности.
// Неизвестные значения откатываются к easy - это не ошибка
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s)
	default:
		return DifficultyEasy
	}
}

// Session - одно прохождение мини-игры, от старта до единственного Result.
// Создаётся заново при каждом старте, никогда не переиспользуется
type Session struct {
	ID               string     `json:"id"`
	MemberID         string     `json:"member_id"`
	GameID           GameID     `json:"game_id"`
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitSeconds *int       `json:"time_limit_seconds"` // nil = без лимита
	StartedAt        time.Time  `json:"started_at"`
	Result           *Result    `json:"result,omitempty"`
}

// Result - неизменяемый итог сессии, производится ровно один раз
type Result struct {
	Score           float64 `json:"score"`
	MaxScore        float64 `json:"max_score"`
	Completed       bool    `json:"completed"`
	DurationSeconds int     `json:"duration_seconds"`
}
