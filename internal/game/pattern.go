package game

import "caritahub_games/internal/domain"

// PatternConfig - параметры уровня для Pattern Sequence
type PatternConfig struct {
	StartLen int
	MaxLen   int
	FlashMs  int
}

var patternTiers = map[domain.Difficulty]PatternConfig{
	domain.DifficultyEasy:   {StartLen: 2, MaxLen: 6, FlashMs: 800},
	domain.DifficultyMedium: {StartLen: 3, MaxLen: 8, FlashMs: 600},
	domain.DifficultyHard:   {StartLen: 4, MaxLen: 10, FlashMs: 450},
}

// PatternTier возвращает конфигурацию уровня с откатом к easy
func PatternTier(d domain.Difficulty) PatternConfig {
	if cfg, ok := patternTiers[d]; ok {
		return cfg
	}
	return patternTiers[domain.DifficultyEasy]
}

// 4 пэда: red=0, blue=1, yellow=2, green=3
const PatternPadCount = 4

// PatternPuzzle - данные партии: полная последовательность до MaxLen
// генерируется заранее, клиент показывает её кусками по раундам.
// Счёт = пройденные раунды сверх стартовой длины
type PatternPuzzle struct {
	Sequence []int `json:"sequence"`
	StartLen int   `json:"start_len"`
	MaxLen   int   `json:"max_len"`
	FlashMs  int   `json:"flash_ms"`
	MaxScore int   `json:"max_score"`
}

// NewPatternPuzzle генерирует последовательность пэдов для уровня
func NewPatternPuzzle(difficulty domain.Difficulty) PatternPuzzle {
	cfg := PatternTier(difficulty)
	seq := make([]int, cfg.MaxLen)
	for i := range seq {
		seq[i] = int(secureRandInt(PatternPadCount))
	}
	return PatternPuzzle{
		Sequence: seq,
		StartLen: cfg.StartLen,
		MaxLen:   cfg.MaxLen,
		FlashMs:  cfg.FlashMs,
		MaxScore: cfg.MaxLen - cfg.StartLen,
	}
}
