package game

import (
	"testing"

	"caritahub_games/internal/domain"
)

func TestNewPatternPuzzle_SequenceShape(t *testing.T) {
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		cfg := PatternTier(d)
		p := NewPatternPuzzle(d)

		if len(p.Sequence) != cfg.MaxLen {
			t.Fatalf("уровень %s: последовательность должна быть длины %d, получено %d", d, cfg.MaxLen, len(p.Sequence))
		}
		for i, pad := range p.Sequence {
			if pad < 0 || pad >= PatternPadCount {
				t.Fatalf("уровень %s: пэд %d вне диапазона: %d", d, i, pad)
			}
		}
		if p.MaxScore != cfg.MaxLen-cfg.StartLen {
			t.Fatalf("уровень %s: знаменатель должен быть %d, получено %d", d, cfg.MaxLen-cfg.StartLen, p.MaxScore)
		}
		if p.StartLen != cfg.StartLen || p.FlashMs != cfg.FlashMs {
			t.Fatalf("уровень %s: параметры партии искажены: %+v", d, p)
		}
	}
}
