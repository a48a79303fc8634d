package game

import (
	"testing"

	"caritahub_games/internal/domain"
)

func TestNewMemoryPuzzle_PairsComplete(t *testing.T) {
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		cfg := MemoryTier(d)
		p := NewMemoryPuzzle(d)

		if len(p.Cards) != cfg.Pairs*2 {
			t.Fatalf("уровень %s: колода должна содержать %d карт, получено %d", d, cfg.Pairs*2, len(p.Cards))
		}
		if p.Cols != cfg.Cols || p.Pairs != cfg.Pairs {
			t.Fatalf("уровень %s: параметры партии искажены: %+v", d, p)
		}

		// каждый символ встречается ровно дважды, id уникальны
		bySymbol := map[string]int{}
		seenIDs := map[int]bool{}
		for _, card := range p.Cards {
			bySymbol[card.Symbol]++
			if seenIDs[card.ID] {
				t.Fatalf("уровень %s: id карты %d повторяется", d, card.ID)
			}
			seenIDs[card.ID] = true
		}
		for sym, n := range bySymbol {
			if n != 2 {
				t.Fatalf("уровень %s: символ %s встречается %d раз", d, sym, n)
			}
		}
	}
}

func TestMemoryTier_TimeLimits(t *testing.T) {
	if MemoryTier(domain.DifficultyEasy).TimeLimitSeconds != nil {
		t.Fatalf("easy играется без лимита времени")
	}
	if l := MemoryTier(domain.DifficultyMedium).TimeLimitSeconds; l == nil || *l != 120 {
		t.Fatalf("лимит medium неверен: %v", l)
	}
	if l := MemoryTier(domain.DifficultyHard).TimeLimitSeconds; l == nil || *l != 90 {
		t.Fatalf("лимит hard неверен: %v", l)
	}
}
