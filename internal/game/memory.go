package game

import "caritahub_games/internal/domain"

// MemoryConfig - параметры уровня для Memory Match
type MemoryConfig struct {
	Cols             int
	Rows             int
	Pairs            int
	TimeLimitSeconds *int
}

var memoryTiers = map[domain.Difficulty]MemoryConfig{
	domain.DifficultyEasy:   {Cols: 4, Rows: 3, Pairs: 6, TimeLimitSeconds: nil},
	domain.DifficultyMedium: {Cols: 4, Rows: 4, Pairs: 8, TimeLimitSeconds: intPtr(120)},
	domain.DifficultyHard:   {Cols: 5, Rows: 4, Pairs: 10, TimeLimitSeconds: intPtr(90)},
}

// MemoryTier возвращает конфигурацию уровня с откатом к easy
func MemoryTier(d domain.Difficulty) MemoryConfig {
	if cfg, ok := memoryTiers[d]; ok {
		return cfg
	}
	return memoryTiers[domain.DifficultyEasy]
}

// эмодзи-символы лицевых сторон карт
var memorySymbols = []string{
	"🌸", "🎵", "⭐", "🌙", "🍎", "🦋", "🌈", "🎈",
	"🐢", "🌻", "🎨", "🏡", "🌿", "🦁", "🎭", "🔔",
}

// MemoryCard - карта в перемешанной колоде
type MemoryCard struct {
	ID     int    `json:"id"`
	Symbol string `json:"symbol"`
}

// MemoryPuzzle - данные партии: колода генерируется на сервере,
// сама игра (перевороты, сравнение пар) идёт на клиенте
type MemoryPuzzle struct {
	Cards            []MemoryCard `json:"cards"`
	Cols             int          `json:"cols"`
	Pairs            int          `json:"pairs"`
	TimeLimitSeconds *int         `json:"time_limit_seconds"`
}

// NewMemoryPuzzle собирает и перемешивает колоду пар для уровня
func NewMemoryPuzzle(difficulty domain.Difficulty) MemoryPuzzle {
	cfg := MemoryTier(difficulty)
	cards := make([]MemoryCard, 0, cfg.Pairs*2)
	for i := 0; i < cfg.Pairs; i++ {
		symbol := memorySymbols[i]
		cards = append(cards,
			MemoryCard{ID: i * 2, Symbol: symbol},
			MemoryCard{ID: i*2 + 1, Symbol: symbol},
		)
	}
	shuffle(cards)
	return MemoryPuzzle{
		Cards:            cards,
		Cols:             cfg.Cols,
		Pairs:            cfg.Pairs,
		TimeLimitSeconds: cfg.TimeLimitSeconds,
	}
}
