package domain

// GameID идентифицирует мини-игру на платформе
type GameID string

const (
	GameMemoryMatch     GameID = "memory-match"
	GameWordRecall      GameID = "word-recall"
	GamePatternSequence GameID = "pattern-sequence"
	GameDailyArithmetic GameID = "daily-arithmetic"
	GameWordSearch      GameID = "word-search"
	GameCatchFruit      GameID = "catch-falling-fruit"
)

// GameTitles - отображаемые названия игр
var GameTitles = map[GameID]string{
	GameMemoryMatch:     "Memory Match",
	GameWordRecall:      "Word Recall",
	GamePatternSequence: "Pattern Sequence",
	GameDailyArithmetic: "Daily Arithmetic",
	GameWordSearch:      "Word Search",
	GameCatchFruit:      "Catch the Falling Fruit",
}

// IsValid проверяет, что игра известна платформе
func (g GameID) IsValid() bool {
	_, ok := GameTitles[g]
	return ok
}
