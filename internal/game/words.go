package game

import "caritahub_games/internal/domain"

// Пулы слов для Word Recall.
// easy: конкретные бытовые предметы (максимально знакомые)
// medium: более широкий набор существительных
// hard: смешанные категории, включая абстрактные
var wordPools = map[domain.Difficulty][]string{
	domain.DifficultyEasy: {
		"apple", "chair", "table", "clock", "bread",
		"glass", "towel", "lamp", "phone", "flower",
		"door", "cup", "book", "keys", "spoon",
		"brush", "soap", "shoe", "coat", "hat",
	},
	domain.DifficultyMedium: {
		"garden", "market", "bridge", "camera", "letter",
		"candle", "bottle", "basket", "mirror", "window",
		"pillow", "carpet", "ribbon", "wallet", "pencil",
		"vessel", "lantern", "feather", "pebble", "anchor",
		"curtain", "blanket", "cabinet", "pitcher", "hammer",
	},
	domain.DifficultyHard: {
		"freedom", "harvest", "journey", "silence", "whisper",
		"crystal", "compass", "balance", "texture", "pattern",
		"shelter", "courage", "mystery", "chapter", "horizon",
		"climate", "segment", "mineral", "current", "portion",
		"contract", "venture", "complex", "passage", "reserve",
	},
}

// SampleWords возвращает случайную выборку из n слов пула уровня
func SampleWords(difficulty domain.Difficulty, count int) []string {
	pool, ok := wordPools[difficulty]
	if !ok {
		pool = wordPools[domain.DifficultyEasy]
	}
	return sample(pool, count)
}

// Банк слов для Word Search (подобраны для пожилых - частые и узнаваемые)
var wordSearchBank = []string{
	"CAT", "DOG", "SUN", "HAT", "BAG", "CUP", "MAP", "JAR",
	"BOOK", "BIRD", "CAKE", "FISH", "LAMP", "MOON", "TREE", "DOOR",
	"CLOCK", "CLOUD", "DANCE", "FLAME", "GLOVE", "HEART", "LIGHT", "MUSIC",
	"BREAD", "CHAIR", "DREAM", "EAGLE", "FENCE", "GRAPE",
}
