package game

import "caritahub_games/internal/domain"

// WordSearchConfig - параметры уровня для Word Search
type WordSearchConfig struct {
	Size       int
	WordCount  int
	Directions []string
}

var wordSearchTiers = map[domain.Difficulty]WordSearchConfig{
	domain.DifficultyEasy:   {Size: 8, WordCount: 5, Directions: []string{"H", "V"}},
	domain.DifficultyMedium: {Size: 10, WordCount: 7, Directions: []string{"H", "V", "D"}},
	domain.DifficultyHard:   {Size: 12, WordCount: 9, Directions: []string{"H", "V", "D", "HR", "VR", "DR"}},
}

// WordSearchTier возвращает конфигурацию уровня с откатом к easy
func WordSearchTier(d domain.Difficulty) WordSearchConfig {
	if cfg, ok := wordSearchTiers[d]; ok {
		return cfg
	}
	return wordSearchTiers[domain.DifficultyEasy]
}

// Cell - координата в сетке
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PlacedWord - слово и занятые им клетки
type PlacedWord struct {
	Word  string `json:"word"`
	Cells []Cell `json:"cells"`
}

// WordSearchPuzzle - сетка с размещёнными словами; проверка выделений
// идёт на клиенте, как и в остальных декларативных играх
type WordSearchPuzzle struct {
	Grid   [][]string   `json:"grid"`
	Words  []string     `json:"words"`
	Placed []PlacedWord `json:"placed"`
	Size   int          `json:"size"`
}

func directionDelta(dir string) (int, int) {
	switch dir {
	case "V":
		return 1, 0
	case "D":
		return 1, 1
	case "HR":
		return 0, -1
	case "VR":
		return -1, 0
	case "DR":
		return 1, -1
	default: // H
		return 0, 1
	}
}

// NewWordSearchPuzzle выбирает слова из банка и строит сетку уровня
func NewWordSearchPuzzle(difficulty domain.Difficulty) WordSearchPuzzle {
	cfg := WordSearchTier(difficulty)
	words := sample(wordSearchBank, cfg.WordCount)

	grid := make([][]string, cfg.Size)
	for r := range grid {
		grid[r] = make([]string, cfg.Size)
	}

	var placed []PlacedWord
	shuffledWords := make([]string, len(words))
	copy(shuffledWords, words)
	shuffle(shuffledWords)

	for _, word := range shuffledWords {
		dirs := make([]string, len(cfg.Directions))
		copy(dirs, cfg.Directions)
		shuffle(dirs)

		placedWord := false
		for _, dir := range dirs {
			dr, dc := directionDelta(dir)

			// до 30 случайных позиций на направление
			for attempt := 0; attempt < 30; attempt++ {
				row := int(secureRandInt(int64(cfg.Size)))
				col := int(secureRandInt(int64(cfg.Size)))

				cells, fits := tryPlace(grid, word, row, col, dr, dc, cfg.Size)
				if !fits {
					continue
				}
				for k, cell := range cells {
					grid[cell.Row][cell.Col] = string(word[k])
				}
				placed = append(placed, PlacedWord{Word: word, Cells: cells})
				placedWord = true
				break
			}
			if placedWord {
				break
			}
		}
	}

	// пустые клетки забиваются случайными заглавными буквами
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for r := 0; r < cfg.Size; r++ {
		for c := 0; c < cfg.Size; c++ {
			if grid[r][c] == "" {
				grid[r][c] = string(letters[secureRandInt(int64(len(letters)))])
			}
		}
	}

	return WordSearchPuzzle{
		Grid:   grid,
		Words:  words,
		Placed: placed,
		Size:   cfg.Size,
	}
}

func tryPlace(grid [][]string, word string, row, col, dr, dc, size int) ([]Cell, bool) {
	cells := make([]Cell, 0, len(word))
	for k := 0; k < len(word); k++ {
		r := row + dr*k
		c := col + dc*k
		if r < 0 || r >= size || c < 0 || c >= size {
			return nil, false
		}
		if grid[r][c] != "" && grid[r][c] != string(word[k]) {
			return nil, false
		}
		cells = append(cells, Cell{Row: r, Col: c})
	}
	return cells, true
}
