package game

import (
	"sync"
	"testing"

	"caritahub_games/internal/domain"
)

// собирает сигналы Shell без запуска настоящей оболочки сессии
type shellRecorder struct {
	mu       sync.Mutex
	scores   []float64
	outcomes []RawOutcome
}

func (r *shellRecorder) shell() Shell {
	return Shell{
		ReportScore: func(score float64) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.scores = append(r.scores, score)
		},
		Complete: func(raw RawOutcome) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.outcomes = append(r.outcomes, raw)
		},
	}
}

func (r *shellRecorder) lastOutcome(t *testing.T) RawOutcome {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		t.Fatalf("итог не собран")
	}
	return r.outcomes[len(r.outcomes)-1]
}

// игра с подключенной записью сигналов, без горутин симуляции
func newRecordedCatch(d domain.Difficulty) (*CatchGame, *shellRecorder) {
	g := NewCatchGame(d)
	rec := &shellRecorder{}
	g.shell = rec.shell()
	return g, rec
}

func TestCatchTier_FallbackEasy(t *testing.T) {
	cfg := CatchTier(domain.Difficulty("nightmare"))
	if cfg.FallSpeed != catchTiers[domain.DifficultyEasy].FallSpeed {
		t.Fatalf("неизвестный уровень должен откатываться к easy")
	}
}

func TestCatch_BasketClamp(t *testing.T) {
	g, _ := newRecordedCatch(domain.DifficultyEasy)

	g.SetBasket(2.0)
	if got := g.Snapshot().BasketX; got != basketMaxX {
		t.Fatalf("корзина должна упираться в правый край: %v", got)
	}
	g.SetBasket(-1.0)
	if got := g.Snapshot().BasketX; got != basketMinX {
		t.Fatalf("корзина должна упираться в левый край: %v", got)
	}

	g.SetBasket(0.5)
	g.Nudge(1)
	if got := g.Snapshot().BasketX; got != 0.5+keyStep {
		t.Fatalf("шаг клавиши неверен: %v", got)
	}
	g.Tap(-1)
	if got := g.Snapshot().BasketX; got != 0.5+keyStep-tapStep {
		t.Fatalf("шаг тап-зоны неверен: %v", got)
	}
}

func TestCatch_SpawnWithinBounds(t *testing.T) {
	g, _ := newRecordedCatch(domain.DifficultyEasy)
	for i := 0; i < 50; i++ {
		g.Spawn()
	}

	snap := g.Snapshot()
	if snap.TotalSpawned != 50 {
		t.Fatalf("счетчик спавна неверен: %d", snap.TotalSpawned)
	}
	for _, f := range snap.Fruits {
		if f.X < 0.1 || f.X >= 0.9 {
			t.Fatalf("фрукт за пределами спавн-полосы: %v", f.X)
		}
		if f.Y != -FruitSize {
			t.Fatalf("фрукт должен стартовать выше поля: %v", f.Y)
		}
	}
}

// фрукт над корзиной засчитывается, жизнь не тратится
func TestCatchAdvance_CatchesFruit(t *testing.T) {
	g, rec := newRecordedCatch(domain.DifficultyEasy)
	g.SetBasket(0.5)
	g.fruits = []Fruit{{ID: 1, X: 0.5, Y: g.areaH - BasketHeight - FruitSize}}
	g.totalSpawned = 1

	g.Advance(1)

	snap := g.Snapshot()
	if snap.Score != 1 {
		t.Fatalf("фрукт над корзиной должен быть пойман, счет %d", snap.Score)
	}
	if snap.Lives != g.cfg.Lives {
		t.Fatalf("при ловле жизни не тратятся: %d", snap.Lives)
	}
	if len(snap.Fruits) != 0 {
		t.Fatalf("пойманный фрукт должен исчезнуть")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.scores) != 1 || rec.scores[0] != 1 {
		t.Fatalf("живой счет должен уйти в оболочку: %v", rec.scores)
	}
}

// фрукт мимо корзины пролетает вниз и стоит жизнь
func TestCatchAdvance_MissCostsLife(t *testing.T) {
	g, _ := newRecordedCatch(domain.DifficultyEasy)
	g.SetBasket(0.1)
	g.fruits = []Fruit{{ID: 1, X: 0.9, Y: g.areaH - 1}}
	g.totalSpawned = 1

	g.Advance(1)

	snap := g.Snapshot()
	if snap.Lives != g.cfg.Lives-1 {
		t.Fatalf("пролет должен стоить жизнь: %d", snap.Lives)
	}
	if snap.Score != 0 {
		t.Fatalf("пролет не дает очков: %d", snap.Score)
	}
}

// быстрый фрукт, проскакивающий порог ловли за один тик,
// всё равно засчитывается: нижняя граница зоны расширяется на скорость
func TestCatchAdvance_CatchBeatsMiss(t *testing.T) {
	g, _ := newRecordedCatch(domain.DifficultyHard)
	g.SetBasket(0.5)

	g.fruits = []Fruit{{ID: 1, X: 0.5, Y: g.areaH - BasketHeight - 5}}
	g.totalSpawned = 1

	g.Advance(maxTimeScale)

	snap := g.Snapshot()
	if snap.Score != 1 {
		t.Fatalf("ловля должна иметь приоритет над пролетом, счет %d", snap.Score)
	}
	if snap.Lives != g.cfg.Lives {
		t.Fatalf("жизнь не должна тратиться: %d", snap.Lives)
	}
}

// исчерпание жизней завершает партию штатно: completed=true
func TestCatchAdvance_LivesExhausted(t *testing.T) {
	g, rec := newRecordedCatch(domain.DifficultyEasy)
	g.SetBasket(0.1)
	g.lives = 1
	g.totalSpawned = 12
	g.fruits = []Fruit{{ID: 1, X: 0.9, Y: g.areaH - 1}}

	g.Advance(1)

	raw := rec.lastOutcome(t)
	if raw["completed"] != true {
		t.Fatalf("исчерпание жизней - штатный конец раунда: %v", raw)
	}
	if raw["finalScore"] != 0 || raw["maxScore"] != 12 {
		t.Fatalf("итог неверен: %v", raw)
	}
	if !g.Snapshot().Finished {
		t.Fatalf("симуляция должна быть помечена завершенной")
	}

	// после завершения тики ничего не меняют
	g.Advance(1)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.outcomes) != 1 {
		t.Fatalf("итог должен быть собран ровно один раз")
	}
}

// знаменатель не бывает нулевым, даже если ничего не заспавнилось
func TestCatchAdvance_MaxScoreFloor(t *testing.T) {
	g, rec := newRecordedCatch(domain.DifficultyEasy)
	g.lives = 1
	g.fruits = []Fruit{{ID: 1, X: 0.9, Y: g.areaH - 1}}
	g.SetBasket(0.1)

	g.Advance(1)

	raw := rec.lastOutcome(t)
	if raw["maxScore"] != 1 {
		t.Fatalf("пустой знаменатель должен подниматься до 1: %v", raw["maxScore"])
	}
}

// истечение времени: completed=false, фактические счет и знаменатель
func TestCatch_TimeUp(t *testing.T) {
	g, rec := newRecordedCatch(domain.DifficultyMedium)
	g.score = 4
	g.totalSpawned = 9

	g.TimeUp()

	raw := rec.lastOutcome(t)
	if raw["completed"] != false {
		t.Fatalf("истечение времени - недоигранный раунд: %v", raw)
	}
	if raw["finalScore"] != 4 || raw["maxScore"] != 9 {
		t.Fatalf("итог неверен: %v", raw)
	}

	// повторный сигнал не производит второй итог
	g.TimeUp()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.outcomes) != 1 {
		t.Fatalf("итог должен быть собран ровно один раз")
	}
}

func TestCatchAdvance_TimeScaleSpeedsFall(t *testing.T) {
	g, _ := newRecordedCatch(domain.DifficultyEasy)
	g.fruits = []Fruit{{ID: 1, X: 0.5, Y: 0}}
	g.totalSpawned = 1
	g.SetBasket(0.1)

	g.Advance(maxTimeScale)

	snap := g.Snapshot()
	want := g.cfg.FallSpeed * maxTimeScale
	if len(snap.Fruits) != 1 || snap.Fruits[0].Y != want {
		t.Fatalf("скорость должна масштабироваться временем: %+v", snap.Fruits)
	}
}
