package game

import (
	"sync"
	"time"

	"caritahub_games/internal/domain"
)

// CatchConfig - параметры уровня сложности ловли фруктов.
// Это данные, а не ветки кода: движок один на все уровни
type CatchConfig struct {
	FallSpeed        float64       // px за эталонный кадр (16.67мс)
	SpawnInterval    time.Duration // интервал появления фруктов
	TimeLimitSeconds *int          // nil = без лимита
	Lives            int
	BasketWidth      float64 // px
}

const (
	FruitSize    = 40.0 // px - отрисовываемый размер фрукта
	BasketHeight = 44.0 // px

	// эталонная длительность кадра; скорость масштабируется
	// отношением реально прошедшего времени к ней
	referenceFrameMs = 16.67

	// кап масштаба времени: после простоя вкладки объекты
	// не должны перепрыгивать пол-экрана за один тик
	maxTimeScale = 3.0

	basketMinX = 0.05
	basketMaxX = 0.95
	keyStep    = 0.06 // сдвиг корзины за нажатие стрелки
	tapStep    = 0.15 // сдвиг за нажатие боковой тап-зоны

	DefaultAreaWidth  = 320.0
	DefaultAreaHeight = 480.0

	defaultTickInterval = 16 * time.Millisecond
)

var fruitSymbols = []string{"🍎", "🍊", "🍋", "🍇", "🍓", "🍑", "🍒", "🥝"}

var catchTiers = map[domain.Difficulty]CatchConfig{
	domain.DifficultyEasy:   {FallSpeed: 2, SpawnInterval: 2000 * time.Millisecond, TimeLimitSeconds: nil, Lives: 5, BasketWidth: 110},
	domain.DifficultyMedium: {FallSpeed: 3.5, SpawnInterval: 1400 * time.Millisecond, TimeLimitSeconds: intPtr(120), Lives: 3, BasketWidth: 90},
	domain.DifficultyHard:   {FallSpeed: 5, SpawnInterval: 900 * time.Millisecond, TimeLimitSeconds: intPtr(90), Lives: 3, BasketWidth: 70},
}

func intPtr(n int) *int { return &n }

// CatchTier возвращает конфигурацию уровня; неизвестный уровень
// откатывается к easy
func CatchTier(d domain.Difficulty) CatchConfig {
	if cfg, ok := catchTiers[d]; ok {
		return cfg
	}
	return catchTiers[domain.DifficultyEasy]
}

// Fruit - падающий объект; X нормализован в [0,1], Y в пикселях от верха
type Fruit struct {
	ID     int64   `json:"id"`
	Symbol string  `json:"symbol"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// CatchState - снимок состояния симуляции для отрисовки клиентом
type CatchState struct {
	Fruits       []Fruit `json:"fruits"`
	BasketX      float64 `json:"basket_x"`
	Score        int     `json:"score"`
	Lives        int     `json:"lives"`
	TotalSpawned int     `json:"total_spawned"`
	Finished     bool    `json:"finished"`
}

// CatchGame - серверная симуляция ловли падающих фруктов.
// Состояние принадлежит движку; оболочка сессии получает только
// снапшоты счёта и жизней через Shell
type CatchGame struct {
	mu           sync.Mutex
	cfg          CatchConfig
	areaW, areaH float64
	fruits       []Fruit
	basketX      float64
	score        int
	lives        int
	totalSpawned int
	finished     bool
	nextID       int64

	shell        Shell
	tickInterval time.Duration
	stop         chan struct{}
	stopOnce     sync.Once
}

// NewCatchGame создаёт симуляцию для заданного уровня сложности
func NewCatchGame(difficulty domain.Difficulty) *CatchGame {
	cfg := CatchTier(difficulty)
	return &CatchGame{
		cfg:          cfg,
		areaW:        DefaultAreaWidth,
		areaH:        DefaultAreaHeight,
		basketX:      0.5,
		lives:        cfg.Lives,
		tickInterval: defaultTickInterval,
		stop:         make(chan struct{}),
	}
}

// Config возвращает параметры уровня
func (g *CatchGame) Config() CatchConfig { return g.cfg }

// SetArea задаёт размеры игрового поля клиента (px)
func (g *CatchGame) SetArea(w, h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if w > 0 {
		g.areaW = w
	}
	if h > 0 {
		g.areaH = h
	}
}

// Start запускает спавн-таймер и цикл симуляции
func (g *CatchGame) Start(shell Shell) {
	g.mu.Lock()
	g.shell = shell
	g.mu.Unlock()

	// спавн идёт по своему фиксированному интервалу, независимо от тиков
	go func() {
		ticker := time.NewTicker(g.cfg.SpawnInterval)
		defer ticker.Stop()
		for {
			select {
			case <-g.stop:
				return
			case <-ticker.C:
				g.Spawn()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(g.tickInterval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-g.stop:
				return
			case now := <-ticker.C:
				scale := now.Sub(last).Seconds() * 1000 / referenceFrameMs
				if scale > maxTimeScale {
					scale = maxTimeScale
				}
				last = now
				g.Advance(scale)
			}
		}
	}()
}

// Stop синхронно останавливает оба цикла; уже запланированные
// колбэки становятся no-op благодаря guard'у finished
func (g *CatchGame) Stop() {
	g.mu.Lock()
	g.finished = true
	g.mu.Unlock()
	g.stopOnce.Do(func() { close(g.stop) })
}

// Spawn добавляет фрукт в случайной позиции по X с отступом от краёв
func (g *CatchGame) Spawn() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return
	}
	g.fruits = append(g.fruits, Fruit{
		ID:     g.nextID,
		Symbol: fruitSymbols[secureRandInt(int64(len(fruitSymbols)))],
		X:      secureRandFloat()*0.8 + 0.1, // 10%-90% ширины поля
		Y:      -FruitSize,                  // старт выше видимой области
	})
	g.nextID++
	g.totalSpawned++
}

// SetBasket ставит корзину в абсолютную нормализованную позицию
// (указатель или касание); последний писатель побеждает
func (g *CatchGame) SetBasket(x float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.basketX = clampBasket(x)
}

// Nudge сдвигает корзину на фиксированный шаг клавиши (dir = -1 или +1)
func (g *CatchGame) Nudge(dir int) {
	g.shiftBasket(float64(dir) * keyStep)
}

// Tap сдвигает корзину на шаг боковой тап-зоны (dir = -1 или +1)
func (g *CatchGame) Tap(dir int) {
	g.shiftBasket(float64(dir) * tapStep)
}

func (g *CatchGame) shiftBasket(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.basketX = clampBasket(g.basketX + delta)
}

func clampBasket(x float64) float64 {
	if x < basketMinX {
		return basketMinX
	}
	if x > basketMaxX {
		return basketMaxX
	}
	return x
}

// Advance выполняет один тик симуляции с заданным масштабом времени.
// Порядок внутри тика: сначала ловля, затем пролёт мимо, затем
// уведомление о счёте/жизнях - строго в этой последовательности
func (g *CatchGame) Advance(timeScale float64) {
	g.mu.Lock()
	if g.finished {
		g.mu.Unlock()
		return
	}

	speed := g.cfg.FallSpeed * timeScale
	catchBottom := g.areaH - BasketHeight - 4 // порог Y для проверки ловли
	catchTop := catchBottom - FruitSize
	basketCx := g.basketX * g.areaW
	halfBasket := g.cfg.BasketWidth/2 + FruitSize/2

	survived := g.fruits[:0]
	scoreChanged := false
	livesChanged := false

	for _, fruit := range g.fruits {
		fruit.Y += speed

		// зона ловли проверяется раньше пролёта: при пересечении зон
		// в одном тике ловля имеет приоритет
		if fruit.Y >= catchTop && fruit.Y <= catchBottom+speed+4 {
			fruitCx := fruit.X * g.areaW
			if abs(fruitCx-basketCx) <= halfBasket {
				g.score++
				scoreChanged = true
				continue
			}
		}

		if fruit.Y > g.areaH {
			g.lives--
			livesChanged = true
			continue
		}

		survived = append(survived, fruit)
	}
	g.fruits = survived

	finishedNow := livesChanged && g.lives <= 0
	if finishedNow {
		g.finished = true
	}

	score := g.score
	maxScore := g.totalSpawned
	shell := g.shell
	g.mu.Unlock()

	// колбэки вне мьютекса: завершение идёт в оболочку сессии,
	// которая может обратно остановить игру
	if scoreChanged && shell.ReportScore != nil {
		shell.ReportScore(float64(score))
	}
	if finishedNow {
		g.stopOnce.Do(func() { close(g.stop) })
		if shell.Complete != nil {
			if maxScore == 0 {
				maxScore = 1 // знаменатель не бывает нулевым
			}
			shell.Complete(RawOutcome{
				"finalScore": score,
				"maxScore":   maxScore,
				"completed":  true,
			})
		}
	}
}

// TimeUp собирает итог при истечении времени: раунд не доигран,
// completed = false, счёт и знаменатель - фактические на момент сигнала
func (g *CatchGame) TimeUp() {
	g.mu.Lock()
	if g.finished {
		g.mu.Unlock()
		return
	}
	g.finished = true
	score := g.score
	maxScore := g.totalSpawned
	if maxScore == 0 {
		maxScore = 1
	}
	shell := g.shell
	g.mu.Unlock()

	g.stopOnce.Do(func() { close(g.stop) })
	if shell.Complete != nil {
		shell.Complete(RawOutcome{
			"finalScore": score,
			"maxScore":   maxScore,
			"completed":  false,
		})
	}
}

// Snapshot возвращает копию состояния для отправки клиенту
func (g *CatchGame) Snapshot() CatchState {
	g.mu.Lock()
	defer g.mu.Unlock()
	fruits := make([]Fruit, len(g.fruits))
	copy(fruits, g.fruits)
	return CatchState{
		Fruits:       fruits,
		BasketX:      g.basketX,
		Score:        g.score,
		Lives:        g.lives,
		TotalSpawned: g.totalSpawned,
		Finished:     g.finished,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
