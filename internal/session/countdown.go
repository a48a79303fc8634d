package session

import (
	"sync"
	"time"
)

// Countdown - обратный отсчёт бюджета времени сессии.
// seconds == nil означает игру без лимита: отсчёт никогда не
// декрементирует и SecondsLeft остаётся nil. Сигнал истечения
// срабатывает ровно один раз; пауза не сбрасывает этот guard.
// Для новой сессии создаётся новый экземпляр
type Countdown struct {
	mu          sync.Mutex
	secondsLeft *int
	active      bool
	expired     bool
	onExpire    func()

	interval time.Duration // 1 секунда; тесты сжимают
	stop     chan struct{}
	stopOnce sync.Once
}

// NewCountdown создаёт отсчёт от seconds (nil = без лимита)
func NewCountdown(seconds *int, onExpire func()) *Countdown {
	var left *int
	if seconds != nil {
		v := *seconds
		left = &v
	}
	return &Countdown{
		secondsLeft: left,
		onExpire:    onExpire,
		interval:    time.Second,
		stop:        make(chan struct{}),
	}
}

// Start активирует отсчёт; для игр без лимита горутина не нужна
func (c *Countdown) Start() {
	c.mu.Lock()
	c.active = true
	timed := c.secondsLeft != nil
	c.mu.Unlock()

	if timed {
		go c.run()
	}
}

func (c *Countdown) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

func (c *Countdown) tick() {
	c.mu.Lock()
	if !c.active || c.expired || c.secondsLeft == nil {
		c.mu.Unlock()
		return
	}
	if *c.secondsLeft > 0 {
		*c.secondsLeft--
	}
	fire := *c.secondsLeft == 0
	if fire {
		c.expired = true
	}
	onExpire := c.onExpire
	c.mu.Unlock()

	if fire {
		c.stopOnce.Do(func() { close(c.stop) })
		if onExpire != nil {
			onExpire()
		}
	}
}

// Pause приостанавливает декремент, не сбрасывая guard истечения
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// Resume возобновляет декремент после паузы
func (c *Countdown) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
}

// Stop останавливает отсчёт навсегда (сессия закончилась)
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
	c.stopOnce.Do(func() { close(c.stop) })
}

// SecondsLeft возвращает остаток (nil для игр без лимита)
func (c *Countdown) SecondsLeft() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.secondsLeft == nil {
		return nil
	}
	v := *c.secondsLeft
	return &v
}
