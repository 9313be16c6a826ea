package ratelimit

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// cleanupInterval определяет период фоновой очистки неактивных счетчиков
const cleanupInterval = time.Minute

// Guard ограничивает частоту обращений по фиксированным окнам
// Счетчики живут в памяти процесса и исчезают при перезапуске:
// это защита от перебора, а не долговременная квота
type Guard struct {
	counters map[counterKey]*counter
	logger   *slog.Logger
	stopC    chan struct{}
	now      func() time.Time
	mu       sync.RWMutex
}

// counterKey идентифицирует независимый класс лимита
// Разные пары (limit, window) для одного identity не делят состояние:
// жесткий лимит на создание ботов не влияет на лимит чтения
type counterKey struct {
	identity string
	window   time.Duration
	limit    int
}

// counter хранит количество обращений в текущем окне
type counter struct {
	windowStart time.Time
	count       int
	mu          sync.Mutex
}

// Decision - результат проверки допуска
// ResetAt сообщает, когда текущее окно закончится и счетчик обнулится
// (основа для retry-after на транспортном слое)
type Decision struct {
	ResetAt time.Time
	Allowed bool
}

// NewGuard создает guard и запускает фоновую очистку устаревших счетчиков
// Передача nil вместо logger отключает логирование
func NewGuard(logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g := &Guard{
		counters: make(map[counterKey]*counter),
		logger:   logger,
		stopC:    make(chan struct{}),
		now:      time.Now,
	}

	// Запускаем периодическую очистку неактивных счетчиков
	go g.janitor()

	return g
}

// Check регистрирует обращение identity и решает, допустить ли его
// Если текущее окно истекло, счетчик обнуляется и окно начинается заново;
// затем счетчик увеличивается и сравнивается с лимитом
// Check никогда не возвращает ошибку: превышение лимита - обычный исход
func (g *Guard) Check(identity string, limit int, window time.Duration) Decision {
	key := counterKey{identity: identity, limit: limit, window: window}

	g.mu.RLock()
	c, exists := g.counters[key]
	g.mu.RUnlock()

	if !exists {
		g.mu.Lock()
		// Перепроверяем под write-блокировкой: другая goroutine могла
		// создать счетчик между RUnlock и Lock, и терять её инкременты нельзя
		c, exists = g.counters[key]
		if !exists {
			c = &counter{windowStart: g.now()}
			g.counters[key] = c
		}
		g.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := g.now()

	// Если окно истекло, начинаем новое
	if now.After(c.windowStart.Add(window)) {
		c.count = 0
		c.windowStart = now
	}

	c.count++

	allowed := c.count <= limit
	if !allowed {
		g.logger.Warn("admission limit exceeded",
			"identity", identity,
			"limit", limit,
			"window", window,
		)
	}

	return Decision{
		Allowed: allowed,
		ResetAt: c.windowStart.Add(window),
	}
}

// Len возвращает количество живых счетчиков
func (g *Guard) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.counters)
}

// Stop останавливает фоновую очистку
func (g *Guard) Stop() {
	close(g.stopC)
}

// janitor периодически удаляет счетчики, чье окно давно истекло
func (g *Guard) janitor() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.evictExpired()
		case <-g.stopC:
			return
		}
	}
}

// evictExpired удаляет счетчики, не использовавшиеся дольше двух окон
func (g *Guard) evictExpired() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	evicted := 0
	for key, c := range g.counters {
		c.mu.Lock()
		if now.Sub(c.windowStart) > key.window*2 {
			delete(g.counters, key)
			evicted++
		}
		c.mu.Unlock()
	}

	if evicted > 0 {
		g.logger.Debug("evicted idle admission counters", "count", evicted)
	}
}
