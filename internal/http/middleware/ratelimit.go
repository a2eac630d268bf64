package middleware

import (
	"sync"
	"time"
)

type clientInfo struct {
	last  time.Time
	count int64
}

// memoryWindow is the in-process fixed window used when Redis is not
// configured or not reachable
type memoryWindow struct {
	mu      sync.Mutex
	window  time.Duration
	clients map[string]*clientInfo
}

func newMemoryWindow(window time.Duration) *memoryWindow {
	return &memoryWindow{window: window, clients: make(map[string]*clientInfo)}
}

// incr counts a request for ident and returns the count in the current window
func (m *memoryWindow) incr(ident string, now time.Time) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	ci, ok := m.clients[ident]
	if !ok || now.Sub(ci.last) > m.window {
		if !ok && len(m.clients) >= 10000 {
			m.sweep(now)
		}
		m.clients[ident] = &clientInfo{last: now, count: 1}
		return 1
	}
	ci.count++
	return ci.count
}

// sweep drops expired windows; caller holds mu
func (m *memoryWindow) sweep(now time.Time) {
	for k, ci := range m.clients {
		if now.Sub(ci.last) > m.window {
			delete(m.clients, k)
		}
	}
}
