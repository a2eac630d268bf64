package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency
type Check func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes. The record store is
// required; extra checks (redis, nats) are optional and only degrade.
type HealthHandler struct {
	store   Check
	extra   map[string]Check
	started time.Time
	version string
}

func NewHealthHandler(store Check, version string, extra map[string]Check) *HealthHandler {
	return &HealthHandler{
		store:   store,
		extra:   extra,
		started: time.Now(),
		version: version,
	}
}

// HealthResponse is the /readyz body
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness answers as long as the process serves HTTP
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// probe runs fn and describes the outcome with its latency
func probe(ctx context.Context, fn Check, failed string) (string, bool) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		return failed + ": " + err.Error(), false
	}
	return fmt.Sprintf("healthy (%s)", time.Since(start).Round(time.Millisecond)), true
}

// Readiness probes every dependency concurrently. Only the store decides
// the status code.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]string, len(h.extra)+2)
		ready  bool
	)
	run := func(name string, fn Check, failed string, required bool) {
		defer wg.Done()
		msg, ok := probe(ctx, fn, failed)
		mu.Lock()
		defer mu.Unlock()
		checks[name] = msg
		if required {
			ready = ok
		}
	}

	wg.Add(1 + len(h.extra))
	go run("store", h.store, "unhealthy", true)
	for name, fn := range h.extra {
		go run(name, fn, "degraded", false)
	}
	wg.Wait()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["memory_alloc_mb"] = fmt.Sprintf("%.2f", float64(m.Alloc)/(1<<20))

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	code := http.StatusOK
	if !ready {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Health is the short form used by load balancers: store only
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.store(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}
