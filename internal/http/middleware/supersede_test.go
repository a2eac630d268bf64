package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewRequest(region, gen string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set(RegionHeader, region)
	req.Header.Set(GenerationHeader, gen)
	return req
}

func TestSuperseder_NewerCancelsOlder(t *testing.T) {
	s := NewSuperseder()
	started := make(chan struct{})
	r := gin.New()
	r.GET("/view", s.Handler(), func(c *gin.Context) {
		if c.GetHeader(GenerationHeader) == "1" {
			close(started)
			select {
			case <-c.Request.Context().Done():
				if Superseded(c.Request.Context()) {
					c.JSON(http.StatusConflict, gin.H{"error": "superseded"})
					return
				}
			case <-time.After(5 * time.Second):
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var (
		wg  sync.WaitGroup
		old = httptest.NewRecorder()
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.ServeHTTP(old, viewRequest("today", "1"))
	}()
	<-started

	fresh := httptest.NewRecorder()
	r.ServeHTTP(fresh, viewRequest("today", "2"))
	wg.Wait()

	assert.Equal(t, http.StatusOK, fresh.Code)
	assert.Equal(t, http.StatusConflict, old.Code)

	// an older generation arriving late is rejected outright
	late := httptest.NewRecorder()
	r.ServeHTTP(late, viewRequest("today", "1"))
	assert.Equal(t, http.StatusConflict, late.Code)
}

func TestSuperseder_RegionsAreIndependent(t *testing.T) {
	s := NewSuperseder()
	r := gin.New()
	r.GET("/view", s.Handler(), func(c *gin.Context) {
		require.NoError(t, c.Request.Context().Err())
		c.Status(http.StatusNoContent)
	})

	for _, req := range []*http.Request{
		viewRequest("today", "5"),
		viewRequest("archive", "1"),
		viewRequest("today", "5"),
		httptest.NewRequest(http.MethodGet, "/view", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestSuperseder_SweepsFinishedRegions(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	s := NewSuperseder()
	s.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/view", s.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	// a full table of finished loads, plus one still running
	for i := 0; i < maxRegions-1; i++ {
		s.regions[fmt.Sprintf("10.0.0.%d|today", i)] = &inflight{gen: 1, done: now}
	}
	s.regions["10.0.1.1|today"] = &inflight{gen: 1, cancel: func(error) {}}

	now = now.Add(regionIdle + time.Minute)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, viewRequest("insights", "1"))
	require.Equal(t, http.StatusOK, w.Code)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.regions, 2)
	assert.Contains(t, s.regions, "10.0.1.1|today")
}

func TestSuperseder_RecentFinishedRegionRejectsLate(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	s := NewSuperseder()
	s.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/view", s.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, viewRequest("today", "5"))
	require.Equal(t, http.StatusOK, w.Code)

	now = now.Add(time.Minute)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, viewRequest("today", "4"))
	assert.Equal(t, http.StatusConflict, w.Code)
}
