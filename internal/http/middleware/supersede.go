package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tasktracker/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	RegionHeader     = "X-View-Region"
	GenerationHeader = "X-View-Generation"
)

const (
	// maxRegions triggers a sweep of finished entries
	maxRegions = 10000
	// regionIdle is how long a finished entry is kept to reject late arrivals
	regionIdle = 10 * time.Minute
)

type inflight struct {
	gen    int64
	cancel context.CancelCauseFunc
	// done is when the request finished; zero while in flight
	done time.Time
}

// Superseder cancels a client's in-flight request for a view region when a
// newer generation for the same region arrives. The cancelled request sees
// domain.ErrSuperseded as its context cause. Requests without both headers
// pass through untouched.
type Superseder struct {
	mu      sync.Mutex
	regions map[string]*inflight
	now     func() time.Time
}

func NewSuperseder() *Superseder {
	return &Superseder{regions: make(map[string]*inflight), now: time.Now}
}

// sweep drops entries finished more than regionIdle ago; caller holds mu
func (s *Superseder) sweep(now time.Time) {
	for k, r := range s.regions {
		if !r.done.IsZero() && now.Sub(r.done) > regionIdle {
			delete(s.regions, k)
		}
	}
}

func (s *Superseder) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		region := c.GetHeader(RegionHeader)
		gen, err := strconv.ParseInt(c.GetHeader(GenerationHeader), 10, 64)
		if region == "" || err != nil {
			c.Next()
			return
		}
		key := c.ClientIP() + "|" + region

		ctx, cancel := context.WithCancelCause(c.Request.Context())
		defer cancel(nil)
		mine := &inflight{gen: gen, cancel: cancel}

		s.mu.Lock()
		cur, ok := s.regions[key]
		if !ok && len(s.regions) >= maxRegions {
			s.sweep(s.now())
		}
		if ok {
			if gen < cur.gen {
				s.mu.Unlock()
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": domain.ErrSuperseded.Error()})
				return
			}
			if cur.cancel != nil {
				cur.cancel(domain.ErrSuperseded)
			}
		}
		s.regions[key] = mine
		s.mu.Unlock()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		s.mu.Lock()
		if s.regions[key] == mine {
			// keep the generation so late arrivals of older ones are rejected
			mine.cancel = nil
			mine.done = s.now()
		}
		s.mu.Unlock()
	}
}

// Superseded reports whether ctx was cancelled by a newer request
func Superseded(ctx context.Context) bool {
	return context.Cause(ctx) == domain.ErrSuperseded
}
