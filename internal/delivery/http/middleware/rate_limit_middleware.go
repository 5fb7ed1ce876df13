package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"health-management/pkg/response"

	"golang.org/x/time/rate"
)

const (
	visitorCleanupInterval = time.Minute
	visitorIdleThreshold   = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	b        int

	stopChan chan struct{}
	stopped  atomic.Bool
}

// NewRateLimitMiddleware starts a background sweep of idle visitors. Call
// Stop during shutdown.
func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		r:        rate.Limit(rps),
		b:        burst,
		stopChan: make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

func (m *RateLimitMiddleware) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter(clientIP(r)).Allow() {
			response.TooManyRequests(w, "Too many requests, please slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) limiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, exists := m.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(m.r, m.b)}
		m.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (m *RateLimitMiddleware) cleanupLoop() {
	ticker := time.NewTicker(visitorCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.mu.Lock()
			for ip, v := range m.visitors {
				if time.Since(v.lastSeen) > visitorIdleThreshold {
					delete(m.visitors, ip)
				}
			}
			m.mu.Unlock()
		}
	}
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
