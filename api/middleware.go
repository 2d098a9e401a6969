package api

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/killallgit/cardsheet-api/api/types"
	apperrors "github.com/killallgit/cardsheet-api/pkg/errors"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterMaxIdle       = 10 * time.Minute
)

// CORS allows the configured origins. An empty list or "*" allows any origin.
func CORS(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestSizeLimit caps request bodies at maxBytes
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequestLogger logs one line per request through zap
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", strings.TrimSpace(c.Errors.String())))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// clientLimiters tracks one token bucket per client IP
type clientLimiters struct {
	limiters    sync.Map
	stop        chan struct{}
	startOnce   sync.Once
	stopOnce    sync.Once
	maxIdle     time.Duration
	sweepPeriod time.Duration
}

func newClientLimiters() *clientLimiters {
	return &clientLimiters{
		stop:        make(chan struct{}),
		maxIdle:     limiterMaxIdle,
		sweepPeriod: limiterSweepInterval,
	}
}

// PerClientRateLimit rejects clients that exceed rps with a 429
func (l *clientLimiters) PerClientRateLimit(rps float64, burst int) gin.HandlerFunc {
	l.startOnce.Do(func() {
		go l.cleanupLoop()
	})
	if burst <= 0 {
		burst = 1
	}

	return func(c *gin.Context) {
		now := time.Now()
		v, _ := l.limiters.LoadOrStore(c.ClientIP(), newClientLimiter(rps, burst, now))
		cl := v.(*clientLimiter)
		cl.lastSeen.Store(now.UnixNano())

		if !cl.limiter.Allow() {
			types.SendAppError(c, apperrors.RateLimitError("client"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func newClientLimiter(rps float64, burst int, now time.Time) *clientLimiter {
	cl := &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
	cl.lastSeen.Store(now.UnixNano())
	return cl
}

func (l *clientLimiters) cleanupLoop() {
	ticker := time.NewTicker(l.sweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			l.sweep(now)
		case <-l.stop:
			return
		}
	}
}

// sweep drops limiters idle for longer than maxIdle and returns how many remain
func (l *clientLimiters) sweep(now time.Time) int {
	remaining := 0
	l.limiters.Range(func(key, value any) bool {
		cl, ok := value.(*clientLimiter)
		if !ok || now.Sub(time.Unix(0, cl.lastSeen.Load())) > l.maxIdle {
			l.limiters.Delete(key)
			return true
		}
		remaining++
		return true
	})
	return remaining
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (l *clientLimiters) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}
