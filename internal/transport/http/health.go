package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_queue/internal/ports"
)

// HealthStatus - статус компонента.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

const healthCheckTimeout = 2 * time.Second

// Check - результат проверки компонента.
type Check struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	DurationMs int64        `json:"duration_ms"`
}

// CheckFunc - проверка одного компонента.
type CheckFunc func(ctx context.Context) Check

type healthResponse struct {
	Status        HealthStatus     `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Health - /health: 200 при healthy/degraded, 503 если хоть одна проверка unhealthy.
type Health struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	version string
	started time.Time
}

func NewHealth(version string) *Health {
	return &Health{
		checks:  make(map[string]CheckFunc),
		version: version,
		started: time.Now(),
	}
}

func (h *Health) Register(name string, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = fn
}

func (h *Health) handle(c *gin.Context) {
	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	for k, v := range h.checks {
		checks[k] = v
	}
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	results := make(map[string]Check, len(checks))
	overall := StatusHealthy
	for name, fn := range checks {
		res := fn(ctx)
		results[name] = res
		switch {
		case res.Status == StatusUnhealthy:
			overall = StatusUnhealthy
		case res.Status == StatusDegraded && overall == StatusHealthy:
			overall = StatusDegraded
		}
	}

	code := http.StatusOK
	if overall == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, healthResponse{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		Checks:        results,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// PingCheck - unhealthy, если ping вернул ошибку.
func PingCheck(ping func(context.Context) error) CheckFunc {
	return func(ctx context.Context) Check {
		start := time.Now()
		if err := ping(ctx); err != nil {
			return Check{Status: StatusUnhealthy, Message: err.Error(), DurationMs: time.Since(start).Milliseconds()}
		}
		return Check{Status: StatusHealthy, DurationMs: time.Since(start).Milliseconds()}
	}
}

// QueueCheck - заполненная очередь делает сервис degraded: новые заказы отклоняются.
func QueueCheck(service ports.OrderService) CheckFunc {
	return func(context.Context) Check {
		st := service.QueueStatus()
		if st.Full {
			return Check{Status: StatusDegraded, Message: "order queue is full"}
		}
		return Check{Status: StatusHealthy}
	}
}
