// Package scheduler runs the periodic background jobs of the bot.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/gateway"
)

// ServerStatus is the reachability of the course server.
type ServerStatus string

const (
	StatusUnknown  ServerStatus = "unknown"  // not checked yet
	StatusOnline   ServerStatus = "online"   // health endpoint answered 2xx
	StatusDegraded ServerStatus = "degraded" // server answered with an error
	StatusOffline  ServerStatus = "offline"  // no response
)

const healthTimeout = 5 * time.Second

// HealthChecker is implemented by *gateway.Client.
type HealthChecker interface {
	Health(ctx context.Context) (gateway.Health, error)
}

// HealthMonitor polls the health endpoint and keeps the last status.
type HealthMonitor struct {
	scheduler *gocron.Scheduler
	api       HealthChecker
	interval  time.Duration
	log       *zap.Logger

	mu        sync.RWMutex
	status    ServerStatus
	checkedAt time.Time
}

func NewHealthMonitor(api HealthChecker, interval time.Duration, log *zap.Logger) *HealthMonitor {
	return &HealthMonitor{
		scheduler: gocron.NewScheduler(time.UTC),
		api:       api,
		interval:  interval,
		log:       log,
		status:    StatusUnknown,
	}
}

// Start schedules the first check immediately and then every interval.
func (m *HealthMonitor) Start() error {
	_, err := m.scheduler.Every(m.interval).Do(func() {
		m.Check(context.Background())
	})
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop terminates polling.
func (m *HealthMonitor) Stop() {
	m.scheduler.Stop()
}

// Check polls the server once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) ServerStatus {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	_, err := m.api.Health(ctx)
	status := classify(err)

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.checkedAt = time.Now()
	m.mu.Unlock()

	if status != prev {
		m.log.Info("server status changed",
			zap.String("from", string(prev)),
			zap.String("to", string(status)),
			zap.Error(err),
		)
	}
	return status
}

// Status returns the last known status and when it was taken.
func (m *HealthMonitor) Status() (ServerStatus, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status, m.checkedAt
}

func classify(err error) ServerStatus {
	switch {
	case err == nil:
		return StatusOnline
	case gateway.StatusOf(err) != 0:
		return StatusDegraded
	default:
		return StatusOffline
	}
}
