package workers

import (
	"context"
	"log/slog"
	"time"

	"nearhelp/internal/obs"
)

type MetricsRefresher interface {
	Refresh(ctx context.Context)
}

type PresenceCounter interface {
	CountActiveUsers() int
}

// MetricsTicker pushes a fresh metrics snapshot to live clients on a fixed
// interval and mirrors the presence count into the exporter gauge. Writes
// trigger refreshes on their own; the ticker covers the idle gaps so
// dashboards do not go stale.
type MetricsTicker struct {
	logger   *slog.Logger
	metrics  MetricsRefresher
	presence PresenceCounter
	interval time.Duration
}

func NewMetricsTicker(logger *slog.Logger, metrics MetricsRefresher, presence PresenceCounter, interval time.Duration) *MetricsTicker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &MetricsTicker{
		logger:   logger,
		metrics:  metrics,
		presence: presence,
		interval: interval,
	}
}

func (w *MetricsTicker) Run(ctx context.Context) {
	w.logger.Info("metricsTicker STARTED", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("metricsTicker STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			obs.SetActiveUsers(w.presence.CountActiveUsers())
			w.metrics.Refresh(ctx)
		}
	}
}
