package service

import (
	"context"
	"log/slog"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/internal/storage/postgres"
)

type Metrics struct {
	logger   *slog.Logger
	counts   postgres.MetricsRepository
	presence Presence
	notifier Notifier
}

func NewMetricsService(logger *slog.Logger, counts postgres.MetricsRepository, presence Presence, notifier Notifier) *Metrics {
	return &Metrics{logger: logger, counts: counts, presence: presence, notifier: notifier}
}

func (s *Metrics) Snapshot(ctx context.Context) (domain.AdminMetrics, error) {
	active, err := s.counts.CountSOSByStatus(ctx, domain.SOSActive)
	if err != nil {
		return domain.AdminMetrics{}, err
	}
	resolvedToday, err := s.counts.CountResolvedSince(ctx, startOfUTCDay(time.Now()))
	if err != nil {
		return domain.AdminMetrics{}, err
	}
	pending, err := s.counts.CountPendingReports(ctx)
	if err != nil {
		return domain.AdminMetrics{}, err
	}
	suspended, err := s.counts.CountSuspendedUsers(ctx)
	if err != nil {
		return domain.AdminMetrics{}, err
	}
	verified, err := s.counts.CountVerifiedUsers(ctx)
	if err != nil {
		return domain.AdminMetrics{}, err
	}

	return domain.AdminMetrics{
		ActiveIncidents:    active,
		ResolvedToday:      resolvedToday,
		PendingReports:     pending,
		SuspendedUsers:     suspended,
		VerifiedResponders: verified,
		ActiveUsers:        s.presence.CountActiveUsers(),
		GeneratedAt:        time.Now().UTC(),
	}, nil
}

// Refresh recomputes the snapshot and pushes it to live clients. Failures
// are logged and dropped; the next write triggers another attempt.
func (s *Metrics) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	m, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Error("metrics refresh failed", slog.Any("error", err))
		return
	}
	s.notifier.Broadcast(EventMetricsUpdated, m)
}
