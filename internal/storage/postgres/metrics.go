package postgres

import (
	"context"
	"log/slog"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MetricsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewMetricsRepo(pool *pgxpool.Pool, logger *slog.Logger) *MetricsRepo {
	return &MetricsRepo{pool: pool, logger: logger}
}

func (p *MetricsRepo) CountSOSByStatus(ctx context.Context, status domain.SOSStatus) (int64, error) {
	const op = "postgres.Metrics.CountSOSByStatus"
	return p.countRow(ctx, op, `SELECT COUNT(*) FROM sos WHERE status = $1`, status)
}

func (p *MetricsRepo) CountResolvedSince(ctx context.Context, since time.Time) (int64, error) {
	const op = "postgres.Metrics.CountResolvedSince"
	return p.countRow(ctx, op, `SELECT COUNT(*) FROM sos WHERE status = 'resolved' AND resolved_at >= $1`, since)
}

func (p *MetricsRepo) CountPendingReports(ctx context.Context) (int64, error) {
	const op = "postgres.Metrics.CountPendingReports"
	return p.countRow(ctx, op, `SELECT COUNT(*) FROM reports WHERE resolved = FALSE`)
}

func (p *MetricsRepo) CountSuspendedUsers(ctx context.Context) (int64, error) {
	const op = "postgres.Metrics.CountSuspendedUsers"
	return p.countRow(ctx, op, `SELECT COUNT(*) FROM users WHERE suspended = TRUE`)
}

func (p *MetricsRepo) CountVerifiedUsers(ctx context.Context) (int64, error) {
	const op = "postgres.Metrics.CountVerifiedUsers"
	return p.countRow(ctx, op, `SELECT COUNT(*) FROM users WHERE verified = TRUE`)
}

func (p *MetricsRepo) countRow(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}
	return n, nil
}
