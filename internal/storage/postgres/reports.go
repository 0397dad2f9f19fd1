package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReportRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReportRepo {
	return &ReportRepo{pool: pool, logger: logger}
}

func (p *ReportRepo) Create(ctx context.Context, report *domain.Report) error {
	const op = "postgres.Report.Create"

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	report.UpdatedAt = report.CreatedAt

	const query = `
		INSERT INTO reports (id, sos_id, reported_by, reason, resolved, resolution_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		report.ID,
		report.SOSID,
		report.ReportedBy,
		report.Reason,
		report.Resolved,
		report.ResolutionNote,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *ReportRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	const op = "postgres.Report.Get"

	const query = `
		SELECT id, sos_id, reported_by, reason, resolved, resolution_note, created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	var report domain.Report
	if err := p.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.SOSID,
		&report.ReportedBy,
		&report.Reason,
		&report.Resolved,
		&report.ResolutionNote,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &report, nil
}

// MarkResolved closes a report exactly once; a second call finds no open
// row and reports conflict.
func (p *ReportRepo) MarkResolved(ctx context.Context, id uuid.UUID, note string) error {
	const op = "postgres.Report.MarkResolved"

	const query = `
		UPDATE reports
		SET resolved = TRUE, resolution_note = $2, updated_at = NOW()
		WHERE id = $1 AND resolved = FALSE
	`

	cmd, err := p.pool.Exec(ctx, query, id, note)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := p.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, e.ErrConflict)
	}

	return nil
}
