package postgres

import (
	"context"
	"log/slog"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResponseLogRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewResponseLogRepo(pool *pgxpool.Pool, logger *slog.Logger) *ResponseLogRepo {
	return &ResponseLogRepo{pool: pool, logger: logger}
}

func (p *ResponseLogRepo) Append(ctx context.Context, entry *domain.ResponseLogEntry) error {
	const op = "postgres.ResponseLog.Append"

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO response_log (id, sos_id, responder_id, action, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		entry.ID,
		entry.SOSID,
		entry.ResponderID,
		entry.Action,
		entry.Note,
		entry.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("sos_id", entry.SOSID.String()))
		return e.WrapError(ctx, op, err)
	}

	return nil
}
