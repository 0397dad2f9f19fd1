package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepo(pool *pgxpool.Pool, logger *slog.Logger) *UserRepo {
	return &UserRepo{pool: pool, logger: logger}
}

const userColumns = `id, name, email, password_hash, skills, trust_score, verified, suspended, role, created_at, updated_at`

func (p *UserRepo) Create(ctx context.Context, user *domain.User) error {
	const op = "postgres.User.Create"

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}

	const query = `
		INSERT INTO users (id, name, email, password_hash, skills, trust_score, verified, suspended, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := p.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Skills,
		user.TrustScore,
		user.Verified,
		user.Suspended,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *UserRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "postgres.User.Get"

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return p.scanOne(ctx, op, query, id)
}

func (p *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgres.User.GetByEmail"

	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userColumns)
	return p.scanOne(ctx, op, query, strings.TrimSpace(email))
}

func (p *UserRepo) scanOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Skills,
		&u.TrustScore,
		&u.Verified,
		&u.Suspended,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return &u, nil
}

// AdjustTrust applies a delta atomically, clamped to the [0,5] range the
// entity declares, and returns the resulting score.
func (p *UserRepo) AdjustTrust(ctx context.Context, id uuid.UUID, delta float64) (float64, error) {
	const op = "postgres.User.AdjustTrust"

	const query = `
		UPDATE users
		SET trust_score = LEAST($3, GREATEST($2, trust_score + $4)),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING trust_score
	`

	var score float64
	err := p.pool.QueryRow(ctx, query, id, domain.TrustScoreMin, domain.TrustScoreMax, delta).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return 0, e.WrapError(ctx, op, err)
	}

	return score, nil
}

func (p *UserRepo) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	const op = "postgres.User.SetSuspended"

	const query = `UPDATE users SET suspended = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := p.pool.Exec(ctx, query, id, suspended)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// ListAlertRecipients returns emails of every non-suspended user except the
// excluded one (the incident creator).
func (p *UserRepo) ListAlertRecipients(ctx context.Context, exclude uuid.UUID) ([]string, error) {
	const op = "postgres.User.ListAlertRecipients"

	const query = `
		SELECT email
		FROM users
		WHERE suspended = FALSE AND id <> $1 AND email <> ''
	`

	rows, err := p.pool.Query(ctx, query, exclude)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return emails, nil
}
