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

type SOSRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSOSRepo(pool *pgxpool.Pool, logger *slog.Logger) *SOSRepo {
	return &SOSRepo{pool: pool, logger: logger}
}

const sosColumns = `
	id,
	crisis_type,
	description,
	ST_Y(geo_point::geometry) AS lat,
	ST_X(geo_point::geometry) AS lng,
	address,
	radius_meters,
	status,
	anonymous,
	created_by,
	resolved_at,
	created_at,
	updated_at`

func (p *SOSRepo) Create(ctx context.Context, sos *domain.SOS) error {
	const op = "postgres.SOS.Create"

	if sos.ID == uuid.Nil {
		sos.ID = uuid.New()
	}
	if sos.CreatedAt.IsZero() {
		sos.CreatedAt = time.Now().UTC()
	}
	sos.UpdatedAt = sos.CreatedAt
	if sos.Status == "" {
		sos.Status = domain.SOSActive
	}

	const query = `
		INSERT INTO sos (id, crisis_type, description, geo_point, address, radius_meters, status, anonymous, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := p.pool.Exec(ctx, query,
		sos.ID,
		sos.CrisisType,
		sos.Description,
		sos.Lng,
		sos.Lat,
		sos.Address,
		sos.RadiusMeters,
		sos.Status,
		sos.Anonymous,
		sos.CreatedBy,
		sos.CreatedAt,
		sos.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *SOSRepo) Get(ctx context.Context, id uuid.UUID) (*domain.SOS, error) {
	const op = "postgres.SOS.Get"

	query := fmt.Sprintf(`SELECT %s FROM sos WHERE id = $1`, sosColumns)

	var sos domain.SOS
	if err := p.pool.QueryRow(ctx, query, id).Scan(
		&sos.ID,
		&sos.CrisisType,
		&sos.Description,
		&sos.Lat,
		&sos.Lng,
		&sos.Address,
		&sos.RadiusMeters,
		&sos.Status,
		&sos.Anonymous,
		&sos.CreatedBy,
		&sos.ResolvedAt,
		&sos.CreatedAt,
		&sos.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := p.loadMembership(ctx, op, []*domain.SOS{&sos}); err != nil {
		return nil, err
	}

	return &sos, nil
}

func (p *SOSRepo) GetPopulated(ctx context.Context, id uuid.UUID) (*domain.PopulatedSOS, error) {
	const op = "postgres.SOS.GetPopulated"

	sos, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	populated, err := p.populate(ctx, op, []*domain.SOS{sos})
	if err != nil {
		return nil, err
	}
	return populated[0], nil
}

func (p *SOSRepo) ListActive(ctx context.Context, near *GeoFilter, limit int) ([]*domain.PopulatedSOS, error) {
	const op = "postgres.SOS.ListActive"

	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var (
		query string
		args  []any
	)
	if near != nil {
		// Nearest-first within the search radius; geography cast keeps
		// the distance in meters.
		query = fmt.Sprintf(`
			SELECT %s
			FROM sos
			WHERE status = 'active'
			  AND ST_DWithin(
			    geo_point::geography,
			    ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			    $3
			  )
			ORDER BY ST_Distance(geo_point::geography, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)
			LIMIT $4
		`, sosColumns)
		args = []any{near.Lng, near.Lat, near.MaxDistance, limit}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM sos
			WHERE status = 'active'
			ORDER BY created_at DESC
			LIMIT $1
		`, sosColumns)
		args = []any{limit}
	}

	list, err := p.scanList(ctx, op, query, args...)
	if err != nil {
		return nil, err
	}
	return p.populate(ctx, op, list)
}

func (p *SOSRepo) ListByCreator(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PopulatedSOS, error) {
	const op = "postgres.SOS.ListByCreator"

	if limit <= 0 || limit > 200 {
		limit = 200
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sos
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, sosColumns)

	list, err := p.scanList(ctx, op, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return p.populate(ctx, op, list)
}

// UpdateStatus moves an active incident into a terminal state. The status
// guard in the WHERE clause makes terminal states final at the store level.
func (p *SOSRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SOSStatus, resolvedAt *time.Time) error {
	const op = "postgres.SOS.UpdateStatus"

	const query = `
		UPDATE sos
		SET status = $2, resolved_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	cmd, err := p.pool.Exec(ctx, query, id, status, resolvedAt)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// AddResponder reports whether the user was newly added; the primary key
// makes duplicate joins a no-op.
func (p *SOSRepo) AddResponder(ctx context.Context, sosID, userID uuid.UUID) (bool, error) {
	const op = "postgres.SOS.AddResponder"

	const query = `
		INSERT INTO sos_responders (sos_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (sos_id, user_id) DO NOTHING
	`

	cmd, err := p.pool.Exec(ctx, query, sosID, userID)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("sos_id", sosID.String()))
		return false, e.WrapError(ctx, op, err)
	}

	if _, err := p.pool.Exec(ctx, `UPDATE sos SET updated_at = NOW() WHERE id = $1`, sosID); err != nil {
		return false, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected() > 0, nil
}

func (p *SOSRepo) UpsertResponderLocation(ctx context.Context, sosID, userID uuid.UUID, lat, lng float64, at time.Time) error {
	const op = "postgres.SOS.UpsertResponderLocation"

	const query = `
		INSERT INTO sos_responder_locations (sos_id, user_id, lat, lng, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sos_id, user_id) DO UPDATE
		SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = EXCLUDED.updated_at
	`

	if _, err := p.pool.Exec(ctx, query, sosID, userID, lat, lng, at); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("sos_id", sosID.String()))
		return e.WrapError(ctx, op, err)
	}

	if _, err := p.pool.Exec(ctx, `UPDATE sos SET updated_at = NOW() WHERE id = $1`, sosID); err != nil {
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *SOSRepo) scanList(ctx context.Context, op, query string, args ...any) ([]*domain.SOS, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var list []*domain.SOS
	for rows.Next() {
		var sos domain.SOS
		if err := rows.Scan(
			&sos.ID,
			&sos.CrisisType,
			&sos.Description,
			&sos.Lat,
			&sos.Lng,
			&sos.Address,
			&sos.RadiusMeters,
			&sos.Status,
			&sos.Anonymous,
			&sos.CreatedBy,
			&sos.ResolvedAt,
			&sos.CreatedAt,
			&sos.UpdatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		list = append(list, &sos)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := p.loadMembership(ctx, op, list); err != nil {
		return nil, err
	}

	return list, nil
}

// loadMembership fills Responders and ResponderLocations for each incident
// in one round trip per table.
func (p *SOSRepo) loadMembership(ctx context.Context, op string, list []*domain.SOS) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(list))
	byID := make(map[uuid.UUID]*domain.SOS, len(list))
	for _, sos := range list {
		sos.Responders = []uuid.UUID{}
		sos.ResponderLocations = []domain.ResponderLocation{}
		ids = append(ids, sos.ID)
		byID[sos.ID] = sos
	}

	respRows, err := p.pool.Query(ctx, `
		SELECT sos_id, user_id
		FROM sos_responders
		WHERE sos_id = ANY($1)
		ORDER BY joined_at
	`, ids)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer respRows.Close()

	for respRows.Next() {
		var sosID, userID uuid.UUID
		if err := respRows.Scan(&sosID, &userID); err != nil {
			return e.WrapError(ctx, op, err)
		}
		if sos, ok := byID[sosID]; ok {
			sos.Responders = append(sos.Responders, userID)
		}
	}
	if err := respRows.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	locRows, err := p.pool.Query(ctx, `
		SELECT sos_id, user_id, lat, lng, updated_at
		FROM sos_responder_locations
		WHERE sos_id = ANY($1)
		ORDER BY updated_at
	`, ids)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer locRows.Close()

	for locRows.Next() {
		var (
			sosID uuid.UUID
			loc   domain.ResponderLocation
		)
		if err := locRows.Scan(&sosID, &loc.ResponderID, &loc.Lat, &loc.Lng, &loc.UpdatedAt); err != nil {
			return e.WrapError(ctx, op, err)
		}
		if sos, ok := byID[sosID]; ok {
			sos.ResponderLocations = append(sos.ResponderLocations, loc)
		}
	}
	return locRows.Err()
}

// populate joins creator and responder user documents onto incidents.
func (p *SOSRepo) populate(ctx context.Context, op string, list []*domain.SOS) ([]*domain.PopulatedSOS, error) {
	userIDs := make(map[uuid.UUID]struct{})
	for _, sos := range list {
		userIDs[sos.CreatedBy] = struct{}{}
		for _, r := range sos.Responders {
			userIDs[r] = struct{}{}
		}
	}

	summaries := make(map[uuid.UUID]domain.UserSummary, len(userIDs))
	if len(userIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(userIDs))
		for id := range userIDs {
			ids = append(ids, id)
		}

		rows, err := p.pool.Query(ctx, `
			SELECT id, name, email, skills, trust_score, verified
			FROM users
			WHERE id = ANY($1)
		`, ids)
		if err != nil {
			p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		defer rows.Close()

		for rows.Next() {
			var u domain.UserSummary
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Skills, &u.TrustScore, &u.Verified); err != nil {
				return nil, e.WrapError(ctx, op, err)
			}
			summaries[u.ID] = u
		}
		if err := rows.Err(); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
	}

	populated := make([]*domain.PopulatedSOS, 0, len(list))
	for _, sos := range list {
		item := &domain.PopulatedSOS{SOS: *sos}
		if creator, ok := summaries[sos.CreatedBy]; ok {
			item.Creator = &creator
		}
		item.ResponderUsers = make([]domain.UserSummary, 0, len(sos.Responders))
		for _, r := range sos.Responders {
			if u, ok := summaries[r]; ok {
				item.ResponderUsers = append(item.ResponderUsers, u)
			}
		}
		populated = append(populated, item)
	}

	return populated, nil
}
