package postgres

import (
	"context"
	"time"

	"nearhelp/internal/domain"

	"github.com/google/uuid"
)

// GeoFilter narrows an active-incident listing to a point and search radius.
type GeoFilter struct {
	Lat         float64
	Lng         float64
	MaxDistance int // meters
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	AdjustTrust(ctx context.Context, id uuid.UUID, delta float64) (float64, error)
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	ListAlertRecipients(ctx context.Context, exclude uuid.UUID) ([]string, error)
}

type SOSRepository interface {
	Create(ctx context.Context, sos *domain.SOS) error
	Get(ctx context.Context, id uuid.UUID) (*domain.SOS, error)
	GetPopulated(ctx context.Context, id uuid.UUID) (*domain.PopulatedSOS, error)
	ListActive(ctx context.Context, near *GeoFilter, limit int) ([]*domain.PopulatedSOS, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PopulatedSOS, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SOSStatus, resolvedAt *time.Time) error
	AddResponder(ctx context.Context, sosID, userID uuid.UUID) (bool, error)
	UpsertResponderLocation(ctx context.Context, sosID, userID uuid.UUID, lat, lng float64, at time.Time) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	MarkResolved(ctx context.Context, id uuid.UUID, note string) error
}

type ResponseLogRepository interface {
	Append(ctx context.Context, entry *domain.ResponseLogEntry) error
}

type MetricsRepository interface {
	CountSOSByStatus(ctx context.Context, status domain.SOSStatus) (int64, error)
	CountResolvedSince(ctx context.Context, since time.Time) (int64, error)
	CountPendingReports(ctx context.Context) (int64, error)
	CountSuspendedUsers(ctx context.Context) (int64, error)
	CountVerifiedUsers(ctx context.Context) (int64, error)
}
