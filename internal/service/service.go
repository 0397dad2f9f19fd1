package service

import (
	"context"

	"nearhelp/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type SOSService interface {
	Create(ctx context.Context, caller domain.Identity, req domain.CreateSOSRequest) (*domain.SOSView, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SOSView, error)
	Respond(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.RespondRequest) (*domain.SOSView, error)
	Resolve(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.ResolveSOSRequest) (*domain.SOSView, error)
	ListActive(ctx context.Context, req domain.ListActiveRequest) ([]domain.SOSView, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]domain.SOSView, error)
	Stats(ctx context.Context) (domain.PublicStats, error)
}

type ReportService interface {
	Flag(ctx context.Context, caller domain.Identity, req domain.FlagReportRequest) (*domain.Report, error)
	Resolve(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.ResolveReportRequest) (*domain.Report, error)
}

type MetricsService interface {
	Snapshot(ctx context.Context) (domain.AdminMetrics, error)
	Refresh(ctx context.Context)
}

type AssistService interface {
	Guidance(ctx context.Context, req domain.CrisisAssistRequest) (domain.CrisisGuidance, error)
}

// Notifier fans an event out to every live connection.
type Notifier interface {
	Broadcast(event string, payload any)
}

// Presence reports how many distinct users currently hold at least one
// live connection.
type Presence interface {
	CountActiveUsers() int
}

// MailEnqueuer hands alert email off to the outbound queue.
type MailEnqueuer interface {
	Enqueue(ctx context.Context, job domain.AlertJob) error
}

type Service struct {
	AuthService    AuthService
	SOSService     SOSService
	ReportService  ReportService
	MetricsService MetricsService
	AssistService  AssistService
}

func NewService(
	authService AuthService,
	sosService SOSService,
	reportService ReportService,
	metricsService MetricsService,
	assistService AssistService,
) *Service {
	return &Service{
		AuthService:    authService,
		SOSService:     sosService,
		ReportService:  reportService,
		MetricsService: metricsService,
		AssistService:  assistService,
	}
}
