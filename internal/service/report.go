package service

import (
	"context"
	"fmt"
	"log/slog"

	"nearhelp/internal/domain"
	"nearhelp/internal/storage/postgres"
	"nearhelp/pkg/e"

	"github.com/google/uuid"
)

type Reports struct {
	logger  *slog.Logger
	reports postgres.ReportRepository
	sos     postgres.SOSRepository
	trust   *TrustLedger
	metrics MetricsService
}

func NewReportService(
	logger *slog.Logger,
	reports postgres.ReportRepository,
	sos postgres.SOSRepository,
	trust *TrustLedger,
	metrics MetricsService,
) *Reports {
	return &Reports{
		logger:  logger,
		reports: reports,
		sos:     sos,
		trust:   trust,
		metrics: metrics,
	}
}

// Flag files an abuse report against an incident. Duplicate reports from
// the same user are allowed; moderators see them all.
func (s *Reports) Flag(ctx context.Context, caller domain.Identity, req domain.FlagReportRequest) (*domain.Report, error) {
	if _, err := s.sos.Get(ctx, req.SOSID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		SOSID:      req.SOSID,
		ReportedBy: caller.UserID,
		Reason:     req.Reason,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report filed",
		slog.String("report_id", report.ID.String()),
		slog.String("sos_id", req.SOSID.String()),
		slog.String("reported_by", caller.UserID.String()))

	go s.metrics.Refresh(context.WithoutCancel(ctx))

	return report, nil
}

// Resolve closes a report once. A false-alert verdict costs the incident
// creator trust score; the incident itself is left untouched.
func (s *Reports) Resolve(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.ResolveReportRequest) (*domain.Report, error) {
	const op = "service.Reports.Resolve"

	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}

	if err := s.reports.MarkResolved(ctx, id, req.ResolutionNote); err != nil {
		return nil, err
	}

	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FalseAlert {
		sos, err := s.sos.Get(ctx, report.SOSID)
		if err != nil {
			return nil, err
		}
		if _, _, err := s.trust.PenalizeFalseAlert(ctx, sos.CreatedBy); err != nil {
			return nil, err
		}
	}

	s.logger.Info("report resolved",
		slog.String("report_id", id.String()),
		slog.Bool("false_alert", req.FalseAlert),
		slog.String("resolved_by", caller.UserID.String()))

	go s.metrics.Refresh(context.WithoutCancel(ctx))

	return report, nil
}
