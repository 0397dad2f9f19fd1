package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nearhelp/internal/domain"
	"nearhelp/internal/storage/postgres"
	"nearhelp/pkg/e"

	"github.com/google/uuid"
)

const (
	EventSOSCreated         = "incident.created"
	EventSOSUpdated         = "incident.updated"
	EventSOSResponderJoined = "incident.responder_joined"
	EventSOSResolved        = "incident.resolved"
	EventMetricsUpdated     = "metrics.updated"
)

type SOS struct {
	logger   *slog.Logger
	sos      postgres.SOSRepository
	users    postgres.UserRepository
	logRepo  postgres.ResponseLogRepository
	metrics  MetricsService
	notifier Notifier
	presence Presence
	mail     MailEnqueuer
	trust    *TrustLedger
	counts   postgres.MetricsRepository

	locks *incidentLocks
}

func NewSOSService(
	logger *slog.Logger,
	sosRepo postgres.SOSRepository,
	users postgres.UserRepository,
	logRepo postgres.ResponseLogRepository,
	metrics MetricsService,
	notifier Notifier,
	presence Presence,
	mail MailEnqueuer,
	trust *TrustLedger,
	counts postgres.MetricsRepository,
) *SOS {
	return &SOS{
		logger:   logger,
		sos:      sosRepo,
		users:    users,
		logRepo:  logRepo,
		metrics:  metrics,
		notifier: notifier,
		presence: presence,
		mail:     mail,
		trust:    trust,
		counts:   counts,
		locks:    newIncidentLocks(),
	}
}

func (s *SOS) Create(ctx context.Context, caller domain.Identity, req domain.CreateSOSRequest) (*domain.SOSView, error) {
	const op = "service.SOS.Create"

	user, err := s.users.Get(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if user.Suspended {
		return nil, fmt.Errorf("%s: account suspended: %w", op, e.ErrForbidden)
	}

	sos := &domain.SOS{
		CrisisType:   req.CrisisType,
		Description:  req.Description,
		Lat:          *req.Lat,
		Lng:          *req.Lng,
		Address:      req.Address,
		RadiusMeters: req.RadiusMeters,
		Anonymous:    req.Anonymous,
		CreatedBy:    caller.UserID,
	}
	if err := s.sos.Create(ctx, sos); err != nil {
		return nil, err
	}

	populated, err := s.sos.GetPopulated(ctx, sos.ID)
	if err != nil {
		return nil, err
	}
	view := domain.NormalizeSOS(*populated)

	s.logger.Info("sos created",
		slog.String("sos_id", sos.ID.String()),
		slog.String("crisis_type", string(sos.CrisisType)),
		slog.Bool("anonymous", sos.Anonymous))

	s.notifier.Broadcast(EventSOSCreated, view)

	// Alert fan-out and the metrics push must not hold up the response.
	go s.enqueueAlerts(context.WithoutCancel(ctx), view, caller.UserID)
	go s.metrics.Refresh(context.WithoutCancel(ctx))

	return &view, nil
}

func (s *SOS) Get(ctx context.Context, id uuid.UUID) (*domain.SOSView, error) {
	populated, err := s.sos.GetPopulated(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.NormalizeSOS(*populated)
	return &view, nil
}

func (s *SOS) Respond(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.RespondRequest) (*domain.SOSView, error) {
	const op = "service.SOS.Respond"

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	sos, err := s.sos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sos.Status != domain.SOSActive {
		return nil, fmt.Errorf("%s: no active incident: %w", op, e.ErrNotFound)
	}
	// Admins may respond to their own incident; everyone else may not.
	if sos.CreatedBy == caller.UserID && !caller.IsAdmin() {
		return nil, fmt.Errorf("%s: creator cannot respond to own incident: %w", op, e.ErrForbidden)
	}

	added, err := s.sos.AddResponder(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}

	if req.HasLocation() {
		if err := s.sos.UpsertResponderLocation(ctx, id, caller.UserID, *req.Lat, *req.Lng, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	// One log line per membership change. A location refresh from an
	// existing responder writes a status_update instead.
	if added {
		err = s.logRepo.Append(ctx, &domain.ResponseLogEntry{
			SOSID:       id,
			ResponderID: caller.UserID,
			Action:      domain.LogJoined,
		})
	} else if req.HasLocation() {
		err = s.logRepo.Append(ctx, &domain.ResponseLogEntry{
			SOSID:       id,
			ResponderID: caller.UserID,
			Action:      domain.LogStatusUpdate,
			Note:        "Location updated",
		})
	}
	if err != nil {
		return nil, err
	}

	populated, err := s.sos.GetPopulated(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.NormalizeSOS(*populated)

	if added {
		s.logger.Info("responder joined",
			slog.String("sos_id", id.String()),
			slog.String("user_id", caller.UserID.String()))
	}

	// Clients listening for joins and clients mirroring incident state
	// both get the fresh view.
	s.notifier.Broadcast(EventSOSResponderJoined, view)
	s.notifier.Broadcast(EventSOSUpdated, view)

	return &view, nil
}

func (s *SOS) Resolve(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.ResolveSOSRequest) (*domain.SOSView, error) {
	const op = "service.SOS.Resolve"

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	sos, err := s.sos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sos.Status != domain.SOSActive {
		return nil, fmt.Errorf("%s: no active incident: %w", op, e.ErrNotFound)
	}

	isCreator := sos.CreatedBy == caller.UserID
	if !isCreator && !sos.HasResponder(caller.UserID) && !caller.IsAdmin() {
		return nil, fmt.Errorf("%s: caller is not involved in incident: %w", op, e.ErrForbidden)
	}

	// Only a plain creator with no responder role cancels; a responding
	// creator or an admin produces a real resolution with credit.
	creatorClosing := isCreator && !sos.HasResponder(caller.UserID) && !caller.IsAdmin()

	if creatorClosing {
		if err := s.sos.UpdateStatus(ctx, id, domain.SOSCancelled, nil); err != nil {
			return nil, err
		}
		note := req.Note
		if note == "" {
			note = "Closed by creator"
		}
		if err := s.logRepo.Append(ctx, &domain.ResponseLogEntry{
			SOSID:       id,
			ResponderID: caller.UserID,
			Action:      domain.LogStatusUpdate,
			Note:        note,
		}); err != nil {
			return nil, err
		}
	} else {
		now := time.Now().UTC()
		if err := s.sos.UpdateStatus(ctx, id, domain.SOSResolved, &now); err != nil {
			return nil, err
		}
		if err := s.logRepo.Append(ctx, &domain.ResponseLogEntry{
			SOSID:       id,
			ResponderID: caller.UserID,
			Action:      domain.LogResolved,
			Note:        req.Note,
		}); err != nil {
			return nil, err
		}
		for _, responder := range sos.Responders {
			if _, err := s.trust.CreditResolve(ctx, responder); err != nil {
				s.logger.Error("trust credit failed",
					slog.String("user_id", responder.String()),
					slog.Any("error", err))
			}
		}
	}

	populated, err := s.sos.GetPopulated(ctx, id)
	if err != nil {
		return nil, err
	}
	view := domain.NormalizeSOS(*populated)

	s.logger.Info("sos closed",
		slog.String("sos_id", id.String()),
		slog.String("status", string(view.Status)),
		slog.String("closed_by", caller.UserID.String()))

	s.notifier.Broadcast(EventSOSResolved, view)
	s.notifier.Broadcast(EventSOSUpdated, view)
	go s.metrics.Refresh(context.WithoutCancel(ctx))

	return &view, nil
}

func (s *SOS) ListActive(ctx context.Context, req domain.ListActiveRequest) ([]domain.SOSView, error) {
	var near *postgres.GeoFilter
	if req.Lat != nil && req.Lng != nil {
		maxDistance := req.MaxDistance
		if maxDistance <= 0 {
			maxDistance = 2000
		}
		near = &postgres.GeoFilter{Lat: *req.Lat, Lng: *req.Lng, MaxDistance: maxDistance}
	}

	list, err := s.sos.ListActive(ctx, near, 100)
	if err != nil {
		return nil, err
	}
	return normalizeAll(list), nil
}

func (s *SOS) ListMine(ctx context.Context, caller domain.Identity) ([]domain.SOSView, error) {
	list, err := s.sos.ListByCreator(ctx, caller.UserID, 200)
	if err != nil {
		return nil, err
	}
	return normalizeAll(list), nil
}

func (s *SOS) Stats(ctx context.Context) (domain.PublicStats, error) {
	active, err := s.counts.CountSOSByStatus(ctx, domain.SOSActive)
	if err != nil {
		return domain.PublicStats{}, err
	}
	resolvedToday, err := s.counts.CountResolvedSince(ctx, startOfUTCDay(time.Now()))
	if err != nil {
		return domain.PublicStats{}, err
	}

	return domain.PublicStats{
		ActiveUsers:   s.presence.CountActiveUsers(),
		ActiveIssues:  active,
		ResolvedToday: resolvedToday,
	}, nil
}

func (s *SOS) enqueueAlerts(ctx context.Context, view domain.SOSView, creator uuid.UUID) {
	if s.mail == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	recipients, err := s.users.ListAlertRecipients(ctx, creator)
	if err != nil {
		s.logger.Error("alert recipients lookup failed", slog.Any("error", err))
		return
	}
	if len(recipients) == 0 {
		return
	}

	job := domain.AlertJob{
		SOSID:   view.ID,
		To:      recipients,
		Subject: fmt.Sprintf("SOS nearby: %s", view.CrisisType),
		Body: fmt.Sprintf("A %s emergency was reported near %s. Open the app to respond.",
			view.CrisisType, view.Location.Address),
	}
	if err := s.mail.Enqueue(ctx, job); err != nil {
		s.logger.Error("alert enqueue failed",
			slog.String("sos_id", view.ID.String()),
			slog.Any("error", err))
		return
	}

	s.logger.Info("alerts enqueued",
		slog.String("sos_id", view.ID.String()),
		slog.Int("recipients", len(recipients)))
}

func normalizeAll(list []*domain.PopulatedSOS) []domain.SOSView {
	views := make([]domain.SOSView, 0, len(list))
	for _, p := range list {
		views = append(views, domain.NormalizeSOS(*p))
	}
	return views
}

// startOfUTCDay floors t to midnight UTC; "today" is always the UTC day.
func startOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
