package public

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"nearhelp/internal/domain"
	"nearhelp/internal/middleware"
	"nearhelp/pkg/validator"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
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
}

type AssistService interface {
	Guidance(ctx context.Context, req domain.CrisisAssistRequest) (domain.CrisisGuidance, error)
}

type Handler struct {
	logger  *slog.Logger
	sos     SOSService
	reports ReportService
	assist  AssistService
}

func NewHandler(logger *slog.Logger, sos SOSService, reports ReportService, assist AssistService) *Handler {
	return &Handler{logger: logger, sos: sos, reports: reports, assist: assist}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) SOSCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.CreateSOSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	l.Info("creating sos",
		slog.String("crisis_type", string(req.CrisisType)),
		slog.Int("radius_meters", req.RadiusMeters),
		slog.Bool("anonymous", req.Anonymous),
	)

	view, err := h.sos.Create(r.Context(), caller, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) SOSGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.parseID(w, r, l)
	if !ok {
		return
	}

	view, err := h.sos.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SOSListActive(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	req := domain.ListActiveRequest{}
	q := r.URL.Query()
	if v := q.Get("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lat"})
			return
		}
		req.Lat = &lat
	}
	if v := q.Get("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lng"})
			return
		}
		req.Lng = &lng
	}
	req.MaxDistance = parseInt(q.Get("maxDistance"), 0)

	if err := validator.ValidateStruct(req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	views, err := h.sos.ListActive(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"incidents": views,
		"count":     len(views),
	})
}

func (h *Handler) SOSListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	views, err := h.sos.ListMine(r.Context(), caller)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"incidents": views,
		"count":     len(views),
	})
}

func (h *Handler) SOSRespond(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, ok := h.parseID(w, r, l)
	if !ok {
		return
	}

	var req domain.RespondRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Warn("invalid JSON", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
	}
	if err := validator.ValidateStruct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view, err := h.sos.Respond(r.Context(), caller, id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SOSResolve(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, ok := h.parseID(w, r, l)
	if !ok {
		return
	}

	var req domain.ResolveSOSRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Warn("invalid JSON", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
	}

	view, err := h.sos.Resolve(r.Context(), caller, id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SOSStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sos.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ReportFlag(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.FlagReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report, err := h.reports.Flag(r.Context(), caller, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) CrisisAssist(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CrisisAssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	guidance, err := h.assist.Guidance(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, guidance)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, l *slog.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
