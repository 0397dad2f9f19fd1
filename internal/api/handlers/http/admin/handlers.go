package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"nearhelp/internal/domain"
	"nearhelp/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type MetricsService interface {
	Snapshot(ctx context.Context) (domain.AdminMetrics, error)
}

type ReportService interface {
	Resolve(ctx context.Context, caller domain.Identity, id uuid.UUID, req domain.ResolveReportRequest) (*domain.Report, error)
}

type Handler struct {
	logger  *slog.Logger
	metrics MetricsService
	reports ReportService
}

func NewHandler(logger *slog.Logger, metrics MetricsService, reports ReportService) *Handler {
	return &Handler{logger: logger, metrics: metrics, reports: reports}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.metrics.Snapshot(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) ReportResolve(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req domain.ResolveReportRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Warn("invalid JSON", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
	}

	l.Info("resolving report",
		slog.String("report_id", id.String()),
		slog.Bool("false_alert", req.FalseAlert),
	)

	report, err := h.reports.Resolve(r.Context(), caller, id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}
