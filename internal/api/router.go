package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"nearhelp/internal/api/handlers/http/admin"
	"nearhelp/internal/api/handlers/http/auth"
	"nearhelp/internal/api/handlers/http/public"
	"nearhelp/internal/api/handlers/http/system"
	"nearhelp/internal/config"
	"nearhelp/internal/middleware"
	"nearhelp/internal/obs"
	"nearhelp/internal/service"
	"nearhelp/internal/ws"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, hub *ws.Hub, checks ...system.Check) *Server {
	authHandler := auth.NewHandler(logger, svc.AuthService)
	publicHandler := public.NewHandler(logger, svc.SOSService, svc.ReportService, svc.AssistService)
	adminHandler := admin.NewHandler(logger, svc.MetricsService, svc.ReportService)
	systemHandler := system.NewHandler(logger, checks...)

	r := InitRouter(logger, svc, hub, authHandler, publicHandler, adminHandler, systemHandler)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	logger *slog.Logger,
	svc *service.Service,
	hub *ws.Hub,
	authHandler *auth.Handler,
	publicHandler *public.Handler,
	adminHandler *admin.Handler,
	systemHandler *system.Handler,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	authenticated := middleware.Authenticate(svc.AuthService, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(obs.Instrument)

		api.Route("/auth", func(ar chi.Router) {
			ar.Use(middleware.Limit(5, 10, 10*time.Minute, logger))
			ar.Post("/register", authHandler.Register)
			ar.Post("/login", authHandler.Login)
		})

		api.Route("/sos", func(sr chi.Router) {
			sr.Use(authenticated)
			sr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			sr.Post("/", publicHandler.SOSCreate)
			sr.Get("/active", publicHandler.SOSListActive)
			sr.Get("/mine", publicHandler.SOSListMine)
			sr.Get("/stats", publicHandler.SOSStats)

			sr.Route("/{id}", func(ir chi.Router) {
				ir.Get("/", publicHandler.SOSGet)
				ir.Patch("/respond", publicHandler.SOSRespond)
				ir.Patch("/resolve", publicHandler.SOSResolve)
			})
		})

		api.Route("/reports", func(rr chi.Router) {
			rr.Use(authenticated)
			rr.Post("/flag", publicHandler.ReportFlag)

			rr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequireAdmin(logger))
				mr.Patch("/{id}/resolve", adminHandler.ReportResolve)
			})
		})

		api.Route("/admin", func(ar chi.Router) {
			ar.Use(authenticated)
			ar.Use(middleware.RequireAdmin(logger))
			ar.Get("/metrics", adminHandler.AdminMetrics)
		})

		api.Route("/ai", func(ai chi.Router) {
			ai.Use(authenticated)
			ai.Post("/crisis-assist", publicHandler.CrisisAssist)
		})
	})

	// The websocket route stays outside Instrument; the upgrade needs the
	// raw ResponseWriter.
	r.Get("/ws", ws.Handler(hub, svc.AuthService))

	r.Get("/health", systemHandler.SystemHealth)
	r.Handle("/metrics", obs.Handler())

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("🚀 Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("🛑 Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}

		s.logger.Info("HTTP server stopped gracefully")
		return nil

	case err := <-errChan:
		return err
	}
}
