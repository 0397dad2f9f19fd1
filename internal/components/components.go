package components

import (
	"context"
	"log/slog"
	"time"

	"nearhelp/internal/api"
	"nearhelp/internal/api/handlers/http/system"
	"nearhelp/internal/config"
	"nearhelp/internal/obs"
	redisclient "nearhelp/internal/redis"
	"nearhelp/internal/service"
	"nearhelp/internal/storage/postgres"
	"nearhelp/internal/workers"
	"nearhelp/internal/ws"
)

// Components holds every long-lived dependency of the process.
type Components struct {
	logger *slog.Logger

	Postgres   *postgres.Postgres
	Redis      *redisclient.Redis
	Hub        *ws.Hub
	Presence   *ws.Registry
	Service    *service.Service
	MailSender *service.MailSender
	Ticker     *workers.MetricsTicker
	HttpServer *api.Server
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	obs.Init()

	pg, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rdb, err := redisclient.NewRedis(ctx, cfg, logger)
	if err != nil {
		pg.Close()
		return nil, err
	}

	presence := ws.NewRegistry()
	hub := ws.NewHub(logger, cfg.Live, presence)

	var mailQueue service.MailEnqueuer
	var mailSender *service.MailSender
	if cfg.Mail.Enabled {
		queue := redisclient.NewMailQueue(rdb.Client, "nearhelp:mail:alerts")
		mailQueue = queue
		mailSender = service.NewMailSender(logger, cfg.Mail, queue)
	}

	trust := service.NewTrustLedger(logger, pg.Users())

	metricsService := service.NewMetricsService(logger, pg.Metrics(), presence, hub)
	authService := service.NewAuthService(logger, cfg.Auth, pg.Users())
	sosService := service.NewSOSService(
		logger,
		pg.Incidents(),
		pg.Users(),
		pg.ResponseLog(),
		metricsService,
		hub,
		presence,
		mailQueue,
		trust,
		pg.Metrics(),
	)
	reportService := service.NewReportService(
		logger,
		pg.Reports(),
		pg.Incidents(),
		trust,
		metricsService,
	)
	assistService := service.NewAssistService()

	svc := service.NewService(authService, sosService, reportService, metricsService, assistService)

	ticker := workers.NewMetricsTicker(logger, metricsService, presence, 30*time.Second)

	server := api.NewServer(cfg, logger, svc, hub,
		system.Check{Name: "postgres", Ping: pg.Pool.Ping},
		system.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Client.Ping(ctx).Err() }},
	)

	return &Components{
		logger:     logger,
		Postgres:   pg,
		Redis:      rdb,
		Hub:        hub,
		Presence:   presence,
		Service:    svc,
		MailSender: mailSender,
		Ticker:     ticker,
		HttpServer: server,
	}, nil
}

// StartWorkers launches the hub loop, the metrics ticker and the optional
// mail worker.
func (c *Components) StartWorkers(ctx context.Context) {
	go c.Hub.Run(ctx)
	go c.Ticker.Run(ctx)

	if c.MailSender != nil {
		go c.MailSender.Run(ctx)
	}
}

func (c *Components) ShutdownAll() {
	if err := c.Redis.Close(); err != nil {
		c.logger.Error("redis close failed", slog.Any("error", err))
	}
	c.Postgres.Close()
}
