package postgres

import (
	"context"
	"embed"
	"fmt"

	"log/slog"

	"nearhelp/internal/config"
	"nearhelp/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Postgres struct {
	Pool        *pgxpool.Pool
	UserRepo    UserRepository
	SOSRepo     SOSRepository
	ReportRepo  ReportRepository
	LogRepo     ResponseLogRepository
	MetricsRepo MetricsRepository
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres database", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}
	logger.Info("Connected to Postgres successfully")

	if err := runMigrations(pool, logger); err != nil {
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Migrate", err)
	}

	pg := &Postgres{
		Pool:        pool,
		UserRepo:    NewUserRepo(pool, logger),
		SOSRepo:     NewSOSRepo(pool, logger),
		ReportRepo:  NewReportRepo(pool, logger),
		LogRepo:     NewResponseLogRepo(pool, logger),
		MetricsRepo: NewMetricsRepo(pool, logger),
	}

	logger.Info("Postgres repositories created")
	return pg, nil
}

// runMigrations applies the embedded goose migrations through a
// database/sql shim over the same pool configuration.
func runMigrations(pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}

	logger.Info("Migrations applied")
	return nil
}

func (p *Postgres) Close() { p.Pool.Close() }

func (p *Postgres) Users() UserRepository              { return p.UserRepo }
func (p *Postgres) Incidents() SOSRepository           { return p.SOSRepo }
func (p *Postgres) Reports() ReportRepository          { return p.ReportRepo }
func (p *Postgres) ResponseLog() ResponseLogRepository { return p.LogRepo }
func (p *Postgres) Metrics() MetricsRepository         { return p.MetricsRepo }
