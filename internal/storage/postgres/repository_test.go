//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"
)

var (
	testPool   *pgxpool.Pool
	tc         testcontainers.Container
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgis/postgis:16-3.4-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := runMigrations(testPool, testLogger); err != nil {
		fmt.Println("runMigrations:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE reports, response_log, sos_responder_locations, sos_responders, sos, users`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func mustUser(t *testing.T, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		Name:       "Test User",
		Email:      email,
		TrustScore: domain.TrustScoreDefault,
	}
	if err := NewUserRepo(testPool, testLogger).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustSOS(t *testing.T, creator uuid.UUID, lat, lng float64) *domain.SOS {
	t.Helper()

	s := &domain.SOS{
		CrisisType:   domain.CrisisMedical,
		Lat:          lat,
		Lng:          lng,
		RadiusMeters: 1000,
		CreatedBy:    creator,
	}
	if err := NewSOSRepo(testPool, testLogger).Create(context.Background(), s); err != nil {
		t.Fatalf("create sos: %v", err)
	}
	return s
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestUserRepo_CreateGetRoundTrip(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewUserRepo(testPool, testLogger)

	created := mustUser(t, "Ivan@Example.com")

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "ivan@example.com" {
		t.Fatalf("email not normalized: %q", got.Email)
	}
	if got.TrustScore != domain.TrustScoreDefault {
		t.Fatalf("trust score: %v", got.TrustScore)
	}

	byEmail, err := repo.GetByEmail(ctx, "IVAN@example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("wrong user by email")
	}

	dup := &domain.User{Name: "Dup", Email: "IVAN@example.com"}
	err = repo.Create(ctx, dup)
	if !errors.Is(err, e.ErrConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestUserRepo_AdjustTrust_Clamps(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewUserRepo(testPool, testLogger)

	u := mustUser(t, "trust@example.com")

	score, err := repo.AdjustTrust(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("adjust up: %v", err)
	}
	if score != domain.TrustScoreMax {
		t.Fatalf("expected clamp at %v, got %v", domain.TrustScoreMax, score)
	}

	score, err = repo.AdjustTrust(ctx, u.ID, -10)
	if err != nil {
		t.Fatalf("adjust down: %v", err)
	}
	if score != domain.TrustScoreMin {
		t.Fatalf("expected clamp at %v, got %v", domain.TrustScoreMin, score)
	}

	_, err = repo.AdjustTrust(ctx, uuid.New(), 0.1)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSOSRepo_CreateGetRoundTrip(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewSOSRepo(testPool, testLogger)

	creator := mustUser(t, "creator@example.com")
	created := mustSOS(t, creator.ID, 55.7558, 37.6173)

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !almostEqual(got.Lat, 55.7558) || !almostEqual(got.Lng, 37.6173) {
		t.Fatalf("coordinates mangled: lat=%v lng=%v", got.Lat, got.Lng)
	}
	if got.Status != domain.SOSActive {
		t.Fatalf("status: %v", got.Status)
	}
	if got.Responders == nil || got.ResponderLocations == nil {
		t.Fatalf("membership slices must be non-nil")
	}

	_, err = repo.Get(ctx, uuid.New())
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSOSRepo_AddResponder_Idempotent(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewSOSRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	responder := mustUser(t, "r@example.com")
	s := mustSOS(t, creator.ID, 55.75, 37.61)

	added, err := repo.AddResponder(ctx, s.ID, responder.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !added {
		t.Fatal("first add must report insertion")
	}

	added, err = repo.AddResponder(ctx, s.ID, responder.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("second add must be a no-op")
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Responders) != 1 || got.Responders[0] != responder.ID {
		t.Fatalf("responders: %v", got.Responders)
	}
}

func TestSOSRepo_UpsertResponderLocation_LastWriteWins(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewSOSRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	responder := mustUser(t, "r@example.com")
	s := mustSOS(t, creator.ID, 55.75, 37.61)

	if _, err := repo.AddResponder(ctx, s.ID, responder.ID); err != nil {
		t.Fatalf("add responder: %v", err)
	}

	now := time.Now().UTC()
	if err := repo.UpsertResponderLocation(ctx, s.ID, responder.ID, 10, 20, now); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertResponderLocation(ctx, s.ID, responder.ID, 11, 21, now.Add(time.Second)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.ResponderLocations) != 1 {
		t.Fatalf("expected one location row, got %d", len(got.ResponderLocations))
	}
	loc := got.ResponderLocations[0]
	if !almostEqual(loc.Lat, 11) || !almostEqual(loc.Lng, 21) {
		t.Fatalf("stale location: %+v", loc)
	}
}

func TestSOSRepo_UpdateStatus_TerminalGuard(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewSOSRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	s := mustSOS(t, creator.ID, 55.75, 37.61)

	now := time.Now().UTC()
	if err := repo.UpdateStatus(ctx, s.ID, domain.SOSResolved, &now); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	err := repo.UpdateStatus(ctx, s.ID, domain.SOSCancelled, nil)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("terminal incident must not transition again, got %v", err)
	}

	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.SOSResolved {
		t.Fatalf("status overwritten: %v", got.Status)
	}
	if got.ResolvedAt == nil {
		t.Fatal("resolvedAt not persisted")
	}
}

func TestSOSRepo_ListActive_GeoFilter(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewSOSRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	near := mustSOS(t, creator.ID, 55.7560, 37.6170)
	_ = mustSOS(t, creator.ID, 59.9311, 30.3609) // another city

	resolved := mustSOS(t, creator.ID, 55.7561, 37.6171)
	now := time.Now().UTC()
	if err := repo.UpdateStatus(ctx, resolved.ID, domain.SOSResolved, &now); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	list, err := repo.ListActive(ctx, &GeoFilter{Lat: 55.7558, Lng: 37.6173, MaxDistance: 2000}, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one nearby active incident, got %d", len(list))
	}
	if list[0].ID != near.ID {
		t.Fatalf("wrong incident returned")
	}
	if list[0].Creator == nil || list[0].Creator.ID != creator.ID {
		t.Fatalf("creator not populated")
	}

	all, err := repo.ListActive(ctx, nil, 50)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two active incidents, got %d", len(all))
	}
}

func TestReportRepo_MarkResolved_Once(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	reporter := mustUser(t, "r@example.com")
	s := mustSOS(t, creator.ID, 55.75, 37.61)

	report := &domain.Report{SOSID: s.ID, ReportedBy: reporter.ID, Reason: "spam"}
	if err := repo.Create(ctx, report); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.MarkResolved(ctx, report.ID, "confirmed"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	err := repo.MarkResolved(ctx, report.ID, "again")
	if !errors.Is(err, e.ErrConflict) {
		t.Fatalf("expected conflict on second resolve, got %v", err)
	}

	err = repo.MarkResolved(ctx, uuid.New(), "missing")
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, err := repo.Get(ctx, report.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Resolved || got.ResolutionNote != "confirmed" {
		t.Fatalf("resolution overwritten: %+v", got)
	}
}

func TestResponseLogRepo_Append(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewResponseLogRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	responder := mustUser(t, "r@example.com")
	s := mustSOS(t, creator.ID, 55.75, 37.61)

	entry := &domain.ResponseLogEntry{
		SOSID:       s.ID,
		ResponderID: responder.ID,
		Action:      domain.LogJoined,
	}
	if err := repo.Append(ctx, entry); err != nil {
		t.Fatalf("append: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}

	var count int64
	if err := testPool.QueryRow(ctx, `SELECT COUNT(*) FROM response_log WHERE sos_id = $1`, s.ID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one log row, got %d", count)
	}
}

func TestMetricsRepo_Counts(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewMetricsRepo(testPool, testLogger)

	creator := mustUser(t, "c@example.com")
	reporter := mustUser(t, "r@example.com")

	_ = mustSOS(t, creator.ID, 55.75, 37.61)
	resolved := mustSOS(t, creator.ID, 55.76, 37.62)
	now := time.Now().UTC()
	sosRepo := NewSOSRepo(testPool, testLogger)
	if err := sosRepo.UpdateStatus(ctx, resolved.ID, domain.SOSResolved, &now); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	report := &domain.Report{SOSID: resolved.ID, ReportedBy: reporter.ID, Reason: "spam"}
	if err := NewReportRepo(testPool, testLogger).Create(ctx, report); err != nil {
		t.Fatalf("create report: %v", err)
	}

	active, err := repo.CountSOSByStatus(ctx, domain.SOSActive)
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if active != 1 {
		t.Fatalf("active: %d", active)
	}

	resolvedToday, err := repo.CountResolvedSince(ctx, now.Truncate(24*time.Hour))
	if err != nil {
		t.Fatalf("count resolved: %v", err)
	}
	if resolvedToday != 1 {
		t.Fatalf("resolvedToday: %d", resolvedToday)
	}

	pending, err := repo.CountPendingReports(ctx)
	if err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 1 {
		t.Fatalf("pending: %d", pending)
	}
}
