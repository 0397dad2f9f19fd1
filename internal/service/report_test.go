package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"nearhelp/internal/domain"
	"nearhelp/internal/service"
	mock_postgres "nearhelp/internal/storage/postgres/mocks"
	"nearhelp/pkg/e"
)

type reportFixture struct {
	reports *mock_postgres.MockReportRepository
	sos     *mock_postgres.MockSOSRepository
	users   *mock_postgres.MockUserRepository
	svc     *service.Reports
}

func newReportFixture(t *testing.T) (*reportFixture, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &reportFixture{
		reports: mock_postgres.NewMockReportRepository(ctrl),
		sos:     mock_postgres.NewMockSOSRepository(ctrl),
		users:   mock_postgres.NewMockUserRepository(ctrl),
	}

	logger := testLogger()
	trust := service.NewTrustLedger(logger, f.users)
	f.svc = service.NewReportService(logger, f.reports, f.sos, trust, nopMetrics{})
	return f, ctrl
}

func admin() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func TestReportService_Flag_OK(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	caller := domain.Identity{UserID: uuid.New()}
	sos := activeSOS(uuid.New())

	f.sos.EXPECT().Get(gomock.Any(), sos.ID).Return(sos, nil)

	var created *domain.Report
	f.reports.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, report *domain.Report) error {
			report.ID = uuid.New()
			created = report
			return nil
		})

	report, err := f.svc.Flag(context.Background(), caller, domain.FlagReportRequest{
		SOSID:  sos.ID,
		Reason: "spam",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.Resolved {
		t.Fatalf("new report must be open")
	}
	if created.ReportedBy != caller.UserID {
		t.Fatalf("reporter not recorded")
	}
}

func TestReportService_Flag_MissingIncident(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	id := uuid.New()
	f.sos.EXPECT().Get(gomock.Any(), id).Return(nil, fmt.Errorf("get: %w", e.ErrNotFound))

	_, err := f.svc.Flag(context.Background(), domain.Identity{UserID: uuid.New()}, domain.FlagReportRequest{
		SOSID:  id,
		Reason: "spam",
	})
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReportService_Resolve_NonAdminForbidden(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	_, err := f.svc.Resolve(context.Background(), domain.Identity{UserID: uuid.New(), Role: domain.RoleUser}, uuid.New(), domain.ResolveReportRequest{})
	if !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReportService_Resolve_OnlyOnce(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	id := uuid.New()
	f.reports.EXPECT().
		MarkResolved(gomock.Any(), id, gomock.Any()).
		Return(fmt.Errorf("resolve: %w", e.ErrConflict))

	_, err := f.svc.Resolve(context.Background(), admin(), id, domain.ResolveReportRequest{})
	if !errors.Is(err, e.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReportService_Resolve_FalseAlertPenalizesAndSuspends(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	creator := uuid.New()
	sos := activeSOS(creator)
	report := &domain.Report{ID: uuid.New(), SOSID: sos.ID, ReportedBy: uuid.New(), Reason: "fake"}
	moderator := admin()

	f.reports.EXPECT().MarkResolved(gomock.Any(), report.ID, gomock.Any()).Return(nil)
	f.reports.EXPECT().Get(gomock.Any(), report.ID).Return(report, nil)
	f.sos.EXPECT().Get(gomock.Any(), sos.ID).Return(sos, nil)

	// Score falls through the suspension threshold.
	f.users.EXPECT().
		AdjustTrust(gomock.Any(), creator, -domain.FalseAlertPenalty).
		Return(1.4, nil)
	f.users.EXPECT().SetSuspended(gomock.Any(), creator, true).Return(nil)

	got, err := f.svc.Resolve(context.Background(), moderator, report.ID, domain.ResolveReportRequest{FalseAlert: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != report.ID {
		t.Fatalf("wrong report returned")
	}
}

func TestReportService_Resolve_FalseAlertLeavesIncidentAlone(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	creator := uuid.New()
	sos := activeSOS(creator)
	report := &domain.Report{ID: uuid.New(), SOSID: sos.ID}

	f.reports.EXPECT().MarkResolved(gomock.Any(), report.ID, gomock.Any()).Return(nil)
	f.reports.EXPECT().Get(gomock.Any(), report.ID).Return(report, nil)
	// The incident is only read for its creator; no UpdateStatus, no log
	// entry. An unexpected write would fail the mock controller.
	f.sos.EXPECT().Get(gomock.Any(), sos.ID).Return(sos, nil)

	f.users.EXPECT().
		AdjustTrust(gomock.Any(), creator, -domain.FalseAlertPenalty).
		Return(3.0, nil)

	if _, err := f.svc.Resolve(context.Background(), admin(), report.ID, domain.ResolveReportRequest{FalseAlert: true}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestReportService_Resolve_NoFalseAlertNoPenalty(t *testing.T) {
	t.Parallel()

	f, ctrl := newReportFixture(t)
	defer ctrl.Finish()

	report := &domain.Report{ID: uuid.New(), SOSID: uuid.New()}

	f.reports.EXPECT().MarkResolved(gomock.Any(), report.ID, "reviewed, legit").Return(nil)
	f.reports.EXPECT().Get(gomock.Any(), report.ID).Return(report, nil)

	if _, err := f.svc.Resolve(context.Background(), admin(), report.ID, domain.ResolveReportRequest{
		ResolutionNote: "reviewed, legit",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
