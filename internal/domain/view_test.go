package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"nearhelp/internal/domain"
)

func samplePopulated() domain.PopulatedSOS {
	creator := uuid.New()
	r1 := uuid.New()
	r2 := uuid.New()
	now := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)

	return domain.PopulatedSOS{
		SOS: domain.SOS{
			ID:           uuid.New(),
			CrisisType:   domain.CrisisBreakdown,
			Description:  "flat tire on the bridge",
			Lat:          55.75,
			Lng:          37.61,
			Address:      "Krymsky Bridge",
			RadiusMeters: 1000,
			Status:       domain.SOSActive,
			CreatedBy:    creator,
			Responders:   []uuid.UUID{r1, r2},
			ResponderLocations: []domain.ResponderLocation{
				{ResponderID: r1, Lat: 55.74, Lng: 37.60, UpdatedAt: now},
				{ResponderID: uuid.New(), Lat: 55.70, Lng: 37.55, UpdatedAt: now},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		Creator: &domain.UserSummary{ID: creator, Name: "Olga", Email: "olga@example.com"},
		ResponderUsers: []domain.UserSummary{
			{ID: r1, Name: "Pavel", Skills: []string{"mechanic"}, TrustScore: 4.2, Verified: true},
			{ID: r2, Name: "Rita"},
		},
	}
}

func TestNormalizeSOS_FullView(t *testing.T) {
	t.Parallel()

	p := samplePopulated()
	view := domain.NormalizeSOS(p)

	if view.ID != p.ID {
		t.Fatalf("id mismatch")
	}
	if view.Location.Lat != p.Lat || view.Location.Lng != p.Lng || view.Location.Address != p.Address {
		t.Fatalf("location mismatch: %+v", view.Location)
	}
	if view.CreatedBy.ID == nil || *view.CreatedBy.ID != p.Creator.ID {
		t.Fatalf("creator not exposed")
	}
	if len(view.Responders) != 2 {
		t.Fatalf("expected 2 responders, got %d", len(view.Responders))
	}
	if view.Responders[0].Name != "Pavel" || !view.Responders[0].Verified {
		t.Fatalf("responder fields lost: %+v", view.Responders[0])
	}
}

func TestNormalizeSOS_AnonymousHidesCreator(t *testing.T) {
	t.Parallel()

	p := samplePopulated()
	p.Anonymous = true
	view := domain.NormalizeSOS(p)

	if view.CreatedBy.ID != nil {
		t.Fatalf("anonymous incident leaked creator id")
	}
	if view.CreatedBy.Name != "Anonymous" {
		t.Fatalf("expected Anonymous, got %q", view.CreatedBy.Name)
	}
	if view.CreatedBy.Email != "" {
		t.Fatalf("anonymous incident leaked creator email")
	}
}

func TestNormalizeSOS_UnknownResponderNameFallback(t *testing.T) {
	t.Parallel()

	p := samplePopulated()
	view := domain.NormalizeSOS(p)

	if len(view.ResponderLocations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(view.ResponderLocations))
	}
	if view.ResponderLocations[0].ResponderName != "Pavel" {
		t.Fatalf("expected Pavel, got %q", view.ResponderLocations[0].ResponderName)
	}
	// Second location belongs to a user missing from the join.
	if view.ResponderLocations[1].ResponderName != "Responder" {
		t.Fatalf("expected fallback name, got %q", view.ResponderLocations[1].ResponderName)
	}
}

func TestNormalizeSOS_EmptyCollectionsNotNil(t *testing.T) {
	t.Parallel()

	p := samplePopulated()
	p.Responders = nil
	p.ResponderUsers = nil
	p.ResponderLocations = nil

	view := domain.NormalizeSOS(p)
	if view.Responders == nil || view.ResponderLocations == nil {
		t.Fatalf("collections must serialize as [], not null")
	}
}

func TestSOS_HasResponder(t *testing.T) {
	t.Parallel()

	member := uuid.New()
	sos := domain.SOS{Responders: []uuid.UUID{uuid.New(), member}}

	if !sos.HasResponder(member) {
		t.Fatalf("member not found")
	}
	if sos.HasResponder(uuid.New()) {
		t.Fatalf("unexpected membership")
	}
}
