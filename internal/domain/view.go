package domain

import (
	"time"

	"github.com/google/uuid"
)

// SOSView is the wire shape clients depend on. Events and HTTP responses
// always carry the full view, never a diff.
type SOSView struct {
	ID                 uuid.UUID               `json:"id"`
	CrisisType         CrisisType              `json:"crisisType"`
	Description        string                  `json:"description"`
	Location           LocationView            `json:"location"`
	RadiusMeters       int                     `json:"radiusMeters"`
	Status             SOSStatus               `json:"status"`
	Anonymous          bool                    `json:"anonymous"`
	CreatedBy          CreatorView             `json:"createdBy"`
	Responders         []ResponderView         `json:"responders"`
	ResponderLocations []ResponderLocationView `json:"responderLocations"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
	ResolvedAt         *time.Time              `json:"resolvedAt"`
}

type LocationView struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type CreatorView struct {
	ID    *uuid.UUID `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email,omitempty"`
}

type ResponderView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Skills     []string  `json:"skills"`
	TrustScore float64   `json:"trustScore"`
	Verified   bool      `json:"verified"`
}

type ResponderLocationView struct {
	ResponderID   uuid.UUID `json:"responderId"`
	ResponderName string    `json:"responderName"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NormalizeSOS flattens a populated incident into the wire view. Pure:
// no persistence, no clock, everything comes from the input.
func NormalizeSOS(p PopulatedSOS) SOSView {
	view := SOSView{
		ID:          p.ID,
		CrisisType:  p.CrisisType,
		Description: p.Description,
		Location: LocationView{
			Lat:     p.Lat,
			Lng:     p.Lng,
			Address: p.Address,
		},
		RadiusMeters:       p.RadiusMeters,
		Status:             p.Status,
		Anonymous:          p.Anonymous,
		CreatedBy:          creatorView(p),
		Responders:         make([]ResponderView, 0, len(p.ResponderUsers)),
		ResponderLocations: make([]ResponderLocationView, 0, len(p.ResponderLocations)),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		ResolvedAt:         p.ResolvedAt,
	}

	names := make(map[uuid.UUID]string, len(p.ResponderUsers))
	for _, u := range p.ResponderUsers {
		names[u.ID] = u.Name
		view.Responders = append(view.Responders, ResponderView{
			ID:         u.ID,
			Name:       u.Name,
			Skills:     u.Skills,
			TrustScore: u.TrustScore,
			Verified:   u.Verified,
		})
	}

	for _, loc := range p.ResponderLocations {
		name, ok := names[loc.ResponderID]
		if !ok {
			name = "Responder"
		}
		view.ResponderLocations = append(view.ResponderLocations, ResponderLocationView{
			ResponderID:   loc.ResponderID,
			ResponderName: name,
			Lat:           loc.Lat,
			Lng:           loc.Lng,
			UpdatedAt:     loc.UpdatedAt,
		})
	}

	return view
}

func creatorView(p PopulatedSOS) CreatorView {
	if p.Anonymous {
		return CreatorView{ID: nil, Name: "Anonymous"}
	}
	if p.Creator == nil {
		return CreatorView{ID: nil, Name: ""}
	}
	id := p.Creator.ID
	return CreatorView{ID: &id, Name: p.Creator.Name, Email: p.Creator.Email}
}
