package domain

import (
	"time"

	"github.com/google/uuid"
)

type CrisisType string

const (
	CrisisMedical   CrisisType = "medical"
	CrisisBreakdown CrisisType = "breakdown"
	CrisisGasLeak   CrisisType = "gas_leak"
	CrisisOther     CrisisType = "other"
)

func (c CrisisType) Valid() bool {
	switch c {
	case CrisisMedical, CrisisBreakdown, CrisisGasLeak, CrisisOther:
		return true
	}
	return false
}

type SOSStatus string

const (
	SOSActive    SOSStatus = "active"
	SOSResolved  SOSStatus = "resolved"
	SOSCancelled SOSStatus = "cancelled"
)

// SOS is a single emergency-help incident. Status only ever moves
// active -> resolved or active -> cancelled; terminal states are final.
type SOS struct {
	ID                 uuid.UUID           `json:"id"`
	CrisisType         CrisisType          `json:"crisisType"`
	Description        string              `json:"description"`
	Lat                float64             `json:"lat"`
	Lng                float64             `json:"lng"`
	Address            string              `json:"address"`
	RadiusMeters       int                 `json:"radiusMeters"`
	Status             SOSStatus           `json:"status"`
	Anonymous          bool                `json:"anonymous"`
	CreatedBy          uuid.UUID           `json:"createdBy"`
	Responders         []uuid.UUID         `json:"responders"`
	ResponderLocations []ResponderLocation `json:"responderLocations"`
	ResolvedAt         *time.Time          `json:"resolvedAt"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// ResponderLocation is the latest reported position of one responder.
// At most one entry per responder, last write wins.
type ResponderLocation struct {
	ResponderID uuid.UUID `json:"responderId"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasResponder reports membership by id value.
func (s *SOS) HasResponder(userID uuid.UUID) bool {
	for _, r := range s.Responders {
		if r == userID {
			return true
		}
	}
	return false
}

// PopulatedSOS carries an incident together with the joined user documents
// needed to build the wire view.
type PopulatedSOS struct {
	SOS
	Creator        *UserSummary
	ResponderUsers []UserSummary
}
