package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report is an abuse flag raised against an incident. Duplicate flags on
// the same incident are all retained; a report resolves exactly once.
type Report struct {
	ID             uuid.UUID `json:"id"`
	SOSID          uuid.UUID `json:"sosId"`
	ReportedBy     uuid.UUID `json:"reportedBy"`
	Reason         string    `json:"reason"`
	Resolved       bool      `json:"resolved"`
	ResolutionNote string    `json:"resolutionNote"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
