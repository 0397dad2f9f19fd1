package domain

import (
	"time"

	"github.com/google/uuid"
)

type LogAction string

const (
	LogJoined       LogAction = "joined"
	LogLeft         LogAction = "left"
	LogStatusUpdate LogAction = "status_update"
	LogResolved     LogAction = "resolved"
)

// ResponseLogEntry is an append-only audit record, written once per event.
type ResponseLogEntry struct {
	ID          uuid.UUID `json:"id"`
	SOSID       uuid.UUID `json:"sosId"`
	ResponderID uuid.UUID `json:"responderId"`
	Action      LogAction `json:"action"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}
