package domain

import "github.com/google/uuid"

// AlertJob is a queued outbound email, produced on incident creation and
// drained by the mail worker.
type AlertJob struct {
	SOSID    uuid.UUID `json:"sosId"`
	To       []string  `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Attempts int       `json:"attempts"`
}
