package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Trust score tuning constants. Kept as product-level decisions, do not
// change without migrating existing scores.
const (
	TrustScoreDefault   = 3.5
	TrustScoreMin       = 0.0
	TrustScoreMax       = 5.0
	ResolveTrustCredit  = 0.1
	FalseAlertPenalty   = 0.5
	SuspensionThreshold = 1.5
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Skills       []string  `json:"skills"`
	TrustScore   float64   `json:"trustScore"`
	Verified     bool      `json:"verified"`
	Suspended    bool      `json:"suspended"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the subset of a user joined into incident views.
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Skills     []string  `json:"skills"`
	TrustScore float64   `json:"trustScore"`
	Verified   bool      `json:"verified"`
}

// Identity is the verified caller attached to a request or live connection.
type Identity struct {
	UserID uuid.UUID
	Role   Role
	Email  string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
