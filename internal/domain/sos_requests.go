package domain

import "github.com/google/uuid"

type CreateSOSRequest struct {
	CrisisType   CrisisType `json:"crisisType" validate:"required,oneof=medical breakdown gas_leak other"`
	Lat          *float64   `json:"lat" validate:"required,lat"`
	Lng          *float64   `json:"lng" validate:"required,lng"`
	RadiusMeters int        `json:"radiusMeters" validate:"required,radius_meters"`
	Address      string     `json:"address"`
	Description  string     `json:"description"`
	Anonymous    bool       `json:"anonymous"`
}

// RespondRequest optionally carries the responder's live position.
// Both coordinates must be present for the location to be taken.
type RespondRequest struct {
	Lat *float64 `json:"lat" validate:"omitempty,lat"`
	Lng *float64 `json:"lng" validate:"omitempty,lng"`
}

func (r RespondRequest) HasLocation() bool {
	return r.Lat != nil && r.Lng != nil
}

type ResolveSOSRequest struct {
	Note string `json:"note"`
}

type ListActiveRequest struct {
	Lat         *float64 `json:"lat" validate:"omitempty,lat"`
	Lng         *float64 `json:"lng" validate:"omitempty,lng"`
	MaxDistance int      `json:"maxDistance" validate:"omitempty,min=1"`
}

type FlagReportRequest struct {
	SOSID  uuid.UUID `json:"sosId" validate:"required"`
	Reason string    `json:"reason" validate:"required"`
}

type ResolveReportRequest struct {
	ResolutionNote string `json:"resolutionNote"`
	FalseAlert     bool   `json:"falseAlert"`
}

type RegisterRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Skills   []string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CrisisAssistRequest struct {
	CrisisType CrisisType `json:"crisisType"`
	Context    string     `json:"context"`
}
