package domain

// CrisisGuidance is a canned first-steps checklist for one crisis type.
// Content is static and advisory, it never replaces emergency services.
type CrisisGuidance struct {
	CrisisType CrisisType `json:"crisisType"`
	Steps      []string   `json:"steps"`
	Disclaimer string     `json:"disclaimer"`
	Source     string     `json:"source"`
}
