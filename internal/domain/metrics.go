package domain

import "time"

// AdminMetrics is the on-demand moderation snapshot pushed on
// metrics.updated and served from the admin endpoint.
type AdminMetrics struct {
	ActiveIncidents    int64     `json:"activeIncidents"`
	ResolvedToday      int64     `json:"resolvedToday"`
	PendingReports     int64     `json:"pendingReports"`
	SuspendedUsers     int64     `json:"suspendedUsers"`
	VerifiedResponders int64     `json:"verifiedResponders"`
	ActiveUsers        int       `json:"activeUsers"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// PublicStats is the lightweight snapshot any authenticated user may read.
type PublicStats struct {
	ActiveUsers   int   `json:"activeUsers"`
	ActiveIssues  int64 `json:"activeIssues"`
	ResolvedToday int64 `json:"resolvedToday"`
}
