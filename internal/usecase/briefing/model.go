// Package briefing turns an aggregated article set into an operational
// briefing document. Generation prefers an LLM backend; when none is
// configured or the call fails, a deterministic keyword-bucketed fallback
// produces a usable document so the endpoint never goes dark during an
// active operation.
package briefing

// Report is the briefing document returned to clients. Field names mirror
// the JSON contract the dashboard consumes.
type Report struct {
	// ExecutiveSummary is a short situation overview for leadership.
	ExecutiveSummary string `json:"executive_summary"`

	// KeyImpacts buckets notable impacts by operational category.
	KeyImpacts KeyImpacts `json:"key_impacts"`

	// AffectedAreas lists counties, cities, and regions named in coverage.
	AffectedAreas []string `json:"affected_areas"`

	// CriticalNumbers collects the headline figures, as strings because
	// coverage reports ranges and qualifiers, not clean integers.
	CriticalNumbers CriticalNumbers `json:"critical_numbers"`

	// ActionItems are recommended next steps for the operation.
	ActionItems []string `json:"action_items"`

	// Timeline orders notable events when coverage supports one.
	Timeline []TimelineEvent `json:"timeline"`

	// ResourcesMentioned lists hotlines, sites, and contacts from articles.
	ResourcesMentioned []string `json:"resources_mentioned"`

	// GeneratedAt is the generation timestamp in RFC 3339.
	GeneratedAt string `json:"generated_at"`

	// ArticleCount is the number of articles the briefing was built from.
	ArticleCount int `json:"article_count"`
}

// KeyImpacts groups impact bullet points by operational category.
type KeyImpacts struct {
	PowerOutages      []string `json:"power_outages"`
	RoadConditions    []string `json:"road_conditions"`
	SchoolsClosures   []string `json:"schools_closures"`
	SheltersWarming   []string `json:"shelters_warming"`
	EmergencyResponse []string `json:"emergency_response"`
}

// CriticalNumbers holds the headline figures extracted from coverage.
type CriticalNumbers struct {
	EstimatedOutages string `json:"estimated_outages"`
	CrashesReported  string `json:"crashes_reported"`
	SheltersOpen     string `json:"shelters_open"`
	SchoolsAffected  string `json:"schools_affected"`
}

// TimelineEvent is one dated entry in the briefing timeline.
type TimelineEvent struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}
