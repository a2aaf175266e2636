package model

import "time"

// RunStatus represents the current state of a crawl run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run represents a single crawl of all configured sources.
type Run struct {
	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult summarizes a completed crawl run.
type RunResult struct {
	Candidates int            `json:"candidates"`
	Filtered   int            `json:"filtered"`
	Enriched   int            `json:"enriched"`
	Merged     int            `json:"merged"`
	Failures   []FailureEvent `json:"failures,omitempty"`
	Duration   time.Duration  `json:"duration_ns"`
}

// FailureEvent is the structured record emitted for every contained failure:
// a profile that could not be enriched, or a source whose pagination walk
// halted early. Failures never abort the run.
type FailureEvent struct {
	Stage string `json:"stage"` // "walk" or "enrich"
	URL   string `json:"url"`
	Cause string `json:"cause"`
}

// Page is a fetched document with its redirect state made explicit. Profile
// adapter dispatch depends on comparing RequestedURL's host against FinalURL's
// host, so both travel with the body rather than being inferred later.
type Page struct {
	RequestedURL string
	FinalURL     string
	StatusCode   int
	Body         string
	FetchedAt    time.Time
}
