package dto

// DuplicateCounts splits dropped records by where the collision was found.
type DuplicateCounts struct {
	Persisted int `json:"persisted"`
	InBatch   int `json:"in_batch"`
}

// SyncScoresResult summarises one classroom reconciliation run. Every
// skipped or dropped record is accounted for; nothing is swallowed silently.
type SyncScoresResult struct {
	TotalSubmissions   int             `json:"total_submissions"`
	MatchedStudents    int             `json:"matched_students"`
	SkippedStudents    int             `json:"skipped_students"`
	PlaceholderEntries int             `json:"placeholder_entries"`
	TotalEntries       int             `json:"total_entries"`
	Duplicates         DuplicateCounts `json:"duplicates"`
	InvalidEntries     int             `json:"invalid_entries"`
	CourseworkTitle    string          `json:"coursework_title"`
	ComponentID        int64           `json:"component_id"`
	ComponentType      string          `json:"component_type,omitempty"`
}

// HarvestResult summarises a learning-resource intake batch.
type HarvestResult struct {
	TotalProcessed int             `json:"total_processed"`
	Accepted       int             `json:"accepted"`
	Duplicates     DuplicateCounts `json:"duplicates"`
	Invalid        int             `json:"invalid"`
}
