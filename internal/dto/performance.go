package dto

// WeeklyBucket is one point on the student trend chart. Performance is the
// weight-averaged percentage for the calendar week, rounded for display.
type WeeklyBucket struct {
	Week        string `json:"week"`
	Performance int    `json:"performance"`
	Assignments int    `json:"assignments"`
	Exams       int    `json:"exams"`
}

// ComponentDetail breaks a subject grade down by grading component.
type ComponentDetail struct {
	ComponentName string  `json:"component_name"`
	Weight        float64 `json:"weight"`
	Percentage    float64 `json:"percentage"`
}

// SubjectGrade is the weighted standing in one current subject.
type SubjectGrade struct {
	SubjectID   int64             `json:"subject_id"`
	SubjectName string            `json:"subject_name"`
	SubjectCode string            `json:"subject_code"`
	Units       float64           `json:"units"`
	Percentage  float64           `json:"percentage"`
	GPA         float64           `json:"gpa"`
	Components  []ComponentDetail `json:"components"`
}

// OutcomePerformance pools raw scores across every entry tagged with one
// learning outcome.
type OutcomePerformance struct {
	OutcomeID     int64   `json:"outcome_id"`
	OutcomeCode   string  `json:"outcome_code,omitempty"`
	TotalScore    float64 `json:"total_score"`
	TotalPossible float64 `json:"total_possible"`
	Count         int     `json:"count"`
}

// Risk tiers for the advisory flag.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

// PerformanceSummary is the derived academic standing consumed by the
// dashboards. It is computed per request and cached, never persisted.
type PerformanceSummary struct {
	Weekly           []WeeklyBucket       `json:"weekly"`
	WeeksTracked     int                  `json:"weeks_tracked"`
	AvgPerformance   float64              `json:"avg_performance"`
	CompletionRate   float64              `json:"completion_rate"`
	TotalEntries     int                  `json:"total_entries"`
	CompletedEntries int                  `json:"completed_entries"`
	GPA              float64              `json:"gpa"`
	TotalUnits       float64              `json:"total_units"`
	SubjectsPassed   int                  `json:"subjects_passed"`
	TotalSubjects    int                  `json:"total_subjects"`
	RiskLevel        string               `json:"risk_level"`
	RiskScore        int                  `json:"risk_score"`
	Subjects         []SubjectGrade       `json:"subjects"`
	Outcomes         []OutcomePerformance `json:"outcomes"`
	WeightedAverage  float64              `json:"weighted_average"`
	OverallGPA       float64              `json:"overall_gpa"`
}
