package models

import (
	"time"

	"github.com/lib/pq"
)

// EntryTypeImported tags grade entries produced by classroom reconciliation.
// Placeholder rows (score 0, no external submission) carry the same tag so
// the gradebook renders them identically; a zero therefore cannot be told
// apart from a genuine zero after the run. The reconciliation result reports
// placeholder counts for that reason.
const EntryTypeImported = "imported from gclass"

// ComponentCategory is the explicit assessment category on a component.
// The weekly trend still classifies by component name to match the data
// already in production; new components should set this field.
type ComponentCategory string

const (
	CategoryAssignment ComponentCategory = "assignment"
	CategoryExam       ComponentCategory = "exam"
	CategoryOther      ComponentCategory = "other"
)

// GradeComponent describes a weighted grading component of a class.
type GradeComponent struct {
	ComponentID      int64             `db:"component_id" json:"component_id"`
	ComponentName    string            `db:"component_name" json:"component_name"`
	WeightPercentage float64           `db:"weight_percentage" json:"weight_percentage"`
	Category         ComponentCategory `db:"category" json:"category,omitempty"`
}

// GradeEntry is the persisted unit of assessment scoring. Entries created by
// the import pipeline are never mutated by it afterwards.
type GradeEntry struct {
	ID           string         `db:"id" json:"id"`
	ClassID      int64          `db:"class_id" json:"class_id"`
	ComponentID  int64          `db:"component_id" json:"component_id"`
	StudentID    int64          `db:"student_id" json:"student_id"`
	Score        float64        `db:"score" json:"score"`
	MaxScore     float64        `db:"max_score" json:"max_score"`
	EntryType    string         `db:"entry_type" json:"entry_type"`
	DateRecorded time.Time      `db:"date_recorded" json:"date_recorded"`
	GradePeriod  *string        `db:"grade_period" json:"grade_period,omitempty"`
	Name         *string        `db:"name" json:"name,omitempty"`
	Topics       pq.StringArray `db:"topics" json:"topics"`
}

// GradeEntryWithComponent is the validated join shape the aggregator reads:
// one scored entry together with its component weight and subject. Entries
// whose component or subject was deleted never reach this struct. Outcome
// fields come from a left join and stay nil for untagged entries.
type GradeEntryWithComponent struct {
	EntryID          string    `db:"id" json:"id"`
	StudentID        int64     `db:"student_id" json:"student_id"`
	SubjectID        int64     `db:"subject_id" json:"subject_id"`
	SubjectName      string    `db:"subject_name" json:"subject_name"`
	SubjectCode      string    `db:"subject_code" json:"subject_code"`
	Units            float64   `db:"units" json:"units"`
	ComponentID      int64     `db:"component_id" json:"component_id"`
	ComponentName    string    `db:"component_name" json:"component_name"`
	WeightPercentage float64   `db:"weight_percentage" json:"weight_percentage"`
	Score            float64   `db:"score" json:"score"`
	MaxScore         float64   `db:"max_score" json:"max_score"`
	Name             *string   `db:"name" json:"name,omitempty"`
	DateRecorded     time.Time `db:"date_recorded" json:"date_recorded"`
	OutcomeID        *int64    `db:"outcome_id" json:"outcome_id,omitempty"`
	OutcomeCode      *string   `db:"outcome_code" json:"outcome_code,omitempty"`
}

// FinalGrade is a completed subject grade used for cumulative GPA. Only rows
// with Taken and a non-nil grade count.
type FinalGrade struct {
	StudentID   int64    `db:"student_id" json:"student_id"`
	SubjectID   int64    `db:"subject_id" json:"subject_id"`
	SubjectName string   `db:"subject_name" json:"subject_name"`
	Grade       *float64 `db:"grade" json:"grade,omitempty"`
	Units       float64  `db:"units" json:"units"`
	Taken       bool     `db:"taken" json:"taken"`
}

// GradeEntryFilter scopes existing-entry reads for deduplication.
type GradeEntryFilter struct {
	ClassID     int64
	ComponentID int64
}
