package models

// Student is the authoritative roster record, joined with its account email.
// Email may be empty when the account has none; matching treats that as
// absent, never as an error.
type Student struct {
	StudentID  int64  `db:"student_id" json:"student_id"`
	SectionID  int64  `db:"section_id" json:"section_id"`
	FirstName  string `db:"first_name" json:"first_name"`
	MiddleName string `db:"middle_name" json:"middle_name,omitempty"`
	LastName   string `db:"last_name" json:"last_name"`
	Email      string `db:"email" json:"email"`
}

// Class scopes grade entries to a section and subject.
type Class struct {
	ClassID   int64 `db:"class_id" json:"class_id"`
	SectionID int64 `db:"section_id" json:"section_id"`
	SubjectID int64 `db:"subject_id" json:"subject_id"`
}
