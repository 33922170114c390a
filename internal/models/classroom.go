package models

// ClassroomCoursework is one gradable assignment in the external classroom
// system. MaxPoints may be absent for ungraded work types.
type ClassroomCoursework struct {
	ID        string   `json:"id"`
	CourseID  string   `json:"courseId"`
	Title     string   `json:"title"`
	MaxPoints *float64 `json:"maxPoints,omitempty"`
	WorkType  string   `json:"workType,omitempty"`
}

// ClassroomSubmission is a raw external submission keyed by an opaque user
// ID. Grades are pointers: an assigned grade of 0 is a real score and must
// not collapse into "no score".
type ClassroomSubmission struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	AssignedGrade *float64 `json:"assignedGrade,omitempty"`
	DraftGrade    *float64 `json:"draftGrade,omitempty"`
	State         string   `json:"state,omitempty"`
	Late          bool     `json:"late,omitempty"`
}

// ClassroomStudent is an external roster member. Email may be empty when the
// profile hides it.
type ClassroomStudent struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}
