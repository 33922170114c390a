package service

import (
	"strings"

	"github.com/myrroearl/atam-sub002/internal/models"
)

// NormalizeEmail lowercases and trims an email for identity matching. An
// empty result means the address is unusable as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RosterIndex maps normalized account emails to roster students. When two
// roster rows normalize to the same email the later row wins; the collision
// is counted so the run diagnostics can surface it.
type RosterIndex struct {
	byEmail        map[string]models.Student
	skippedNoEmail int
	collisions     int
}

// BuildRosterIndex indexes a section roster by normalized email. Students
// without an email are skipped, not treated as an error.
func BuildRosterIndex(students []models.Student) *RosterIndex {
	idx := &RosterIndex{byEmail: make(map[string]models.Student, len(students))}
	for _, student := range students {
		key := NormalizeEmail(student.Email)
		if key == "" {
			idx.skippedNoEmail++
			continue
		}
		if _, exists := idx.byEmail[key]; exists {
			idx.collisions++
		}
		idx.byEmail[key] = student
	}
	return idx
}

// Resolve looks up a roster student by email, normalizing the input first.
func (idx *RosterIndex) Resolve(email string) (models.Student, bool) {
	key := NormalizeEmail(email)
	if key == "" {
		return models.Student{}, false
	}
	student, ok := idx.byEmail[key]
	return student, ok
}

// Size returns the number of indexed students.
func (idx *RosterIndex) Size() int {
	return len(idx.byEmail)
}

// SkippedNoEmail returns how many roster rows had no usable email.
func (idx *RosterIndex) SkippedNoEmail() int {
	return idx.skippedNoEmail
}

// Collisions returns how many roster rows were shadowed by a later row with
// the same normalized email.
func (idx *RosterIndex) Collisions() int {
	return idx.collisions
}
