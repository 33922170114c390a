package service

import "github.com/myrroearl/atam-sub002/internal/models"

// ExtractScore picks the effective score from a submission. An assigned
// (returned) grade always wins over a draft; a present grade of 0 is a real
// score, only a missing grade means "no score".
func ExtractScore(sub models.ClassroomSubmission) (float64, bool) {
	if sub.AssignedGrade != nil {
		return *sub.AssignedGrade, true
	}
	if sub.DraftGrade != nil {
		return *sub.DraftGrade, true
	}
	return 0, false
}
