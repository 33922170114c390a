package service

import (
	"strings"

	"github.com/myrroearl/atam-sub002/internal/models"
)

// Component-name heuristics. The trend chart and run diagnostics classify
// by name because most stored components predate the explicit category
// column; a set category always wins. The two predicates may both match a
// name like "final quiz" and the weekly counts intentionally count it twice.

func isAssignmentName(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "assignment") || strings.Contains(n, "quiz") || strings.Contains(n, "homework")
}

func isExamName(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "exam") || strings.Contains(n, "test") || strings.Contains(n, "final")
}

func classifyComponent(component models.GradeComponent) models.ComponentCategory {
	if component.Category != "" {
		return component.Category
	}
	switch {
	case isExamName(component.ComponentName):
		return models.CategoryExam
	case isAssignmentName(component.ComponentName):
		return models.CategoryAssignment
	default:
		return models.CategoryOther
	}
}
