package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/myrroearl/atam-sub002/internal/models"
)

// FinalGradeRepository reads completed subject grades for cumulative GPA.
type FinalGradeRepository struct {
	db *sqlx.DB
}

// NewFinalGradeRepository constructs a FinalGradeRepository.
func NewFinalGradeRepository(db *sqlx.DB) *FinalGradeRepository {
	return &FinalGradeRepository{db: db}
}

// ListByStudent returns every final-grade row of a student with subject
// units. Rows not yet taken or without a grade are included; the aggregator
// decides what counts toward GPA.
func (r *FinalGradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.FinalGrade, error) {
	const query = `SELECT fg.student_id, fg.subject_id, sub.subject_name, fg.grade, sub.units, fg.taken
        FROM final_grades fg
        JOIN subjects sub ON sub.subject_id = fg.subject_id
        WHERE fg.student_id = $1
        ORDER BY sub.subject_name`
	var grades []models.FinalGrade
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list final grades: %w", err)
	}
	return grades, nil
}
