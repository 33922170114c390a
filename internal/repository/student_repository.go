package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/myrroearl/atam-sub002/internal/models"
)

// StudentRepository reads the authoritative section rosters.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListBySection returns every student enrolled in a section together with the
// account email. Students without an account row come back with an empty
// email; matching downstream treats them as unmatched rather than failing
// the run.
func (r *StudentRepository) ListBySection(ctx context.Context, sectionID int64) ([]models.Student, error) {
	const query = `SELECT s.student_id, s.section_id, s.first_name, COALESCE(s.middle_name, '') AS middle_name, s.last_name,
        COALESCE(a.email, '') AS email
        FROM students s
        LEFT JOIN accounts a ON a.account_id = s.account_id
        WHERE s.section_id = $1
        ORDER BY s.last_name, s.first_name`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, sectionID); err != nil {
		return nil, fmt.Errorf("list section roster: %w", err)
	}
	return students, nil
}

// FindByID fetches a single student with account email.
func (r *StudentRepository) FindByID(ctx context.Context, studentID int64) (*models.Student, error) {
	const query = `SELECT s.student_id, s.section_id, s.first_name, COALESCE(s.middle_name, '') AS middle_name, s.last_name,
        COALESCE(a.email, '') AS email
        FROM students s
        LEFT JOIN accounts a ON a.account_id = s.account_id
        WHERE s.student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}
