package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/myrroearl/atam-sub002/internal/models"
)

// GradeEntryRepository persists grade entries and the class/component
// metadata reconciliation needs around them.
type GradeEntryRepository struct {
	db *sqlx.DB
}

// NewGradeEntryRepository constructs a GradeEntryRepository.
func NewGradeEntryRepository(db *sqlx.DB) *GradeEntryRepository {
	return &GradeEntryRepository{db: db}
}

// FindClass fetches the class a reconciliation run targets.
func (r *GradeEntryRepository) FindClass(ctx context.Context, classID int64) (*models.Class, error) {
	const query = `SELECT class_id, section_id, subject_id FROM classes WHERE class_id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, classID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// FindComponent fetches a grading component by ID.
func (r *GradeEntryRepository) FindComponent(ctx context.Context, componentID int64) (*models.GradeComponent, error) {
	const query = `SELECT component_id, component_name, weight_percentage, COALESCE(category, '') AS category
        FROM grade_components WHERE component_id = $1`
	var component models.GradeComponent
	if err := r.db.GetContext(ctx, &component, query, componentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find component: %w", err)
	}
	return &component, nil
}

// ListByClassAndComponent returns existing entries in the dedup scope of an
// import run: same class and component, any student.
func (r *GradeEntryRepository) ListByClassAndComponent(ctx context.Context, filter models.GradeEntryFilter) ([]models.GradeEntry, error) {
	const query = `SELECT id, class_id, component_id, student_id, score, max_score, entry_type, date_recorded, grade_period, name, topics
        FROM grade_entries
        WHERE class_id = $1 AND component_id = $2`
	var entries []models.GradeEntry
	if err := r.db.SelectContext(ctx, &entries, query, filter.ClassID, filter.ComponentID); err != nil {
		return nil, fmt.Errorf("list existing entries: %w", err)
	}
	return entries, nil
}

// BulkInsert writes the accepted entries of a run in one transaction. IDs and
// timestamps are assigned here when absent. Returns the number of rows
// written; on any failure the whole batch rolls back.
func (r *GradeEntryRepository) BulkInsert(ctx context.Context, entries []models.GradeEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert entries: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO grade_entries (id, class_id, component_id, student_id, score, max_score, entry_type, date_recorded, grade_period, name, topics)
        VALUES (:id, :class_id, :component_id, :student_id, :score, :max_score, :entry_type, :date_recorded, :grade_period, :name, :topics)`
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].DateRecorded.IsZero() {
			entries[i].DateRecorded = now
		}
		if _, err := tx.NamedExecContext(ctx, query, entries[i]); err != nil {
			return 0, fmt.Errorf("insert grade entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert entries: %w", err)
	}
	return len(entries), nil
}

// ListScoredWithComponents returns every scored entry of a student joined
// with its component weight and subject. Inner joins drop entries whose
// component or subject has been deleted, so the aggregator never sees them.
// The learning-outcome join is a left join: most entries carry no outcome.
func (r *GradeEntryRepository) ListScoredWithComponents(ctx context.Context, studentID int64) ([]models.GradeEntryWithComponent, error) {
	const query = `SELECT ge.id, ge.student_id, sub.subject_id, sub.subject_name, sub.subject_code, sub.units,
        gc.component_id, gc.component_name, gc.weight_percentage,
        ge.score, ge.max_score, ge.name, ge.date_recorded,
        lo.outcome_id, lo.outcome_code
        FROM grade_entries ge
        JOIN grade_components gc ON gc.component_id = ge.component_id
        JOIN classes c ON c.class_id = ge.class_id
        JOIN subjects sub ON sub.subject_id = c.subject_id
        LEFT JOIN learning_outcomes lo ON lo.outcome_id = ge.outcome_id
        WHERE ge.student_id = $1 AND ge.max_score > 0
        ORDER BY ge.date_recorded`
	var entries []models.GradeEntryWithComponent
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list scored entries: %w", err)
	}
	return entries, nil
}
