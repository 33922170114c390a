package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrroearl/atam-sub002/internal/models"
)

func TestGradeEntryRepositoryListByClassAndComponent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeEntryRepository(db)

	rows := sqlmock.NewRows([]string{"id", "class_id", "component_id", "student_id", "score", "max_score", "entry_type", "date_recorded", "grade_period", "name", "topics"}).
		AddRow("e1", int64(1), int64(2), int64(7), 40.0, 50.0, models.EntryTypeImported, time.Now(), nil, "Quiz 3", "{}")
	mock.ExpectQuery("SELECT id, class_id, component_id, student_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(rows)

	entries, err := repo.ListByClassAndComponent(context.Background(), models.GradeEntryFilter{ClassID: 1, ComponentID: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeEntryRepositoryBulkInsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO grade_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO grade_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "Quiz 3"
	entries := []models.GradeEntry{
		{ClassID: 1, ComponentID: 2, StudentID: 7, Score: 40, MaxScore: 50, EntryType: models.EntryTypeImported, Name: &name, Topics: []string{}},
		{ClassID: 1, ComponentID: 2, StudentID: 9, Score: 0, MaxScore: 50, EntryType: models.EntryTypeImported, Name: &name, Topics: []string{}},
	}
	inserted, err := repo.BulkInsert(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	// IDs and timestamps assigned in place.
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[1].DateRecorded.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeEntryRepositoryBulkInsertEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeEntryRepository(db)

	inserted, err := repo.BulkInsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeEntryRepositoryBulkInsertRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO grade_entries").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.BulkInsert(context.Background(), []models.GradeEntry{
		{ClassID: 1, ComponentID: 2, StudentID: 7, Score: 40, MaxScore: 50, EntryType: models.EntryTypeImported, Topics: []string{}},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeEntryRepositoryListScoredWithComponents(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeEntryRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "subject_name", "subject_code", "units", "component_id", "component_name", "weight_percentage", "score", "max_score", "name", "date_recorded", "outcome_id", "outcome_code"}).
		AddRow("e1", int64(7), int64(11), "Calculus", "MATH101", 3.0, int64(2), "Quizzes", 30.0, 40.0, 50.0, "Quiz 3", time.Now(), int64(5), "LO1").
		AddRow("e2", int64(7), int64(11), "Calculus", "MATH101", 3.0, int64(2), "Quizzes", 30.0, 35.0, 50.0, "Quiz 4", time.Now(), nil, nil)
	mock.ExpectQuery("SELECT ge.id, ge.student_id, sub.subject_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	entries, err := repo.ListScoredWithComponents(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Quizzes", entries[0].ComponentName)
	assert.Equal(t, 30.0, entries[0].WeightPercentage)
	require.NotNil(t, entries[0].OutcomeID)
	assert.Equal(t, int64(5), *entries[0].OutcomeID)
	assert.Nil(t, entries[1].OutcomeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
