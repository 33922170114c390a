package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrroearl/atam-sub002/internal/models"
)

func TestResourceRepositoryListURLs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	rows := sqlmock.NewRows([]string{"url"}).
		AddRow("https://youtube.com/watch?v=abc").
		AddRow("https://example.com/article")
	mock.ExpectQuery("SELECT url FROM learning_resources").WillReturnRows(rows)

	urls, err := repo.ListURLs(context.Background())
	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryBulkInsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO learning_resources").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resources := []models.LearningResource{
		{Title: "Linear Algebra Crash Course", Type: "video", Source: "youtube", URL: "https://youtube.com/watch?v=abc", Topics: []string{"math"}, Tags: []string{}, IsActive: true},
	}
	inserted, err := repo.BulkInsert(context.Background(), resources)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NotEmpty(t, resources[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
