package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/myrroearl/atam-sub002/internal/models"
)

// ResourceRepository persists harvested learning resources.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository constructs a ResourceRepository.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// ListURLs returns the URLs of every stored resource, active or not, for
// pre-insert deduplication.
func (r *ResourceRepository) ListURLs(ctx context.Context) ([]string, error) {
	const query = `SELECT url FROM learning_resources`
	var urls []string
	if err := r.db.SelectContext(ctx, &urls, query); err != nil {
		return nil, fmt.Errorf("list resource urls: %w", err)
	}
	return urls, nil
}

// BulkInsert writes accepted resources in one transaction.
func (r *ResourceRepository) BulkInsert(ctx context.Context, resources []models.LearningResource) (int, error) {
	if len(resources) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert resources: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO learning_resources (id, title, description, type, source, url, author, topics, tags, likes, dislikes, is_active, created_at, updated_at)
        VALUES (:id, :title, :description, :type, :source, :url, :author, :topics, :tags, :likes, :dislikes, :is_active, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range resources {
		if resources[i].ID == "" {
			resources[i].ID = uuid.NewString()
		}
		if resources[i].CreatedAt.IsZero() {
			resources[i].CreatedAt = now
		}
		resources[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, resources[i]); err != nil {
			return 0, fmt.Errorf("insert resource: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert resources: %w", err)
	}
	return len(resources), nil
}
