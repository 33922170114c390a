package models

import (
	"time"

	"github.com/lib/pq"
)

// LearningResource is a harvested content item (video, article, book).
// Uniqueness is by normalized URL; the harvest intake deduplicates before
// insertion.
type LearningResource struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Type        string         `db:"type" json:"type"`
	Source      string         `db:"source" json:"source"`
	URL         string         `db:"url" json:"url"`
	Author      string         `db:"author" json:"author"`
	Topics      pq.StringArray `db:"topics" json:"topics"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Likes       int            `db:"likes" json:"likes"`
	Dislikes    int            `db:"dislikes" json:"dislikes"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
