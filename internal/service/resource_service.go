package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/myrroearl/atam-sub002/internal/dto"
	"github.com/myrroearl/atam-sub002/internal/models"
	"github.com/myrroearl/atam-sub002/pkg/config"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

type resourceRepo interface {
	ListURLs(ctx context.Context) ([]string, error)
	BulkInsert(ctx context.Context, resources []models.LearningResource) (int, error)
}

// ResourceInput is one harvested item submitted for intake.
type ResourceInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"required,oneof=video article book course other"`
	Source      string   `json:"source"`
	URL         string   `json:"url" validate:"required,url"`
	Author      string   `json:"author"`
	Topics      []string `json:"topics"`
	Tags        []string `json:"tags"`
}

// ResourceService filters harvested learning resources against the stored
// catalog and persists the survivors. Identity is the normalized URL, so
// http/https and trailing-slash variants of one page collapse together.
type ResourceService struct {
	repo      resourceRepo
	cfg       config.ResourcesConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResourceService constructs a ResourceService.
func NewResourceService(repo resourceRepo, cfg config.ResourcesConfig, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{repo: repo, cfg: cfg, validator: validator.New(), logger: logger}
}

// Harvest runs one intake batch and reports what was kept and what was
// dropped. Items invalid under the input schema count as invalid rather
// than failing the batch.
func (s *ResourceService) Harvest(ctx context.Context, inputs []ResourceInput) (*dto.HarvestResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "resource harvest is disabled")
	}

	existingURLs, err := s.repo.ListURLs(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load resource catalog")
	}
	existingKeys := make(map[string]struct{}, len(existingURLs))
	for _, url := range existingURLs {
		existingKeys[NormalizeURL(url)] = struct{}{}
	}

	batch := make([]models.LearningResource, 0, len(inputs))
	invalid := 0
	for _, input := range inputs {
		if err := s.validator.Struct(input); err != nil {
			invalid++
			continue
		}
		topics := input.Topics
		if topics == nil {
			topics = []string{}
		}
		tags := input.Tags
		if tags == nil {
			tags = []string{}
		}
		batch = append(batch, models.LearningResource{
			Title:       input.Title,
			Description: input.Description,
			Type:        input.Type,
			Source:      input.Source,
			URL:         input.URL,
			Author:      input.Author,
			Topics:      topics,
			Tags:        tags,
			IsActive:    true,
		})
	}

	dedup := Deduplicator[models.LearningResource]{
		Key: func(r models.LearningResource) string { return NormalizeURL(r.URL) },
	}
	filtered := dedup.Run(batch, existingKeys)

	accepted, err := s.repo.BulkInsert(ctx, filtered.Accepted)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist resources")
	}

	s.logger.Info("resource harvest completed",
		zap.Int("submitted", len(inputs)),
		zap.Int("accepted", accepted),
		zap.Int("persisted_duplicates", filtered.PersistedDuplicates),
		zap.Int("in_batch_duplicates", filtered.InBatchDuplicates),
		zap.Int("invalid", invalid))

	return &dto.HarvestResult{
		TotalProcessed: len(inputs),
		Accepted:       accepted,
		Duplicates: dto.DuplicateCounts{
			Persisted: filtered.PersistedDuplicates,
			InBatch:   filtered.InBatchDuplicates,
		},
		Invalid: invalid,
	}, nil
}
