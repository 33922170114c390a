package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/myrroearl/atam-sub002/internal/classroom"
	"github.com/myrroearl/atam-sub002/internal/dto"
	"github.com/myrroearl/atam-sub002/internal/models"
	"github.com/myrroearl/atam-sub002/pkg/config"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

type importStudentRepo interface {
	ListBySection(ctx context.Context, sectionID int64) ([]models.Student, error)
}

type importEntryRepo interface {
	FindClass(ctx context.Context, classID int64) (*models.Class, error)
	FindComponent(ctx context.Context, componentID int64) (*models.GradeComponent, error)
	ListByClassAndComponent(ctx context.Context, filter models.GradeEntryFilter) ([]models.GradeEntry, error)
	BulkInsert(ctx context.Context, entries []models.GradeEntry) (int, error)
}

type importCache interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// SyncScoresInput identifies one reconciliation run: an external coursework
// and the local class/component its scores land in.
type SyncScoresInput struct {
	ClassID      int64    `json:"class_id" validate:"required"`
	ComponentID  int64    `json:"component_id" validate:"required"`
	CourseID     string   `json:"course_id" validate:"required"`
	CourseworkID string   `json:"coursework_id" validate:"required"`
	GradePeriod  string   `json:"grade_period,omitempty"`
	Topics       []string `json:"topics,omitempty"`
}

// ImportService reconciles external classroom scores against the
// authoritative section roster and persists one entry per roster member.
type ImportService struct {
	students  importStudentRepo
	entries   importEntryRepo
	classroom classroom.API
	cache     importCache
	metrics   *MetricsService
	cfg       config.ImportConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewImportService constructs an ImportService.
func NewImportService(students importStudentRepo, entries importEntryRepo, client classroom.API, cache importCache, metrics *MetricsService, cfg config.ImportConfig, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		students:  students,
		entries:   entries,
		classroom: client,
		cache:     cache,
		metrics:   metrics,
		cfg:       cfg,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// SyncScores runs one reconciliation pass. The roster drives the output:
// every roster member gets exactly one entry, a real score when a matched
// submission carries one, a placeholder zero otherwise. The run never
// updates existing rows; duplicates are dropped and reported.
func (s *ImportService) SyncScores(ctx context.Context, token string, input SyncScoresInput) (*dto.SyncScoresResult, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sync request")
	}

	class, err := s.entries.FindClass(ctx, input.ClassID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	component, err := s.entries.FindComponent(ctx, input.ComponentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grade component not found")
	}

	coursework, err := s.classroom.GetCoursework(ctx, token, input.CourseID, input.CourseworkID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.classroom.ListSubmissions(ctx, token, input.CourseID, input.CourseworkID)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxBatchSize > 0 && len(submissions) > s.cfg.MaxBatchSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("coursework has %d submissions, limit is %d", len(submissions), s.cfg.MaxBatchSize))
	}
	externalRoster, err := s.classroom.ListStudents(ctx, token, input.CourseID)
	if err != nil {
		return nil, err
	}

	roster, err := s.students.ListBySection(ctx, class.SectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load section roster")
	}
	index := BuildRosterIndex(roster)

	emailByUserID := make(map[string]string, len(externalRoster))
	for _, ext := range externalRoster {
		emailByUserID[ext.UserID] = ext.Email
	}

	// Resolve submissions to roster students. Unresolvable and scoreless
	// submissions are both skipped; the roster member behind a scoreless one
	// still gets a placeholder below.
	scores := make(map[int64]float64, len(submissions))
	skipped := 0
	for _, sub := range submissions {
		student, ok := index.Resolve(emailByUserID[sub.UserID])
		if !ok {
			skipped++
			continue
		}
		score, hasScore := ExtractScore(sub)
		if !hasScore {
			skipped++
			continue
		}
		scores[student.StudentID] = score
	}

	maxScore := s.cfg.DefaultMaxScore
	if coursework.MaxPoints != nil && *coursework.MaxPoints > 0 {
		maxScore = *coursework.MaxPoints
	}

	batch, placeholders := s.buildEntries(roster, scores, input, coursework.Title, maxScore)

	existing, err := s.entries.ListByClassAndComponent(ctx, models.GradeEntryFilter{ClassID: input.ClassID, ComponentID: input.ComponentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load existing entries")
	}
	existingKeys := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		existingKeys[entryKey(entry)] = struct{}{}
	}

	dedup := Deduplicator[models.GradeEntry]{
		Key: entryKey,
		Validate: func(e models.GradeEntry) bool {
			return e.MaxScore > 0 && e.Score >= 0
		},
	}
	filtered := dedup.Run(batch, existingKeys)

	start := s.now()
	inserted, err := s.entries.BulkInsert(ctx, filtered.Accepted)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist grade entries")
	}
	s.metrics.ObserveDBQuery("grade_entries_bulk_insert", s.now().Sub(start))
	s.metrics.RecordImport(inserted, filtered.PersistedDuplicates+filtered.InBatchDuplicates, filtered.Invalid)

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "performance:*"); err != nil {
			s.logger.Warn("invalidate performance cache", zap.Error(err))
		}
	}

	s.logger.Info("classroom sync completed",
		zap.Int64("class_id", input.ClassID),
		zap.Int64("component_id", input.ComponentID),
		zap.String("coursework", coursework.Title),
		zap.Int("submissions", len(submissions)),
		zap.Int("matched", len(scores)),
		zap.Int("skipped", skipped),
		zap.Int("inserted", inserted),
		zap.Int("roster_without_email", index.SkippedNoEmail()))

	return &dto.SyncScoresResult{
		TotalSubmissions:   len(submissions),
		MatchedStudents:    len(scores),
		SkippedStudents:    skipped,
		PlaceholderEntries: placeholders,
		TotalEntries:       inserted,
		Duplicates: dto.DuplicateCounts{
			Persisted: filtered.PersistedDuplicates,
			InBatch:   filtered.InBatchDuplicates,
		},
		InvalidEntries:  filtered.Invalid,
		CourseworkTitle: coursework.Title,
		ComponentID:     component.ComponentID,
		ComponentType:   string(classifyComponent(*component)),
	}, nil
}

// buildEntries synthesizes the run batch: one entry per roster member, in
// roster order. Placeholders carry the same entry type as real scores so
// the gradebook renders them uniformly.
func (s *ImportService) buildEntries(roster []models.Student, scores map[int64]float64, input SyncScoresInput, title string, maxScore float64) ([]models.GradeEntry, int) {
	recorded := s.now().UTC()
	topics := input.Topics
	if topics == nil {
		topics = []string{}
	}
	entries := make([]models.GradeEntry, 0, len(roster))
	placeholders := 0
	for _, student := range roster {
		score, scored := scores[student.StudentID]
		if !scored {
			placeholders++
		}
		entry := models.GradeEntry{
			ClassID:      input.ClassID,
			ComponentID:  input.ComponentID,
			StudentID:    student.StudentID,
			Score:        score,
			MaxScore:     maxScore,
			EntryType:    models.EntryTypeImported,
			DateRecorded: recorded,
			Topics:       topics,
		}
		name := title
		entry.Name = &name
		if input.GradePeriod != "" {
			period := input.GradePeriod
			entry.GradePeriod = &period
		}
		entries = append(entries, entry)
	}
	return entries, placeholders
}

// entryKey is the natural identity of a grade entry inside one class and
// component scope: the student, the grading period and the normalized
// coursework name. The same coursework imported under a different period
// is a distinct entry, not a duplicate.
func entryKey(e models.GradeEntry) string {
	name := ""
	if e.Name != nil {
		name = strings.ToLower(strings.TrimSpace(*e.Name))
	}
	period := ""
	if e.GradePeriod != nil {
		period = strings.ToLower(strings.TrimSpace(*e.GradePeriod))
	}
	return fmt.Sprintf("%d|%d|%d|%s|%s", e.ClassID, e.ComponentID, e.StudentID, period, name)
}
