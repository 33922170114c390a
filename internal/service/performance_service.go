package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/myrroearl/atam-sub002/internal/dto"
	"github.com/myrroearl/atam-sub002/internal/models"
	"github.com/myrroearl/atam-sub002/pkg/config"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

type performanceEntryRepo interface {
	ListScoredWithComponents(ctx context.Context, studentID int64) ([]models.GradeEntryWithComponent, error)
}

type performanceFinalRepo interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.FinalGrade, error)
}

type performanceCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PerformanceService derives the academic standing of a student from scored
// entries and completed finals. Summaries are computed on read and cached;
// nothing here writes grade data.
type PerformanceService struct {
	entries performanceEntryRepo
	finals  performanceFinalRepo
	cache   performanceCache
	metrics *MetricsService
	cfg     config.PerformanceConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewPerformanceService constructs a PerformanceService.
func NewPerformanceService(entries performanceEntryRepo, finals performanceFinalRepo, cache performanceCache, metrics *MetricsService, cfg config.PerformanceConfig, logger *zap.Logger) *PerformanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerformanceService{
		entries: entries,
		finals:  finals,
		cache:   cache,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// GetSummary returns the cached or freshly computed performance summary.
func (s *PerformanceService) GetSummary(ctx context.Context, studentID int64) (*dto.PerformanceSummary, error) {
	cacheKey := fmt.Sprintf("performance:%d", studentID)

	if s.cache != nil {
		start := s.now()
		var cached dto.PerformanceSummary
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true, s.now().Sub(start))
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false, s.now().Sub(start))
		if appErr := appErrors.FromError(err); appErr.Code != appErrors.ErrCacheMiss.Code {
			s.logger.Warn("performance cache read", zap.Int64("student_id", studentID), zap.Error(err))
		}
	}

	start := s.now()
	entries, err := s.entries.ListScoredWithComponents(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load grade entries")
	}
	finals, err := s.finals.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load final grades")
	}
	s.metrics.ObserveDBQuery("performance_load", s.now().Sub(start))

	summary := s.compute(entries, finals)

	if s.cache != nil {
		writeStart := s.now()
		if err := s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("performance cache write", zap.Int64("student_id", studentID), zap.Error(err))
		}
		s.metrics.ObserveCacheWrite(s.now().Sub(writeStart))
	}
	return summary, nil
}

func (s *PerformanceService) compute(entries []models.GradeEntryWithComponent, finals []models.FinalGrade) *dto.PerformanceSummary {
	buckets := weeklyBuckets(entries)

	avgPerformance := 0.0
	for _, bucket := range buckets {
		avgPerformance += float64(bucket.Performance)
	}
	if len(buckets) > 0 {
		avgPerformance /= float64(len(buckets))
	}

	totalEntries := len(entries)
	completedEntries := totalEntries
	completionRate := 0.0
	if totalEntries > 0 {
		completionRate = float64(completedEntries) / float64(totalEntries) * 100
	}

	var totalUnits, weightedGradePoints float64
	subjectsPassed := 0
	validFinals := 0
	for _, final := range finals {
		if !final.Taken || final.Grade == nil || *final.Grade < 0 {
			continue
		}
		validFinals++
		totalUnits += final.Units
		weightedGradePoints += *final.Grade * final.Units
		if *final.Grade >= 75 {
			subjectsPassed++
		}
	}
	gpa := 0.0
	if totalUnits > 0 {
		gpa = weightedGradePoints / totalUnits
	}

	riskScore := riskScoreFor(avgPerformance, completionRate, gpa)
	riskLevel := dto.RiskLow
	switch {
	case riskScore >= 5:
		riskLevel = dto.RiskHigh
	case riskScore >= 2:
		riskLevel = dto.RiskModerate
	}

	subjects := subjectGrades(entries)
	weightedAverage, overallGPA := unitWeightedStanding(subjects)

	limit := s.cfg.WeeklyLimit
	if limit <= 0 {
		limit = 10
	}
	weekly := buckets
	if len(weekly) > limit {
		weekly = weekly[len(weekly)-limit:]
	}

	return &dto.PerformanceSummary{
		Weekly:           weekly,
		WeeksTracked:     len(buckets),
		AvgPerformance:   math.Round(avgPerformance),
		CompletionRate:   math.Round(completionRate),
		TotalEntries:     totalEntries,
		CompletedEntries: completedEntries,
		GPA:              round2(gpa),
		TotalUnits:       totalUnits,
		SubjectsPassed:   subjectsPassed,
		TotalSubjects:    validFinals,
		RiskLevel:        riskLevel,
		RiskScore:        riskScore,
		Subjects:         subjects,
		Outcomes:         outcomePerformance(entries),
		WeightedAverage:  weightedAverage,
		OverallGPA:       overallGPA,
	}
}

// outcomePerformance pools raw score sums per learning outcome. Entries
// without an outcome tag are left out; first-seen order is kept.
func outcomePerformance(entries []models.GradeEntryWithComponent) []dto.OutcomePerformance {
	byOutcome := make(map[int64]*dto.OutcomePerformance)
	var order []int64
	for _, entry := range entries {
		if entry.OutcomeID == nil {
			continue
		}
		id := *entry.OutcomeID
		outcome, ok := byOutcome[id]
		if !ok {
			outcome = &dto.OutcomePerformance{OutcomeID: id}
			if entry.OutcomeCode != nil {
				outcome.OutcomeCode = *entry.OutcomeCode
			}
			byOutcome[id] = outcome
			order = append(order, id)
		}
		outcome.TotalScore += entry.Score
		outcome.TotalPossible += entry.MaxScore
		outcome.Count++
	}

	result := make([]dto.OutcomePerformance, 0, len(order))
	for _, id := range order {
		result = append(result, *byOutcome[id])
	}
	return result
}

// weeklyBuckets groups scored entries into Sunday-keyed calendar weeks and
// computes a weight-averaged percentage per week. Weeks that work out to
// zero are dropped from the trend.
func weeklyBuckets(entries []models.GradeEntryWithComponent) []dto.WeeklyBucket {
	type componentPool struct {
		score  float64
		max    float64
		weight float64
	}
	byWeek := make(map[string][]models.GradeEntryWithComponent)
	for _, entry := range entries {
		date := entry.DateRecorded.UTC()
		weekStart := date.AddDate(0, 0, -int(date.Weekday()))
		byWeek[weekStart.Format("2006-01-02")] = append(byWeek[weekStart.Format("2006-01-02")], entry)
	}

	weekKeys := make([]string, 0, len(byWeek))
	for key := range byWeek {
		weekKeys = append(weekKeys, key)
	}
	sort.Strings(weekKeys)

	type numbered struct {
		bucket dto.WeeklyBucket
		number int
		key    string
	}
	var buckets []numbered
	for _, weekKey := range weekKeys {
		weekEntries := byWeek[weekKey]

		pools := make(map[string]*componentPool)
		for _, entry := range weekEntries {
			if entry.WeightPercentage <= 0 {
				continue
			}
			key := fmt.Sprintf("%d-%d", entry.SubjectID, entry.ComponentID)
			pool, ok := pools[key]
			if !ok {
				pool = &componentPool{weight: entry.WeightPercentage}
				pools[key] = pool
			}
			pool.score += entry.Score
			pool.max += entry.MaxScore
		}

		var totalWeightedGrade, totalWeight float64
		for _, pool := range pools {
			percentage := 0.0
			if pool.max > 0 {
				percentage = pool.score / pool.max * 100
			}
			totalWeightedGrade += percentage * pool.weight / 100
			totalWeight += pool.weight
		}
		performance := 0.0
		if totalWeight > 0 {
			performance = totalWeightedGrade / totalWeight * 100
		}
		if performance <= 0 {
			continue
		}

		weekDate, _ := time.Parse("2006-01-02", weekKey)
		jan1 := time.Date(weekDate.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		weekNumber := int(math.Ceil(weekDate.Sub(jan1).Hours() / (24 * 7)))

		assignments, exams := 0, 0
		for _, entry := range weekEntries {
			if isAssignmentName(entry.ComponentName) {
				assignments++
			}
			if isExamName(entry.ComponentName) {
				exams++
			}
		}

		buckets = append(buckets, numbered{
			bucket: dto.WeeklyBucket{
				Week:        fmt.Sprintf("W%d • %s", weekNumber, weekDate.Format("Jan 2")),
				Performance: int(math.Round(performance)),
				Assignments: assignments,
				Exams:       exams,
			},
			number: weekNumber,
			key:    weekKey,
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].number != buckets[j].number {
			return buckets[i].number < buckets[j].number
		}
		return buckets[i].key < buckets[j].key
	})
	out := make([]dto.WeeklyBucket, len(buckets))
	for i, b := range buckets {
		out[i] = b.bucket
	}
	return out
}

// subjectGrades computes the weighted standing per subject: entries pool
// within each component, components combine by weight, normalized over the
// weights of components that actually have entries.
func subjectGrades(entries []models.GradeEntryWithComponent) []dto.SubjectGrade {
	type componentAgg struct {
		name   string
		weight float64
		score  float64
		max    float64
	}
	type subjectAgg struct {
		name       string
		code       string
		units      float64
		components map[int64]*componentAgg
		order      []int64
	}

	subjects := make(map[int64]*subjectAgg)
	var subjectOrder []int64
	for _, entry := range entries {
		subject, ok := subjects[entry.SubjectID]
		if !ok {
			subject = &subjectAgg{
				name:       entry.SubjectName,
				code:       entry.SubjectCode,
				units:      entry.Units,
				components: make(map[int64]*componentAgg),
			}
			subjects[entry.SubjectID] = subject
			subjectOrder = append(subjectOrder, entry.SubjectID)
		}
		component, ok := subject.components[entry.ComponentID]
		if !ok {
			component = &componentAgg{name: entry.ComponentName, weight: entry.WeightPercentage}
			subject.components[entry.ComponentID] = component
			subject.order = append(subject.order, entry.ComponentID)
		}
		component.score += entry.Score
		component.max += entry.MaxScore
	}

	result := make([]dto.SubjectGrade, 0, len(subjects))
	for _, subjectID := range subjectOrder {
		subject := subjects[subjectID]

		var totalWeightedScore, totalWeightUsed float64
		details := make([]dto.ComponentDetail, 0, len(subject.order))
		for _, componentID := range subject.order {
			component := subject.components[componentID]
			average := 0.0
			if component.max > 0 {
				average = round2(component.score / component.max * 100)
			}
			weight := component.weight / 100
			totalWeightedScore += average * weight
			totalWeightUsed += weight
			details = append(details, dto.ComponentDetail{
				ComponentName: component.name,
				Weight:        component.weight,
				Percentage:    average,
			})
		}
		percentage := 0.0
		if totalWeightUsed > 0 {
			percentage = round2(totalWeightedScore / totalWeightUsed)
		}

		result = append(result, dto.SubjectGrade{
			SubjectID:   subjectID,
			SubjectName: subject.name,
			SubjectCode: subject.code,
			Units:       subject.units,
			Percentage:  percentage,
			GPA:         convertPercentageToGPA(percentage),
			Components:  details,
		})
	}
	return result
}

// unitWeightedStanding combines per-subject percentages into a
// unit-weighted average and the equivalent 1.0-5.0 GPA.
func unitWeightedStanding(subjects []dto.SubjectGrade) (float64, float64) {
	var totalWeighted, totalPoints, totalUnits float64
	for _, subject := range subjects {
		totalWeighted += subject.Percentage * subject.Units
		totalPoints += subject.GPA * subject.Units
		totalUnits += subject.Units
	}
	if totalUnits == 0 {
		return 0, 0
	}
	return round2(totalWeighted / totalUnits), round2(totalPoints / totalUnits)
}

// riskScoreFor is additive: each weak signal contributes independently, and
// thresholds apply to the unrounded values.
func riskScoreFor(avgPerformance, completionRate, gpa float64) int {
	score := 0
	switch {
	case avgPerformance < 80:
		score += 3
	case avgPerformance < 90:
		score++
	}
	switch {
	case completionRate < 80:
		score += 2
	case completionRate < 90:
		score++
	}
	switch {
	case gpa < 2.5:
		score += 3
	case gpa < 3.0:
		score += 2
	case gpa < 3.5:
		score++
	}
	return score
}

// convertPercentageToGPA maps a percentage onto the Philippine 1.0-5.0
// scale, 1.0 being the highest passing mark.
func convertPercentageToGPA(percentage float64) float64 {
	switch {
	case percentage >= 97.5:
		return 1.0
	case percentage >= 94.5:
		return 1.25
	case percentage >= 91.5:
		return 1.5
	case percentage >= 88.5:
		return 1.75
	case percentage >= 85.5:
		return 2.0
	case percentage >= 82.5:
		return 2.25
	case percentage >= 79.5:
		return 2.5
	case percentage >= 76.5:
		return 2.75
	case percentage >= 74.5:
		return 3.0
	case percentage >= 69.5:
		return 3.5
	case percentage >= 64.5:
		return 4.0
	case percentage >= 59.5:
		return 4.5
	default:
		return 5.0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
