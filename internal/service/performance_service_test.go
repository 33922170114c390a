package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrroearl/atam-sub002/internal/dto"
	"github.com/myrroearl/atam-sub002/internal/models"
	"github.com/myrroearl/atam-sub002/pkg/config"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

type fakePerfEntryRepo struct {
	entries []models.GradeEntryWithComponent
	calls   int
}

func (f *fakePerfEntryRepo) ListScoredWithComponents(_ context.Context, _ int64) ([]models.GradeEntryWithComponent, error) {
	f.calls++
	return f.entries, nil
}

type fakeFinalRepo struct {
	finals []models.FinalGrade
}

func (f *fakeFinalRepo) ListByStudent(_ context.Context, _ int64) ([]models.FinalGrade, error) {
	return f.finals, nil
}

type fakePerfCache struct {
	store map[string]*dto.PerformanceSummary
	sets  int
}

func (f *fakePerfCache) Get(_ context.Context, key string, dest interface{}) error {
	cached, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*dto.PerformanceSummary) = *cached
	return nil
}

func (f *fakePerfCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if f.store == nil {
		f.store = make(map[string]*dto.PerformanceSummary)
	}
	summary := value.(*dto.PerformanceSummary)
	copied := *summary
	f.store[key] = &copied
	f.sets++
	return nil
}

func perfEntry(subjectID int64, componentID int64, componentName string, weight, score, max float64, recorded time.Time) models.GradeEntryWithComponent {
	return models.GradeEntryWithComponent{
		StudentID:        7,
		SubjectID:        subjectID,
		SubjectName:      "Calculus",
		SubjectCode:      "MATH101",
		Units:            3,
		ComponentID:      componentID,
		ComponentName:    componentName,
		WeightPercentage: weight,
		Score:            score,
		MaxScore:         max,
		DateRecorded:     recorded,
	}
}

func newPerfService(entries *fakePerfEntryRepo, finals *fakeFinalRepo, cache *fakePerfCache) *PerformanceService {
	var c performanceCache
	if cache != nil {
		c = cache
	}
	return NewPerformanceService(entries, finals, c, nil, config.PerformanceConfig{CacheTTL: time.Minute, WeeklyLimit: 10}, nil)
}

func TestGetSummaryWeightedAggregation(t *testing.T) {
	// Wednesday 2026-01-07, week starts Sunday 2026-01-04.
	recorded := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)
	entries := &fakePerfEntryRepo{entries: []models.GradeEntryWithComponent{
		perfEntry(11, 20, "Quizzes", 30, 40, 50, recorded),
		perfEntry(11, 21, "Major Exam", 70, 36, 50, recorded),
	}}
	grade := 85.0
	finals := &fakeFinalRepo{finals: []models.FinalGrade{
		{StudentID: 7, SubjectID: 11, SubjectName: "Calculus", Grade: &grade, Units: 3, Taken: true},
	}}
	svc := newPerfService(entries, finals, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	// Quizzes pool to 80%, exams to 72%; 80*0.3 + 72*0.7 = 74.4.
	require.Len(t, summary.Subjects, 1)
	assert.Equal(t, 74.4, summary.Subjects[0].Percentage)
	assert.Equal(t, 3.5, summary.Subjects[0].GPA)
	require.Len(t, summary.Subjects[0].Components, 2)
	assert.Equal(t, 80.0, summary.Subjects[0].Components[0].Percentage)
	assert.Equal(t, 72.0, summary.Subjects[0].Components[1].Percentage)

	require.Len(t, summary.Weekly, 1)
	assert.Equal(t, "W1 • Jan 4", summary.Weekly[0].Week)
	assert.Equal(t, 74, summary.Weekly[0].Performance)
	assert.Equal(t, 1, summary.Weekly[0].Assignments)
	assert.Equal(t, 1, summary.Weekly[0].Exams)
	assert.Equal(t, 1, summary.WeeksTracked)

	assert.Equal(t, 74.0, summary.AvgPerformance)
	assert.Equal(t, 100.0, summary.CompletionRate)
	assert.Equal(t, 2, summary.TotalEntries)

	assert.Equal(t, 85.0, summary.GPA)
	assert.Equal(t, 3.0, summary.TotalUnits)
	assert.Equal(t, 1, summary.SubjectsPassed)
	assert.Equal(t, 1, summary.TotalSubjects)

	assert.Equal(t, 74.4, summary.WeightedAverage)
	assert.Equal(t, 3.5, summary.OverallGPA)

	// avg 74 < 80 adds 3, completion 100 adds 0, gpa 85 adds 0.
	assert.Equal(t, 3, summary.RiskScore)
	assert.Equal(t, dto.RiskModerate, summary.RiskLevel)
}

func TestGetSummaryPoolsScoresBeforeWeighting(t *testing.T) {
	recorded := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	entries := &fakePerfEntryRepo{entries: []models.GradeEntryWithComponent{
		perfEntry(11, 20, "Quiz", 40, 8, 10, recorded),
		perfEntry(11, 20, "Quiz", 40, 9, 10, recorded),
		perfEntry(11, 21, "Exam", 60, 70, 100, recorded),
	}}
	svc := newPerfService(entries, &fakeFinalRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	// Quiz scores pool to 17/20 = 85%, not the 82.5% a per-entry average gives.
	require.Len(t, summary.Subjects, 1)
	require.Len(t, summary.Subjects[0].Components, 2)
	assert.Equal(t, 85.0, summary.Subjects[0].Components[0].Percentage)
	assert.Equal(t, 70.0, summary.Subjects[0].Components[1].Percentage)
	// 85*0.4 + 70*0.6 = 76.
	assert.Equal(t, 76.0, summary.Subjects[0].Percentage)
	assert.Equal(t, 3.0, summary.Subjects[0].GPA)
}

func outcomeEntry(e models.GradeEntryWithComponent, outcomeID int64, code string) models.GradeEntryWithComponent {
	e.OutcomeID = &outcomeID
	e.OutcomeCode = &code
	return e
}

func TestGetSummaryPoolsOutcomes(t *testing.T) {
	recorded := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)
	entries := &fakePerfEntryRepo{entries: []models.GradeEntryWithComponent{
		outcomeEntry(perfEntry(11, 20, "Quizzes", 30, 40, 50, recorded), 5, "LO1"),
		outcomeEntry(perfEntry(11, 20, "Quizzes", 30, 30, 50, recorded), 5, "LO1"),
		outcomeEntry(perfEntry(11, 21, "Major Exam", 70, 36, 50, recorded), 6, "LO2"),
		perfEntry(11, 20, "Quizzes", 30, 10, 50, recorded), // untagged
	}}
	svc := newPerfService(entries, &fakeFinalRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 2)
	assert.Equal(t, int64(5), summary.Outcomes[0].OutcomeID)
	assert.Equal(t, "LO1", summary.Outcomes[0].OutcomeCode)
	assert.Equal(t, 70.0, summary.Outcomes[0].TotalScore)
	assert.Equal(t, 100.0, summary.Outcomes[0].TotalPossible)
	assert.Equal(t, 2, summary.Outcomes[0].Count)
	assert.Equal(t, int64(6), summary.Outcomes[1].OutcomeID)
	assert.Equal(t, 36.0, summary.Outcomes[1].TotalScore)
	assert.Equal(t, 1, summary.Outcomes[1].Count)
}

func TestGetSummaryZeroData(t *testing.T) {
	svc := newPerfService(&fakePerfEntryRepo{}, &fakeFinalRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	assert.Empty(t, summary.Weekly)
	assert.Zero(t, summary.WeeksTracked)
	assert.Zero(t, summary.AvgPerformance)
	assert.Zero(t, summary.CompletionRate)
	assert.Zero(t, summary.GPA)
	assert.Empty(t, summary.Subjects)
	// All three weak signals fire: 3 + 2 + 3.
	assert.Equal(t, 8, summary.RiskScore)
	assert.Equal(t, dto.RiskHigh, summary.RiskLevel)
}

func TestGetSummaryWeeklyTruncation(t *testing.T) {
	var entryList []models.GradeEntryWithComponent
	start := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	for week := 0; week < 12; week++ {
		entryList = append(entryList, perfEntry(11, 20, "Quizzes", 100, 40, 50, start.AddDate(0, 0, week*7)))
	}
	svc := newPerfService(&fakePerfEntryRepo{entries: entryList}, &fakeFinalRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 12, summary.WeeksTracked)
	require.Len(t, summary.Weekly, 10)
	// Oldest two weeks fall off; the window keeps the most recent ones.
	assert.Equal(t, "W3 • Jan 18", summary.Weekly[0].Week)
}

func TestGetSummaryDropsZeroWeeks(t *testing.T) {
	recorded := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
	entries := &fakePerfEntryRepo{entries: []models.GradeEntryWithComponent{
		perfEntry(11, 20, "Quizzes", 30, 0, 50, recorded),
	}}
	svc := newPerfService(entries, &fakeFinalRepo{}, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, summary.Weekly)
	assert.Zero(t, summary.WeeksTracked)
	// The entry still counts toward completion even though its week is hidden.
	assert.Equal(t, 1, summary.TotalEntries)
}

func TestGetSummaryIgnoresUntakenAndUngradeFinals(t *testing.T) {
	graded := 90.0
	negative := -1.0
	finals := &fakeFinalRepo{finals: []models.FinalGrade{
		{SubjectID: 1, Grade: &graded, Units: 3, Taken: true},
		{SubjectID: 2, Grade: nil, Units: 3, Taken: true},
		{SubjectID: 3, Grade: &graded, Units: 3, Taken: false},
		{SubjectID: 4, Grade: &negative, Units: 3, Taken: true},
	}}
	svc := newPerfService(&fakePerfEntryRepo{}, finals, nil)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 90.0, summary.GPA)
	assert.Equal(t, 3.0, summary.TotalUnits)
	assert.Equal(t, 1, summary.TotalSubjects)
}

func TestGetSummaryServesFromCache(t *testing.T) {
	recorded := time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC)
	entries := &fakePerfEntryRepo{entries: []models.GradeEntryWithComponent{
		perfEntry(11, 20, "Quizzes", 30, 40, 50, recorded),
	}}
	cache := &fakePerfCache{}
	svc := newPerfService(entries, &fakeFinalRepo{}, cache)

	first, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, entries.calls)
	require.Equal(t, 1, cache.sets)

	second, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, entries.calls, "second read must not hit the database")
	assert.Equal(t, first, second)
}

func TestRiskScoreBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		avg, rate  float64
		gpa        float64
		wantScore  int
	}{
		{"all healthy", 95, 95, 4.0, 0},
		{"avg exactly 80", 80, 100, 4.0, 1},
		{"avg just under 80", 79.999, 100, 4.0, 3},
		{"completion tiers", 100, 85, 4.0, 1},
		{"completion low", 100, 79, 4.0, 2},
		{"gpa 3.49", 100, 100, 3.49, 1},
		{"gpa 2.99", 100, 100, 2.99, 2},
		{"gpa 2.49", 100, 100, 2.49, 3},
		{"everything weak", 50, 50, 1.0, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantScore, riskScoreFor(tt.avg, tt.rate, tt.gpa))
		})
	}
}

func TestConvertPercentageToGPA(t *testing.T) {
	assert.Equal(t, 1.0, convertPercentageToGPA(100))
	assert.Equal(t, 1.0, convertPercentageToGPA(97.5))
	assert.Equal(t, 1.25, convertPercentageToGPA(97.49))
	assert.Equal(t, 3.0, convertPercentageToGPA(74.5))
	assert.Equal(t, 3.5, convertPercentageToGPA(74.4))
	assert.Equal(t, 5.0, convertPercentageToGPA(59.4))
	assert.Equal(t, 5.0, convertPercentageToGPA(0))
}
