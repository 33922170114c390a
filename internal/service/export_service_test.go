package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrroearl/atam-sub002/internal/dto"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

type fakeSummarizer struct {
	summary dto.PerformanceSummary
}

func (f *fakeSummarizer) GetSummary(_ context.Context, _ int64) (*dto.PerformanceSummary, error) {
	return &f.summary, nil
}

func exportFixture() *fakeSummarizer {
	return &fakeSummarizer{summary: dto.PerformanceSummary{
		Subjects: []dto.SubjectGrade{
			{SubjectID: 11, SubjectName: "Calculus", SubjectCode: "MATH101", Units: 3, Percentage: 74.4, GPA: 3.5},
		},
		TotalUnits:      3,
		WeightedAverage: 74.4,
		OverallGPA:      3.5,
	}}
}

func TestExportPerformanceCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	payload, err := svc.ExportPerformance(context.Background(), 7, ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", payload.ContentType)
	assert.True(t, strings.HasPrefix(payload.Filename, "performance_7_"))

	body := string(payload.Data)
	assert.Contains(t, body, "subject,code,units,percentage,gpa")
	assert.Contains(t, body, "Calculus,MATH101,3,74.40,3.50")
	assert.Contains(t, body, "Overall,,3,74.40,3.50")
}

func TestExportPerformancePDF(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	payload, err := svc.ExportPerformance(context.Background(), 7, ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", payload.ContentType)
	assert.True(t, strings.HasPrefix(string(payload.Data), "%PDF"))
}

func TestExportPerformanceUnknownFormat(t *testing.T) {
	svc := NewExportService(exportFixture(), nil, nil, nil)

	_, err := svc.ExportPerformance(context.Background(), 7, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
