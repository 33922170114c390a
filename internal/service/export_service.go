package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/myrroearl/atam-sub002/internal/dto"
	"github.com/myrroearl/atam-sub002/pkg/export"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

// Export formats accepted by the performance export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type performanceSummarizer interface {
	GetSummary(ctx context.Context, studentID int64) (*dto.PerformanceSummary, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportPayload is a rendered export ready to stream to the client.
type ExportPayload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders performance summaries as downloadable files.
type ExportService struct {
	performance performanceSummarizer
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the package defaults.
func NewExportService(performance performanceSummarizer, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{performance: performance, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ExportPerformance renders the performance summary of a student in the
// requested format.
func (s *ExportService) ExportPerformance(ctx context.Context, studentID int64, format string) (*ExportPayload, error) {
	summary, err := s.performance.GetSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}

	dataset := buildPerformanceDataset(summary)
	title := fmt.Sprintf("Performance Summary - Student %d", studentID)
	stamp := s.now().UTC().Format("20060102")

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportPayload{
			Data:        payload,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("performance_%d_%s.csv", studentID, stamp),
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportPayload{
			Data:        payload,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("performance_%d_%s.pdf", studentID, stamp),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildPerformanceDataset(summary *dto.PerformanceSummary) export.Dataset {
	rows := make([]map[string]string, 0, len(summary.Subjects)+1)
	for _, subject := range summary.Subjects {
		rows = append(rows, map[string]string{
			"subject":    subject.SubjectName,
			"code":       subject.SubjectCode,
			"units":      strconv.FormatFloat(subject.Units, 'f', -1, 64),
			"percentage": strconv.FormatFloat(subject.Percentage, 'f', 2, 64),
			"gpa":        strconv.FormatFloat(subject.GPA, 'f', 2, 64),
		})
	}
	rows = append(rows, map[string]string{
		"subject":    "Overall",
		"code":       "",
		"units":      strconv.FormatFloat(summary.TotalUnits, 'f', -1, 64),
		"percentage": strconv.FormatFloat(summary.WeightedAverage, 'f', 2, 64),
		"gpa":        strconv.FormatFloat(summary.OverallGPA, 'f', 2, 64),
	})
	return export.Dataset{
		Headers: []string{"subject", "code", "units", "percentage", "gpa"},
		Rows:    rows,
	}
}
