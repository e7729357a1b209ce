package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	appErrors "github.com/campusbridge/portal-api/pkg/errors"
	"github.com/campusbridge/portal-api/pkg/export"
)

type syllabusSource interface {
	Lookup(code string) (models.CourseSyllabus, bool)
	Units(code string) []models.CourseUnit
}

// ExportFormat enumerates supported syllabus download formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportService renders course syllabi as downloadable documents.
type ExportService struct {
	catalog syllabusSource
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(catalog syllabusSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		catalog: catalog,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// Render produces the syllabus document for the code in the requested
// format, returning content, a file name and a content type.
func (s *ExportService) Render(code string, format ExportFormat) ([]byte, string, string, error) {
	course, ok := s.catalog.Lookup(code)
	if !ok {
		return nil, "", "", appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no syllabus for course %q", code))
	}

	dataset := syllabusDataset(course)

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render syllabus csv")
		}
		return content, fmt.Sprintf("%s-syllabus.csv", strings.ToLower(code)), "text/csv", nil
	case ExportFormatPDF:
		subtitle := fmt.Sprintf("%d credits | %s", course.Credits, course.Difficulty)
		content, err := s.pdf.Render(dataset, course.Title, subtitle)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render syllabus pdf")
		}
		return content, fmt.Sprintf("%s-syllabus.pdf", strings.ToLower(code)), "application/pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func syllabusDataset(course models.CourseSyllabus) export.Dataset {
	headers := []string{"Unit", "Title", "Topics"}
	rows := make([]map[string]string, 0, len(course.Units))
	for _, unit := range course.Units {
		rows = append(rows, map[string]string{
			"Unit":   fmt.Sprintf("%d", unit.Number),
			"Title":  unit.Title,
			"Topics": strings.Join(unit.Topics, "; "),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
