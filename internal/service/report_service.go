package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahaan1984/dee-portal-backend/internal/models"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
	"github.com/ahaan1984/dee-portal-backend/pkg/export"
)

// ReportFormat selects the rendered output.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

const reportPageSize = 500

var reportHeaders = []string{
	"Employee ID", "Name", "Designation", "Gender", "Place of Posting",
	"Date of Birth", "Date of Joining", "Cause of Vacancy", "Caste",
	"Posted Against Reservation", "PwD", "Ex-Servicemen",
	"Assembly Constituency", "Creation No", "Retention No", "Treasury Name",
}

type reportEmployeeStore interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
}

type datasetCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RenderedReport is a rendered tabular report ready for download.
type RenderedReport struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ReportService assembles the employee roster dataset and renders it.
type ReportService struct {
	employees reportEmployeeStore
	cache     datasetCache
	csv       csvRenderer
	pdf       pdfRenderer
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(employees reportEmployeeStore, cache datasetCache, csv csvRenderer, pdf pdfRenderer, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{employees: employees, cache: cache, csv: csv, pdf: pdf, cacheTTL: cacheTTL, logger: logger}
}

// Render produces the roster report in the requested format. District-scoped
// actors always get their own district's rows, whatever district they asked
// for.
func (s *ReportService) Render(ctx context.Context, format, requestedDistrict string, actor *models.JWTClaims) (*RenderedReport, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	districtName := strings.TrimSpace(requestedDistrict)
	if actor.Role.DistrictScoped() {
		districtName = actor.District
	}

	dataset, err := s.buildDataset(ctx, districtName)
	if err != nil {
		return nil, err
	}

	switch ReportFormat(strings.ToLower(strings.TrimSpace(format))) {
	case ReportFormatPDF:
		content, err := s.pdf.Render(dataset, "Employee Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &RenderedReport{Content: content, ContentType: "application/pdf", Filename: "employees.pdf"}, nil
	case ReportFormatCSV, "":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &RenderedReport{Content: content, ContentType: "text/csv", Filename: "employees.csv"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format: %s", format))
}

func (s *ReportService) buildDataset(ctx context.Context, districtName string) (export.Dataset, error) {
	key := "reports:employees:all"
	if districtName != "" {
		key = "reports:employees:" + districtName
	}

	var dataset export.Dataset
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &dataset); err == nil {
			return dataset, nil
		}
	}

	// The report is unpaginated: page through the store until a short page
	// so rosters larger than one page render in full.
	var employees []models.Employee
	for offset := 0; ; offset += reportPageSize {
		page, err := s.employees.List(ctx, models.EmployeeFilter{District: districtName, Limit: reportPageSize, Offset: offset})
		if err != nil {
			return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load report rows")
		}
		employees = append(employees, page...)
		if len(page) < reportPageSize {
			break
		}
	}

	dataset = export.Dataset{Headers: reportHeaders, Rows: make([]map[string]string, 0, len(employees))}
	for _, e := range employees {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Employee ID":                e.EmployeeID,
			"Name":                       e.Name,
			"Designation":                e.Designation,
			"Gender":                     e.Gender,
			"Place of Posting":           e.PlaceOfPosting,
			"Date of Birth":              e.DateOfBirth,
			"Date of Joining":            e.DateOfJoining,
			"Cause of Vacancy":           deref(e.CauseOfVacancy),
			"Caste":                      deref(e.Caste),
			"Posted Against Reservation": deref(e.PostedAgainstReservation),
			"PwD":                        yesNo(e.PwD),
			"Ex-Servicemen":              yesNo(e.ExServicemen),
			"Assembly Constituency":      deref(e.AssemblyConstituency),
			"Creation No":                deref(e.CreationNo),
			"Retention No":               deref(e.RetentionNo),
			"Treasury Name":              deref(e.TreasuryName),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, dataset, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache report dataset", zap.Error(err))
		}
	}
	return dataset, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
