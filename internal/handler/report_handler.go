package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ahaan1984/dee-portal-backend/internal/dto"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	"github.com/ahaan1984/dee-portal-backend/internal/service"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
	"github.com/ahaan1984/dee-portal-backend/pkg/response"
)

type reportService interface {
	Render(ctx context.Context, format, requestedDistrict string, actor *models.JWTClaims) (*service.RenderedReport, error)
}

// ReportHandler serves downloadable roster reports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Employees godoc
// @Summary Download the employee roster as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Param district query string false "District filter"
// @Success 200 {file} binary
// @Router /reports/employees [get]
func (h *ReportHandler) Employees(c *gin.Context) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report filters"))
		return
	}
	report, err := h.service.Render(c.Request.Context(), query.Format, query.District, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(200, report.ContentType, report.Content)
}
