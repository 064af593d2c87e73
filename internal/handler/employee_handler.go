package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahaan1984/dee-portal-backend/internal/dto"
	"github.com/ahaan1984/dee-portal-backend/internal/models"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
	"github.com/ahaan1984/dee-portal-backend/pkg/response"
)

type employeeService interface {
	Provision(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.ProvisionResult, error)
	Get(ctx context.Context, employeeID string, actor *models.JWTClaims) (*models.Employee, error)
	List(ctx context.Context, query dto.EmployeeQuery, actor *models.JWTClaims) ([]models.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

// EmployeeHandler exposes the roster endpoints.
type EmployeeHandler struct {
	service employeeService
}

// NewEmployeeHandler constructs the handler.
func NewEmployeeHandler(service employeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create godoc
// @Summary Provision an employee record and its login account
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateEmployeeRequest true "Employee attributes"
// @Success 201 {object} response.Envelope
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid employee payload"))
		return
	}
	result, err := h.service.Provision(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Fetch a single employee by identifier
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employee)
}

// List godoc
// @Summary List roster records
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param district query string false "District filter"
// @Param search query string false "Name or ID search"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.Envelope
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var query dto.EmployeeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid list filters"))
		return
	}
	employees, err := h.service.List(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employees, map[string]interface{}{"count": len(employees)})
}

// Delete godoc
// @Summary Remove an employee and its login account
// @Tags Employees
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 204
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
