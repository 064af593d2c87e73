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

type pendingChangeService interface {
	Create(ctx context.Context, req dto.CreateChangeRequest, actor *models.JWTClaims) (*models.PendingChange, error)
	List(ctx context.Context, query dto.ChangeQuery, actor *models.JWTClaims) ([]models.PendingChange, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.PendingChange, error)
	Approve(ctx context.Context, id, reviewer string) (*models.PendingChange, error)
	Reject(ctx context.Context, id, reviewer string) (*models.PendingChange, error)
}

// PendingChangeHandler exposes the edit approval workflow.
type PendingChangeHandler struct {
	service pendingChangeService
}

// NewPendingChangeHandler constructs the handler.
func NewPendingChangeHandler(service pendingChangeService) *PendingChangeHandler {
	return &PendingChangeHandler{service: service}
}

// Create godoc
// @Summary Submit a proposed employee edit for review
// @Tags Changes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateChangeRequest true "Proposed diff"
// @Success 201 {object} response.Envelope
// @Router /changes [post]
func (h *PendingChangeHandler) Create(c *gin.Context) {
	var req dto.CreateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid change payload"))
		return
	}
	change, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, change)
}

// List godoc
// @Summary List change requests visible to the caller
// @Tags Changes
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma-separated status filter"
// @Param employee_id query string false "Employee filter"
// @Success 200 {object} response.Envelope
// @Router /changes [get]
func (h *PendingChangeHandler) List(c *gin.Context) {
	var query dto.ChangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid list filters"))
		return
	}
	changes, err := h.service.List(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, changes, map[string]interface{}{"count": len(changes)})
}

// Get godoc
// @Summary Fetch a single change request
// @Tags Changes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Success 200 {object} response.Envelope
// @Router /changes/{id} [get]
func (h *PendingChangeHandler) Get(c *gin.Context) {
	change, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, change)
}

// Approve godoc
// @Summary Approve a pending change and apply it to the employee record
// @Tags Changes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Success 200 {object} response.Envelope
// @Router /changes/{id}/approve [post]
func (h *PendingChangeHandler) Approve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	change, err := h.service.Approve(c.Request.Context(), c.Param("id"), claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, change)
}

// Reject godoc
// @Summary Reject a pending change
// @Tags Changes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change ID"
// @Success 200 {object} response.Envelope
// @Router /changes/{id}/reject [post]
func (h *PendingChangeHandler) Reject(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	change, err := h.service.Reject(c.Request.Context(), c.Param("id"), claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, change)
}
