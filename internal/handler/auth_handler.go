package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ahaan1984/dee-portal-backend/internal/models"
	appErrors "github.com/ahaan1984/dee-portal-backend/pkg/errors"
	"github.com/ahaan1984/dee-portal-backend/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	PasswordStatus(ctx context.Context, username string) (*models.PasswordStatusResponse, error)
}

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Authenticate and issue a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}
	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ResetPassword godoc
// @Summary Set or replace an account password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.ResetPasswordRequest true "New password"
// @Success 204
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid reset password payload"))
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PasswordStatus godoc
// @Summary Report whether an account has completed password setup
// @Tags Auth
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} response.Envelope
// @Router /auth/password-status [get]
func (h *AuthHandler) PasswordStatus(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "username is required"))
		return
	}
	status, err := h.service.PasswordStatus(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}
