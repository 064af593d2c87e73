package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahaan1984/dee-portal-backend/internal/district"
	"github.com/ahaan1984/dee-portal-backend/pkg/response"
)

// DistrictHandler serves the canonical district list.
type DistrictHandler struct {
	registry district.Registry
}

// NewDistrictHandler constructs the handler.
func NewDistrictHandler(registry district.Registry) *DistrictHandler {
	return &DistrictHandler{registry: registry}
}

type districtEntry struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

// List godoc
// @Summary List districts with their identifier positions
// @Tags Districts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /districts [get]
func (h *DistrictHandler) List(c *gin.Context) {
	names := h.registry.Names()
	entries := make([]districtEntry, 0, len(names))
	for i, name := range names {
		entries = append(entries, districtEntry{Position: i + 1, Name: name})
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}
