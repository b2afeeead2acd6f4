package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/admin-gateway/internal/api/dto"
	"github.com/unifiedui/admin-gateway/internal/api/middleware"
	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/presets"
	"github.com/unifiedui/admin-gateway/internal/services/views"
)

// PresetsHandler handles saved filter preset endpoints.
type PresetsHandler struct {
	service  presets.Service
	registry *views.Registry
}

// NewPresetsHandler creates a new PresetsHandler.
func NewPresetsHandler(service presets.Service, registry *views.Registry) *PresetsHandler {
	return &PresetsHandler{
		service:  service,
		registry: registry,
	}
}

// List handles GET /presets.
// @Summary List filter presets
// @Tags Presets
// @Produce json
// @Success 200 {object} dto.ListPresetsResponse
// @Router /presets [get]
func (h *PresetsHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), presets.ViewCalls)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out := make([]*dto.PresetResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.NewPresetResponse(p))
	}
	c.JSON(http.StatusOK, dto.ListPresetsResponse{
		Presets: out,
		Total:   len(out),
	})
}

// Get handles GET /presets/:presetId.
// @Summary Get a filter preset
// @Tags Presets
// @Produce json
// @Param presetId path string true "Preset ID"
// @Success 200 {object} dto.PresetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /presets/{presetId} [get]
func (h *PresetsHandler) Get(c *gin.Context) {
	preset, err := h.service.Get(c.Request.Context(), c.Param("presetId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPresetResponse(preset))
}

// Create handles POST /presets.
// @Summary Save a filter preset
// @Description Saves the given filters, or the applied filters of viewId when none are given
// @Tags Presets
// @Accept json
// @Produce json
// @Param request body dto.CreatePresetRequest true "Preset"
// @Success 201 {object} dto.PresetResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /presets [post]
func (h *PresetsHandler) Create(c *gin.Context) {
	var req dto.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	set := filters.FromMap(req.Filters)
	if len(req.Filters) == 0 && req.ViewID != "" {
		v, ok := h.registry.Get(req.ViewID)
		if !ok {
			middleware.HandleError(c, errors.NewNotFoundError("view", req.ViewID))
			return
		}
		set = v.Snapshot().List.Applied
	}

	preset, err := h.service.Save(c.Request.Context(), presets.ViewCalls, req.Name, set)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPresetResponse(preset))
}

// Delete handles DELETE /presets/:presetId.
// @Summary Delete a filter preset
// @Tags Presets
// @Param presetId path string true "Preset ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /presets/{presetId} [delete]
func (h *PresetsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("presetId")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Load handles POST /views/:viewId/presets/:presetId.
// @Summary Load a preset into a view
// @Description Fills the view's staged filters. The applied filters are unchanged until the view is applied.
// @Tags Presets
// @Produce json
// @Param viewId path string true "View ID"
// @Param presetId path string true "Preset ID"
// @Success 200 {object} dto.LoadPresetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /views/{viewId}/presets/{presetId} [post]
func (h *PresetsHandler) Load(c *gin.Context) {
	v, err := h.registry.Open(c.Request.Context(), c.Param("viewId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	preset, gates, err := h.service.Load(c.Request.Context(), c.Param("presetId"), v)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoadPresetResponse{
		Preset: dto.NewPresetResponse(preset),
		Staged: v.Snapshot().List.Staged.Map(),
		Gates:  gates,
	})
}
