package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/admin-gateway/internal/api/dto"
	"github.com/unifiedui/admin-gateway/internal/api/middleware"
	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/views"
)

// ViewsHandler handles the call-log list view endpoints.
type ViewsHandler struct {
	registry *views.Registry
}

// NewViewsHandler creates a new ViewsHandler.
func NewViewsHandler(registry *views.Registry) *ViewsHandler {
	return &ViewsHandler{registry: registry}
}

// open resolves the :viewId path parameter, creating the view on first use.
func (h *ViewsHandler) open(c *gin.Context) (*views.CallsView, bool) {
	v, err := h.registry.Open(c.Request.Context(), c.Param("viewId"))
	if err != nil {
		middleware.HandleError(c, err)
		return nil, false
	}
	return v, true
}

// respond writes the view snapshot. A session loss aborts with the
// session-expired response; any other fetch error is carried in the
// snapshot so the last good page stays visible.
func (h *ViewsHandler) respond(c *gin.Context, v *views.CallsView, err error) {
	if errors.IsSessionExpired(err) || errors.IsValidationError(err) || errors.IsNotFound(err) {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewViewResponse(v.Snapshot()))
}

func parseKey(c *gin.Context) (filters.Key, bool) {
	key, ok := filters.ParseKey(c.Param("key"))
	if !ok {
		middleware.HandleError(c, errors.NewBadRequestError("unknown filter key", c.Param("key")))
		return "", false
	}
	return key, true
}

// Get handles GET /views/:viewId.
// @Summary Get a list view
// @Description Opens the view on first use, restoring its persisted filters and page
// @Tags Views
// @Produce json
// @Param viewId path string true "View ID"
// @Success 200 {object} dto.ViewResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /views/{viewId} [get]
func (h *ViewsHandler) Get(c *gin.Context) {
	v, ok := h.open(c)
	if !ok {
		return
	}
	snap := v.Snapshot()
	if errors.IsSessionExpired(snap.List.Err) {
		middleware.HandleError(c, snap.List.Err)
		return
	}
	c.JSON(http.StatusOK, dto.NewViewResponse(snap))
}

// Close handles DELETE /views/:viewId.
// @Summary Close a list view
// @Description Drops the view and its persisted state
// @Tags Views
// @Param viewId path string true "View ID"
// @Success 204
// @Router /views/{viewId} [delete]
func (h *ViewsHandler) Close(c *gin.Context) {
	if err := h.registry.Drop(c.Request.Context(), c.Param("viewId")); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to close view", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Stage handles PUT /views/:viewId/staged/:key.
// @Summary Stage a filter
// @Description Edits one staged filter and returns the re-evaluated gates. Nothing is fetched.
// @Tags Views
// @Accept json
// @Produce json
// @Param viewId path string true "View ID"
// @Param key path string true "Filter key"
// @Param request body dto.StageFilterRequest true "Value; empty clears"
// @Success 200 {object} dto.GatesResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /views/{viewId}/staged/{key} [put]
func (h *ViewsHandler) Stage(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req dto.StageFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	v, ok := h.open(c)
	if !ok {
		return
	}

	gates := v.Stage(key, req.Value)
	c.JSON(http.StatusOK, dto.GatesResponse{
		Staged: v.Snapshot().List.Staged.Map(),
		Gates:  gates,
	})
}

// Apply handles POST /views/:viewId/apply.
// @Summary Apply staged filters
// @Description Promotes the staged filters, resets to page 1 and fetches
// @Tags Views
// @Produce json
// @Param viewId path string true "View ID"
// @Success 200 {object} dto.ViewResponse
// @Failure 400 {object} middleware.ErrorResponse "A validation gate failed"
// @Failure 401 {object} middleware.ErrorResponse
// @Router /views/{viewId}/apply [post]
func (h *ViewsHandler) Apply(c *gin.Context) {
	v, ok := h.open(c)
	if !ok {
		return
	}
	h.respond(c, v, v.Apply(c.Request.Context()))
}

// Clear handles POST /views/:viewId/clear.
// @Summary Clear all filters
// @Tags Views
// @Produce json
// @Param viewId path string true "View ID"
// @Success 200 {object} dto.ViewResponse
// @Router /views/{viewId}/clear [post]
func (h *ViewsHandler) Clear(c *gin.Context) {
	v, ok := h.open(c)
	if !ok {
		return
	}
	h.respond(c, v, v.Clear(c.Request.Context()))
}

// RemoveFilter handles DELETE /views/:viewId/filters/:key.
// @Summary Remove one filter
// @Description Clears the key from both staged and applied filters
// @Tags Views
// @Produce json
// @Param viewId path string true "View ID"
// @Param key path string true "Filter key"
// @Success 200 {object} dto.ViewResponse
// @Router /views/{viewId}/filters/{key} [delete]
func (h *ViewsHandler) RemoveFilter(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	v, ok := h.open(c)
	if !ok {
		return
	}
	h.respond(c, v, v.RemoveOne(c.Request.Context(), key))
}

// SetPage handles PUT /views/:viewId/page.
// @Summary Change page
// @Description The page is clamped to the known page range
// @Tags Views
// @Accept json
// @Produce json
// @Param viewId path string true "View ID"
// @Param request body dto.SetPageRequest true "Page"
// @Success 200 {object} dto.ViewResponse
// @Router /views/{viewId}/page [put]
func (h *ViewsHandler) SetPage(c *gin.Context) {
	var req dto.SetPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	v, ok := h.open(c)
	if !ok {
		return
	}
	h.respond(c, v, v.SetPage(c.Request.Context(), req.Page))
}

// Reload handles POST /views/:viewId/reload.
// @Summary Reload the current page
// @Tags Views
// @Produce json
// @Param viewId path string true "View ID"
// @Success 200 {object} dto.ViewResponse
// @Router /views/{viewId}/reload [post]
func (h *ViewsHandler) Reload(c *gin.Context) {
	v, ok := h.open(c)
	if !ok {
		return
	}
	h.respond(c, v, v.Reload(c.Request.Context()))
}

// Select handles PUT /views/:viewId/selection.
// @Summary Select a call
// @Description Selects a call of the current page and loads its transcript
// @Tags Views
// @Accept json
// @Produce json
// @Param viewId path string true "View ID"
// @Param request body dto.SelectRequest true "Record ID"
// @Success 200 {object} dto.SelectionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /views/{viewId}/selection [put]
func (h *ViewsHandler) Select(c *gin.Context) {
	var req dto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	v, ok := h.open(c)
	if !ok {
		return
	}

	err := v.Select(c.Request.Context(), req.ID)
	if errors.IsSessionExpired(err) || errors.IsNotFound(err) || errors.IsValidationError(err) {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewViewResponse(v.Snapshot()).Selection)
}

// GetSelection handles GET /views/:viewId/selection.
// @Summary Get the selection
// @Tags Views
// @Produce json
// @Param viewId path string true "View ID"
// @Success 200 {object} dto.SelectionResponse
// @Router /views/{viewId}/selection [get]
func (h *ViewsHandler) GetSelection(c *gin.Context) {
	v, ok := h.open(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewViewResponse(v.Snapshot()).Selection)
}

// ClearSelection handles DELETE /views/:viewId/selection.
// @Summary Clear the selection
// @Tags Views
// @Param viewId path string true "View ID"
// @Success 204
// @Router /views/{viewId}/selection [delete]
func (h *ViewsHandler) ClearSelection(c *gin.Context) {
	if v, ok := h.registry.Get(c.Param("viewId")); ok {
		v.ClearSelection()
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /views/:viewId/export.
// @Summary Export calls
// @Description Downloads the calls matching the applied server filters as CSV
// @Tags Views
// @Produce text/csv
// @Param viewId path string true "View ID"
// @Success 200 {file} file
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /views/{viewId}/export [get]
func (h *ViewsHandler) Export(c *gin.Context) {
	v, ok := h.open(c)
	if !ok {
		return
	}

	blob, err := v.Export(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", blob.Filename))
	c.Data(http.StatusOK, contentType, blob.Data)
}
