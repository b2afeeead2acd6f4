package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/admin-gateway/internal/api/dto"
	"github.com/unifiedui/admin-gateway/internal/api/middleware"
	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// SessionManager is the session surface of the gateway.
type SessionManager interface {
	SessionStater
	Login(ctx context.Context, credentials interface{}) (*gateway.Response, error)
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (*gateway.SessionInfo, error)
}

// SessionHandler handles the upstream session endpoints.
type SessionHandler struct {
	sessions SessionManager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login handles POST /session/login.
// @Summary Sign in
// @Description Forwards credentials to the upstream login. Credentials are not stored.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	resp, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		if errors.UpstreamStatus(err) == http.StatusUnauthorized {
			err = errors.NewSessionExpiredError(errors.SessionReasonNoSession, err)
		}
		middleware.HandleError(c, err)
		return
	}

	out := dto.SessionResponse{
		State:         string(h.sessions.State()),
		Authenticated: true,
	}
	if !resp.IsNull() {
		out.User = json.RawMessage(resp.Body)
	}
	c.JSON(http.StatusOK, out)
}

// Logout handles POST /session/logout.
// @Summary Sign out
// @Tags Session
// @Success 204
// @Router /session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		// The local session is gone either way.
		logger := middleware.GetRequestLogger(c)
		logger.Warn().Err(err).Msg("upstream logout failed")
	}
	c.Status(http.StatusNoContent)
}

// Check handles GET /session.
// @Summary Session status
// @Description Reports whether an upstream session exists. Not being signed in is not an error.
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /session [get]
func (h *SessionHandler) Check(c *gin.Context) {
	info, err := h.sessions.CheckSession(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	out := dto.SessionResponse{
		State:         string(h.sessions.State()),
		Authenticated: info.Authenticated,
	}
	if len(info.User) > 0 {
		out.User = info.User
	}
	c.JSON(http.StatusOK, out)
}
