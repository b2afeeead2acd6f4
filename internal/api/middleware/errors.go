// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/unifiedui/admin-gateway/internal/domain/errors"
)

const (
	// SessionExpiredHeader marks responses that require a new sign-in.
	SessionExpiredHeader = "X-Session-Expired"

	// DefaultLoginRedirect is the login surface returned with session errors.
	DefaultLoginRedirect = "/login"
)

// ErrorMiddleware handles error recovery and formatting.
type ErrorMiddleware struct{}

// NewErrorMiddleware creates a new ErrorMiddleware.
func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Recovery returns a gin middleware that recovers from panics.
func (m *ErrorMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetRequestLogger(c)
				logger.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:    domainerrors.ErrCodeInternal,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Details        string `json:"details,omitempty"`
	Reason         string `json:"reason,omitempty"`
	Constraint     string `json:"constraint,omitempty"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
	Redirect       string `json:"redirect,omitempty"`
}

// loginRedirect is the login surface named in session-expired responses.
var loginRedirect = DefaultLoginRedirect

// SetLoginRedirect overrides the login surface named in session-expired
// responses. It is meant to be called once at startup.
func SetLoginRedirect(path string) {
	if path != "" {
		loginRedirect = path
	}
}

// HandleError handles errors and sends appropriate HTTP responses. It is the
// single place where a lost upstream session becomes a sign-in prompt.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	logger := GetRequestLogger(c)

	domainErr, ok := domainerrors.GetDomainError(err)
	if !ok {
		logger.Error().Err(err).Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Code:    domainerrors.ErrCodeInternal,
			Message: "internal server error",
		})
		return
	}

	resp := ErrorResponse{
		Code:           domainErr.Code,
		Message:        domainErr.Message,
		Details:        domainErr.Details,
		UpstreamStatus: domainErr.UpstreamStatus,
	}

	switch domainErr.Code {
	case domainerrors.ErrCodeSessionExpired:
		resp.Reason = string(domainErr.Reason)
		resp.Redirect = loginRedirect
		c.Header(SessionExpiredHeader, "true")
		if domainerrors.IsExpectedUnauthenticated(err) {
			logger.Debug().Str("reason", resp.Reason).Msg("request without upstream session")
		} else {
			logger.Warn().Str("reason", resp.Reason).Msg("upstream session expired")
		}
	case domainerrors.ErrCodeValidation:
		resp.Constraint = string(domainErr.Constraint)
	case domainerrors.ErrCodeHTTP, domainerrors.ErrCodeDecode:
		logger.Warn().Err(err).Int("upstream_status", domainErr.UpstreamStatus).Msg("upstream call failed")
	case domainerrors.ErrCodeInternal, domainerrors.ErrCodeServiceUnavailable:
		logger.Error().Err(err).Msg("request failed")
	}

	status := domainErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, resp)
}

// NotFound returns a 404 handler.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    domainerrors.ErrCodeNotFound,
			Message: "resource not found",
			Details: c.Request.URL.Path,
		})
	}
}

// MethodNotAllowed returns a 405 handler.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
			Details: c.Request.Method,
		})
	}
}
