package middleware

import (
	"github.com/gin-gonic/gin"

	domainerrors "github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// SessionStater reports the upstream session state.
type SessionStater interface {
	State() gateway.SessionState
}

// SessionMiddleware guards routes that need an upstream session.
type SessionMiddleware struct {
	sessions SessionStater
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(sessions SessionStater) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession rejects requests while the session is logged out. An
// unknown session passes; the first upstream call settles it.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.sessions.State() == gateway.SessionLoggedOut {
			HandleError(c, domainerrors.NewSessionExpiredError(domainerrors.SessionReasonLoggedOut, nil))
			return
		}
		c.Next()
	}
}
