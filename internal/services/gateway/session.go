package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
)

// SessionState is the gateway's view of the process-wide session.
type SessionState string

const (
	// SessionUnknown means no login or refresh has succeeded yet.
	SessionUnknown SessionState = "unknown"
	// SessionActive means the last login or refresh succeeded.
	SessionActive SessionState = "active"
	// SessionLoggedOut means the session ended; calls short-circuit until
	// the next successful login.
	SessionLoggedOut SessionState = "logged_out"
)

// SessionInfo is the result of CheckSession.
type SessionInfo struct {
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty"`
}

// State returns the current session state.
func (g *Gateway) State() SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Gateway) setState(state SessionState) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
}

// OnSessionExpired registers a handler for session loss. Handlers run once
// per transition into the logged-out state caused by a failed refresh.
func (g *Gateway) OnSessionExpired(handler SessionExpiredHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers = append(g.handlers, handler)
}

// expire moves the session to logged out, clears credentials and notifies
// handlers. It returns the SessionExpired error for the caller.
func (g *Gateway) expire(reason errors.SessionReason, cause error) error {
	sessionErr := errors.NewSessionExpiredError(reason, cause)

	g.mu.Lock()
	if g.state == SessionLoggedOut {
		g.mu.Unlock()
		return sessionErr
	}
	g.state = SessionLoggedOut
	handlers := make([]SessionExpiredHandler, len(g.handlers))
	copy(handlers, g.handlers)
	g.mu.Unlock()

	g.jar.Reset()

	if reason == errors.SessionReasonNoSession {
		g.logger.Debug().Msg("no session established")
	} else {
		g.logger.Warn().Err(cause).Str("reason", string(reason)).Msg("session expired")
	}

	for _, handler := range handlers {
		handler(sessionErr)
	}
	return sessionErr
}

// Login establishes a session. Credentials are sent once and never stored;
// the upstream answers with cookies kept in the gateway's jar.
func (g *Gateway) Login(ctx context.Context, credentials interface{}) (*Response, error) {
	build, err := g.newRequestFactory(g.loginPath, &Options{Method: http.MethodPost, Body: credentials}, "application/json")
	if err != nil {
		return nil, err
	}
	raw, err := g.send(ctx, build)
	if err != nil {
		return nil, err
	}
	raw, err = finish(raw)
	if err != nil {
		g.logger.Debug().Int("status", errors.UpstreamStatus(err)).Msg("login rejected")
		return nil, err
	}

	g.epoch.Add(1)
	g.setState(SessionActive)
	g.logger.Info().Msg("session established")
	return decodeResponse(raw)
}

// Logout ends the session. The local session is cleared even when the
// upstream call fails.
func (g *Gateway) Logout(ctx context.Context) error {
	defer func() {
		g.jar.Reset()
		g.setState(SessionLoggedOut)
	}()

	if g.State() != SessionActive {
		return nil
	}

	build, err := g.newRequestFactory(g.logoutPath, &Options{Method: http.MethodPost}, "application/json")
	if err != nil {
		return err
	}
	raw, err := g.send(ctx, build)
	if err != nil {
		return err
	}
	if raw.status == http.StatusUnauthorized {
		return nil
	}
	_, err = finish(raw)
	return err
}

// CheckSession reports whether a session exists. Not being signed in is an
// expected outcome and is returned as Authenticated=false without error.
func (g *Gateway) CheckSession(ctx context.Context) (*SessionInfo, error) {
	resp, err := g.Call(ctx, g.mePath, &Options{Base: BaseAdmin})
	if err != nil {
		if errors.IsExpectedUnauthenticated(err) {
			return &SessionInfo{Authenticated: false}, nil
		}
		return nil, err
	}
	return &SessionInfo{Authenticated: true, User: resp.Body}, nil
}

// resettableJar is a cookie jar whose contents can be dropped atomically
// while requests are in flight.
type resettableJar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newResettableJar() (*resettableJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &resettableJar{inner: inner}, nil
}

func (j *resettableJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	j.inner.SetCookies(u, cookies)
}

func (j *resettableJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

// Reset drops every stored cookie.
func (j *resettableJar) Reset() {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
}
