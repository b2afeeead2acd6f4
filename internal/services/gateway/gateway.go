// Package gateway provides the request gateway that mediates every call to
// the remote platform API. It carries credentials in a cookie jar, performs a
// single coordinated re-authentication when the API answers 401, retries the
// original call at most once and normalizes failures into the domain error
// taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
)

// Base selects one of the logical API roots.
type Base string

const (
	// BaseAdmin is the administrative API root.
	BaseAdmin Base = "admin"
	// BaseDashboard is the dashboard API root.
	BaseDashboard Base = "dashboard"
)

const (
	// DefaultRefreshPath is the re-authentication endpoint on the admin root.
	DefaultRefreshPath = "/auth/refresh"
	// DefaultLoginPath is the login endpoint on the admin root.
	DefaultLoginPath = "/auth/login"
	// DefaultLogoutPath is the logout endpoint on the admin root.
	DefaultLogoutPath = "/auth/logout"
	// DefaultMePath returns the signed-in principal.
	DefaultMePath = "/auth/me"

	// DefaultTimeout bounds a single upstream round trip.
	DefaultTimeout = 30 * time.Second

	refreshKey = "refresh"
)

// Options describes one outbound call.
type Options struct {
	// Method defaults to GET.
	Method string
	// Body is encoded as JSON when non-nil.
	Body interface{}
	// Query is appended to the endpoint URL.
	Query url.Values
	// Base defaults to BaseAdmin.
	Base Base
}

// Config holds the configuration for the gateway.
type Config struct {
	AdminURL     string
	DashboardURL string
	RefreshPath  string
	LoginPath    string
	LogoutPath   string
	MePath       string
	Timeout      time.Duration
	// HTTPClient is optional. Its Jar is replaced by the gateway's own
	// resettable jar.
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// SessionExpiredHandler is notified when the session transitions to logged
// out because re-authentication failed or no session existed.
type SessionExpiredHandler func(err error)

// Gateway is the process-wide request gateway. It is safe for concurrent use.
type Gateway struct {
	bases       map[Base]string
	refreshPath string
	loginPath   string
	logoutPath  string
	mePath      string
	timeout     time.Duration
	httpClient  *http.Client
	jar         *resettableJar
	logger      zerolog.Logger

	refreshGroup singleflight.Group
	refreshing   atomic.Bool
	// epoch advances on every successful login or refresh. A 401 for a
	// request sent under an older epoch is retried without a new refresh.
	epoch atomic.Uint64

	mu       sync.RWMutex
	state    SessionState
	handlers []SessionExpiredHandler
}

// New creates a new gateway.
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.AdminURL == "" {
		return nil, fmt.Errorf("admin API URL is required")
	}
	dashboardURL := cfg.DashboardURL
	if dashboardURL == "" {
		dashboardURL = cfg.AdminURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	jar, err := newResettableJar()
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	httpClient.Jar = jar

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	admin := strings.TrimRight(cfg.AdminURL, "/")
	return &Gateway{
		bases: map[Base]string{
			BaseAdmin:     admin,
			BaseDashboard: strings.TrimRight(dashboardURL, "/"),
		},
		refreshPath: pathOr(cfg.RefreshPath, DefaultRefreshPath),
		loginPath:   pathOr(cfg.LoginPath, DefaultLoginPath),
		logoutPath:  pathOr(cfg.LogoutPath, DefaultLogoutPath),
		mePath:      pathOr(cfg.MePath, DefaultMePath),
		timeout:     timeout,
		httpClient:  httpClient,
		jar:         jar,
		logger:      logger.With().Str("component", "gateway").Logger(),
		state:       SessionUnknown,
	}, nil
}

// Call performs a JSON call against the remote API.
func (g *Gateway) Call(ctx context.Context, endpoint string, opts *Options) (*Response, error) {
	raw, err := g.execute(ctx, endpoint, opts, "application/json")
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw)
}

// CallJSON performs a JSON call and decodes the result into out.
// A null success value leaves out untouched.
func (g *Gateway) CallJSON(ctx context.Context, endpoint string, opts *Options, out interface{}) error {
	resp, err := g.Call(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// CallBlob performs a call whose success payload is binary (e.g. a CSV
// export). It shares the credential, refresh and retry discipline of Call.
func (g *Gateway) CallBlob(ctx context.Context, endpoint string, opts *Options) (*Blob, error) {
	raw, err := g.execute(ctx, endpoint, opts, "text/csv, application/octet-stream, */*")
	if err != nil {
		return nil, err
	}
	return newBlob(raw), nil
}

// IsRefreshing reports whether a re-authentication attempt is in flight.
func (g *Gateway) IsRefreshing() bool {
	return g.refreshing.Load()
}

// URL returns the absolute URL of endpoint on the given base.
func (g *Gateway) URL(base Base, endpoint string) string {
	if base == "" {
		base = BaseAdmin
	}
	return g.bases[base] + endpoint
}

// requestFactory builds a fresh request per attempt so a retry can resend
// the same body.
type requestFactory func(ctx context.Context) (*http.Request, error)

func (g *Gateway) newRequestFactory(endpoint string, opts *Options, accept string) (requestFactory, error) {
	if opts == nil {
		opts = &Options{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	base := opts.Base
	if base == "" {
		base = BaseAdmin
	}
	root, ok := g.bases[base]
	if !ok {
		return nil, errors.NewBadRequestError("unknown API base", string(base))
	}

	target := root + endpoint
	if len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + opts.Query.Encode()
	}

	var payload []byte
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, errors.NewBadRequestError("failed to encode request body", err.Error())
		}
		payload = data
	}

	return func(ctx context.Context) (*http.Request, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", accept)
		return req, nil
	}, nil
}

// execute runs the call, handling a 401 with a single-flight refresh and at
// most one retry. It returns the raw 2xx response.
func (g *Gateway) execute(ctx context.Context, endpoint string, opts *Options, accept string) (*rawResponse, error) {
	if g.State() == SessionLoggedOut {
		return nil, errors.NewSessionExpiredError(errors.SessionReasonLoggedOut, nil)
	}

	build, err := g.newRequestFactory(endpoint, opts, accept)
	if err != nil {
		return nil, err
	}

	epoch := g.epoch.Load()
	resp, err := g.send(ctx, build)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusUnauthorized {
		return finish(resp)
	}

	if err := g.reauthenticate(ctx, epoch); err != nil {
		return nil, err
	}

	g.logger.Debug().Str("endpoint", endpoint).Msg("retrying request after re-authentication")

	// The retry's outcome is final: a second 401 is an HTTP error, not a
	// new refresh episode.
	resp, err = g.send(ctx, build)
	if err != nil {
		return nil, err
	}
	return finish(resp)
}

// reauthenticate renews the session for a request that got 401 under epoch.
// A flight's result is the epoch it left behind; joining a flight whose
// result is not newer than epoch does not count as a renewal.
func (g *Gateway) reauthenticate(ctx context.Context, epoch uint64) error {
	for {
		if g.State() == SessionLoggedOut {
			return errors.NewSessionExpiredError(errors.SessionReasonLoggedOut, nil)
		}
		if g.epoch.Load() != epoch {
			return nil
		}

		ch := g.refreshGroup.DoChan(refreshKey, func() (interface{}, error) {
			// A flight that finished between the epoch check above and
			// DoChan already renewed the session.
			if current := g.epoch.Load(); current != epoch {
				return current, nil
			}
			g.refreshing.Store(true)
			defer g.refreshing.Store(false)

			// Waiters share this outcome, so the initiator's cancellation
			// must not abort it.
			refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
			defer cancel()

			if err := g.refresh(refreshCtx); err != nil {
				return nil, err
			}
			return g.epoch.Load(), nil
		})

		select {
		case res := <-ch:
			if res.Err != nil {
				return res.Err
			}
			if produced, _ := res.Val.(uint64); produced > epoch {
				return nil
			}
			g.logger.Debug().Uint64("epoch", epoch).Msg("joined a refresh older than this request, refreshing again")
		case <-ctx.Done():
			return transportError(ctx.Err())
		}
	}
}

func (g *Gateway) refresh(ctx context.Context) error {
	build, err := g.newRequestFactory(g.refreshPath, &Options{Method: http.MethodPost}, "application/json")
	if err != nil {
		return err
	}

	reason := errors.SessionReasonRefreshFailed
	if g.State() == SessionUnknown {
		reason = errors.SessionReasonNoSession
	}

	resp, err := g.send(ctx, build)
	if err != nil {
		// An unreachable refresh endpoint ends the session like a rejection.
		g.logger.Warn().Err(err).Msg("session refresh could not reach upstream")
		return g.expire(reason, err)
	}

	if resp.status >= 200 && resp.status < 300 {
		g.epoch.Add(1)
		g.setState(SessionActive)
		g.logger.Debug().Msg("session refreshed")
		return nil
	}

	return g.expire(reason, errors.NewHTTPError(resp.status, serverMessage(resp.body)))
}

func (g *Gateway) send(ctx context.Context, build requestFactory) (*rawResponse, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, transportError(ctx.Err())
		}
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to read response: %w", err))
	}

	return &rawResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}, nil
}

func finish(resp *rawResponse) (*rawResponse, error) {
	if resp.status >= 200 && resp.status < 300 {
		return resp, nil
	}
	return nil, errors.NewHTTPError(resp.status, serverMessage(resp.body))
}

// transportError reports a failure that produced no HTTP status.
func transportError(err error) error {
	domainErr := errors.NewHTTPError(0, "upstream request failed")
	domainErr.Details = err.Error()
	domainErr.Err = err
	return domainErr
}

func pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
