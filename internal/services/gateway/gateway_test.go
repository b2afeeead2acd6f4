package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

const cookieName = "sid"

// fakeUpstream is a cookie-session API. Login issues token "t1"; the
// current valid token can be rotated so that only a refresh recovers.
type fakeUpstream struct {
	mu         sync.Mutex
	valid      string
	next       string
	refreshOK  bool
	refreshDur time.Duration

	refreshes atomic.Int32
	calls     atomic.Int32
	logins    atomic.Int32

	mux *http.ServeMux
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, *httptest.Server) {
	f := &fakeUpstream{refreshOK: true, mux: http.NewServeMux()}

	f.mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.logins.Add(1)
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "pw" {
			writeJSON(w, http.StatusUnauthorized, `{"message":"invalid credentials"}`)
			return
		}
		f.mu.Lock()
		f.valid = "t1"
		f.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "t1", Path: "/"})
		writeJSON(w, http.StatusOK, `{"user":{"id":"u1"}}`)
	})

	f.mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshes.Add(1)
		f.mu.Lock()
		delay := f.refreshDur
		f.mu.Unlock()
		time.Sleep(delay)

		f.mu.Lock()
		ok, token := f.refreshOK, f.next
		if token == "" {
			token = f.valid
		}
		if ok {
			f.valid = token
		}
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, `{"error":"refresh token expired"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: token, Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})

	f.mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	f.mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"unauthenticated"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"u1"}`)
	})

	f.mux.HandleFunc("/calls", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"token expired"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"items":[{"id":"c1"}],"total":1}`)
	})

	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeUpstream) authorized(r *http.Request) bool {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid != "" && c.Value == f.valid
}

// rotate invalidates the current token; the next refresh issues token.
func (f *fakeUpstream) rotate(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid = "revoked"
	f.next = token
}

func (f *fakeUpstream) slowRefresh(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshDur = d
}

func (f *fakeUpstream) failRefresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshOK = false
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newGateway(t *testing.T, url string) *gateway.Gateway {
	t.Helper()
	gw, err := gateway.New(&gateway.Config{AdminURL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return gw
}

func login(t *testing.T, gw *gateway.Gateway) {
	t.Helper()
	_, err := gw.Login(context.Background(), map[string]string{"username": "ops", "password": "pw"})
	require.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := gateway.New(nil)
	assert.Error(t, err)

	_, err = gateway.New(&gateway.Config{})
	assert.Error(t, err)
}

func TestURL_DashboardDefaultsToAdmin(t *testing.T) {
	gw, err := gateway.New(&gateway.Config{AdminURL: "http://upstream/api/"})
	require.NoError(t, err)

	assert.Equal(t, "http://upstream/api/calls", gw.URL(gateway.BaseDashboard, "/calls"))
	assert.Equal(t, "http://upstream/api/agents", gw.URL("", "/agents"))
}

func TestLogin(t *testing.T) {
	_, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	assert.Equal(t, gateway.SessionUnknown, gw.State())

	resp, err := gw.Login(context.Background(), map[string]string{"username": "ops", "password": "pw"})

	require.NoError(t, err)
	assert.Equal(t, gateway.SessionActive, gw.State())
	assert.JSONEq(t, `{"user":{"id":"u1"}}`, string(resp.Body))
}

func TestLogin_Rejected(t *testing.T) {
	_, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)

	_, err := gw.Login(context.Background(), map[string]string{"username": "ops", "password": "nope"})

	require.True(t, errors.IsHTTPError(err))
	assert.Equal(t, http.StatusUnauthorized, errors.UpstreamStatus(err))
	domainErr, _ := errors.GetDomainError(err)
	assert.Equal(t, "invalid credentials", domainErr.Message)
	assert.Equal(t, gateway.SessionUnknown, gw.State())
}

func TestCall_Success(t *testing.T) {
	_, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)

	var out struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	err := gw.CallJSON(context.Background(), "/calls", &gateway.Options{Base: gateway.BaseDashboard}, &out)

	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "c1", out.Items[0].ID)
}

func TestCall_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	// Arrange
	f, srv := newFakeUpstream(t)
	f.slowRefresh(100 * time.Millisecond)
	gw := newGateway(t, srv.URL)
	login(t, gw)
	f.rotate("t2")

	// Act
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = gw.Call(context.Background(), "/calls", nil)
		}(i)
	}
	wg.Wait()

	// Assert
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.refreshes.Load())
	assert.False(t, gw.IsRefreshing())
	assert.Equal(t, gateway.SessionActive, gw.State())
}

func TestCall_RetriesAtMostOnce(t *testing.T) {
	// Arrange
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)
	f.mux.HandleFunc("/always-401", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		writeJSON(w, http.StatusUnauthorized, `{"message":"forbidden here"}`)
	})

	// Act
	_, err := gw.Call(context.Background(), "/always-401", nil)

	// Assert
	require.True(t, errors.IsHTTPError(err))
	assert.Equal(t, http.StatusUnauthorized, errors.UpstreamStatus(err))
	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, int32(1), f.refreshes.Load())
	assert.Equal(t, gateway.SessionActive, gw.State())
}

func TestCall_RetryResendsBody(t *testing.T) {
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)
	f.rotate("t2")

	var bodies []string
	var mu sync.Mutex
	f.mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(data))
		mu.Unlock()
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, `{}`)
			return
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, string(data))
	})

	resp, err := gw.Call(context.Background(), "/echo", &gateway.Options{
		Method: http.MethodPost,
		Body:   map[string]int{"n": 1},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(resp.Body))
	assert.Equal(t, []string{`{"n":1}`, `{"n":1}`}, bodies)
}

func TestCall_RefreshFailureExpiresSession(t *testing.T) {
	// Arrange
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)
	f.rotate("t2")
	f.failRefresh()

	var notified []error
	gw.OnSessionExpired(func(err error) { notified = append(notified, err) })

	// Act
	_, err := gw.Call(context.Background(), "/calls", nil)

	// Assert
	domainErr, ok := errors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionExpired, domainErr.Code)
	assert.Equal(t, errors.SessionReasonRefreshFailed, domainErr.Reason)
	assert.False(t, errors.IsExpectedUnauthenticated(err))
	assert.Equal(t, gateway.SessionLoggedOut, gw.State())
	require.Len(t, notified, 1)

	// Later calls short-circuit without reaching the upstream.
	callsBefore := f.calls.Load()
	_, err = gw.Call(context.Background(), "/calls", nil)
	assert.True(t, errors.IsSessionExpired(err))
	assert.True(t, errors.IsExpectedUnauthenticated(err))
	assert.Equal(t, callsBefore, f.calls.Load())
	assert.Equal(t, int32(1), f.refreshes.Load())
	assert.Len(t, notified, 1)

	// A new login restores service.
	f.mu.Lock()
	f.refreshOK = true
	f.mu.Unlock()
	login(t, gw)
	_, err = gw.Call(context.Background(), "/calls", nil)
	assert.NoError(t, err)
}

func TestCall_NoSessionIsExpected(t *testing.T) {
	f, srv := newFakeUpstream(t)
	f.failRefresh()
	gw := newGateway(t, srv.URL)

	_, err := gw.Call(context.Background(), "/calls", nil)

	domainErr, ok := errors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, errors.SessionReasonNoSession, domainErr.Reason)
	assert.True(t, errors.IsExpectedUnauthenticated(err))
}

func TestCall_RefreshTransportErrorExpiresSession(t *testing.T) {
	// Arrange
	f, srv := newFakeUpstream(t)
	f.mux.HandleFunc("/auth/refresh-broken", func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if conn, _, err := hj.Hijack(); err == nil {
			_ = conn.Close()
		}
	})
	gw, err := gateway.New(&gateway.Config{AdminURL: srv.URL, RefreshPath: "/auth/refresh-broken"})
	require.NoError(t, err)
	login(t, gw)
	f.rotate("t2")

	var notified []error
	gw.OnSessionExpired(func(err error) { notified = append(notified, err) })

	// Act
	_, err = gw.Call(context.Background(), "/calls", nil)

	// Assert
	domainErr, ok := errors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionExpired, domainErr.Code)
	assert.Equal(t, errors.SessionReasonRefreshFailed, domainErr.Reason)
	assert.Equal(t, gateway.SessionLoggedOut, gw.State())
	assert.Len(t, notified, 1)
}

func TestCall_CanceledWaiterDoesNotAbortRefresh(t *testing.T) {
	f, srv := newFakeUpstream(t)
	f.slowRefresh(150 * time.Millisecond)
	gw := newGateway(t, srv.URL)
	login(t, gw)
	f.rotate("t2")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := gw.Call(ctx, "/calls", nil)
	assert.True(t, errors.IsHTTPError(err))

	require.Eventually(t, func() bool { return !gw.IsRefreshing() }, 2*time.Second, 10*time.Millisecond)
	_, err = gw.Call(context.Background(), "/calls", nil)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), f.refreshes.Load())
}

func TestCall_ErrorResponses(t *testing.T) {
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)

	f.mux.HandleFunc("/message", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, `{"message":"phone is invalid"}`)
	})
	f.mux.HandleFunc("/nested", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"error":{"message":"already exported"}}`)
	})
	f.mux.HandleFunc("/detail", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"detail":"bad page"}`)
	})
	f.mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		endpoint string
		status   int
		message  string
	}{
		{"/message", http.StatusUnprocessableEntity, "phone is invalid"},
		{"/nested", http.StatusConflict, "already exported"},
		{"/detail", http.StatusBadRequest, "bad page"},
		{"/plain", http.StatusInternalServerError, "request failed with status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			_, err := gw.Call(context.Background(), tt.endpoint, nil)

			domainErr, ok := errors.GetDomainError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeHTTP, domainErr.Code)
			assert.Equal(t, tt.status, domainErr.UpstreamStatus)
			assert.Equal(t, tt.message, domainErr.Message)
		})
	}
}

func TestCall_NullAndDecodeOutcomes(t *testing.T) {
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)

	f.mux.HandleFunc("/no-content", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	f.mux.HandleFunc("/html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<p>ok</p>")
	})
	f.mux.HandleFunc("/null", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "null")
	})
	f.mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"items":[`)
	})
	f.mux.HandleFunc("/problem", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json; charset=utf-8")
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	for _, endpoint := range []string{"/no-content", "/html", "/null"} {
		resp, err := gw.Call(context.Background(), endpoint, nil)
		require.NoError(t, err, endpoint)
		assert.True(t, resp.IsNull(), endpoint)

		var out map[string]interface{}
		assert.NoError(t, resp.Decode(&out))
		assert.Nil(t, out)
	}

	_, err := gw.Call(context.Background(), "/broken", nil)
	assert.True(t, errors.IsDecodeError(err))

	resp, err := gw.Call(context.Background(), "/problem", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))

	var wrongShape []string
	err = resp.Decode(&wrongShape)
	assert.True(t, errors.IsDecodeError(err))
}

func TestCallBlob(t *testing.T) {
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)
	f.mux.HandleFunc("/calls/export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "failed", r.URL.Query().Get("status"))
		assert.Contains(t, r.Header.Get("Accept"), "text/csv")
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="calls-2026.csv"`)
		_, _ = io.WriteString(w, "id,phone\nc1,555\n")
	})

	blob, err := gw.CallBlob(context.Background(), "/calls/export", &gateway.Options{
		Query: map[string][]string{"status": {"failed"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "calls-2026.csv", blob.Filename)
	assert.Equal(t, "text/csv", blob.ContentType)
	assert.Equal(t, "id,phone\nc1,555\n", string(blob.Data))
}

func TestLogout(t *testing.T) {
	f, srv := newFakeUpstream(t)
	gw := newGateway(t, srv.URL)
	login(t, gw)

	var notified int
	gw.OnSessionExpired(func(error) { notified++ })

	require.NoError(t, gw.Logout(context.Background()))

	assert.Equal(t, gateway.SessionLoggedOut, gw.State())
	assert.Equal(t, 0, notified)
	callsBefore := f.calls.Load()
	_, err := gw.Call(context.Background(), "/calls", nil)
	assert.True(t, errors.IsExpectedUnauthenticated(err))
	assert.Equal(t, callsBefore, f.calls.Load())
}

func TestCheckSession(t *testing.T) {
	f, srv := newFakeUpstream(t)
	f.failRefresh()
	gw := newGateway(t, srv.URL)

	info, err := gw.CheckSession(context.Background())
	require.NoError(t, err)
	assert.False(t, info.Authenticated)

	f.mu.Lock()
	f.refreshOK = true
	f.mu.Unlock()
	login(t, gw)

	info, err = gw.CheckSession(context.Background())
	require.NoError(t, err)
	assert.True(t, info.Authenticated)
	assert.JSONEq(t, `{"id":"u1"}`, string(info.User))
}
