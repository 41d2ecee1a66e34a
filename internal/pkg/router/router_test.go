package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worknest/worknest-api/internal/pkg/config"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/idempotency"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/jwt"
	"github.com/worknest/worknest-api/internal/pkg/validator"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type fakeJWT struct{}

func (fakeJWT) Generate(email string) (string, error) { return "tok-" + email, nil }

func (fakeJWT) Verify(token string) (jwt.Claims, error) {
	if email, ok := strings.CutPrefix(token, "tok-"); ok {
		return jwt.Claims{Email: email}, nil
	}
	return jwt.Claims{}, jwt.ErrInvalidToken
}

type created struct {
	Name string `json:"name"`
}

func (created) Message() string { return "Created" }
func (created) StatusCode() int { return http.StatusCreated }

type flat struct{ token string }

func (flat) Message() string            { return "OTP verified successfully" }
func (f flat) Envelope() map[string]any { return map[string]any{"token": f.token} }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	return NewRouter(Config{
		Config:     cfg,
		UUID:       fixedID("cid-generated"),
		JWT:        fakeJWT{},
		Instrument: instrument.NewNoop(),
		PublicEndpoints: map[string][]string{
			http.MethodPost: {"/api/otp/verify-otp"},
		},
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec, out
}

func TestRouter_Envelope(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, "app:\n  server:\n    require_auth: false\n")

	r.POST("/created", func(*Request) (any, error) { return created{Name: "n"}, nil })
	r.POST("/flat", func(*Request) (any, error) { return flat{token: "abc"}, nil })
	r.GET("/plain", func(*Request) (any, error) { return []string{"a"}, nil })
	r.DELETE("/empty", func(*Request) (any, error) { return nil, nil })

	rec, body := do(t, r, http.MethodPost, "/created", "", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Created", body["message"])
	assert.Equal(t, map[string]any{"name": "n"}, body["data"])
	assert.Equal(t, "cid-generated", rec.Header().Get(HeaderCorrelationID))

	rec, body = do(t, r, http.MethodPost, "/flat", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "success", "message": "OTP verified successfully", "token": "abc"}, body)

	rec, body = do(t, r, http.MethodGet, "/plain", "", map[string]string{HeaderRequestID: "from-proxy"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"a"}, body["data"])
	assert.Equal(t, "from-proxy", rec.Header().Get(HeaderCorrelationID))

	rec, _ = do(t, r, http.MethodDelete, "/empty", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, body = do(t, r, http.MethodGet, "/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "failed", body["status"])
}

func TestRouter_Errors(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, "")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantErr  any
	}{
		{name: "Validation", err: goerror.NewInvalidInput(validator.V10ValidationError{"email": "email is a required field"}), wantCode: http.StatusBadRequest, wantMsg: "Validation error", wantErr: map[string]any{"email": "email is a required field"}},
		{name: "Fields", err: goerror.NewInvalidInput(nil, "otp", "bad"), wantCode: http.StatusBadRequest, wantMsg: "Validation error", wantErr: map[string]any{"otp": "bad"}},
		{name: "Business", err: goerror.NewBusiness("Invalid OTP", goerror.CodeBadRequest), wantCode: http.StatusBadRequest, wantMsg: "Invalid OTP"},
		{name: "NotAcceptable", err: goerror.NewBusiness("Already in project", goerror.CodeNotAcceptable), wantCode: http.StatusNotAcceptable, wantMsg: "Already in project"},
		{name: "Server", err: goerror.NewServer(errors.New("db down")), wantCode: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "Unclassified", err: errors.New("raw"), wantCode: http.StatusInternalServerError, wantMsg: "Internal server error"},
	}

	for i, tt := range tests {
		path := "/err/" + strings.ToLower(tt.name)
		err := tests[i].err
		r.GET(path, func(*Request) (any, error) { return nil, err })

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, body := do(t, r, http.MethodGet, path, "", nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "failed", body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestRouter_Authentication(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, "app:\n  server:\n    require_auth: true\n")
	r.GET("/api/team/all", func(req *Request) (any, error) {
		return map[string]string{"email": jwt.GetAuth(req.Context()).Email}, nil
	})
	r.POST("/api/otp/verify-otp", func(*Request) (any, error) { return nil, nil })

	rec, _ := do(t, r, http.MethodGet, "/api/team/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/team/all", "", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := do(t, r, http.MethodGet, "/api/team/all", "", map[string]string{"Authorization": "Bearer tok-a@x.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"email": "a@x.com"}, body["data"])

	rec, _ = do(t, r, http.MethodPost, "/api/otp/verify-otp", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_RecoverAndMaintenance(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /down\n")
	r.GET("/panic", func(*Request) (any, error) { panic("boom") })
	r.GET("/down", func(*Request) (any, error) { return nil, nil })

	rec, body := do(t, r, http.MethodGet, "/panic", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed", body["status"])

	rec, _ = do(t, r, http.MethodGet, "/down", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type memTracker struct {
	mu    sync.Mutex
	state map[string]idempotency.State
}

func (m *memTracker) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.state[key]; ok {
		return st, nil
	}
	m.state[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (m *memTracker) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[key] = idempotency.StateCompleted
	return nil
}

func (m *memTracker) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, key)
	return nil
}

func (m *memTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	st, _ := m.Acquire(ctx, key, 0)
	switch st {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return errors.Join(err, m.Release(ctx, key))
	}
	return m.MarkCompleted(ctx, key, 0)
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, "")
	tracker := &memTracker{state: map[string]idempotency.State{}}

	calls := 0
	fail := true
	r.POST("/api/team/add", func(*Request) (any, error) {
		calls++
		if fail {
			return nil, goerror.NewInvalidFormat()
		}
		return created{Name: "m"}, nil
	}, Idempotent(tracker, time.Hour))

	key := map[string]string{HeaderIdempotencyKey: "k1"}

	rec, _ := do(t, r, http.MethodPost, "/api/team/add", "", key)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fail = false
	rec, _ = do(t, r, http.MethodPost, "/api/team/add", "", key)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, r, http.MethodPost, "/api/team/add", "", key)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "failed", body["status"])

	rec, _ = do(t, r, http.MethodPost, "/api/team/add", "", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, 3, calls)
}
