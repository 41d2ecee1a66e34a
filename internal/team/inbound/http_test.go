package inbound

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worknest/worknest-api/internal/pkg/config"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/idempotency"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/pkg/uid"
	"github.com/worknest/worknest-api/internal/team/entity"
	"github.com/worknest/worknest-api/internal/team/usecase"
)

const memberID = "65f1c2a9e4b0a1b2c3d4e5f6"

type fakeUC struct {
	created usecase.MemberCreateInput
	updated usecase.MemberUpdateInput
	deleted string
	detail  string
	listed  bool
}

var alice = entity.Member{
	ID: memberID, Name: "Alice", Phone: "0811", Email: "alice@x.com", Role: "Designer", TotalAmount: 1000,
	CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
}

func (f *fakeUC) MemberCreate(_ context.Context, in usecase.MemberCreateInput) (*entity.Member, error) {
	f.created = in
	m := alice
	return &m, nil
}

func (f *fakeUC) MemberList(context.Context) ([]entity.Member, error) {
	f.listed = true
	return []entity.Member{alice}, nil
}

func (f *fakeUC) MemberDetail(_ context.Context, in usecase.MemberDetailInput) (*entity.Member, error) {
	f.detail = in.ID
	if in.ID != memberID {
		return nil, goerror.NewBusiness("Team member not found", goerror.CodeNotFound)
	}
	m := alice
	return &m, nil
}

func (f *fakeUC) MemberUpdate(_ context.Context, in usecase.MemberUpdateInput) (*entity.Member, error) {
	f.updated = in
	m := alice
	if in.Role != nil {
		m.Role = *in.Role
	}
	return &m, nil
}

func (f *fakeUC) MemberDelete(_ context.Context, in usecase.MemberDeleteInput) error {
	f.deleted = in.ID
	return nil
}

func newServer(t *testing.T, u uc) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, u, idempotency.Noop{}, time.Hour)

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, rd))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestHTTPEndpoint(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPost, "/api/team/add",
			`{"name":"Alice","phone":"0811","email":"alice@x.com","role":"Designer","totalAmount":1000}`)

		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, "Team member added successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, memberID, data["_id"])
		assert.InDelta(t, 1000.0, data["totalAmount"], 0.001)
		assert.InDelta(t, 1000.0, u.created.TotalAmount, 0.001)
	})

	t.Run("ListViaAll", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodGet, "/api/team/all", "")

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, u.listed)
		assert.Empty(t, u.detail)
		assert.Len(t, body["data"], 1)
	})

	t.Run("Detail", func(t *testing.T) {
		u := &fakeUC{}
		code, _ := do(t, newServer(t, u), http.MethodGet, "/api/team/"+memberID, "")
		assert.Equal(t, http.StatusOK, code)

		code, body := do(t, newServer(t, u), http.MethodGet, "/api/team/65f1c2a9e4b0a1b2c3d4ffff", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Team member not found", body["message"])
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPut, "/api/team/update/"+memberID, `{"role":"Lead"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Lead", body["data"].(map[string]any)["role"])
		assert.Equal(t, memberID, u.updated.ID)
		require.NotNil(t, u.updated.Role)
		assert.Nil(t, u.updated.Name)
		assert.Nil(t, u.updated.TotalAmount)
	})

	t.Run("Delete", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodDelete, "/api/team/remove/"+memberID, "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"status": "success", "message": "Team member removed successfully"}, body)
		assert.Equal(t, memberID, u.deleted)
	})
}
