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
	"github.com/worknest/worknest-api/internal/project/entity"
	"github.com/worknest/worknest-api/internal/project/usecase"
)

const (
	projectID = "65f1c2a9e4b0a1b2c3d4e5f6"
	memberID  = "65f1c2a9e4b0a1b2c3d4aaaa"
)

var site = entity.Project{
	ID: projectID, Name: "Site", TotalBudget: 1000, TotalPending: 1000,
	TeamMemberIDs: []string{memberID},
	Members:       []entity.MemberSummary{{ID: memberID, Name: "Alice", Email: "alice@x.com", Role: "Designer"}},
	Status:        entity.StatusPending,
}

type fakeUC struct {
	calls   []string
	created usecase.ProjectCreateInput
	updated usecase.ProjectUpdateInput
	added   usecase.ProjectAddMemberInput
	removed usecase.ProjectRemoveMemberInput
	status  usecase.ProjectUpdateStatusInput
	paid    usecase.ProjectUpdatePaidAmountInput
	deleted string
}

func (f *fakeUC) project() (*entity.Project, error) {
	p := site
	return &p, nil
}

func (f *fakeUC) ProjectCreate(_ context.Context, in usecase.ProjectCreateInput) (*entity.Project, error) {
	f.calls = append(f.calls, "create")
	f.created = in
	return f.project()
}

func (f *fakeUC) ProjectList(context.Context) ([]entity.Project, error) {
	f.calls = append(f.calls, "list")
	return []entity.Project{site}, nil
}

func (f *fakeUC) ProjectDetail(_ context.Context, in usecase.ProjectDetailInput) (*entity.Project, error) {
	f.calls = append(f.calls, "detail")
	if in.ID != projectID {
		return nil, goerror.NewBusiness("Project not found", goerror.CodeNotFound)
	}
	return f.project()
}

func (f *fakeUC) ProjectUpdate(_ context.Context, in usecase.ProjectUpdateInput) (*entity.Project, error) {
	f.calls = append(f.calls, "update")
	f.updated = in
	return f.project()
}

func (f *fakeUC) ProjectDelete(_ context.Context, in usecase.ProjectDeleteInput) error {
	f.calls = append(f.calls, "delete")
	f.deleted = in.ID
	return nil
}

func (f *fakeUC) ProjectAddMember(_ context.Context, in usecase.ProjectAddMemberInput) (*entity.Project, error) {
	f.calls = append(f.calls, "add-member")
	f.added = in
	return f.project()
}

func (f *fakeUC) ProjectRemoveMember(_ context.Context, in usecase.ProjectRemoveMemberInput) (*entity.Project, error) {
	f.calls = append(f.calls, "remove-member")
	f.removed = in
	return f.project()
}

func (f *fakeUC) ProjectUpdateStatus(_ context.Context, in usecase.ProjectUpdateStatusInput) (*entity.Project, error) {
	f.calls = append(f.calls, "status")
	f.status = in
	return f.project()
}

func (f *fakeUC) ProjectUpdatePaidAmount(_ context.Context, in usecase.ProjectUpdatePaidAmountInput) (*entity.Project, error) {
	f.calls = append(f.calls, "paid")
	f.paid = in
	return f.project()
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
		code, body := do(t, newServer(t, u), http.MethodPost, "/api/projects/add",
			`{"name":"Site","totalBudget":1000,"startDate":"2025-03-01T00:00:00Z","endDate":"2025-04-01T00:00:00Z","teamMembers":["`+memberID+`"]}`)

		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, "Project created successfully", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, projectID, data["_id"])
		assert.InDelta(t, 1000.0, data["totalPending"], 0.001)
		members := data["teamMembers"].([]any)
		require.Len(t, members, 1)
		assert.Equal(t, "Alice", members[0].(map[string]any)["name"])
		assert.Equal(t, []string{memberID}, u.created.TeamMembers)
	})

	t.Run("ListAndDetail", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodGet, "/api/projects", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, body["data"], 1)

		code, _ = do(t, newServer(t, u), http.MethodGet, "/api/projects/"+projectID, "")
		assert.Equal(t, http.StatusOK, code)

		code, body = do(t, newServer(t, u), http.MethodGet, "/api/projects/65f1c2a9e4b0a1b2c3d4ffff", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Project not found", body["message"])
	})

	t.Run("Update", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPut, "/api/projects/update/"+projectID, `{"totalPaid":200}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Project updated successfully", body["message"])
		assert.Equal(t, []string{"update"}, u.calls)
		assert.Equal(t, projectID, u.updated.ID)
		require.NotNil(t, u.updated.TotalPaid)
		assert.Nil(t, u.updated.Name)
		assert.Nil(t, u.updated.TeamMembers)
	})

	t.Run("Delete", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodDelete, "/api/projects/delete/"+projectID, "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"status": "success", "message": "Project deleted successfully"}, body)
		assert.Equal(t, projectID, u.deleted)
	})

	t.Run("AddMember", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPut, "/api/projects/"+projectID+"/add-team-members",
			`{"name":"Bob","phone":"0822","email":"bob@x.com","role":"Dev","totalAmount":300}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Team member added successfully", body["message"])
		assert.Equal(t, projectID, u.added.ProjectID)
		assert.Equal(t, "bob@x.com", u.added.Email)
	})

	t.Run("RemoveMember", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPut, "/api/projects/"+projectID+"/remove-team-member/"+memberID, "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Team member removed successfully", body["message"])
		assert.Equal(t, usecase.ProjectRemoveMemberInput{ProjectID: projectID, MemberID: memberID}, u.removed)
	})

	t.Run("Status", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPut, "/api/projects/"+projectID+"/update-status", `{"status":"Active"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Project status updated successfully", body["message"])
		assert.Equal(t, "Active", u.status.Status)
	})

	t.Run("PaidAmount", func(t *testing.T) {
		u := &fakeUC{}
		code, body := do(t, newServer(t, u), http.MethodPut, "/api/projects/"+projectID+"/update-paid-amount", `{"amountPaid":150}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Paid amount updated successfully", body["message"])
		assert.InDelta(t, 150.0, u.paid.AmountPaid, 0.001)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		u := &fakeUC{}
		code, _ := do(t, newServer(t, u), http.MethodPut, "/api/projects/"+projectID+"/archive", `{}`)
		assert.Equal(t, http.StatusNotFound, code)

		code, _ = do(t, newServer(t, u), http.MethodPut, "/api/projects/"+projectID+"/archive/"+memberID, "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Empty(t, u.calls)
	})
}
