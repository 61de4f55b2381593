package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbsplanner/internal/model"
	"wbsplanner/pkg/trace"
)

type memTokens struct {
	token   string
	cleared int
}

func (m *memTokens) Token() string { return m.token }

func (m *memTokens) Clear() error {
	m.token = ""
	m.cleared++
	return nil
}

type recordingNav struct{ routes []string }

func (n *recordingNav) Navigate(route string) { n.routes = append(n.routes, route) }

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *memTokens, *recordingNav) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	tokens := &memTokens{token: "tok-1"}
	nav := &recordingNav{}
	return New(Config{ServerURL: srv.URL, Timeout: 5 * time.Second}, tokens, nav, nil), tokens, nav
}

func TestBearerTokenAndBasePath(t *testing.T) {
	var gotAuth, gotPath, gotTrace string
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotTrace = r.Header.Get(trace.HeaderName)
		_ = json.NewEncoder(w).Encode([]model.Project{{ID: 1, Name: "Core"}})
	})

	ctx := trace.WithContext(context.Background(), "trace-9")
	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "/api/v1/projects/", gotPath)
	assert.Equal(t, "trace-9", gotTrace)
}

func TestUnauthorizedClearsTokenAndNavigatesToLogin(t *testing.T) {
	c, tokens, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	_, err := c.ListTasks(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Could not validate credentials", Detail(err))
	assert.Equal(t, "", tokens.token)
	assert.Equal(t, 1, tokens.cleared)
	assert.Equal(t, []string{RouteLogin}, nav.routes)
}

func TestAPIErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"string detail", 400, `{"detail":"Dependency already exists between these tasks"}`, "Dependency already exists between these tasks"},
		{"list detail", 422, `{"detail":[{"loc":["body","name"],"msg":"field required"}]}`, `[{"loc":["body","name"],"msg":"field required"}]`},
		{"no json", 502, `bad gateway`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, tokens, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := c.DeleteDependency(context.Background(), 1)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, tt.body, string(apiErr.Body))
			// only 401 logs the user out
			assert.Equal(t, 0, tokens.cleared)
			assert.Empty(t, nav.routes)
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(&APIError{StatusCode: 400, Detail: "Dependency already exists between these tasks"}))
	assert.False(t, IsDuplicate(&APIError{StatusCode: 400, Detail: "One or both tasks do not exist"}))
	assert.False(t, IsDuplicate(errors.New("already exists")))
}

func TestCreateDependencySendsBody(t *testing.T) {
	var got model.DependencyCreate
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/tasks/dependencies", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(model.TaskDependency{ID: 5, PredecessorID: got.PredecessorID, SuccessorID: got.SuccessorID})
	})

	dep, err := c.CreateDependency(context.Background(), model.DependencyCreate{
		PredecessorID: 1, SuccessorID: 2, DependencyType: model.FinishToStart,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, dep.ID)
	assert.Equal(t, model.FinishToStart, got.DependencyType)
	assert.Equal(t, 0, got.LagDays)
}

func TestUpdateTaskSendsOnlySetFields(t *testing.T) {
	var raw map[string]any
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tasks/8", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(model.Task{ID: 8})
	})

	progress := 50
	_, err := c.UpdateTask(context.Background(), 8, model.TaskUpdate{ProgressPercentage: &progress})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"progress_percentage": float64(50)}, raw)
}

func TestExportProjects(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "excel", r.URL.Query().Get("format"))
		assert.Equal(t, "4", r.URL.Query().Get("project_id"))
		w.Header().Set("Content-Disposition", "attachment; filename=projects_export.xlsx")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write([]byte("PK\x03\x04"))
	})

	id := 4
	d, err := c.ExportProjects(context.Background(), "excel", &id)
	require.NoError(t, err)
	assert.Equal(t, "projects_export.xlsx", d.Filename)
	assert.Equal(t, []byte("PK\x03\x04"), d.Body)
}

func TestFilenameOf(t *testing.T) {
	assert.Equal(t, "a.csv", filenameOf(`attachment; filename="a.csv"`, "csv"))
	assert.Equal(t, "evil.pdf", filenameOf(`attachment; filename="../../evil.pdf"`, "pdf"))
	assert.Equal(t, "projects_export.xlsx", filenameOf("", "excel"))
}
