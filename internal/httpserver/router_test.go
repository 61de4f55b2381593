package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wbsplanner/internal/handler"
	"wbsplanner/internal/model"
	"wbsplanner/pkg/rbac"
	"wbsplanner/pkg/trace"
	"wbsplanner/pkg/util"
)

const secret = "test-secret"

type stubPlanner struct {
	handler.Planner
	createdProjects int
}

func (s *stubPlanner) ListProjects(context.Context) ([]model.Project, error) {
	return []model.Project{{ID: 1, Name: "Core"}}, nil
}

func (s *stubPlanner) CreateProject(_ context.Context, in model.ProjectCreate) (*model.Project, error) {
	s.createdProjects++
	return &model.Project{ID: 2, Name: in.Name}, nil
}

func (s *stubPlanner) Statistics(context.Context) (*model.Statistics, error) {
	return &model.Statistics{}, nil
}

type stubAuth struct{ handler.Authenticator }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestRouter(p handler.Planner, db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	return NewRouter(Deps{
		Auth:         handler.NewAuthHandler(stubAuth{}, logger),
		Projects:     handler.NewProjectHandler(p, logger),
		Tasks:        handler.NewTaskHandler(p, logger),
		Dependencies: handler.NewDependencyHandler(p, logger),
		JWTSecret:    secret,
		DB:           db,
		Logger:       logger,
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := util.GenerateJWT(1, role, secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func serve(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubPlanner{}, pinger{})

	w := serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(trace.HeaderName))

	w = serve(r, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	r = newTestRouter(&stubPlanner{}, pinger{err: errors.New("down")})
	w = serve(r, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "db_not_ready")
}

func TestTraceIDIsPropagated(t *testing.T) {
	r := newTestRouter(&stubPlanner{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(trace.HeaderName, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(trace.HeaderName))
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(&stubPlanner{}, nil)

	w := serve(r, http.MethodGet, "/api/v1/projects/", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/projects/", "Bearer nonsense")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/projects/", bearer(t, rbac.RoleViewer))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Core")
}

func TestPermissions(t *testing.T) {
	p := &stubPlanner{}
	r := newTestRouter(p, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/", nil)
	req.Header.Set("Authorization", bearer(t, rbac.RoleViewer))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, p.createdProjects)

	w = serve(r, http.MethodGet, "/api/v1/projects/statistics", bearer(t, rbac.RoleTeamMember))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaticRoutesBeatIDParam(t *testing.T) {
	r := newTestRouter(&stubPlanner{}, nil)
	w := serve(r, http.MethodGet, "/api/v1/projects/statistics", bearer(t, rbac.RoleSystemAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "project_stats")
}
