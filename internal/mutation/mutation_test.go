package mutation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbsplanner/internal/client"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/internal/querycache"
)

type recorder struct {
	mu      sync.Mutex
	success []string
	errors  []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// fakeServer counts requests per "METHOD path" and answers writes with the
// configured status.
type fakeServer struct {
	mu        sync.Mutex
	hits      map[string]int
	writeCode int
	detail    string
}

func (f *fakeServer) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.Method+" "+strings.TrimPrefix(r.URL.Path, client.BasePath)]++
	code, detail := f.writeCode, f.detail
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet && code >= 400 {
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
		return
	}
	switch {
	case strings.HasSuffix(r.URL.Path, "/gantt"):
		_ = json.NewEncoder(w).Encode(model.GanttData{})
	case r.Method == http.MethodGet:
		_, _ = w.Write([]byte("[]"))
	case r.Method == http.MethodDelete:
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	default:
		_, _ = w.Write([]byte(`{"id": 42}`))
	}
}

type fixture struct {
	server *fakeServer
	api    *client.Client
	cache  *querycache.Cache
	notes  *recorder
	m      *Mutations
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := &fakeServer{hits: map[string]int{}, writeCode: http.StatusOK}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)

	api := client.New(client.Config{ServerURL: srv.URL}, nil, nil, nil)
	cache := querycache.New(querycache.WithRetry(0, time.Millisecond))
	notes := &recorder{}
	return &fixture{
		server: fs,
		api:    api,
		cache:  cache,
		notes:  notes,
		m:      New(api, cache, notes, i18n.Japanese, nil),
	}
}

// mount fetches and subscribes the three project views the way the detail
// screen does.
func (f *fixture) mount(t *testing.T, projectID string) {
	t.Helper()
	ctx := context.Background()
	pid := 5
	fetchers := map[querycache.Key]querycache.Fetcher{
		{Resource: querycache.ResourceTasks, ProjectID: projectID}: querycache.Typed(func(ctx context.Context) ([]model.Task, error) {
			return f.api.ListTasks(ctx, pid)
		}),
		{Resource: querycache.ResourceGantt, ProjectID: projectID}: querycache.Typed(func(ctx context.Context) (*model.GanttData, error) {
			return f.api.GanttData(ctx, pid)
		}),
		{Resource: querycache.ResourceDependencies, ProjectID: projectID}: querycache.Typed(func(ctx context.Context) ([]model.TaskDependency, error) {
			return f.api.ListDependencies(ctx, pid)
		}),
	}
	for key, fetch := range fetchers {
		_, err := f.cache.Fetch(ctx, key, fetch)
		require.NoError(t, err)
		unsubscribe := f.cache.Subscribe(key, fetch, func(any, error) {})
		t.Cleanup(unsubscribe)
	}
}

func (f *fixture) reads() (tasks, gantt, deps int) {
	return f.server.count("GET /tasks/project/5"),
		f.server.count("GET /tasks/project/5/gantt"),
		f.server.count("GET /tasks/project/5/dependencies")
}

func TestTaskMutationsRefetchProjectViews(t *testing.T) {
	ctx := context.Background()
	name := "renamed"

	cases := []struct {
		name string
		run  func(m *Mutations) error
		msg  string
	}{
		{"create", func(m *Mutations) error {
			_, err := m.CreateTask(ctx, "5", model.TaskCreate{Name: "t"})
			return err
		}, "タスクを作成しました"},
		{"update", func(m *Mutations) error {
			_, err := m.UpdateTask(ctx, "5", 1, model.TaskUpdate{Name: &name})
			return err
		}, "タスクを更新しました"},
		{"delete", func(m *Mutations) error {
			return m.DeleteTask(ctx, "5", 1)
		}, "タスクを削除しました"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.mount(t, "5")
			tasks, gantt, deps := f.reads()
			require.Equal(t, []int{1, 1, 1}, []int{tasks, gantt, deps})

			require.NoError(t, tc.run(f.m))

			tasks, gantt, deps = f.reads()
			assert.Equal(t, []int{2, 2, 2}, []int{tasks, gantt, deps})
			assert.Equal(t, []string{tc.msg}, f.notes.success)
			assert.Empty(t, f.notes.errors)
		})
	}
}

func TestDependencyMutationsRefetchProjectViews(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.mount(t, "5")

	_, err := f.m.CreateDependency(ctx, "5", model.DependencyCreate{PredecessorID: 1, SuccessorID: 2})
	require.NoError(t, err)
	tasks, gantt, deps := f.reads()
	assert.Equal(t, []int{2, 2, 2}, []int{tasks, gantt, deps})

	require.NoError(t, f.m.DeleteDependency(ctx, "5", 42))
	tasks, gantt, deps = f.reads()
	assert.Equal(t, []int{3, 3, 3}, []int{tasks, gantt, deps})
	assert.Equal(t, []string{"依存関係を作成しました", "依存関係を削除しました"}, f.notes.success)
}

func TestUnmountedViewsAreOnlyMarkedStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	key := querycache.Key{Resource: querycache.ResourceGantt, ProjectID: "5"}
	_, err := f.cache.Fetch(ctx, key, querycache.Typed(func(ctx context.Context) (*model.GanttData, error) {
		return f.api.GanttData(ctx, 5)
	}))
	require.NoError(t, err)

	require.NoError(t, f.m.DeleteTask(ctx, "5", 1))
	_, gantt, _ := f.reads()
	assert.Equal(t, 1, gantt)
	_, stale := f.cache.State(key)
	assert.True(t, stale)
}

func TestSelfDependencyMakesNoRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.m.CreateDependency(context.Background(), "5", model.DependencyCreate{PredecessorID: 3, SuccessorID: 3})
	assert.ErrorIs(t, err, ErrSelfDependency)
	assert.Zero(t, f.server.count("POST /tasks/dependencies"))
	assert.Equal(t, []string{"同じタスクに依存関係を設定することはできません"}, f.notes.errors)
}

func TestDuplicateDependencyMessage(t *testing.T) {
	f := newFixture(t)
	f.server.writeCode = http.StatusBadRequest
	f.server.detail = "Dependency already exists between these tasks"

	_, err := f.m.CreateDependency(context.Background(), "5", model.DependencyCreate{PredecessorID: 1, SuccessorID: 2})
	assert.Error(t, err)
	assert.Equal(t, []string{"この依存関係は既に存在します"}, f.notes.errors)
	assert.Empty(t, f.notes.success)
}

func TestFailureCarriesServerDetail(t *testing.T) {
	f := newFixture(t)
	f.mount(t, "5")
	f.server.writeCode = http.StatusBadRequest
	f.server.detail = "One or both tasks do not exist"

	_, err := f.m.CreateDependency(context.Background(), "5", model.DependencyCreate{PredecessorID: 1, SuccessorID: 99})
	assert.Error(t, err)
	assert.Equal(t, []string{"依存関係の作成に失敗しました: One or both tasks do not exist"}, f.notes.errors)

	// failed writes invalidate nothing
	tasks, gantt, deps := f.reads()
	assert.Equal(t, []int{1, 1, 1}, []int{tasks, gantt, deps})
}

func TestFailureWithoutDetailUsesGenericMessage(t *testing.T) {
	f := newFixture(t)
	f.server.writeCode = http.StatusInternalServerError

	err := f.m.DeleteTask(context.Background(), "5", 1)
	assert.Error(t, err)
	assert.Equal(t, []string{"タスクの削除に失敗しました"}, f.notes.errors)
}

func TestGanttUpdateFailureMessage(t *testing.T) {
	f := newFixture(t)
	f.server.writeCode = http.StatusInternalServerError

	_, err := f.m.UpdateTaskFromGantt(context.Background(), "5", 1, model.TaskUpdate{})
	assert.Error(t, err)
	assert.Equal(t, []string{"ガントチャートからのタスク更新に失敗しました"}, f.notes.errors)
}

func TestProjectMutationsInvalidateLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	listKey := querycache.Key{Resource: querycache.ResourceProjects}
	statsKey := querycache.Key{Resource: querycache.ResourceStatistics}
	fetch := querycache.Typed(func(ctx context.Context) ([]model.Project, error) {
		return f.api.ListProjects(ctx)
	})
	_, err := f.cache.Fetch(ctx, listKey, fetch)
	require.NoError(t, err)
	t.Cleanup(f.cache.Subscribe(listKey, fetch, func(any, error) {}))
	_, _ = f.cache.Fetch(ctx, statsKey, func(context.Context) (any, error) { return nil, nil })

	_, err = f.m.CreateProject(ctx, model.ProjectCreate{Name: "p", Status: model.ProjectPlanning})
	require.NoError(t, err)
	assert.Equal(t, 2, f.server.count("GET /projects/"))
	_, stale := f.cache.State(statsKey)
	assert.True(t, stale)

	require.NoError(t, f.m.DeleteProject(ctx, 42))
	assert.Equal(t, 3, f.server.count("GET /projects/"))
	assert.Equal(t, []string{"プロジェクトを作成しました", "プロジェクトを削除しました"}, f.notes.success)
}
