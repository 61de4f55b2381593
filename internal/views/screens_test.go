package views

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbsplanner/internal/gantt"
	"wbsplanner/internal/gantt/termwidget"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/internal/mutation"
)

func TestSelfDependencyIsRejectedWithoutRequest(t *testing.T) {
	e := newEnv(t, newAPI(), true)
	s := NewDependencyList(e.Env, "5")

	f := NewDependencyForm()
	f.PredecessorID = "4"
	f.SuccessorID = "4"
	_, err := s.Create(context.Background(), f)

	assert.ErrorIs(t, err, mutation.ErrSelfDependency)
	assert.Zero(t, e.api.total())
	assert.Equal(t, []string{"同じタスクに依存関係を設定することはできません"}, e.notes.errors)
}

func TestInvalidFormMakesNoRequest(t *testing.T) {
	e := newEnv(t, newAPI(), true)

	_, err := NewTaskList(e.Env, "5").Create(context.Background(), TaskForm{})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Zero(t, e.api.total())
	assert.Equal(t, []string{"入力値を確認してください"}, e.notes.errors)
}

func TestDependencyCreateInvalidatesTaskList(t *testing.T) {
	a := newAPI().
		on("GET /tasks/project/5", mustJSON(sampleTasks())).
		on("POST /tasks/dependencies", `{"id": 9, "predecessor_id": 1, "successor_id": 2}`)
	e := newEnv(t, a, true)
	ctx := context.Background()

	unwatch := e.Queries.WatchTasks("5", func([]model.Task, error) {})
	defer unwatch()
	_, err := e.Queries.Tasks(ctx, "5")
	require.NoError(t, err)

	f := NewDependencyForm()
	f.PredecessorID = "1"
	f.SuccessorID = "2"
	_, err = NewDependencyList(e.Env, "5").Create(ctx, f)
	require.NoError(t, err)

	assert.Equal(t, 2, a.count("GET /tasks/project/5"))
	assert.Equal(t, []string{"依存関係を作成しました"}, e.notes.success)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	a := newAPI()
	e := newEnv(t, a, false)
	ctx := context.Background()

	done, err := NewTaskList(e.Env, "5").Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = NewDependencyList(e.Env, "5").Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = NewProjectList(e.Env).Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Zero(t, a.total())

	e.Confirm = answer(true)
	done, err = NewTaskList(e.Env, "5").Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, a.count("DELETE /tasks/1"))
}

func TestTaskListRender(t *testing.T) {
	a := newAPI().on("GET /tasks/project/5", mustJSON(sampleTasks()))
	e := newEnv(t, a, true)
	s := NewTaskList(e.Env, "5")

	out, err := s.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "要件定義")
	assert.Contains(t, out, "フェーズ")
	assert.Contains(t, out, "進行中")
	assert.Contains(t, out, "2024-04-01")

	// served from cache
	_, err = s.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, a.count("GET /tasks/project/5"))

	f, err := s.EditForm(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "設計", f.Name)
	_, err = s.EditForm(context.Background(), 99)
	assert.Error(t, err)
}

func TestDependencyListRender(t *testing.T) {
	a := newAPI().on("GET /tasks/project/5/dependencies", mustJSON([]model.TaskDependency{
		{ID: 3, PredecessorID: 1, SuccessorID: 2, DependencyType: model.FinishToStart, LagDays: 2, PredecessorName: "要件定義"},
	}))
	e := newEnv(t, a, true)

	out, err := NewDependencyList(e.Env, "5").Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "要件定義")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "終了→開始")
	assert.Contains(t, out, "2日")
}

func TestProjectListCreateAndEdit(t *testing.T) {
	a := newAPI().
		on("GET /projects/", mustJSON([]model.Project{{ID: 5, Name: "基幹刷新", Status: model.ProjectActive}})).
		on("GET /projects/5", mustJSON(model.Project{ID: 5, Name: "基幹刷新", Status: model.ProjectActive})).
		on("POST /projects/", `{"id": 6, "name": "new"}`)
	e := newEnv(t, a, true)
	s := NewProjectList(e.Env)
	ctx := context.Background()

	out, err := s.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "基幹刷新")

	f, err := s.EditForm(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "active", f.Status)

	_, err = s.Create(ctx, ProjectForm{Name: "new"})
	require.NoError(t, err)
	// the list is not subscribed, so it is only marked stale and refetched on the next render
	assert.Equal(t, 1, a.count("GET /projects/"))
	_, err = s.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, a.count("GET /projects/"))
}

func newGanttView(t *testing.T, e *env, libReady bool) (*GanttView, *termwidget.Widget) {
	t.Helper()
	w := termwidget.New(40)
	var lib gantt.Library = termwidget.NewLibrary()
	opts := &gantt.Options{LoadAttempts: 2, LoadInterval: time.Millisecond, InitRetries: 0}
	if !libReady {
		lib = neverReady{}
	}
	h := gantt.NewHandler(e.Mutations, e.Confirm, "5", i18n.Japanese, nil)
	adapter := gantt.NewAdapter(w, lib, termwidget.NewContainer(), h, e.notes, i18n.Japanese, nil, opts)
	return NewGanttView(e.Env, "5", adapter, w), w
}

type neverReady struct{}

func (neverReady) Ready() bool                        { return false }
func (neverReady) InjectAssets(string, string) error { return nil }

func TestGanttViewStates(t *testing.T) {
	ctx := context.Background()

	t.Run("rendered", func(t *testing.T) {
		a := newAPI().on("GET /tasks/project/5/gantt", mustJSON(model.GanttData{Tasks: sampleTasks()}))
		e := newEnv(t, a, true)
		v, w := newGanttView(t, e, true)
		unmount := v.Mount(ctx)
		defer unmount()

		assert.Equal(t, 2, w.GetTaskCount())
		assert.Contains(t, v.Render(), "要件定義")
	})

	t.Run("empty", func(t *testing.T) {
		a := newAPI().on("GET /tasks/project/5/gantt", `{"tasks": [], "links": []}`)
		e := newEnv(t, a, true)
		v, _ := newGanttView(t, e, true)
		defer v.Mount(ctx)()

		assert.Contains(t, v.Render(), "表示するタスクがありません")
		assert.Contains(t, v.Render(), "まずはタスクを作成してください")
	})

	t.Run("load failed", func(t *testing.T) {
		a := newAPI()
		a.status["GET /tasks/project/5/gantt"] = http.StatusInternalServerError
		e := newEnv(t, a, true)
		v, _ := newGanttView(t, e, true)
		defer v.Mount(ctx)()

		assert.Equal(t, "ガントチャートの読み込みに失敗しました", v.Render())
	})

	t.Run("library missing", func(t *testing.T) {
		a := newAPI().on("GET /tasks/project/5/gantt", mustJSON(model.GanttData{Tasks: sampleTasks()}))
		e := newEnv(t, a, true)
		v, w := newGanttView(t, e, false)
		defer v.Mount(ctx)()

		assert.Zero(t, w.GetTaskCount())
		assert.Equal(t, "読み込み中...", v.Render())
		assert.Equal(t, []string{"ガントチャートの初期化に失敗しました"}, e.notes.errors)
	})
}

func TestGanttRedrawsAfterTaskWrite(t *testing.T) {
	ctx := context.Background()
	a := newAPI().
		on("GET /tasks/project/5/gantt", mustJSON(model.GanttData{Tasks: sampleTasks()})).
		on("PUT /tasks/2", `{"id": 2}`)
	e := newEnv(t, a, true)
	v, w := newGanttView(t, e, true)
	defer v.Mount(ctx)()
	require.Equal(t, 1, a.count("GET /tasks/project/5/gantt"))

	bar, ok := w.Task(2)
	require.True(t, ok)
	bar.Duration = 3
	assert.True(t, w.Emit(gantt.EventAfterTaskDrag, gantt.RawEvent{Mode: gantt.DragResize, Task: &bar}))

	assert.Equal(t, 1, a.count("PUT /tasks/2"))
	assert.Equal(t, 2, a.count("GET /tasks/project/5/gantt"))
}

func TestProjectDetailTabs(t *testing.T) {
	a := newAPI().
		on("GET /projects/5", mustJSON(model.Project{ID: 5, Name: "基幹刷新"})).
		on("GET /tasks/project/5", mustJSON(sampleTasks())).
		on("GET /tasks/project/5/dependencies", `[]`).
		on("GET /tasks/project/5/gantt", mustJSON(model.GanttData{Tasks: sampleTasks()}))
	e := newEnv(t, a, true)
	g, _ := newGanttView(t, e, true)
	d := NewProjectDetail(e.Env, "5", g)
	defer g.Mount(context.Background())()

	out, err := d.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "基幹刷新")
	assert.Contains(t, out, "タスク一覧")
	assert.Contains(t, out, "設計")

	d.Next()
	assert.Equal(t, TabDependencies, d.Active())
	out, err = d.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "データがありません")

	d.SetTab(TabGantt)
	out, err = d.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "要件定義")

	d.Next()
	assert.Equal(t, TabTasks, d.Active())
	d.SetTab(Tab(7))
	assert.Equal(t, TabTasks, d.Active())
}

func TestReports(t *testing.T) {
	stats := model.Statistics{
		ProjectStats:    model.ProjectStats{TotalProjects: 3, ActiveProjects: 1},
		TaskStats:       model.TaskStats{TotalTasks: 10, CompletedTasks: 4, OverdueTasks: 2},
		ProjectProgress: []model.ProjectProgress{{ID: 1, Name: "基幹刷新", Status: model.ProjectActive, TotalTasks: 10, CompletedTasks: 4, Progress: 40}},
	}
	a := newAPI().on("GET /projects/statistics", mustJSON(stats)).on("GET /projects/export", "a,b\n1,2\n")
	a.headers["GET /projects/export"] = map[string]string{"Content-Disposition": `attachment; filename=projects_export.csv`}
	e := newEnv(t, a, true)
	s := NewReports(e.Env, e.client)

	out, err := s.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "期限切れタスク")
	assert.Contains(t, out, "40%")

	dir := t.TempDir()
	path, err := s.Export(context.Background(), "CSV", nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "projects_export.csv"), path)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(body))
	assert.Equal(t, []string{"CSVファイルをダウンロードしました"}, e.notes.success)
}

func TestReportsExportFailure(t *testing.T) {
	a := newAPI().on("GET /projects/export", `{"detail": "エクスポートするデータがありません"}`)
	a.status["GET /projects/export"] = http.StatusNotFound
	e := newEnv(t, a, true)

	_, err := NewReports(e.Env, e.client).Export(context.Background(), "pdf", nil, t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, []string{"エクスポートに失敗しました: エクスポートするデータがありません"}, e.notes.errors)
}

func TestUserAdmin(t *testing.T) {
	e := newEnv(t, newAPI(), true)
	s := NewUserAdmin(e.Env)
	assert.Contains(t, s.Render(), "システム管理者")

	u, err := s.Create(UserForm{Username: "dev", FullName: "Dev", Email: "dev@example.com", Password: "pw", Role: "team_member", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, 2, u.ID)

	_, err = s.Update(u.ID, UserForm{Username: "dev", FullName: "Dev 2", Email: "dev@example.com", Role: "viewer"})
	require.NoError(t, err)
	f, err := s.EditForm(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "viewer", f.Role)

	_, err = s.Create(UserForm{Username: "x"})
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))

	assert.True(t, s.Delete(u.ID))
	assert.Len(t, s.Users(), 1)
	assert.Equal(t, []string{"ユーザーを作成しました（デモ）", "ユーザーを更新しました（デモ）", "ユーザーを削除しました（デモ）"}, e.notes.success)
	assert.Zero(t, e.api.total())
}
