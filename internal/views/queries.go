package views

import (
	"context"
	"strconv"

	"wbsplanner/internal/model"
	"wbsplanner/internal/querycache"
)

// Reader is the read side of the API client.
type Reader interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id int) (*model.Project, error)
	ProjectStatistics(ctx context.Context) (*model.Statistics, error)
	ListTasks(ctx context.Context, projectID int) ([]model.Task, error)
	GanttData(ctx context.Context, projectID int) (*model.GanttData, error)
	ListDependencies(ctx context.Context, projectID int) ([]model.TaskDependency, error)
}

// Queries are the cached reads every screen goes through. Project ids are
// taken as the route string so they match the keys mutations invalidate.
type Queries struct {
	api   Reader
	cache *querycache.Cache
}

func NewQueries(api Reader, cache *querycache.Cache) *Queries {
	return &Queries{api: api, cache: cache}
}

func (q *Queries) Cache() *querycache.Cache {
	return q.cache
}

func ProjectsKey() querycache.Key { return querycache.Key{Resource: querycache.ResourceProjects} }

func StatisticsKey() querycache.Key { return querycache.Key{Resource: querycache.ResourceStatistics} }

func ProjectKey(projectID string) querycache.Key {
	return querycache.Key{Resource: querycache.ResourceProject, ProjectID: projectID}
}

func TasksKey(projectID string) querycache.Key {
	return querycache.Key{Resource: querycache.ResourceTasks, ProjectID: projectID}
}

func GanttKey(projectID string) querycache.Key {
	return querycache.Key{Resource: querycache.ResourceGantt, ProjectID: projectID}
}

func DependenciesKey(projectID string) querycache.Key {
	return querycache.Key{Resource: querycache.ResourceDependencies, ProjectID: projectID}
}

func (q *Queries) Projects(ctx context.Context) ([]model.Project, error) {
	return querycache.Query(ctx, q.cache, ProjectsKey(), q.api.ListProjects)
}

func (q *Queries) Statistics(ctx context.Context) (*model.Statistics, error) {
	return querycache.Query(ctx, q.cache, StatisticsKey(), q.api.ProjectStatistics)
}

func (q *Queries) Project(ctx context.Context, projectID string) (*model.Project, error) {
	id, err := strconv.Atoi(projectID)
	if err != nil {
		return nil, err
	}
	return querycache.Query(ctx, q.cache, ProjectKey(projectID), func(ctx context.Context) (*model.Project, error) {
		return q.api.GetProject(ctx, id)
	})
}

func (q *Queries) tasksFetch(projectID string) func(context.Context) ([]model.Task, error) {
	return func(ctx context.Context) ([]model.Task, error) {
		id, err := strconv.Atoi(projectID)
		if err != nil {
			return nil, err
		}
		return q.api.ListTasks(ctx, id)
	}
}

func (q *Queries) ganttFetch(projectID string) func(context.Context) (*model.GanttData, error) {
	return func(ctx context.Context) (*model.GanttData, error) {
		id, err := strconv.Atoi(projectID)
		if err != nil {
			return nil, err
		}
		return q.api.GanttData(ctx, id)
	}
}

func (q *Queries) dependenciesFetch(projectID string) func(context.Context) ([]model.TaskDependency, error) {
	return func(ctx context.Context) ([]model.TaskDependency, error) {
		id, err := strconv.Atoi(projectID)
		if err != nil {
			return nil, err
		}
		return q.api.ListDependencies(ctx, id)
	}
}

func (q *Queries) Tasks(ctx context.Context, projectID string) ([]model.Task, error) {
	return querycache.Query(ctx, q.cache, TasksKey(projectID), q.tasksFetch(projectID))
}

func (q *Queries) Gantt(ctx context.Context, projectID string) (*model.GanttData, error) {
	return querycache.Query(ctx, q.cache, GanttKey(projectID), q.ganttFetch(projectID))
}

func (q *Queries) Dependencies(ctx context.Context, projectID string) ([]model.TaskDependency, error) {
	return querycache.Query(ctx, q.cache, DependenciesKey(projectID), q.dependenciesFetch(projectID))
}

// WatchTasks keeps the task list of projectID mounted; fn sees every refetch.
func (q *Queries) WatchTasks(projectID string, fn func([]model.Task, error)) func() {
	return q.cache.Subscribe(TasksKey(projectID), querycache.Typed(q.tasksFetch(projectID)), func(data any, err error) {
		tasks, _ := data.([]model.Task)
		fn(tasks, err)
	})
}

func (q *Queries) WatchGantt(projectID string, fn func(*model.GanttData, error)) func() {
	return q.cache.Subscribe(GanttKey(projectID), querycache.Typed(q.ganttFetch(projectID)), func(data any, err error) {
		d, _ := data.(*model.GanttData)
		fn(d, err)
	})
}

func (q *Queries) WatchDependencies(projectID string, fn func([]model.TaskDependency, error)) func() {
	return q.cache.Subscribe(DependenciesKey(projectID), querycache.Typed(q.dependenciesFetch(projectID)), func(data any, err error) {
		deps, _ := data.([]model.TaskDependency)
		fn(deps, err)
	})
}
