// Package mutation wraps every write the client makes: call the API, then on
// success invalidate the affected query keys and notify, on failure notify
// with the server detail.
package mutation

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"wbsplanner/internal/client"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/internal/querycache"
	"wbsplanner/pkg/metrics"
)

// ErrSelfDependency is returned before any request when predecessor and successor match.
var ErrSelfDependency = errors.New("dependency to itself")

// API is the slice of the HTTP client the mutations use.
type API interface {
	CreateProject(ctx context.Context, in model.ProjectCreate) (*model.Project, error)
	UpdateProject(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error)
	DeleteProject(ctx context.Context, id int) error

	CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error)
	UpdateTask(ctx context.Context, id int, in model.TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, id int) error

	CreateDependency(ctx context.Context, in model.DependencyCreate) (*model.TaskDependency, error)
	DeleteDependency(ctx context.Context, id int) error
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type Mutations struct {
	api    API
	cache  *querycache.Cache
	notify Notifier
	locale i18n.Locale
	logger *zap.Logger
}

func New(api API, cache *querycache.Cache, notify Notifier, locale i18n.Locale, logger *zap.Logger) *Mutations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mutations{api: api, cache: cache, notify: notify, locale: locale, logger: logger}
}

// Locale is the language notifications are written in.
func (m *Mutations) Locale() i18n.Locale {
	return m.locale
}

func (m *Mutations) succeed(ctx context.Context, entity, op, msgKey string, keys []querycache.Key) {
	metrics.RecordMutation(entity, op, nil)
	n := m.cache.InvalidateAll(ctx, keys...)
	m.logger.Debug("Mutation succeeded", zap.String("entity", entity), zap.String("op", op), zap.Int("invalidated", n))
	if msgKey != "" {
		m.notify.Success(m.locale.T(msgKey))
	}
}

func (m *Mutations) failed(entity, op, msgKey string, err error) {
	metrics.RecordMutation(entity, op, err)
	m.logger.Warn("Mutation failed", zap.String("entity", entity), zap.String("op", op), zap.Error(err))
	m.notify.Error(m.locale.Tf(msgKey, client.Detail(err)))
}

// ---- tasks ----

// CreateTask creates a task on projectID, the id as it appears in the route.
func (m *Mutations) CreateTask(ctx context.Context, projectID string, in model.TaskCreate) (*model.Task, error) {
	pid, err := strconv.Atoi(projectID)
	if err != nil {
		m.failed("task", "create", i18n.TaskCreateFailed, err)
		return nil, err
	}
	in.ProjectID = pid
	task, err := m.api.CreateTask(ctx, in)
	if err != nil {
		m.failed("task", "create", i18n.TaskCreateFailed, err)
		return nil, err
	}
	m.succeed(ctx, "task", "create", i18n.TaskCreated, querycache.ProjectKeys(projectID))
	return task, nil
}

func (m *Mutations) UpdateTask(ctx context.Context, projectID string, id int, in model.TaskUpdate) (*model.Task, error) {
	return m.updateTask(ctx, projectID, id, in, i18n.TaskUpdated, i18n.TaskUpdateFailed)
}

// UpdateTaskFromGantt is UpdateTask with the chart's failure message.
func (m *Mutations) UpdateTaskFromGantt(ctx context.Context, projectID string, id int, in model.TaskUpdate) (*model.Task, error) {
	return m.updateTask(ctx, projectID, id, in, i18n.TaskUpdated, i18n.GanttUpdateFailed)
}

func (m *Mutations) updateTask(ctx context.Context, projectID string, id int, in model.TaskUpdate, okKey, failKey string) (*model.Task, error) {
	task, err := m.api.UpdateTask(ctx, id, in)
	if err != nil {
		m.failed("task", "update", failKey, err)
		return nil, err
	}
	m.succeed(ctx, "task", "update", okKey, querycache.ProjectKeys(projectID))
	return task, nil
}

func (m *Mutations) DeleteTask(ctx context.Context, projectID string, id int) error {
	if err := m.api.DeleteTask(ctx, id); err != nil {
		m.failed("task", "delete", i18n.TaskDeleteFailed, err)
		return err
	}
	m.succeed(ctx, "task", "delete", i18n.TaskDeleted, querycache.ProjectKeys(projectID))
	return nil
}

// ---- dependencies ----

// CreateDependency rejects self-dependencies locally and maps the server's
// duplicate rejection to its own message.
func (m *Mutations) CreateDependency(ctx context.Context, projectID string, in model.DependencyCreate) (*model.TaskDependency, error) {
	if in.PredecessorID == in.SuccessorID {
		metrics.RecordMutation("dependency", "create", ErrSelfDependency)
		m.notify.Error(m.locale.T(i18n.DependencySelf))
		return nil, ErrSelfDependency
	}
	if in.DependencyType == "" {
		in.DependencyType = model.FinishToStart
	}

	dep, err := m.api.CreateDependency(ctx, in)
	if err != nil {
		if client.IsDuplicate(err) {
			metrics.RecordMutation("dependency", "create", err)
			m.logger.Info("Duplicate dependency rejected",
				zap.Int("predecessor_id", in.PredecessorID),
				zap.Int("successor_id", in.SuccessorID),
			)
			m.notify.Error(m.locale.T(i18n.DependencyDuplicate))
			return nil, err
		}
		m.failed("dependency", "create", i18n.DependencyFailed, err)
		return nil, err
	}
	m.succeed(ctx, "dependency", "create", i18n.DependencyCreated, querycache.ProjectKeys(projectID))
	return dep, nil
}

func (m *Mutations) DeleteDependency(ctx context.Context, projectID string, id int) error {
	if err := m.api.DeleteDependency(ctx, id); err != nil {
		m.failed("dependency", "delete", i18n.DependencyDelFailed, err)
		return err
	}
	m.succeed(ctx, "dependency", "delete", i18n.DependencyDeleted, querycache.ProjectKeys(projectID))
	return nil
}

// ---- projects ----

func (m *Mutations) CreateProject(ctx context.Context, in model.ProjectCreate) (*model.Project, error) {
	p, err := m.api.CreateProject(ctx, in)
	if err != nil {
		m.failed("project", "create", i18n.ProjectCreateFailed, err)
		return nil, err
	}
	m.succeed(ctx, "project", "create", i18n.ProjectCreated, querycache.ProjectListKeys(""))
	return p, nil
}

func (m *Mutations) UpdateProject(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error) {
	p, err := m.api.UpdateProject(ctx, id, in)
	if err != nil {
		m.failed("project", "update", i18n.ProjectUpdateFailed, err)
		return nil, err
	}
	m.succeed(ctx, "project", "update", i18n.ProjectUpdated, querycache.ProjectListKeys(strconv.Itoa(id)))
	return p, nil
}

func (m *Mutations) DeleteProject(ctx context.Context, id int) error {
	if err := m.api.DeleteProject(ctx, id); err != nil {
		m.failed("project", "delete", i18n.ProjectDeleteFailed, err)
		return err
	}
	m.succeed(ctx, "project", "delete", i18n.ProjectDeleted, querycache.ProjectListKeys(strconv.Itoa(id)))
	return nil
}
