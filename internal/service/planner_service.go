package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
	"wbsplanner/internal/mq"
	"wbsplanner/internal/repository"
	"wbsplanner/pkg/metrics"
	pkgmq "wbsplanner/pkg/mq"
	"wbsplanner/pkg/otel"
)

type actorKey struct{}

// WithActor records the authenticated user for change events.
func WithActor(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actor(ctx context.Context) int {
	id, _ := ctx.Value(actorKey{}).(int)
	return id
}

// PlannerService owns project, task and dependency writes. After every
// successful write it evicts the project's derived caches and publishes
// a project.changed event.
type PlannerService struct {
	projects  ProjectStore
	tasks     TaskStore
	deps      DependencyStore
	stats     StatisticsStore
	cache     ReportCache
	publisher EventPublisher
	logger    *zap.Logger
}

func NewPlannerService(
	projects ProjectStore,
	tasks TaskStore,
	deps DependencyStore,
	stats StatisticsStore,
	cache ReportCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		projects:  projects,
		tasks:     tasks,
		deps:      deps,
		stats:     stats,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ---- projects ----

func (s *PlannerService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

func (s *PlannerService) GetProject(ctx context.Context, id int) (*model.Project, error) {
	p, err := s.projects.Get(ctx, id)
	return p, notFound(err)
}

func (s *PlannerService) CreateProject(ctx context.Context, in model.ProjectCreate) (*model.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("name", "required")
	}
	if in.Status == "" {
		in.Status = model.ProjectPlanning
	}
	if !in.Status.Valid() {
		return nil, invalid("status", "unknown project status")
	}
	p, err := s.projects.Insert(ctx, in)
	metrics.RecordMutation(mq.EntityProject, mq.ActionCreated, err)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, p.ID, mq.EntityProject, mq.ActionCreated, p.ID)
	return p, nil
}

func (s *PlannerService) UpdateProject(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name", "required")
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, invalid("status", "unknown project status")
	}
	p, err := s.projects.Update(ctx, id, in)
	metrics.RecordMutation(mq.EntityProject, mq.ActionUpdated, err)
	if err != nil {
		return nil, notFound(err)
	}
	s.changed(ctx, id, mq.EntityProject, mq.ActionUpdated, id)
	return p, nil
}

func (s *PlannerService) DeleteProject(ctx context.Context, id int) error {
	err := s.projects.Delete(ctx, id)
	metrics.RecordMutation(mq.EntityProject, mq.ActionDeleted, err)
	if err != nil {
		return notFound(err)
	}
	s.changed(ctx, id, mq.EntityProject, mq.ActionDeleted, id)
	return nil
}

// ---- tasks ----

func (s *PlannerService) ListTasks(ctx context.Context, projectID int) ([]model.Task, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, notFound(err)
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *PlannerService) GetTask(ctx context.Context, id int) (*model.Task, error) {
	t, err := s.tasks.Get(ctx, id)
	return t, notFound(err)
}

func (s *PlannerService) CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ApplyDefaults()
	if err := validateTaskEnums(&in.TaskType, &in.Status, &in.Priority); err != nil {
		return nil, err
	}
	if in.EstimatedHours < 0 || in.ActualHours < 0 {
		return nil, invalid("estimated_hours", "must not be negative")
	}
	if _, err := s.projects.Get(ctx, in.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("project_id", "project does not exist")
		}
		return nil, err
	}

	t, err := s.tasks.Insert(ctx, in)
	metrics.RecordMutation(mq.EntityTask, mq.ActionCreated, err)
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, invalid("parent_task_id", "referenced task or user does not exist")
		}
		return nil, err
	}
	s.changed(ctx, t.ProjectID, mq.EntityTask, mq.ActionCreated, t.ID)
	return t, nil
}

// UpdateTask applies a partial update.
func (s *PlannerService) UpdateTask(ctx context.Context, id int, in model.TaskUpdate) (*model.Task, error) {
	if err := validateTaskEnums(in.TaskType, in.Status, in.Priority); err != nil {
		return nil, err
	}
	if in.ProgressPercentage != nil && (*in.ProgressPercentage < 0 || *in.ProgressPercentage > 100) {
		return nil, invalid("progress_percentage", "must be between 0 and 100")
	}
	if in.EstimatedHours != nil && *in.EstimatedHours < 0 {
		return nil, invalid("estimated_hours", "must not be negative")
	}
	if in.ParentTaskID != nil && *in.ParentTaskID == id {
		return nil, invalid("parent_task_id", "a task cannot be its own parent")
	}

	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	in.Apply(t)
	err = s.tasks.Save(ctx, t)
	metrics.RecordMutation(mq.EntityTask, mq.ActionUpdated, err)
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, invalid("parent_task_id", "referenced task or user does not exist")
		}
		return nil, notFound(err)
	}
	s.changed(ctx, t.ProjectID, mq.EntityTask, mq.ActionUpdated, t.ID)
	return t, nil
}

func (s *PlannerService) DeleteTask(ctx context.Context, id int) error {
	projectID, err := s.tasks.Delete(ctx, id)
	metrics.RecordMutation(mq.EntityTask, mq.ActionDeleted, err)
	if err != nil {
		return notFound(err)
	}
	s.changed(ctx, projectID, mq.EntityTask, mq.ActionDeleted, id)
	return nil
}

func validateTaskEnums(tt *model.TaskType, st *model.TaskStatus, pr *model.Priority) error {
	if tt != nil && !tt.Valid() {
		return invalid("task_type", "unknown task type")
	}
	if st != nil && !st.Valid() {
		return invalid("status", "unknown task status")
	}
	if pr != nil && !pr.Valid() {
		return invalid("priority", "unknown priority")
	}
	return nil
}

// ---- dependencies ----

func (s *PlannerService) ListDependencies(ctx context.Context, projectID int) ([]model.TaskDependency, error) {
	return s.deps.ListByProject(ctx, projectID)
}

func (s *PlannerService) CreateDependency(ctx context.Context, in model.DependencyCreate) (*model.TaskDependency, error) {
	if in.PredecessorID == in.SuccessorID {
		return nil, ErrSelfDependency
	}
	if in.DependencyType == "" {
		in.DependencyType = model.FinishToStart
	}
	if !in.DependencyType.Valid() {
		return nil, invalid("dependency_type", "unknown dependency type")
	}

	owners, err := s.tasks.ProjectOf(ctx, in.PredecessorID, in.SuccessorID)
	if err != nil {
		return nil, err
	}
	projectID, okPred := owners[in.PredecessorID]
	_, okSucc := owners[in.SuccessorID]
	if !okPred || !okSucc {
		return nil, ErrTasksMissing
	}
	exists, err := s.deps.Exists(ctx, in.PredecessorID, in.SuccessorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateDep
	}

	d, err := s.deps.Insert(ctx, in)
	metrics.RecordMutation(mq.EntityDependency, mq.ActionCreated, err)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrDuplicateDep
	case errors.Is(err, repository.ErrReference):
		return nil, ErrTasksMissing
	case err != nil:
		return nil, err
	}
	s.changed(ctx, projectID, mq.EntityDependency, mq.ActionCreated, d.ID)
	if succProject := owners[in.SuccessorID]; succProject != projectID {
		s.changed(ctx, succProject, mq.EntityDependency, mq.ActionCreated, d.ID)
	}
	return d, nil
}

func (s *PlannerService) DeleteDependency(ctx context.Context, id int) error {
	projectID, err := s.deps.Delete(ctx, id)
	metrics.RecordMutation(mq.EntityDependency, mq.ActionDeleted, err)
	if err != nil {
		return notFound(err)
	}
	s.changed(ctx, projectID, mq.EntityDependency, mq.ActionDeleted, id)
	return nil
}

// ---- read models ----

// Gantt returns the project's tasks in creation order and its dependencies as links.
func (s *PlannerService) Gantt(ctx context.Context, projectID int) (*model.GanttData, error) {
	if g, ok := s.cache.GetGantt(ctx, projectID); ok {
		return g, nil
	}
	tasks, err := s.ListTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	deps, err := s.deps.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	g := &model.GanttData{Tasks: tasks, Links: make([]model.GanttLink, 0, len(deps))}
	for _, d := range deps {
		g.Links = append(g.Links, model.GanttLink{
			ID:     d.ID,
			Source: d.PredecessorID,
			Target: d.SuccessorID,
			Type:   d.DependencyType,
			Lag:    d.LagDays,
		})
	}
	s.cache.SetGantt(ctx, projectID, g)
	return g, nil
}

func (s *PlannerService) Statistics(ctx context.Context) (*model.Statistics, error) {
	if st, ok := s.cache.GetStatistics(ctx); ok {
		return st, nil
	}
	st, err := s.stats.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetStatistics(ctx, st)
	return st, nil
}

// ExportRows returns the rows for an export, or ErrNothingToExport.
func (s *PlannerService) ExportRows(ctx context.Context, projectID *int) ([]model.ProjectReportRow, error) {
	rows, err := s.stats.ReportRows(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}
	return rows, nil
}

// changed evicts derived caches for the project and announces the change.
// Both steps are best effort; the write has already committed.
func (s *PlannerService) changed(ctx context.Context, projectID int, entity, action string, entityID int) {
	if err := s.cache.EvictProject(ctx, projectID); err != nil {
		s.logger.Warn("Failed to evict report cache", zap.Int("project_id", projectID), zap.Error(err))
	}
	if s.publisher == nil {
		return
	}

	ctx, span := otel.StartSpan(ctx, "mq.publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.rabbitmq.routing_key", pkgmq.RoutingKeyProjectChanged),
		attribute.Int("wbs.project_id", projectID),
	)

	evt, err := mq.NewEvent(mq.EventProjectChanged, mq.ProjectChangedPayload{
		ProjectID: projectID,
		Entity:    entity,
		Action:    action,
		EntityID:  entityID,
		UserID:    actor(ctx),
	})
	if err == nil {
		err = s.publisher.Publish(ctx, pkgmq.RoutingKeyProjectChanged, evt)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("Failed to publish project.changed",
			zap.Int("project_id", projectID),
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Published project.changed",
		zap.String("event_id", evt.ID),
		zap.Int("project_id", projectID),
		zap.String("entity", entity),
		zap.String("action", action),
	)
}
