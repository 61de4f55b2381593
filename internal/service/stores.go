package service

import (
	"context"

	"wbsplanner/internal/model"
)

// Store interfaces are satisfied by the repository package; tests use in-memory fakes.

type ProjectStore interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id int) (*model.Project, error)
	Insert(ctx context.Context, in model.ProjectCreate) (*model.Project, error)
	Update(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error)
	Delete(ctx context.Context, id int) error
}

type TaskStore interface {
	ListByProject(ctx context.Context, projectID int) ([]model.Task, error)
	Get(ctx context.Context, id int) (*model.Task, error)
	Insert(ctx context.Context, in model.TaskCreate) (*model.Task, error)
	Save(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id int) (projectID int, err error)
	ProjectOf(ctx context.Context, ids ...int) (map[int]int, error)
}

type DependencyStore interface {
	ListByProject(ctx context.Context, projectID int) ([]model.TaskDependency, error)
	Insert(ctx context.Context, in model.DependencyCreate) (*model.TaskDependency, error)
	Exists(ctx context.Context, predecessorID, successorID int) (bool, error)
	Delete(ctx context.Context, id int) (projectID int, err error)
}

type StatisticsStore interface {
	Statistics(ctx context.Context) (*model.Statistics, error)
	ReportRows(ctx context.Context, projectID *int) ([]model.ProjectReportRow, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

// ReportCache holds derived read models keyed by project.
type ReportCache interface {
	GetStatistics(ctx context.Context) (*model.Statistics, bool)
	SetStatistics(ctx context.Context, s *model.Statistics)
	GetGantt(ctx context.Context, projectID int) (*model.GanttData, bool)
	SetGantt(ctx context.Context, projectID int, g *model.GanttData)
	EvictProject(ctx context.Context, projectID int) error
}

// EventPublisher is satisfied by *mq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
