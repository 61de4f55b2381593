package handler

import (
	"context"

	"wbsplanner/internal/model"
)

// Planner is implemented by *service.PlannerService.
type Planner interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id int) (*model.Project, error)
	CreateProject(ctx context.Context, in model.ProjectCreate) (*model.Project, error)
	UpdateProject(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error)
	DeleteProject(ctx context.Context, id int) error
	Statistics(ctx context.Context) (*model.Statistics, error)
	ExportRows(ctx context.Context, projectID *int) ([]model.ProjectReportRow, error)

	ListTasks(ctx context.Context, projectID int) ([]model.Task, error)
	GetTask(ctx context.Context, id int) (*model.Task, error)
	CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error)
	UpdateTask(ctx context.Context, id int, in model.TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, id int) error
	Gantt(ctx context.Context, projectID int) (*model.GanttData, error)

	ListDependencies(ctx context.Context, projectID int) ([]model.TaskDependency, error)
	CreateDependency(ctx context.Context, in model.DependencyCreate) (*model.TaskDependency, error)
	DeleteDependency(ctx context.Context, id int) error
}

// Authenticator is implemented by *service.AuthService.
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	CurrentUser(ctx context.Context, userID int) (*model.User, error)
}
