package client

import (
	"context"
	"fmt"
	"net/http"

	"wbsplanner/internal/model"
)

func (c *Client) ListTasks(ctx context.Context, projectID int) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/project/%d", projectID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, id int) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, in model.TaskUpdate) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}

// GanttData returns the project's tasks and dependency links in one payload.
func (c *Client) GanttData(ctx context.Context, projectID int) (*model.GanttData, error) {
	var out model.GanttData
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/project/%d/gantt", projectID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListDependencies(ctx context.Context, projectID int) ([]model.TaskDependency, error) {
	var out []model.TaskDependency
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/project/%d/dependencies", projectID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDependency(ctx context.Context, in model.DependencyCreate) (*model.TaskDependency, error) {
	var out model.TaskDependency
	if err := c.do(ctx, http.MethodPost, "/tasks/dependencies", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDependency(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/dependencies/%d", id), nil, nil, nil)
}
