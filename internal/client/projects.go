package client

import (
	"context"
	"fmt"
	"net/http"

	"wbsplanner/internal/model"
)

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id int) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, in model.ProjectCreate) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPost, "/projects/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil, nil)
}

func (c *Client) ProjectStatistics(ctx context.Context) (*model.Statistics, error) {
	var out model.Statistics
	if err := c.do(ctx, http.MethodGet, "/projects/statistics", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
