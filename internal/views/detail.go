package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wbsplanner/internal/querycache"
)

type Tab int

const (
	TabTasks Tab = iota
	TabDependencies
	TabGantt
)

var tabKeys = []string{"tab.tasks", "tab.dependencies", "tab.gantt"}

// ProjectDetail is the tab container of one project.
type ProjectDetail struct {
	env          *Env
	projectID    string
	Tasks        *TaskList
	Dependencies *DependencyList
	Gantt        *GanttView
	active       Tab
}

func NewProjectDetail(env *Env, projectID string, gantt *GanttView) *ProjectDetail {
	return &ProjectDetail{
		env:          env,
		projectID:    projectID,
		Tasks:        NewTaskList(env, projectID),
		Dependencies: NewDependencyList(env, projectID),
		Gantt:        gantt,
	}
}

func (d *ProjectDetail) ProjectID() string { return d.projectID }

func (d *ProjectDetail) Active() Tab { return d.active }

func (d *ProjectDetail) SetTab(t Tab) {
	if t >= TabTasks && t <= TabGantt {
		d.active = t
	}
}

// Next cycles through the tabs.
func (d *ProjectDetail) Next() {
	d.active = (d.active + 1) % Tab(len(tabKeys))
}

// Show switches to t. Showing the chart re-attempts a failed widget init.
func (d *ProjectDetail) Show(ctx context.Context, t Tab) {
	d.SetTab(t)
	if d.active == TabGantt && d.Gantt != nil {
		d.Gantt.Shown(ctx)
	}
}

// Reload marks every query of the project stale so writes made elsewhere
// show up, and rebuilds the chart when it is the active tab.
func (d *ProjectDetail) Reload(ctx context.Context) {
	keys := append(querycache.ProjectKeys(d.projectID), ProjectKey(d.projectID))
	d.env.Queries.Cache().InvalidateAll(ctx, keys...)
	if d.active == TabGantt && d.Gantt != nil {
		d.Gantt.Reload(ctx)
	}
}

func (d *ProjectDetail) tabBar() string {
	tabs := make([]string, 0, len(tabKeys))
	for i, k := range tabKeys {
		style := d.env.Styles.Tab
		if Tab(i) == d.active {
			style = d.env.Styles.TabOn
		}
		tabs = append(tabs, style.Render(d.env.label(k)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Render draws the tab bar and the active tab.
func (d *ProjectDetail) Render(ctx context.Context) (string, error) {
	var (
		body string
		err  error
	)
	switch d.active {
	case TabTasks:
		body, err = d.Tasks.Render(ctx)
	case TabDependencies:
		body, err = d.Dependencies.Render(ctx)
	case TabGantt:
		if d.Gantt != nil {
			body = d.Gantt.Render()
		}
	}
	if err != nil {
		return "", err
	}

	title := d.projectID
	if p, perr := d.env.Queries.Project(ctx, d.projectID); perr == nil {
		title = p.Name
	}
	return strings.Join([]string{
		d.env.Styles.Title.Render(title),
		d.tabBar(),
		body,
	}, "\n"), nil
}
