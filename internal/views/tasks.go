package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

// TaskList is the task table of one project.
type TaskList struct {
	env       *Env
	projectID string
}

func NewTaskList(env *Env, projectID string) *TaskList {
	return &TaskList{env: env, projectID: projectID}
}

func (s *TaskList) Render(ctx context.Context) (string, error) {
	tasks, err := s.env.Queries.Tasks(ctx, s.projectID)
	if err != nil {
		return "", err
	}
	return s.render(tasks), nil
}

func (s *TaskList) render(tasks []model.Task) string {
	if len(tasks) == 0 {
		return s.env.Styles.Muted.Render(s.env.Locale.T(i18n.NoData))
	}
	l := s.env.label
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Name,
			l(string(t.TaskType)),
			tag(statusColors, string(t.Status), l(string(t.Status))),
			l(string(t.Priority)),
			fmt.Sprintf("%g%s", t.EstimatedHours, l("unit.hours")),
			fmt.Sprintf("%d%%", t.ProgressPercentage),
			dateCell(t.StartDate),
			dateCell(t.EndDate),
		})
	}
	return s.env.Styles.table([]string{
		l("col.id"), l("col.task"), l("col.type"), l("col.status"), l("col.priority"),
		l("col.hours"), l("col.progress"), l("col.start"), l("col.end"),
	}, rows)
}

func dateCell(d *model.Date) string {
	if d == nil {
		return "-"
	}
	return strings.SplitN(d.String(), " ", 2)[0]
}

// EditForm returns the form pre-populated with task id, read from the cached list.
func (s *TaskList) EditForm(ctx context.Context, id int) (TaskForm, error) {
	tasks, err := s.env.Queries.Tasks(ctx, s.projectID)
	if err != nil {
		return TaskForm{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return TaskFormFrom(t), nil
		}
	}
	return TaskForm{}, fmt.Errorf("task %d not found in project %s", id, s.projectID)
}

func (s *TaskList) Create(ctx context.Context, f TaskForm) (*model.Task, error) {
	in, err := f.Create(s.env.Locale)
	if err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	return s.env.Mutations.CreateTask(ctx, s.projectID, in)
}

func (s *TaskList) Update(ctx context.Context, id int, f TaskForm) (*model.Task, error) {
	in, err := f.Update(s.env.Locale)
	if err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	return s.env.Mutations.UpdateTask(ctx, s.projectID, id, in)
}

func (s *TaskList) Delete(ctx context.Context, id int) (bool, error) {
	if !s.env.confirm(i18n.TaskConfirmDel) {
		return false, nil
	}
	return true, s.env.Mutations.DeleteTask(ctx, s.projectID, id)
}
