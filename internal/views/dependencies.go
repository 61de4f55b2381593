package views

import (
	"context"
	"fmt"
	"strconv"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/internal/mutation"
)

// DependencyList is the dependency table of one project.
type DependencyList struct {
	env       *Env
	projectID string
}

func NewDependencyList(env *Env, projectID string) *DependencyList {
	return &DependencyList{env: env, projectID: projectID}
}

func (s *DependencyList) Render(ctx context.Context) (string, error) {
	deps, err := s.env.Queries.Dependencies(ctx, s.projectID)
	if err != nil {
		return "", err
	}
	return s.render(deps), nil
}

func (s *DependencyList) render(deps []model.TaskDependency) string {
	if len(deps) == 0 {
		return s.env.Styles.Muted.Render(s.env.Locale.T(i18n.NoData))
	}
	l := s.env.label
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{
			strconv.Itoa(d.ID),
			taskName(d.PredecessorName, d.PredecessorID),
			taskName(d.SuccessorName, d.SuccessorID),
			l(string(d.DependencyType)),
			fmt.Sprintf("%d%s", d.LagDays, l("unit.days")),
		})
	}
	return s.env.Styles.table([]string{
		l("col.id"), l("col.predecessor"), l("col.successor"), l("col.dep_type"), l("col.lag"),
	}, rows)
}

func taskName(name string, id int) string {
	if name == "" {
		return fmt.Sprintf("#%d", id)
	}
	return name
}

// Create validates the form and rejects a task depending on itself before
// anything is sent.
func (s *DependencyList) Create(ctx context.Context, f DependencyForm) (*model.TaskDependency, error) {
	in, err := f.Create(s.env.Locale)
	if err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	if in.PredecessorID == in.SuccessorID {
		s.env.Notify.Error(s.env.Locale.T(i18n.DependencySelf))
		return nil, mutation.ErrSelfDependency
	}
	return s.env.Mutations.CreateDependency(ctx, s.projectID, in)
}

func (s *DependencyList) Delete(ctx context.Context, id int) (bool, error) {
	if !s.env.confirm(i18n.DependencyConfirmDel) {
		return false, nil
	}
	return true, s.env.Mutations.DeleteDependency(ctx, s.projectID, id)
}
