package views

import (
	"context"
	"strconv"
	"strings"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

type ProjectList struct {
	env *Env
}

func NewProjectList(env *Env) *ProjectList {
	return &ProjectList{env: env}
}

func (s *ProjectList) Render(ctx context.Context) (string, error) {
	projects, err := s.env.Queries.Projects(ctx)
	if err != nil {
		return "", err
	}
	l := s.env.label
	var b strings.Builder
	b.WriteString(s.env.Styles.Title.Render(l("title.projects")))
	b.WriteString("\n")
	if len(projects) == 0 {
		b.WriteString(s.env.Styles.Muted.Render(s.env.Locale.T(i18n.NoData)))
		return b.String(), nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			tag(statusColors, string(p.Status), l(string(p.Status))),
			p.Description,
			p.CreatedAt.Format(model.DateLayout),
		})
	}
	b.WriteString(s.env.Styles.table(
		[]string{l("col.id"), l("col.project"), l("col.status"), l("col.description"), l("col.created")},
		rows,
	))
	return b.String(), nil
}

// EditForm returns the form pre-populated with project id.
func (s *ProjectList) EditForm(ctx context.Context, id int) (ProjectForm, error) {
	p, err := s.env.Queries.Project(ctx, strconv.Itoa(id))
	if err != nil {
		return ProjectForm{}, err
	}
	return ProjectFormFrom(*p), nil
}

func (s *ProjectList) Create(ctx context.Context, f ProjectForm) (*model.Project, error) {
	if err := f.Validate(s.env.Locale); err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	return s.env.Mutations.CreateProject(ctx, f.Create())
}

func (s *ProjectList) Update(ctx context.Context, id int, f ProjectForm) (*model.Project, error) {
	if err := f.Validate(s.env.Locale); err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	return s.env.Mutations.UpdateProject(ctx, id, f.Update())
}

// Delete asks first; it reports false when the user declined.
func (s *ProjectList) Delete(ctx context.Context, id int) (bool, error) {
	if !s.env.confirm(i18n.ProjectConfirmDel) {
		return false, nil
	}
	return true, s.env.Mutations.DeleteProject(ctx, id)
}
