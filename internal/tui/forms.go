package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/internal/views"
)

func enumOptions[T ~string](l i18n.Locale, values []T) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Label: l.Label(string(v)), Value: string(v)}
	}
	return out
}

func input(title string, value *string) *huh.Input {
	return huh.NewInput().Title(title).Value(value)
}

func selectOf(title string, options []Option, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().Title(title).Options(huhOptions(options)...).Value(value)
}

func run(fields ...huh.Field) error {
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// ProjectFields lists the inputs of the project form.
func ProjectFields(l i18n.Locale, f *views.ProjectForm) []huh.Field {
	if f.Status == "" {
		f.Status = string(model.ProjectPlanning)
	}
	return []huh.Field{
		input(l.Label("col.project"), &f.Name),
		huh.NewText().Title(l.Label("col.description")).Value(&f.Description),
		selectOf(l.Label("col.status"), enumOptions(l, model.ProjectStatuses), &f.Status),
	}
}

// FillProject edits f in place.
func FillProject(l i18n.Locale, f *views.ProjectForm) error {
	return run(ProjectFields(l, f)...)
}

// TaskFields lists the inputs of the task form. Dates take YYYY-MM-DD.
func TaskFields(l i18n.Locale, f *views.TaskForm) []huh.Field {
	return []huh.Field{
		input(l.Label("col.task"), &f.Name),
		huh.NewText().Title(l.Label("col.description")).Value(&f.Description),
		selectOf(l.Label("col.type"), enumOptions(l, model.TaskTypes), &f.TaskType),
		selectOf(l.Label("col.status"), enumOptions(l, model.TaskStatuses), &f.Status),
		selectOf(l.Label("col.priority"), enumOptions(l, model.Priorities), &f.Priority),
		input(l.Label("col.hours"), &f.EstimatedHours),
		input(l.Label("col.actual_hours"), &f.ActualHours),
		input(l.Label("col.start"), &f.StartDate).Placeholder("YYYY-MM-DD"),
		input(l.Label("col.end"), &f.EndDate).Placeholder("YYYY-MM-DD"),
		input(l.Label("col.parent"), &f.ParentTaskID),
		input(l.Label("col.assignee"), &f.AssigneeID),
	}
}

func FillTask(l i18n.Locale, f *views.TaskForm) error {
	return run(TaskFields(l, f)...)
}

// TaskOptions lets the user pick tasks by name instead of by id.
func TaskOptions(tasks []model.Task) []Option {
	out := make([]Option, len(tasks))
	for i, t := range tasks {
		out[i] = Option{Label: fmt.Sprintf("#%d %s", t.ID, t.Name), Value: fmt.Sprint(t.ID)}
	}
	return out
}

// DependencyFields lists the inputs of the dependency form. Without tasks
// the ids are typed in.
func DependencyFields(l i18n.Locale, f *views.DependencyForm, tasks []model.Task) []huh.Field {
	var pred, succ huh.Field
	if len(tasks) > 0 {
		pred = selectOf(l.Label("col.predecessor"), TaskOptions(tasks), &f.PredecessorID)
		succ = selectOf(l.Label("col.successor"), TaskOptions(tasks), &f.SuccessorID)
	} else {
		pred = input(l.Label("col.predecessor"), &f.PredecessorID)
		succ = input(l.Label("col.successor"), &f.SuccessorID)
	}
	return []huh.Field{
		pred,
		succ,
		selectOf(l.Label("col.dep_type"), enumOptions(l, model.DependencyTypes), &f.DependencyType),
		input(l.Label("col.lag"), &f.LagDays),
	}
}

func FillDependency(l i18n.Locale, f *views.DependencyForm, tasks []model.Task) error {
	return run(DependencyFields(l, f, tasks)...)
}

// UserFields lists the inputs of the user form; the password only on create.
func UserFields(l i18n.Locale, f *views.UserForm, creating bool) []huh.Field {
	fields := []huh.Field{
		input(l.Label("col.username"), &f.Username),
		input(l.Label("col.full_name"), &f.FullName),
		input(l.Label("col.email"), &f.Email),
	}
	if creating {
		fields = append(fields, input(l.Label("col.password"), &f.Password).EchoMode(huh.EchoModePassword))
	}
	return append(fields,
		selectOf(l.Label("col.role"), enumOptions(l, model.Roles), &f.Role),
		huh.NewConfirm().Title(l.Label("user.active")).Value(&f.IsActive),
	)
}

func FillUser(l i18n.Locale, f *views.UserForm, creating bool) error {
	return run(UserFields(l, f, creating)...)
}
