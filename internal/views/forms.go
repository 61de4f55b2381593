package views

import (
	"strconv"
	"strings"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

// ProjectForm is the project create/edit form as entered.
type ProjectForm struct {
	Name        string
	Description string
	Status      string
}

func ProjectFormFrom(p model.Project) ProjectForm {
	return ProjectForm{Name: p.Name, Description: p.Description, Status: string(p.Status)}
}

func (f ProjectForm) Validate(l i18n.Locale) error {
	v := newValidator(l)
	v.required("name", f.Name)
	v.choice("status", f.Status, func(s string) bool { return model.ProjectStatus(s).Valid() })
	return v.err()
}

func (f ProjectForm) Create() model.ProjectCreate {
	status := model.ProjectStatus(f.Status)
	if status == "" {
		status = model.ProjectPlanning
	}
	return model.ProjectCreate{Name: strings.TrimSpace(f.Name), Description: f.Description, Status: status}
}

func (f ProjectForm) Update() model.ProjectUpdate {
	name := strings.TrimSpace(f.Name)
	desc := f.Description
	u := model.ProjectUpdate{Name: &name, Description: &desc}
	if f.Status != "" {
		status := model.ProjectStatus(f.Status)
		u.Status = &status
	}
	return u
}

// TaskForm is the task create/edit form as entered.
type TaskForm struct {
	Name           string
	Description    string
	TaskType       string
	Status         string
	Priority       string
	EstimatedHours string
	ActualHours    string
	StartDate      string
	EndDate        string
	ParentTaskID   string
	AssigneeID     string
}

// NewTaskForm has the defaults of a fresh task.
func NewTaskForm() TaskForm {
	return TaskForm{
		TaskType: string(model.TaskTypeTask),
		Status:   string(model.TaskNotStarted),
		Priority: string(model.PriorityMedium),
	}
}

func TaskFormFrom(t model.Task) TaskForm {
	f := TaskForm{
		Name:           t.Name,
		Description:    t.Description,
		TaskType:       string(t.TaskType),
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		EstimatedHours: strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64),
		ActualHours:    strconv.FormatFloat(t.ActualHours, 'f', -1, 64),
	}
	if t.StartDate != nil {
		f.StartDate = t.StartDate.String()
	}
	if t.EndDate != nil {
		f.EndDate = t.EndDate.String()
	}
	if t.ParentTaskID != nil {
		f.ParentTaskID = strconv.Itoa(*t.ParentTaskID)
	}
	if t.AssigneeID != nil {
		f.AssigneeID = strconv.Itoa(*t.AssigneeID)
	}
	return f
}

type parsedTask struct {
	estimated, actual float64
	start, end        *model.Date
	parent, assignee  *int
}

func (f TaskForm) parse(l i18n.Locale) (parsedTask, error) {
	v := newValidator(l)
	var p parsedTask

	v.required("name", f.Name)
	if v.required("task_type", f.TaskType) {
		v.choice("task_type", f.TaskType, func(s string) bool { return model.TaskType(s).Valid() })
	}
	if v.required("priority", f.Priority) {
		v.choice("priority", f.Priority, func(s string) bool { return model.Priority(s).Valid() })
	}
	if v.required("status", f.Status) {
		v.choice("status", f.Status, func(s string) bool { return model.TaskStatus(s).Valid() })
	}
	p.estimated = v.number("estimated_hours", f.EstimatedHours, 0, 100000)
	p.actual = v.number("actual_hours", f.ActualHours, 0, 100000)
	p.start = parseDateField(v, "start_date", f.StartDate)
	p.end = parseDateField(v, "end_date", f.EndDate)
	p.parent = v.id("parent_task_id", f.ParentTaskID)
	p.assignee = v.id("assignee_id", f.AssigneeID)
	return p, v.err()
}

func parseDateField(v *validator, field, value string) *model.Date {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		v.fail(field, i18n.InvalidDate)
		return nil
	}
	return &d
}

func (f TaskForm) Validate(l i18n.Locale) error {
	_, err := f.parse(l)
	return err
}

// Create validates and converts the form. The project id is filled in by the mutation.
func (f TaskForm) Create(l i18n.Locale) (model.TaskCreate, error) {
	p, err := f.parse(l)
	if err != nil {
		return model.TaskCreate{}, err
	}
	return model.TaskCreate{
		Name:           strings.TrimSpace(f.Name),
		Description:    f.Description,
		ParentTaskID:   p.parent,
		TaskType:       model.TaskType(f.TaskType),
		Status:         model.TaskStatus(f.Status),
		Priority:       model.Priority(f.Priority),
		EstimatedHours: p.estimated,
		ActualHours:    p.actual,
		StartDate:      p.start,
		EndDate:        p.end,
		AssigneeID:     p.assignee,
	}, nil
}

// Update validates and converts the form into a full update of the editable fields.
func (f TaskForm) Update(l i18n.Locale) (model.TaskUpdate, error) {
	p, err := f.parse(l)
	if err != nil {
		return model.TaskUpdate{}, err
	}
	name := strings.TrimSpace(f.Name)
	desc := f.Description
	tt := model.TaskType(f.TaskType)
	st := model.TaskStatus(f.Status)
	pr := model.Priority(f.Priority)
	return model.TaskUpdate{
		Name:           &name,
		Description:    &desc,
		ParentTaskID:   p.parent,
		TaskType:       &tt,
		Status:         &st,
		Priority:       &pr,
		EstimatedHours: &p.estimated,
		ActualHours:    &p.actual,
		StartDate:      p.start,
		EndDate:        p.end,
		AssigneeID:     p.assignee,
	}, nil
}

// DependencyForm is the dependency create form as entered.
type DependencyForm struct {
	PredecessorID  string
	SuccessorID    string
	DependencyType string
	LagDays        string
}

func NewDependencyForm() DependencyForm {
	return DependencyForm{DependencyType: string(model.FinishToStart), LagDays: "0"}
}

func (f DependencyForm) Create(l i18n.Locale) (model.DependencyCreate, error) {
	v := newValidator(l)
	var pred, succ *int
	if v.required("predecessor_id", f.PredecessorID) {
		pred = v.id("predecessor_id", f.PredecessorID)
	}
	if v.required("successor_id", f.SuccessorID) {
		succ = v.id("successor_id", f.SuccessorID)
	}
	if v.required("dependency_type", f.DependencyType) {
		v.choice("dependency_type", f.DependencyType, func(s string) bool { return model.DependencyType(s).Valid() })
	}
	lag := v.number("lag_days", f.LagDays, -365, 365)
	if lag != float64(int(lag)) {
		v.fail("lag_days", i18n.OutOfRange)
	}
	if err := v.err(); err != nil {
		return model.DependencyCreate{}, err
	}
	return model.DependencyCreate{
		PredecessorID:  *pred,
		SuccessorID:    *succ,
		DependencyType: model.DependencyType(f.DependencyType),
		LagDays:        int(lag),
	}, nil
}

// UserForm is the user management form. Password is only asked on create.
type UserForm struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     string
	IsActive bool
}

func UserFormFrom(u model.User) UserForm {
	return UserForm{Username: u.Username, FullName: u.FullName, Email: u.Email, Role: string(u.Role), IsActive: u.IsActive}
}

func (f UserForm) Validate(l i18n.Locale, creating bool) error {
	v := newValidator(l)
	v.required("username", f.Username)
	v.required("full_name", f.FullName)
	v.email("email", f.Email)
	if creating {
		v.required("password", f.Password)
	}
	if v.required("role", f.Role) {
		v.choice("role", f.Role, func(s string) bool { return model.Role(s).Valid() })
	}
	return v.err()
}
