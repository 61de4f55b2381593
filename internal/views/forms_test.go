package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func TestProjectFormValidate(t *testing.T) {
	f := fields(t, ProjectForm{Status: "bogus"}.Validate(i18n.Japanese))
	assert.Equal(t, "入力してください", f["name"])
	assert.Equal(t, "選択肢から選んでください", f["status"])

	assert.NoError(t, ProjectForm{Name: "p"}.Validate(i18n.Japanese))
	assert.Equal(t, model.ProjectPlanning, ProjectForm{Name: " p "}.Create().Status)
	assert.Equal(t, "p", ProjectForm{Name: " p "}.Create().Name)
}

func TestTaskFormCreate(t *testing.T) {
	f := NewTaskForm()
	f.Name = "build"
	f.EstimatedHours = "12.5"
	f.StartDate = "2024-05-01"
	f.ParentTaskID = "3"

	in, err := f.Create(i18n.Japanese)
	require.NoError(t, err)
	assert.Equal(t, 12.5, in.EstimatedHours)
	assert.Equal(t, model.TaskTypeTask, in.TaskType)
	require.NotNil(t, in.StartDate)
	assert.Equal(t, "2024-05-01", in.StartDate.String())
	require.NotNil(t, in.ParentTaskID)
	assert.Equal(t, 3, *in.ParentTaskID)
	assert.Nil(t, in.EndDate)
}

func TestTaskFormRejects(t *testing.T) {
	f := TaskForm{EstimatedHours: "-1", StartDate: "someday", ParentTaskID: "x"}
	got := fields(t, f.Validate(i18n.Japanese))

	assert.Contains(t, got, "name")
	assert.Contains(t, got, "task_type")
	assert.Contains(t, got, "priority")
	assert.Contains(t, got, "status")
	assert.Equal(t, "範囲外の値です", got["estimated_hours"])
	assert.Equal(t, "有効な日付を入力してください", got["start_date"])
	assert.Contains(t, got, "parent_task_id")
}

func TestTaskFormRoundTrip(t *testing.T) {
	task := sampleTasks()[0]
	f := TaskFormFrom(task)
	assert.Equal(t, "16", f.EstimatedHours)
	assert.Equal(t, "2024-04-01", f.StartDate)

	u, err := f.Update(i18n.Japanese)
	require.NoError(t, err)
	var got model.Task
	u.Apply(&got)
	assert.Equal(t, task.Name, got.Name)
	assert.Equal(t, task.Status, got.Status)
	assert.Equal(t, task.EstimatedHours, got.EstimatedHours)
}

func TestDependencyForm(t *testing.T) {
	f := NewDependencyForm()
	f.PredecessorID = "1"
	f.SuccessorID = "2"
	in, err := f.Create(i18n.Japanese)
	require.NoError(t, err)
	assert.Equal(t, model.DependencyCreate{PredecessorID: 1, SuccessorID: 2, DependencyType: model.FinishToStart}, in)

	f.LagDays = "400"
	assert.Contains(t, fields(t, func() error { _, err := f.Create(i18n.Japanese); return err }()), "lag_days")

	got := fields(t, func() error { _, err := DependencyForm{}.Create(i18n.Japanese); return err }())
	assert.Contains(t, got, "predecessor_id")
	assert.Contains(t, got, "successor_id")
	assert.Contains(t, got, "dependency_type")
}

func TestUserFormValidate(t *testing.T) {
	f := UserForm{Username: "u", FullName: "U", Email: "not-an-email", Role: "viewer"}
	got := fields(t, f.Validate(i18n.Japanese, true))
	assert.Equal(t, "有効なメールアドレスを入力してください", got["email"])
	assert.Contains(t, got, "password")

	f.Email = "u@example.com"
	assert.NoError(t, f.Validate(i18n.Japanese, false))

	f.Role = "root"
	assert.Contains(t, fields(t, f.Validate(i18n.Japanese, false)), "role")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "x", "a": "y"}}
	assert.Equal(t, "validation failed: a: y, b: x", err.Error())
}
