package gantt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

func date(t *testing.T, s string) *model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestEndDateFromEstimatedHours(t *testing.T) {
	task := model.Task{ID: 1, Name: "design", EstimatedHours: 16, StartDate: date(t, "2024-03-04")}

	wt := ToWidgetTask(task, time.Now())
	assert.Equal(t, "2024-03-04 09:00", wt.StartDate)
	assert.Equal(t, "2024-03-06 18:00", wt.EndDate)
	assert.Equal(t, 2, wt.Duration)
}

func TestStartDefaultsToToday(t *testing.T) {
	now := time.Date(2024, 5, 31, 15, 30, 0, 0, time.Local)
	wt := ToWidgetTask(model.Task{EstimatedHours: 0}, now)

	assert.Equal(t, "2024-05-31 09:00", wt.StartDate)
	assert.Equal(t, "2024-06-01 18:00", wt.EndDate)
	assert.Equal(t, 1, wt.Duration)
}

func TestExplicitDatesKeepTheirClock(t *testing.T) {
	task := model.Task{StartDate: date(t, "2024-01-02 10:30"), EndDate: date(t, "2024-01-05")}
	wt := ToWidgetTask(task, time.Now())

	assert.Equal(t, "2024-01-02 10:30", wt.StartDate)
	assert.Equal(t, "2024-01-05 18:00", wt.EndDate)
}

func TestDuration(t *testing.T) {
	cases := map[float64]int{0: 1, 1: 1, 8: 1, 8.5: 2, 16: 2, 40: 5}
	for hours, want := range cases {
		assert.Equal(t, want, Duration(hours), "hours=%v", hours)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 1.0, Progress(model.TaskCompleted))
	assert.Equal(t, 0.5, Progress(model.TaskInProgress))
	assert.Equal(t, 0.0, Progress(model.TaskNotStarted))
	assert.Equal(t, 0.0, Progress(model.TaskOnHold))
	assert.Equal(t, 0.0, Progress("whatever"))
}

func TestBarTypeAndColor(t *testing.T) {
	assert.Equal(t, "project", BarType(model.TaskTypePhase))
	assert.Equal(t, "task", BarType(model.TaskTypeTask))
	assert.Equal(t, "task", BarType(model.TaskTypeDetailTask))

	assert.Equal(t, "#52c41a", Color(model.TaskCompleted))
	assert.Equal(t, "#1890ff", Color(model.TaskInProgress))
	assert.Equal(t, "#faad14", Color(model.TaskOnHold))
	assert.Equal(t, "#d9d9d9", Color(model.TaskNotStarted))
}

func TestLinkCodesRoundTrip(t *testing.T) {
	assert.Equal(t, "0", LinkCode(model.FinishToStart))
	assert.Equal(t, model.FinishToStart, DependencyTypeOf("0"))

	for _, dt := range model.DependencyTypes {
		assert.Equal(t, dt, DependencyTypeOf(LinkCode(dt)))
	}
	assert.Equal(t, model.FinishToStart, DependencyTypeOf("9"))
}

func TestToWidgetData(t *testing.T) {
	parent := 1
	d := model.GanttData{
		Tasks: []model.Task{
			{ID: 1, Name: "phase", TaskType: model.TaskTypePhase, Status: model.TaskInProgress},
			{ID: 2, Name: "child", ParentTaskID: &parent, Status: model.TaskCompleted, EstimatedHours: 8},
		},
		Links: []model.GanttLink{{ID: 7, Source: 1, Target: 2, Type: model.StartToStart, Lag: 2}},
	}
	out := ToWidgetData(d, time.Now())

	require.Len(t, out.Data, 2)
	assert.Equal(t, "project", out.Data[0].Type)
	assert.Equal(t, 0, out.Data[0].Parent)
	assert.Equal(t, 1, out.Data[1].Parent)
	assert.Equal(t, 1.0, out.Data[1].Progress)
	assert.Equal(t, []WidgetLink{{ID: 7, Source: 1, Target: 2, Type: "1", Lag: 2}}, out.Links)
}

func TestTaskUpdateFrom(t *testing.T) {
	u := TaskUpdateFrom(WidgetTask{
		ID:        3,
		Text:      "build",
		StartDate: "2024-02-01 09:00",
		EndDate:   "2024-02-04 18:00",
		Duration:  3,
		Progress:  0.456,
	})

	require.NotNil(t, u.Name)
	assert.Equal(t, "build", *u.Name)
	require.NotNil(t, u.StartDate)
	assert.Equal(t, "2024-02-01 09:00", u.StartDate.String())
	require.NotNil(t, u.EstimatedHours)
	assert.Equal(t, 24.0, *u.EstimatedHours)
	require.NotNil(t, u.ProgressPercentage)
	assert.Equal(t, 46, *u.ProgressPercentage)
	assert.Nil(t, u.Status)
}

func TestTaskUpdateFromSkipsMissingFields(t *testing.T) {
	u := TaskUpdateFrom(WidgetTask{ID: 3, StartDate: "not a date"})
	assert.Nil(t, u.Name)
	assert.Nil(t, u.StartDate)
	assert.Nil(t, u.EstimatedHours)
	require.NotNil(t, u.ProgressPercentage)
	assert.Zero(t, *u.ProgressPercentage)
}

func TestMoveToShiftsBothEnds(t *testing.T) {
	bar := WidgetTask{ID: 2, StartDate: "2024-04-03 09:00", EndDate: "2024-04-04 18:00", Duration: 1}

	moved := MoveTo(bar, *date(t, "2024-05-10"))
	assert.Equal(t, "2024-05-10 09:00", moved.StartDate)
	assert.Equal(t, "2024-05-11 18:00", moved.EndDate)
	assert.Equal(t, 1, moved.Duration)

	back := MoveTo(bar, *date(t, "2024-03-30 13:00"))
	assert.Equal(t, "2024-03-30 13:00", back.StartDate)
	assert.Equal(t, "2024-03-31 18:00", back.EndDate)
}

func TestResize(t *testing.T) {
	bar := WidgetTask{ID: 2, StartDate: "2024-04-03 09:00", EndDate: "2024-04-04 18:00", Duration: 1}

	wider := ResizeTo(bar, *date(t, "2024-04-08"))
	assert.Equal(t, "2024-04-08 18:00", wider.EndDate)
	assert.Equal(t, 5, wider.Duration)
	assert.Equal(t, bar.StartDate, wider.StartDate)

	byDays := ResizeDays(bar, 3)
	assert.Equal(t, "2024-04-06 18:00", byDays.EndDate)
	assert.Equal(t, 3, byDays.Duration)
}

func TestDependencyFrom(t *testing.T) {
	in := DependencyFrom(WidgetLink{Source: 4, Target: 5, Type: "2", Lag: 3})
	assert.Equal(t, model.DependencyCreate{PredecessorID: 4, SuccessorID: 5, DependencyType: model.FinishToFinish}, in)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(i18n.Japanese)
	require.Len(t, cfg.Columns, 5)
	assert.Equal(t, "タスク名", cfg.Columns[0].Label)
	assert.True(t, cfg.Columns[0].Tree)
	assert.Equal(t, "%Y年%m月", cfg.Scales[0].Format)
	assert.Equal(t, "project", cfg.Types["phase"])
	assert.True(t, cfg.DragLinks)

	assert.Equal(t, "Task", DefaultConfig(i18n.English).Columns[0].Label)
}
