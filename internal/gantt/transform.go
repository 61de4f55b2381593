package gantt

import (
	"math"
	"time"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

const (
	// HoursPerDay converts estimated hours into widget days.
	HoursPerDay = 8

	startClock = "09:00"
	endClock   = "18:00"
	dateLayout = model.DateLayout
)

// Link codes used by the widget.
const (
	LinkFinishToStart  = "0"
	LinkStartToStart   = "1"
	LinkFinishToFinish = "2"
	LinkStartToFinish  = "3"
)

var linkCodes = map[model.DependencyType]string{
	model.FinishToStart:  LinkFinishToStart,
	model.StartToStart:   LinkStartToStart,
	model.FinishToFinish: LinkFinishToFinish,
	model.StartToFinish:  LinkStartToFinish,
}

// DefaultConfig is the month/day layout with localized column labels.
func DefaultConfig(l i18n.Locale) Config {
	return Config{
		DateFormat: "%Y-%m-%d %H:%i",
		Columns: []Column{
			{Name: "text", Label: l.T(i18n.GanttColName), Width: 200, Tree: true},
			{Name: "type", Label: l.T(i18n.GanttColType), Width: 80},
			{Name: "duration", Label: l.T(i18n.GanttColDuration), Width: 60},
			{Name: "start_date", Label: l.T(i18n.GanttColStart), Width: 100},
			{Name: "end_date", Label: l.T(i18n.GanttColEnd), Width: 100},
		},
		Scales: []Scale{
			{Unit: "month", Step: 1, Format: l.T(i18n.GanttMonthFormat)},
			{Unit: "day", Step: 1, Format: "%d"},
		},
		Types:        map[string]string{string(model.TaskTypePhase): "project"},
		DragProgress: true,
		DragResize:   true,
		DragMove:     true,
		DragLinks:    true,
		ShowLinks:    true,
	}
}

// Duration is the bar length in days: ceil(hours/8), at least 1.
func Duration(estimatedHours float64) int {
	d := int(math.Ceil(estimatedHours / HoursPerDay))
	if d < 1 {
		return 1
	}
	return d
}

// Progress maps a status onto the widget's 0..1 scale.
func Progress(s model.TaskStatus) float64 {
	switch s {
	case model.TaskCompleted:
		return 1
	case model.TaskInProgress:
		return 0.5
	default:
		return 0
	}
}

// BarType maps phases to summary bars.
func BarType(t model.TaskType) string {
	if t == model.TaskTypePhase {
		return "project"
	}
	return "task"
}

func Color(s model.TaskStatus) string {
	switch s {
	case model.TaskCompleted:
		return "#52c41a"
	case model.TaskInProgress:
		return "#1890ff"
	case model.TaskOnHold:
		return "#faad14"
	default:
		return "#d9d9d9"
	}
}

// LinkCode maps a dependency type to the widget's link code. Unknown types
// are drawn as start-to-finish.
func LinkCode(t model.DependencyType) string {
	if c, ok := linkCodes[t]; ok {
		return c
	}
	return LinkStartToFinish
}

// DependencyTypeOf is the inverse of LinkCode; unknown codes become finish_to_start.
func DependencyTypeOf(code string) model.DependencyType {
	for t, c := range linkCodes {
		if c == code {
			return t
		}
	}
	return model.FinishToStart
}

// StartDate formats a task start, defaulting to today and to 09:00 when no clock is given.
func StartDate(d *model.Date, now time.Time) string {
	if d == nil || d.IsZero() {
		return now.Format(dateLayout) + " " + startClock
	}
	if !d.HasClock() {
		return d.Format(dateLayout) + " " + startClock
	}
	return d.Format(model.DateTimeLayout)
}

// EndDate formats a task end. A missing end is start + Duration days at 18:00.
func EndDate(end *model.Date, start string, estimatedHours float64) string {
	if end != nil && !end.IsZero() {
		if !end.HasClock() {
			return end.Format(dateLayout) + " " + endClock
		}
		return end.Format(model.DateTimeLayout)
	}
	s, err := time.ParseInLocation(model.DateTimeLayout, start, time.Local)
	if err != nil {
		s = time.Now()
	}
	return s.AddDate(0, 0, Duration(estimatedHours)).Format(dateLayout) + " " + endClock
}

// MoveTo shifts both ends of a bar by the same number of days so that it starts
// on the day of start. Each end keeps its clock unless start carries one.
func MoveTo(t WidgetTask, start model.Date) WidgetTask {
	old, err := model.ParseDate(t.StartDate)
	if err != nil {
		t.StartDate = StartDate(&start, start.Time)
		t.EndDate = EndDate(nil, t.StartDate, float64(max(t.Duration, 1)*HoursPerDay))
		return t
	}
	days := dayNumber(start.Time) - dayNumber(old.Time)
	next := old.AddDate(0, 0, days)
	if start.HasClock() {
		next = start.Time
	}
	t.StartDate = next.Format(model.DateTimeLayout)
	if end, err := model.ParseDate(t.EndDate); err == nil {
		t.EndDate = end.AddDate(0, 0, days).Format(model.DateTimeLayout)
	} else {
		t.EndDate = EndDate(nil, t.StartDate, float64(max(t.Duration, 1)*HoursPerDay))
	}
	return t
}

// ResizeTo moves the end of a bar and sets the duration to the days it now spans.
func ResizeTo(t WidgetTask, end model.Date) WidgetTask {
	t.EndDate = EndDate(&end, t.StartDate, 0)
	if start, err := model.ParseDate(t.StartDate); err == nil {
		t.Duration = max(1, dayNumber(end.Time)-dayNumber(start.Time))
	}
	return t
}

// ResizeDays sets the duration and the end that follows from it.
func ResizeDays(t WidgetTask, days int) WidgetTask {
	t.Duration = max(1, days)
	t.EndDate = EndDate(nil, t.StartDate, float64(t.Duration*HoursPerDay))
	return t
}

func dayNumber(t time.Time) int {
	return int(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func ToWidgetTask(t model.Task, now time.Time) WidgetTask {
	start := StartDate(t.StartDate, now)
	parent := 0
	if t.ParentTaskID != nil {
		parent = *t.ParentTaskID
	}
	return WidgetTask{
		ID:          t.ID,
		Text:        t.Name,
		StartDate:   start,
		EndDate:     EndDate(t.EndDate, start, t.EstimatedHours),
		Duration:    Duration(t.EstimatedHours),
		Progress:    Progress(t.Status),
		Type:        BarType(t.TaskType),
		Parent:      parent,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Description: t.Description,
		Color:       Color(t.Status),
	}
}

func ToWidgetLink(l model.GanttLink) WidgetLink {
	return WidgetLink{ID: l.ID, Source: l.Source, Target: l.Target, Type: LinkCode(l.Type), Lag: l.Lag}
}

// ToWidgetData converts the gantt payload. now supplies "today" for tasks without a start.
func ToWidgetData(d model.GanttData, now time.Time) Data {
	out := Data{
		Data:  make([]WidgetTask, 0, len(d.Tasks)),
		Links: make([]WidgetLink, 0, len(d.Links)),
	}
	for _, t := range d.Tasks {
		out.Data = append(out.Data, ToWidgetTask(t, now))
	}
	for _, l := range d.Links {
		out.Links = append(out.Links, ToWidgetLink(l))
	}
	return out
}

// TaskUpdateFrom builds the partial update sent after a bar is changed in the widget.
// Dates that do not parse are left out.
func TaskUpdateFrom(t WidgetTask) model.TaskUpdate {
	var u model.TaskUpdate
	if t.Text != "" {
		name := t.Text
		u.Name = &name
	}
	if d, err := model.ParseDate(t.StartDate); err == nil {
		u.StartDate = &d
	}
	if d, err := model.ParseDate(t.EndDate); err == nil {
		u.EndDate = &d
	}
	if t.Duration > 0 {
		hours := float64(t.Duration * HoursPerDay)
		u.EstimatedHours = &hours
	}
	progress := int(math.Round(t.Progress * 100))
	u.ProgressPercentage = &progress
	return u
}

// DependencyFrom builds the create request for a link drawn in the widget.
// The widget has no lag input, so lag is 0.
func DependencyFrom(l WidgetLink) model.DependencyCreate {
	return model.DependencyCreate{
		PredecessorID:  l.Source,
		SuccessorID:    l.Target,
		DependencyType: DependencyTypeOf(l.Type),
		LagDays:        0,
	}
}
