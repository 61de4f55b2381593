// Package termwidget is a gantt.Widget that draws the chart in a terminal.
// Interactions arrive through Emit, called by the CLI commands that edit bars
// and links.
package termwidget

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"wbsplanner/internal/gantt"
	"wbsplanner/internal/model"
)

// Library is compiled in, so it is ready as soon as its assets are "injected".
type Library struct {
	mu       sync.Mutex
	ready    bool
	Injected []string
}

// NewLibrary returns a library that is ready only after InjectAssets.
func NewLibrary() *Library { return &Library{} }

func (l *Library) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

func (l *Library) InjectAssets(stylesheetURL, scriptURL string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Injected = append(l.Injected, stylesheetURL, scriptURL)
	l.ready = true
	return nil
}

// Container is a render target with a class list.
type Container struct {
	mu       sync.Mutex
	classes  map[string]bool
	attached bool
	content  string
}

func NewContainer() *Container {
	return &Container{classes: map[string]bool{}, attached: true}
}

func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes = map[string]bool{}
	c.content = ""
}

func (c *Container) HasClass(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.classes[name]
}

func (c *Container) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

// Detach marks the container as no longer on screen.
func (c *Container) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attached = false
}

func (c *Container) addClass(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[name] = true
}

func (c *Container) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

type handler struct {
	id gantt.EventID
	cb gantt.Callback
}

// Widget keeps the parsed chart in memory and renders it on demand.
type Widget struct {
	mu        sync.Mutex
	cfg       gantt.Config
	container *Container
	data      gantt.Data
	handlers  map[string][]handler
	width     int
}

func New(width int) *Widget {
	if width <= 0 {
		width = 60
	}
	return &Widget{handlers: map[string][]handler{}, width: width}
}

func (w *Widget) Configure(cfg gantt.Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg
}

func (w *Widget) Init(c gantt.Container) error {
	tc, ok := c.(*Container)
	if !ok || tc == nil {
		return errors.New("termwidget: unsupported container")
	}
	w.mu.Lock()
	w.container = tc
	w.mu.Unlock()
	tc.addClass(gantt.ContainerClass)
	return nil
}

func (w *Widget) Parse(d gantt.Data) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data.Data = append(w.data.Data, d.Data...)
	w.data.Links = append(w.data.Links, d.Links...)
	w.draw()
	return nil
}

func (w *Widget) ClearAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = gantt.Data{}
	w.draw()
}

func (w *Widget) AttachEvent(name string, cb gantt.Callback) gantt.EventID {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := gantt.EventID(uuid.NewString())
	w.handlers[name] = append(w.handlers[name], handler{id: id, cb: cb})
	return id
}

func (w *Widget) DetachAllEvents() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = map[string][]handler{}
}

func (w *Widget) GetTaskCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.data.Data)
}

// Task returns the parsed bar with id.
func (w *Widget) Task(id int) (gantt.WidgetTask, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range w.data.Data {
		if t.ID == id {
			return t, true
		}
	}
	return gantt.WidgetTask{}, false
}

// Link returns the parsed link with id.
func (w *Widget) Link(id int) (gantt.WidgetLink, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, l := range w.data.Links {
		if l.ID == id {
			return l, true
		}
	}
	return gantt.WidgetLink{}, false
}

// Emit runs the callbacks registered for name. It returns false as soon as
// one of them vetoes the event.
func (w *Widget) Emit(name string, ev gantt.RawEvent) bool {
	w.mu.Lock()
	hs := append([]handler(nil), w.handlers[name]...)
	w.mu.Unlock()

	for _, h := range hs {
		if !h.cb(ev) {
			return false
		}
	}
	return true
}

// Render draws the chart.
func (w *Widget) Render() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.render()
}

func (w *Widget) draw() {
	if w.container == nil {
		return
	}
	out := w.render()
	w.container.mu.Lock()
	w.container.content = out
	w.container.mu.Unlock()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#595959"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(1)
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8c8c8c"))
)

func (w *Widget) render() string {
	if len(w.data.Data) == 0 {
		return ""
	}

	tasks := ordered(w.data.Data)
	from, to := span(tasks)
	days := int(to.Sub(from).Hours()/24) + 1
	scale := w.width
	if days < scale {
		scale = days
	}
	perCol := float64(days) / float64(scale)

	var b strings.Builder

	header := make([]string, 0, len(w.cfg.Columns)+1)
	for _, c := range w.cfg.Columns {
		header = append(header, headerStyle.Width(c.Width/8).Render(c.Label))
	}
	header = append(header, headerStyle.Render(scaleLabel(w.cfg, from, to)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, t := range tasks {
		cols := make([]string, 0, len(w.cfg.Columns)+1)
		for _, c := range w.cfg.Columns {
			cols = append(cols, cellStyle.Width(c.Width/8).MaxWidth(c.Width/8).Render(column(t, c, depth(tasks, t))))
		}
		cols = append(cols, bar(t, from, scale, perCol))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteString("\n")
	}

	for _, l := range w.data.Links {
		b.WriteString(linkStyle.Render(fmt.Sprintf("  %d -> %d  [%s] lag %d", l.Source, l.Target, gantt.DependencyTypeOf(l.Type), l.Lag)))
		b.WriteString("\n")
	}
	return b.String()
}

func parse(s string) time.Time {
	t, err := time.ParseInLocation(model.DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func span(tasks []gantt.WidgetTask) (time.Time, time.Time) {
	var from, to time.Time
	for _, t := range tasks {
		s, e := day(parse(t.StartDate)), day(parse(t.EndDate))
		if from.IsZero() || s.Before(from) {
			from = s
		}
		if e.After(to) {
			to = e
		}
	}
	if to.Before(from) {
		to = from
	}
	return from, to
}

// ordered puts children under their parent.
func ordered(tasks []gantt.WidgetTask) []gantt.WidgetTask {
	children := map[int][]gantt.WidgetTask{}
	ids := map[int]bool{}
	for _, t := range tasks {
		ids[t.ID] = true
	}
	for _, t := range tasks {
		p := t.Parent
		if !ids[p] {
			p = 0
		}
		children[p] = append(children[p], t)
	}
	for _, c := range children {
		sort.SliceStable(c, func(i, j int) bool { return c[i].StartDate < c[j].StartDate })
	}

	out := make([]gantt.WidgetTask, 0, len(tasks))
	seen := map[int]bool{}
	var walk func(parent int)
	walk = func(parent int) {
		for _, t := range children[parent] {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			out = append(out, t)
			walk(t.ID)
		}
	}
	walk(0)
	return out
}

func depth(tasks []gantt.WidgetTask, t gantt.WidgetTask) int {
	byID := map[int]gantt.WidgetTask{}
	for _, x := range tasks {
		byID[x.ID] = x
	}
	d := 0
	for p, ok := byID[t.Parent]; ok && d < len(tasks); p, ok = byID[p.Parent] {
		d++
	}
	return d
}

func column(t gantt.WidgetTask, c gantt.Column, depth int) string {
	switch c.Name {
	case "text":
		if c.Tree {
			return strings.Repeat(" ", depth) + t.Text
		}
		return t.Text
	case "type":
		return t.Type
	case "duration":
		return fmt.Sprintf("%d", t.Duration)
	case "start_date":
		return strings.SplitN(t.StartDate, " ", 2)[0]
	case "end_date":
		return strings.SplitN(t.EndDate, " ", 2)[0]
	}
	return ""
}

func bar(t gantt.WidgetTask, from time.Time, scale int, perCol float64) string {
	s := int(day(parse(t.StartDate)).Sub(from).Hours() / 24 / perCol)
	e := int(day(parse(t.EndDate)).Sub(from).Hours() / 24 / perCol)
	if e >= scale {
		e = scale - 1
	}
	if e < s {
		e = s
	}
	length := e - s + 1
	done := int(float64(length) * t.Progress)

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color))
	glyph := "█"
	if t.Type == "project" {
		glyph = "▬"
	}
	return strings.Repeat(" ", s) +
		style.Render(strings.Repeat(glyph, done)) +
		style.Faint(true).Render(strings.Repeat("░", length-done))
}

// scaleLabel renders the month scale format for the first and last month.
func scaleLabel(cfg gantt.Config, from, to time.Time) string {
	format := "%Y-%m"
	for _, s := range cfg.Scales {
		if s.Unit == "month" {
			format = s.Format
		}
	}
	first, last := strftime(format, from), strftime(format, to)
	if first == last {
		return first
	}
	return first + " - " + last
}

func strftime(format string, t time.Time) string {
	r := strings.NewReplacer(
		"%Y", fmt.Sprintf("%04d", t.Year()),
		"%m", fmt.Sprintf("%02d", int(t.Month())),
		"%d", fmt.Sprintf("%02d", t.Day()),
		"%F", t.Month().String(),
	)
	return r.Replace(format)
}
