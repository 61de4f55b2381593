package gantt

import (
	"context"
	"errors"
	"sync"

	"wbsplanner/internal/model"
)

type fakeLibrary struct {
	readyAfter int // Ready turns true on this call; 0 means never
	calls      int
	injected   []string
}

func (l *fakeLibrary) Ready() bool {
	l.calls++
	return l.readyAfter > 0 && l.calls >= l.readyAfter
}

func (l *fakeLibrary) InjectAssets(css, js string) error {
	l.injected = append(l.injected, css, js)
	return nil
}

type fakeContainer struct {
	classes  map[string]bool
	cleared  int
	detached bool
}

func newContainer() *fakeContainer { return &fakeContainer{classes: map[string]bool{}} }

func (c *fakeContainer) Clear() {
	c.cleared++
	c.classes = map[string]bool{}
}
func (c *fakeContainer) HasClass(name string) bool { return c.classes[name] }
func (c *fakeContainer) Attached() bool            { return !c.detached }

type fakeWidget struct {
	renderAfter int // init succeeds on this attempt; 0 means never
	inits       int
	initNil     bool
	configured  int
	parsed      []Data
	cleared     int
	detached    int
	events      map[string]Callback
}

func newWidget(renderAfter int) *fakeWidget {
	return &fakeWidget{renderAfter: renderAfter, events: map[string]Callback{}}
}

func (w *fakeWidget) Configure(Config) { w.configured++ }

func (w *fakeWidget) Init(c Container) error {
	if c == nil {
		w.initNil = true
		return errors.New("nil container")
	}
	w.inits++
	if w.renderAfter > 0 && w.inits >= w.renderAfter {
		c.(*fakeContainer).classes[ContainerClass] = true
	}
	return nil
}

func (w *fakeWidget) Parse(d Data) error {
	w.parsed = append(w.parsed, d)
	return nil
}

func (w *fakeWidget) ClearAll() { w.cleared++ }

func (w *fakeWidget) AttachEvent(name string, cb Callback) EventID {
	w.events[name] = cb
	return EventID(name)
}

func (w *fakeWidget) DetachAllEvents() {
	w.detached++
	w.events = map[string]Callback{}
}

func (w *fakeWidget) GetTaskCount() int {
	if len(w.parsed) == 0 {
		return 0
	}
	return len(w.parsed[len(w.parsed)-1].Data)
}

func (w *fakeWidget) emit(name string, ev RawEvent) bool {
	cb, ok := w.events[name]
	if !ok {
		return true
	}
	return cb(ev)
}

type updateCall struct {
	projectID string
	id        int
	in        model.TaskUpdate
}

type fakeMutator struct {
	mu      sync.Mutex
	updates []updateCall
	creates []model.DependencyCreate
	deletes []int
	err     error
}

func (m *fakeMutator) UpdateTaskFromGantt(_ context.Context, projectID string, id int, in model.TaskUpdate) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, updateCall{projectID, id, in})
	return &model.Task{ID: id}, m.err
}

func (m *fakeMutator) CreateDependency(_ context.Context, _ string, in model.DependencyCreate) (*model.TaskDependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, in)
	return &model.TaskDependency{ID: 1}, m.err
}

func (m *fakeMutator) DeleteDependency(_ context.Context, _ string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	return m.err
}

type fakeConfirmer struct {
	answer bool
	asked  []string
}

func (c *fakeConfirmer) Confirm(msg string) bool {
	c.asked = append(c.asked, msg)
	return c.answer
}

type errNotes struct{ errors []string }

func (n *errNotes) Error(msg string) { n.errors = append(n.errors, msg) }
