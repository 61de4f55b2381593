package service

import (
	"context"
	"sync"
	"time"

	"wbsplanner/internal/model"
	"wbsplanner/internal/repository"
)

type memStore struct {
	mu       sync.Mutex
	nextID   int
	projects map[int]*model.Project
	tasks    map[int]*model.Task
	deps     map[int]*model.TaskDependency
	users    map[int]*model.User
}

func newMemStore() *memStore {
	return &memStore{
		projects: map[int]*model.Project{},
		tasks:    map[int]*model.Task{},
		deps:     map[int]*model.TaskDependency{},
		users:    map[int]*model.User{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

// projects

type memProjects struct{ *memStore }

func (m memProjects) List(context.Context) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Project{}
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m memProjects) Get(_ context.Context, id int) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m memProjects) Insert(_ context.Context, in model.ProjectCreate) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &model.Project{ID: m.id(), Name: in.Name, Description: in.Description, Status: in.Status, CreatedAt: time.Now()}
	m.projects[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m memProjects) Update(_ context.Context, id int, in model.ProjectUpdate) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	cp := *p
	return &cp, nil
}

func (m memProjects) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

// tasks

type memTasks struct{ *memStore }

func (m memTasks) ListByProject(_ context.Context, projectID int) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Task{}
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m memTasks) Get(_ context.Context, id int) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m memTasks) Insert(_ context.Context, in model.TaskCreate) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &model.Task{
		ID: m.id(), Name: in.Name, ProjectID: in.ProjectID, TaskType: in.TaskType,
		Status: in.Status, Priority: in.Priority, EstimatedHours: in.EstimatedHours,
		StartDate: in.StartDate, EndDate: in.EndDate,
	}
	m.tasks[t.ID] = t
	cp := *t
	return &cp, nil
}

func (m memTasks) Save(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m memTasks) Delete(_ context.Context, id int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	delete(m.tasks, id)
	return t.ProjectID, nil
}

func (m memTasks) ProjectOf(_ context.Context, ids ...int) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[int]int{}
	for _, id := range ids {
		if t, ok := m.tasks[id]; ok {
			out[id] = t.ProjectID
		}
	}
	return out, nil
}

// dependencies

type memDeps struct{ *memStore }

func (m memDeps) ListByProject(_ context.Context, projectID int) ([]model.TaskDependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.TaskDependency{}
	for _, d := range m.deps {
		if m.tasks[d.PredecessorID].ProjectID == projectID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m memDeps) Insert(_ context.Context, in model.DependencyCreate) (*model.TaskDependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &model.TaskDependency{
		ID: m.id(), PredecessorID: in.PredecessorID, SuccessorID: in.SuccessorID,
		DependencyType: in.DependencyType, LagDays: in.LagDays,
	}
	m.deps[d.ID] = d
	cp := *d
	return &cp, nil
}

func (m memDeps) Exists(_ context.Context, pred, succ int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.deps {
		if d.PredecessorID == pred && d.SuccessorID == succ {
			return true, nil
		}
	}
	return false, nil
}

func (m memDeps) Delete(_ context.Context, id int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deps[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	delete(m.deps, id)
	return m.tasks[d.PredecessorID].ProjectID, nil
}

// statistics

type memStats struct {
	stats *model.Statistics
	rows  []model.ProjectReportRow
	calls int
}

func (m *memStats) Statistics(context.Context) (*model.Statistics, error) {
	m.calls++
	return m.stats, nil
}

func (m *memStats) ReportRows(context.Context, *int) ([]model.ProjectReportRow, error) {
	return m.rows, nil
}

// users

type memUsers struct{ *memStore }

func (m memUsers) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memUsers) FindByID(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// cache

type recordingCache struct {
	mu      sync.Mutex
	evicted []int
	gantt   map[int]*model.GanttData
	stats   *model.Statistics
}

func newRecordingCache() *recordingCache {
	return &recordingCache{gantt: map[int]*model.GanttData{}}
}

func (c *recordingCache) GetStatistics(context.Context) (*model.Statistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats, c.stats != nil
}

func (c *recordingCache) SetStatistics(_ context.Context, s *model.Statistics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = s
}

func (c *recordingCache) GetGantt(_ context.Context, projectID int) (*model.GanttData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.gantt[projectID]
	return g, ok
}

func (c *recordingCache) SetGantt(_ context.Context, projectID int, g *model.GanttData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gantt[projectID] = g
}

func (c *recordingCache) EvictProject(_ context.Context, projectID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evicted = append(c.evicted, projectID)
	delete(c.gantt, projectID)
	c.stats = nil
	return nil
}

// publisher

type published struct {
	routingKey string
	payload    any
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{routingKey, payload})
	return nil
}
