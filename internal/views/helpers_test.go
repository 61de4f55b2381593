package views

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wbsplanner/internal/client"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/internal/mutation"
	"wbsplanner/internal/querycache"
)

type notes struct {
	mu      sync.Mutex
	success []string
	errors  []string
}

func (n *notes) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *notes) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type answer bool

func (a answer) Confirm(string) bool { return bool(a) }

// api serves canned JSON per "METHOD path" and counts every request.
type api struct {
	mu        sync.Mutex
	hits      map[string]int
	responses map[string]string
	status    map[string]int
	headers   map[string]map[string]string
}

func newAPI() *api {
	return &api{
		hits:      map[string]int{},
		responses: map[string]string{},
		status:    map[string]int{},
		headers:   map[string]map[string]string{},
	}
}

func (a *api) on(route, body string) *api {
	a.responses[route] = body
	return a
}

func (a *api) count(route string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[route]
}

func (a *api) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, v := range a.hits {
		n += v
	}
	return n
}

func (a *api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + strings.TrimPrefix(r.URL.Path, client.BasePath)
	a.mu.Lock()
	a.hits[route]++
	body, ok := a.responses[route]
	code := a.status[route]
	hdr := a.headers[route]
	a.mu.Unlock()

	for k, v := range hdr {
		w.Header().Set(k, v)
	}
	if code == 0 {
		code = http.StatusOK
	}
	if !ok {
		body = `{}`
	}
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

type env struct {
	*Env
	api    *api
	client *client.Client
	notes  *notes
}

func newEnv(t *testing.T, a *api, confirm bool) *env {
	t.Helper()
	srv := httptest.NewServer(a)
	t.Cleanup(srv.Close)

	c := client.New(client.Config{ServerURL: srv.URL}, nil, nil, nil)
	cache := querycache.New(querycache.WithRetry(0, time.Millisecond))
	n := &notes{}
	return &env{
		Env: &Env{
			Queries:   NewQueries(c, cache),
			Mutations: mutation.New(c, cache, n, i18n.Japanese, nil),
			Confirm:   answer(confirm),
			Notify:    n,
			Locale:    i18n.Japanese,
			Styles:    DefaultStyles(),
		},
		api:    a,
		client: c,
		notes:  n,
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func sampleTasks() []model.Task {
	start, _ := model.ParseDate("2024-04-01")
	return []model.Task{
		{ID: 1, Name: "要件定義", ProjectID: 5, TaskType: model.TaskTypePhase, Status: model.TaskCompleted, Priority: model.PriorityHigh, EstimatedHours: 16, StartDate: &start},
		{ID: 2, Name: "設計", ProjectID: 5, TaskType: model.TaskTypeTask, Status: model.TaskInProgress, Priority: model.PriorityMedium, EstimatedHours: 8},
	}
}
