package views

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"wbsplanner/internal/gantt"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

// Renderer draws whatever the widget currently holds.
type Renderer interface {
	Render() string
}

// GanttView shows the chart of one project. It stays on a placeholder while
// the widget is not initialized and never fails the screen.
type GanttView struct {
	env       *Env
	projectID string
	adapter   *gantt.Adapter
	renderer  Renderer

	mu      sync.Mutex
	loadErr error
	data    *model.GanttData
}

func NewGanttView(env *Env, projectID string, adapter *gantt.Adapter, renderer Renderer) *GanttView {
	return &GanttView{env: env, projectID: projectID, adapter: adapter, renderer: renderer}
}

// Mount initializes the widget, loads the chart and keeps it subscribed so
// task and dependency writes redraw it. The returned func unmounts.
func (v *GanttView) Mount(ctx context.Context) func() {
	if err := v.adapter.Initialize(ctx); err != nil {
		v.env.logger().Warn("Gantt stays in placeholder", zap.String("project_id", v.projectID), zap.Error(err))
	}

	data, err := v.env.Queries.Gantt(ctx, v.projectID)
	v.apply(data, err)

	unsubscribe := v.env.Queries.WatchGantt(v.projectID, v.apply)
	return func() {
		unsubscribe()
		v.adapter.Cleanup()
	}
}

func (v *GanttView) apply(data *model.GanttData, err error) {
	v.mu.Lock()
	v.loadErr = err
	if err == nil {
		v.data = data
	}
	v.mu.Unlock()

	if err != nil || data == nil || !v.adapter.Initialized() {
		return
	}
	if err := v.adapter.LoadData(*data); err != nil {
		v.env.logger().Warn("Gantt data not loaded", zap.Error(err))
	}
}

// Retry is bound to the focus transition of the screen.
func (v *GanttView) Retry(ctx context.Context) {
	if err := v.adapter.OnFocus(ctx); err != nil {
		return
	}
	v.redraw()
}

// Shown re-attempts a failed init when the chart tab becomes visible.
func (v *GanttView) Shown(ctx context.Context) {
	if err := v.adapter.OnVisibilityChange(ctx, true); err != nil {
		return
	}
	v.redraw()
}

// Reload drops the widget state, initializes it again and draws the last data.
func (v *GanttView) Reload(ctx context.Context) {
	if err := v.adapter.ForceReinitialize(ctx); err != nil {
		v.env.logger().Warn("Gantt reinitialization failed", zap.String("project_id", v.projectID), zap.Error(err))
		return
	}
	v.redraw()
}

func (v *GanttView) redraw() {
	v.mu.Lock()
	data := v.data
	v.mu.Unlock()
	if data != nil {
		v.apply(data, nil)
	}
}

func (v *GanttView) Render() string {
	v.mu.Lock()
	loadErr, data := v.loadErr, v.data
	v.mu.Unlock()

	st := v.env.Styles
	t := v.env.Locale.T
	switch {
	case loadErr != nil:
		return st.Error.Render(t(i18n.GanttLoadFailed))
	case data != nil && len(data.Tasks) == 0:
		return strings.Join([]string{
			st.Muted.Render(t(i18n.GanttEmpty)),
			st.Muted.Render(t(i18n.GanttCreateFirst)),
		}, "\n")
	case !v.adapter.Initialized() || data == nil:
		return st.Muted.Render(t(i18n.Loading))
	default:
		return v.renderer.Render()
	}
}
