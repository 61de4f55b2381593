package gantt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/pkg/metrics"
)

var (
	ErrNoContainer      = errors.New("gantt container missing")
	ErrInitVerification = errors.New("gantt container did not render")
	ErrNotInitialized   = errors.New("gantt not initialized")
)

// Notifier shows error messages.
type Notifier interface {
	Error(msg string)
}

// Options tune the bootstrap and init retry policy.
type Options struct {
	LoadAttempts uint
	LoadInterval time.Duration
	// InitRetries is used as given, zero means a single attempt.
	InitRetries    uint
	InitRetryDelay time.Duration
	Now            func() time.Time
}

func defaultOptions() Options {
	return Options{
		LoadAttempts:   DefaultLoadAttempts,
		LoadInterval:   DefaultLoadInterval,
		InitRetries:    3,
		InitRetryDelay: time.Second,
		Now:            time.Now,
	}
}

// linearBackOff waits base, 2*base, 3*base...
type linearBackOff struct {
	base time.Duration
	n    int
}

func (b *linearBackOff) Reset() { b.n = 0 }

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.base
}

// Adapter owns one widget instance bound to one project.
type Adapter struct {
	mu          sync.Mutex
	widget      Widget
	lib         Library
	container   Container
	handler     *Handler
	notify      Notifier
	locale      i18n.Locale
	logger      *zap.Logger
	opts        Options
	initialized bool
	attempts    int
	baseCtx     context.Context
}

// NewAdapter wires a widget to the handler of one project. container may be
// nil until the view is mounted.
func NewAdapter(widget Widget, lib Library, container Container, handler *Handler, notify Notifier, locale i18n.Locale, logger *zap.Logger, opts *Options) *Adapter {
	o := defaultOptions()
	if opts != nil {
		if opts.LoadAttempts > 0 {
			o.LoadAttempts = opts.LoadAttempts
		}
		if opts.LoadInterval > 0 {
			o.LoadInterval = opts.LoadInterval
		}
		o.InitRetries = opts.InitRetries
		if opts.InitRetryDelay > 0 {
			o.InitRetryDelay = opts.InitRetryDelay
		}
		if opts.Now != nil {
			o.Now = opts.Now
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		widget:    widget,
		lib:       lib,
		container: container,
		handler:   handler,
		notify:    notify,
		locale:    locale,
		logger:    logger,
		opts:      o,
		baseCtx:   context.Background(),
	}
}

// Mount sets the container once the view has one.
func (a *Adapter) Mount(c Container) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.container = c
}

func (a *Adapter) Initialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialized
}

// Attempts is the number of Init calls made so far.
func (a *Adapter) Attempts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attempts
}

func (a *Adapter) projectID() string {
	if a.handler == nil {
		return ""
	}
	return a.handler.ProjectID()
}

// Initialize loads the library and initializes the widget, retrying with a
// growing delay. Failures are reported through the notifier and returned;
// the caller keeps its placeholder.
func (a *Adapter) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	return a.initialize(ctx)
}

func (a *Adapter) initialize(ctx context.Context) error {
	log := a.logger.With(zap.String("project_id", a.projectID()))

	if err := LoadLibrary(ctx, a.lib, a.opts.LoadAttempts, a.opts.LoadInterval); err != nil {
		log.Error("Gantt library failed to load", zap.Error(err))
		return a.fail(err)
	}
	if a.container == nil || !a.container.Attached() {
		log.Warn("Gantt container not ready")
		return a.fail(ErrNoContainer)
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		a.attempts++
		err := a.tryInit()
		if err != nil {
			log.Warn("Gantt init attempt failed", zap.Int("attempt", a.attempts), zap.Error(err))
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(&linearBackOff{base: a.opts.InitRetryDelay}),
		backoff.WithMaxTries(a.opts.InitRetries+1),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		log.Error("Gantt initialization failed", zap.Int("attempts", a.attempts), zap.Error(err))
		return a.fail(err)
	}

	a.baseCtx = context.WithoutCancel(ctx)
	a.attachEvents()
	a.initialized = true
	metrics.RecordGanttInit("success")
	log.Info("Gantt initialized", zap.Int("attempts", a.attempts))
	return nil
}

func (a *Adapter) tryInit() error {
	a.container.Clear()
	a.widget.Configure(DefaultConfig(a.locale))
	if err := a.widget.Init(a.container); err != nil {
		return err
	}
	if !a.container.HasClass(ContainerClass) {
		return ErrInitVerification
	}
	return nil
}

func (a *Adapter) fail(err error) error {
	metrics.RecordGanttInit("failure")
	if a.notify != nil {
		a.notify.Error(a.locale.T(i18n.GanttInitFailed))
	}
	return err
}

// ForceReinitialize drops widget state and initializes from scratch.
func (a *Adapter) ForceReinitialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
	a.attempts = 0
	return a.initialize(ctx)
}

func (a *Adapter) reset() {
	if a.initialized {
		a.widget.ClearAll()
		a.widget.DetachAllEvents()
	}
	if a.container != nil {
		a.container.Clear()
	}
	a.initialized = false
}

// Cleanup is called when the view goes away.
func (a *Adapter) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
	a.attempts = 0
}

// OnVisibilityChange re-attempts initialization when the view becomes visible again.
func (a *Adapter) OnVisibilityChange(ctx context.Context, visible bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !visible || a.projectID() == "" || a.initialized {
		return nil
	}
	a.logger.Debug("View visible, reinitializing gantt")
	return a.initialize(ctx)
}

// OnFocus re-attempts initialization when focus returns, for example after a login.
func (a *Adapter) OnFocus(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.projectID() == "" || a.container == nil || a.initialized {
		return nil
	}
	a.logger.Debug("Focus regained, reinitializing gantt")
	return a.initialize(ctx)
}

// LoadData replaces the widget content with the payload.
func (a *Adapter) LoadData(d model.GanttData) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		a.logger.Warn("Cannot load gantt data before initialization")
		return ErrNotInitialized
	}
	data := ToWidgetData(d, a.opts.Now())
	a.widget.ClearAll()
	if err := a.widget.Parse(data); err != nil {
		a.logger.Error("Gantt parse failed", zap.Error(err))
		return err
	}
	a.logger.Debug("Gantt data loaded", zap.Int("tasks", len(data.Data)), zap.Int("links", len(data.Links)))
	return nil
}

// attachEvents binds widget callbacks to typed events. Callbacks run outside
// of Initialize, so they use a context that is never cancelled.
func (a *Adapter) attachEvents() {
	a.widget.DetachAllEvents()
	if a.handler == nil {
		return
	}
	dispatch := func(ev Event) bool {
		if err := a.handler.Dispatch(a.baseCtx, ev); err != nil {
			if !errors.Is(err, ErrDeclined) {
				a.logger.Warn("Gantt event failed", zap.Error(err))
			}
			return false
		}
		return true
	}

	a.widget.AttachEvent(EventAfterTaskDrag, func(e RawEvent) bool {
		if e.Task == nil {
			return true
		}
		return dispatch(TaskMoved{Task: *e.Task, Mode: e.Mode})
	})
	a.widget.AttachEvent(EventAfterProgressDrag, func(e RawEvent) bool {
		if e.Task == nil {
			return true
		}
		return dispatch(ProgressChanged{Task: *e.Task, Progress: e.Progress})
	})
	a.widget.AttachEvent(EventAfterTaskUpdate, func(e RawEvent) bool {
		if e.Task == nil {
			return true
		}
		return dispatch(TaskUpdated{Task: *e.Task})
	})
	a.widget.AttachEvent(EventAfterLinkAdd, func(e RawEvent) bool {
		if e.Link == nil {
			return true
		}
		return dispatch(LinkAdded{Link: *e.Link})
	})
	// true lets the widget drop the link, which happens only after the server delete succeeded
	a.widget.AttachEvent(EventBeforeLinkDelete, func(e RawEvent) bool {
		if e.Link == nil {
			return false
		}
		return dispatch(LinkRemoved{Link: *e.Link})
	})
}
