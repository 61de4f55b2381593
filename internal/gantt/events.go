package gantt

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

// ErrDeclined is returned when the user does not confirm a link deletion.
var ErrDeclined = errors.New("declined")

// Event is a typed widget interaction.
type Event interface {
	event()
}

// TaskMoved is a bar dragged or resized.
type TaskMoved struct {
	Task WidgetTask
	Mode string
}

// ProgressChanged is the progress handle dragged to Progress (0..1).
type ProgressChanged struct {
	Task     WidgetTask
	Progress float64
}

// TaskUpdated is any other edit of a bar, such as a date change in the grid.
type TaskUpdated struct {
	Task WidgetTask
}

type LinkAdded struct {
	Link WidgetLink
}

type LinkRemoved struct {
	Link WidgetLink
}

func (TaskMoved) event()       {}
func (ProgressChanged) event() {}
func (TaskUpdated) event()     {}
func (LinkAdded) event()       {}
func (LinkRemoved) event()     {}

// Mutator is the write side the handler dispatches to.
type Mutator interface {
	UpdateTaskFromGantt(ctx context.Context, projectID string, id int, in model.TaskUpdate) (*model.Task, error)
	CreateDependency(ctx context.Context, projectID string, in model.DependencyCreate) (*model.TaskDependency, error)
	DeleteDependency(ctx context.Context, projectID string, id int) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(msg string) bool
}

// Handler routes widget events of one project to the mutation layer.
type Handler struct {
	mut       Mutator
	confirm   Confirmer
	projectID string
	locale    i18n.Locale
	logger    *zap.Logger
}

func NewHandler(mut Mutator, confirm Confirmer, projectID string, locale i18n.Locale, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mut: mut, confirm: confirm, projectID: projectID, locale: locale, logger: logger}
}

func (h *Handler) ProjectID() string {
	return h.projectID
}

// Dispatch performs the write an event stands for.
func (h *Handler) Dispatch(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case TaskMoved:
		if e.Mode != DragMove && e.Mode != DragResize {
			return nil
		}
		return h.updateTask(ctx, e.Task)
	case ProgressChanged:
		t := e.Task
		t.Progress = e.Progress
		return h.updateTask(ctx, t)
	case TaskUpdated:
		return h.updateTask(ctx, e.Task)
	case LinkAdded:
		in := DependencyFrom(e.Link)
		h.logger.Info("Creating dependency from chart",
			zap.String("project_id", h.projectID),
			zap.Int("predecessor_id", in.PredecessorID),
			zap.Int("successor_id", in.SuccessorID),
			zap.String("type", string(in.DependencyType)),
		)
		_, err := h.mut.CreateDependency(ctx, h.projectID, in)
		return err
	case LinkRemoved:
		if h.confirm == nil || !h.confirm.Confirm(h.locale.T(i18n.DependencyConfirmDel)) {
			return ErrDeclined
		}
		h.logger.Info("Deleting dependency from chart", zap.String("project_id", h.projectID), zap.Int("dependency_id", e.Link.ID))
		return h.mut.DeleteDependency(ctx, h.projectID, e.Link.ID)
	default:
		return fmt.Errorf("unknown gantt event %T", ev)
	}
}

func (h *Handler) updateTask(ctx context.Context, t WidgetTask) error {
	in := TaskUpdateFrom(t)
	h.logger.Debug("Updating task from chart", zap.String("project_id", h.projectID), zap.Int("task_id", t.ID))
	_, err := h.mut.UpdateTaskFromGantt(ctx, h.projectID, t.ID, in)
	return err
}
