package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"wbsplanner/internal/gantt"
	"wbsplanner/internal/gantt/termwidget"
	"wbsplanner/internal/model"
	"wbsplanner/internal/views"
)

const chartWidth = 100

// ganttView builds a chart for pid backed by the terminal widget.
func (a *app) ganttView(pid string) (*views.GanttView, *termwidget.Widget) {
	w := termwidget.New(chartWidth)
	h := gantt.NewHandler(a.env.Mutations, a.env.Confirm, pid, a.locale, a.logger)
	adapter := gantt.NewAdapter(w, termwidget.NewLibrary(), termwidget.NewContainer(), h, a.env.Notify, a.locale, a.logger, nil)
	return views.NewGanttView(a.env, pid, adapter, w), w
}

// withChart mounts the chart of pid, runs fn against the widget and
// prints the chart as redrawn afterwards.
func (a *app) withChart(cmd *cobra.Command, pid string, fn func(w *termwidget.Widget) error) error {
	g, w := a.ganttView(pid)
	unmount := g.Mount(cmd.Context())
	defer unmount()
	if fn != nil {
		if err := fn(w); err != nil {
			return err
		}
	}
	a.println(g.Render())
	return nil
}

var errRejected = errors.New("change was not applied")

func bar(w *termwidget.Widget, arg string) (gantt.WidgetTask, error) {
	id, err := atoi("task id", arg)
	if err != nil {
		return gantt.WidgetTask{}, err
	}
	t, ok := w.Task(id)
	if !ok {
		return gantt.WidgetTask{}, fmt.Errorf("task %d is not on the chart", id)
	}
	return t, nil
}

func newGanttCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gantt",
		Aliases: []string{"g"},
		Short:   "Show and edit the Gantt chart of a project",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <project-id>",
			Short: "Draw the chart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				return a.withChart(cmd, pid, nil)
			},
		},
		newGanttMoveCmd(a),
		&cobra.Command{
			Use:   "progress <project-id> <task-id> <percent>",
			Short: "Set the progress of a bar",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				pct, err := strconv.Atoi(args[2])
				if err != nil || pct < 0 || pct > 100 {
					return fmt.Errorf("invalid percent %q", args[2])
				}
				return a.withChart(cmd, pid, func(w *termwidget.Widget) error {
					t, err := bar(w, args[1])
					if err != nil {
						return err
					}
					if !w.Emit(gantt.EventAfterProgressDrag, gantt.RawEvent{Task: &t, Progress: float64(pct) / 100}) {
						return errRejected
					}
					return nil
				})
			},
		},
		newGanttLinkCmd(a),
		&cobra.Command{
			Use:   "unlink <project-id> <link-id>",
			Short: "Remove a link after confirmation",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				id, err := atoi("link id", args[1])
				if err != nil {
					return err
				}
				return a.withChart(cmd, pid, func(w *termwidget.Widget) error {
					l, ok := w.Link(id)
					if !ok {
						return fmt.Errorf("link %d is not on the chart", id)
					}
					// a declined confirmation is not an error
					w.Emit(gantt.EventBeforeLinkDelete, gantt.RawEvent{Link: &l})
					return nil
				})
			},
		},
	)
	return cmd
}

func newGanttMoveCmd(a *app) *cobra.Command {
	var start, end string
	var days int
	cmd := &cobra.Command{
		Use:   "move <project-id> <task-id>",
		Short: "Move or resize a bar",
		Long:  "Move a bar with --start (and optionally --end), or resize it with --end or --days.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := projectArg(args[0])
			if err != nil {
				return err
			}
			if start == "" && end == "" && days <= 0 {
				return errors.New("one of --start, --end or --days is required")
			}
			var startDate, endDate model.Date
			if start != "" {
				if startDate, err = model.ParseDate(start); err != nil {
					return fmt.Errorf("invalid date %q", start)
				}
			}
			if end != "" {
				if endDate, err = model.ParseDate(end); err != nil {
					return fmt.Errorf("invalid date %q", end)
				}
			}
			return a.withChart(cmd, pid, func(w *termwidget.Widget) error {
				t, err := bar(w, args[1])
				if err != nil {
					return err
				}
				mode := gantt.DragResize
				if start != "" {
					mode = gantt.DragMove
					t = gantt.MoveTo(t, startDate)
				}
				switch {
				case end != "":
					t = gantt.ResizeTo(t, endDate)
				case days > 0:
					t = gantt.ResizeDays(t, days)
				}
				if !w.Emit(gantt.EventAfterTaskDrag, gantt.RawEvent{Mode: mode, Task: &t}) {
					return errRejected
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "New duration in days")
	return cmd
}

func newGanttLinkCmd(a *app) *cobra.Command {
	var depType string
	cmd := &cobra.Command{
		Use:   "link <project-id> <source-task-id> <target-task-id>",
		Short: "Draw a link between two bars",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := projectArg(args[0])
			if err != nil {
				return err
			}
			source, err := atoi("task id", args[1])
			if err != nil {
				return err
			}
			target, err := atoi("task id", args[2])
			if err != nil {
				return err
			}
			if !model.DependencyType(depType).Valid() {
				return fmt.Errorf("invalid dependency type %q", depType)
			}
			return a.withChart(cmd, pid, func(w *termwidget.Widget) error {
				l := gantt.WidgetLink{Source: source, Target: target, Type: gantt.LinkCode(model.DependencyType(depType))}
				if !w.Emit(gantt.EventAfterLinkAdd, gantt.RawEvent{Link: &l}) {
					return errRejected
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&depType, "type", string(model.FinishToStart), "finish_to_start, start_to_start, finish_to_finish or start_to_finish")
	return cmd
}
