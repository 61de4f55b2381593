package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wbsplanner/internal/tui"
	"wbsplanner/internal/views"
)

var taskFlagNames = []string{"name", "description", "type", "status", "priority", "hours", "actual-hours", "start", "end", "parent", "assignee"}

func taskFlags(cmd *cobra.Command, f *views.TaskForm) {
	fs := cmd.Flags()
	fs.StringVar(&f.Name, "name", "", "Task name")
	fs.StringVar(&f.Description, "description", "", "Description")
	fs.StringVar(&f.TaskType, "type", "", "phase, task or detail_task")
	fs.StringVar(&f.Status, "status", "", "not_started, in_progress, completed or on_hold")
	fs.StringVar(&f.Priority, "priority", "", "low, medium, high or critical")
	fs.StringVar(&f.EstimatedHours, "hours", "", "Estimated hours")
	fs.StringVar(&f.ActualHours, "actual-hours", "", "Actual hours")
	fs.StringVar(&f.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.EndDate, "end", "", "End date (YYYY-MM-DD)")
	fs.StringVar(&f.ParentTaskID, "parent", "", "Parent task id")
	fs.StringVar(&f.AssigneeID, "assignee", "", "Assignee user id")
}

// applyTaskFlags copies the flags the user set onto f.
func applyTaskFlags(cmd *cobra.Command, in views.TaskForm, f *views.TaskForm) {
	set := map[string]func(){
		"name":         func() { f.Name = in.Name },
		"description":  func() { f.Description = in.Description },
		"type":         func() { f.TaskType = in.TaskType },
		"status":       func() { f.Status = in.Status },
		"priority":     func() { f.Priority = in.Priority },
		"hours":        func() { f.EstimatedHours = in.EstimatedHours },
		"actual-hours": func() { f.ActualHours = in.ActualHours },
		"start":        func() { f.StartDate = in.StartDate },
		"end":          func() { f.EndDate = in.EndDate },
		"parent":       func() { f.ParentTaskID = in.ParentTaskID },
		"assignee":     func() { f.AssigneeID = in.AssigneeID },
	}
	for _, name := range taskFlagNames {
		if cmd.Flags().Changed(name) {
			set[name]()
		}
	}
}

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage the tasks of a project",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <project-id>",
			Short: "List tasks",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				out, err := views.NewTaskList(a.env, pid).Render(cmd.Context())
				if err != nil {
					return err
				}
				a.println(out)
				return nil
			},
		},
		newTaskCreateCmd(a),
		newTaskUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <project-id> <task-id>",
			Short: "Delete a task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				id, err := atoi("task id", args[1])
				if err != nil {
					return err
				}
				_, err = views.NewTaskList(a.env, pid).Delete(cmd.Context(), id)
				return err
			},
		},
	)
	return cmd
}

func newTaskCreateCmd(a *app) *cobra.Command {
	var in views.TaskForm
	cmd := &cobra.Command{
		Use:   "create <project-id>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := projectArg(args[0])
			if err != nil {
				return err
			}
			f := views.NewTaskForm()
			applyTaskFlags(cmd, in, &f)
			if !anyChanged(cmd, taskFlagNames...) && a.interactive() {
				if err := tui.FillTask(a.locale, &f); err != nil {
					return err
				}
			}
			t, err := views.NewTaskList(a.env, pid).Create(cmd.Context(), f)
			if err != nil {
				return err
			}
			a.println(fmt.Sprintf("#%d %s", t.ID, t.Name))
			return nil
		},
	}
	taskFlags(cmd, &in)
	return cmd
}

func newTaskUpdateCmd(a *app) *cobra.Command {
	var in views.TaskForm
	cmd := &cobra.Command{
		Use:   "update <project-id> <task-id>",
		Short: "Update a task; unset flags keep their value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := projectArg(args[0])
			if err != nil {
				return err
			}
			id, err := atoi("task id", args[1])
			if err != nil {
				return err
			}
			s := views.NewTaskList(a.env, pid)
			f, err := s.EditForm(cmd.Context(), id)
			if err != nil {
				return err
			}
			applyTaskFlags(cmd, in, &f)
			if !anyChanged(cmd, taskFlagNames...) && a.interactive() {
				if err := tui.FillTask(a.locale, &f); err != nil {
					return err
				}
			}
			_, err = s.Update(cmd.Context(), id, f)
			return err
		},
	}
	taskFlags(cmd, &in)
	return cmd
}
