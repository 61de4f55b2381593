package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wbsplanner/internal/tui"
	"wbsplanner/internal/views"
)

var tabNames = map[string]views.Tab{
	"tasks":        views.TabTasks,
	"dependencies": views.TabDependencies,
	"deps":         views.TabDependencies,
	"gantt":        views.TabGantt,
}

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List projects",
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := views.NewProjectList(a.env).Render(cmd.Context())
				if err != nil {
					return err
				}
				a.println(out)
				return nil
			},
		},
		newProjectShowCmd(a),
		newProjectCreateCmd(a),
		newProjectUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <project-id>",
			Short: "Delete a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := atoi("project id", args[0])
				if err != nil {
					return err
				}
				_, err = views.NewProjectList(a.env).Delete(cmd.Context(), id)
				return err
			},
		},
	)
	return cmd
}

func newProjectShowCmd(a *app) *cobra.Command {
	var tab string
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its tasks, dependencies and Gantt chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := projectArg(args[0])
			if err != nil {
				return err
			}
			g, _ := a.ganttView(pid)
			unmount := g.Mount(cmd.Context())
			defer unmount()
			d := views.NewProjectDetail(a.env, pid, g)

			if tab == "" && a.interactive() {
				return tui.RunDetail(cmd.Context(), d, a.locale.Label("help.detail"))
			}
			if tab != "" {
				t, ok := tabNames[tab]
				if !ok {
					return fmt.Errorf("unknown tab %q", tab)
				}
				d.Show(cmd.Context(), t)
			}
			out, err := d.Render(cmd.Context())
			if err != nil {
				return err
			}
			a.println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&tab, "tab", "", "Print one tab and exit: tasks, deps or gantt")
	return cmd
}

func projectFlags(cmd *cobra.Command, f *views.ProjectForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.Status, "status", "", "planning, active, on_hold, completed or cancelled")
}

func newProjectCreateCmd(a *app) *cobra.Command {
	var f views.ProjectForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, "name", "description", "status") && a.interactive() {
				if err := tui.FillProject(a.locale, &f); err != nil {
					return err
				}
			}
			p, err := views.NewProjectList(a.env).Create(cmd.Context(), f)
			if err != nil {
				return err
			}
			a.println(fmt.Sprintf("#%d %s", p.ID, p.Name))
			return nil
		},
	}
	projectFlags(cmd, &f)
	return cmd
}

func newProjectUpdateCmd(a *app) *cobra.Command {
	var in views.ProjectForm
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update a project; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := atoi("project id", args[0])
			if err != nil {
				return err
			}
			s := views.NewProjectList(a.env)
			f, err := s.EditForm(cmd.Context(), id)
			if err != nil {
				return err
			}
			changed := cmd.Flags().Changed
			if changed("name") {
				f.Name = in.Name
			}
			if changed("description") {
				f.Description = in.Description
			}
			if changed("status") {
				f.Status = in.Status
			}
			if !anyChanged(cmd, "name", "description", "status") && a.interactive() {
				if err := tui.FillProject(a.locale, &f); err != nil {
					return err
				}
			}
			_, err = s.Update(cmd.Context(), id, f)
			return err
		},
	}
	projectFlags(cmd, &in)
	return cmd
}
