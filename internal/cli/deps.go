package cli

import (
	"github.com/spf13/cobra"

	"wbsplanner/internal/tui"
	"wbsplanner/internal/views"
)

func newDepsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deps",
		Aliases: []string{"dependencies", "d"},
		Short:   "Manage task dependencies of a project",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <project-id>",
			Short: "List dependencies",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				out, err := views.NewDependencyList(a.env, pid).Render(cmd.Context())
				if err != nil {
					return err
				}
				a.println(out)
				return nil
			},
		},
		newDepCreateCmd(a),
		&cobra.Command{
			Use:   "delete <project-id> <dependency-id>",
			Short: "Delete a dependency",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := projectArg(args[0])
				if err != nil {
					return err
				}
				id, err := atoi("dependency id", args[1])
				if err != nil {
					return err
				}
				_, err = views.NewDependencyList(a.env, pid).Delete(cmd.Context(), id)
				return err
			},
		},
	)
	return cmd
}

func newDepCreateCmd(a *app) *cobra.Command {
	f := views.NewDependencyForm()
	cmd := &cobra.Command{
		Use:   "create <project-id>",
		Short: "Make one task depend on another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := projectArg(args[0])
			if err != nil {
				return err
			}
			if !anyChanged(cmd, "predecessor", "successor") && a.interactive() {
				tasks, err := a.env.Queries.Tasks(cmd.Context(), pid)
				if err != nil {
					return err
				}
				if err := tui.FillDependency(a.locale, &f, tasks); err != nil {
					return err
				}
			}
			_, err = views.NewDependencyList(a.env, pid).Create(cmd.Context(), f)
			return err
		},
	}
	cmd.Flags().StringVar(&f.PredecessorID, "predecessor", "", "Predecessor task id")
	cmd.Flags().StringVar(&f.SuccessorID, "successor", "", "Successor task id")
	cmd.Flags().StringVar(&f.DependencyType, "type", f.DependencyType, "finish_to_start, start_to_start, finish_to_finish or start_to_finish")
	cmd.Flags().StringVar(&f.LagDays, "lag", f.LagDays, "Lag in days")
	return cmd
}
