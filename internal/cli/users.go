package cli

import (
	"github.com/spf13/cobra"

	"wbsplanner/internal/tui"
	"wbsplanner/internal/views"
)

// users works on the demo list, which lives for one invocation only.
func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User management (demo, not persisted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.println(views.NewUserAdmin(a.env).Render())
			return nil
		},
	}

	var f views.UserForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a user to the demo list",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := views.NewUserAdmin(a.env)
			if !anyChanged(cmd, "username", "full-name", "email", "password", "role") && a.interactive() {
				if err := tui.FillUser(a.locale, &f, true); err != nil {
					return err
				}
			}
			if _, err := s.Create(f); err != nil {
				return err
			}
			a.println(s.Render())
			return nil
		},
	}
	create.Flags().StringVar(&f.Username, "username", "", "Username")
	create.Flags().StringVar(&f.FullName, "full-name", "", "Full name")
	create.Flags().StringVar(&f.Email, "email", "", "Email")
	create.Flags().StringVar(&f.Password, "password", "", "Password")
	create.Flags().StringVar(&f.Role, "role", "team_member", "system_admin, project_owner, project_manager, team_member or viewer")
	create.Flags().BoolVar(&f.IsActive, "active", true, "Account is active")

	cmd.AddCommand(create)
	return cmd
}
