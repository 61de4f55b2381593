package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wbsplanner/internal/client"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/tui"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				if !a.interactive() {
					return errors.New("--username and --password are required")
				}
				var err error
				if username == "" {
					if username, err = tui.PromptForString(tui.Prompt{Message: a.locale.Label("col.username"), Required: true}); err != nil {
						return err
					}
				}
				if password == "" {
					if password, err = tui.PromptForString(tui.Prompt{Message: a.locale.Label("col.password"), Required: true, Secret: true}); err != nil {
						return err
					}
				}
			}

			resp, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				a.logger.Warn("Login failed", zap.String("username", username), zap.Error(err))
				a.env.Notify.Error(a.locale.Tf(i18n.LoginFailed, client.Detail(err)))
				return err
			}
			if err := a.store.Save(resp.AccessToken, &resp.User); err != nil {
				return err
			}
			a.logger.Info("Logged in", zap.String("username", resp.User.Username))
			a.env.Notify.Success(fmt.Sprintf("%s (%s)", a.locale.T(i18n.LoginDone), resp.User.Username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	return public(cmd)
}

func newLogoutCmd(a *app) *cobra.Command {
	return public(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.env.Notify.Success(a.locale.T(i18n.LogoutDone))
			return nil
		},
	})
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			a.println(fmt.Sprintf("%s (%s) %s %s", u.Username, u.FullName, u.Email, a.locale.Label(string(u.Role))))
			return nil
		},
	}
}
