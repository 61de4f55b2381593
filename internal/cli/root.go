// Package cli is the wbs terminal client.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const authAnnotation = "auth"

// public marks a command that runs without a session.
func public(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[authAnnotation] = "none"
	return cmd
}

// NewRootCommand builds the command tree. Subcommands share one app that is
// assembled before any of them runs.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Home == "" {
		opts.Home = DefaultHome()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "wbs",
		Short: "WBS planner - projects, tasks, dependencies and Gantt charts",
		Long: `wbs talks to the WBS planner server.

Configuration is read from ~/.wbsplanner/config.yaml (server_url, timeout,
locale, log_file); WBS_SERVER_URL overrides the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if cmd.Annotations[authAnnotation] == "none" {
				return nil
			}
			return a.nav.Require("/" + cmd.Name())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&a.flags.server, "server", "", "Server URL (overrides config)")
	root.PersistentFlags().StringVar(&a.flags.locale, "locale", "", "Display language: ja or en")
	root.PersistentFlags().BoolVarP(&a.flags.assumeYes, "yes", "y", false, "Answer yes to confirmations")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProjectsCmd(a),
		newTasksCmd(a),
		newDepsCmd(a),
		newGanttCmd(a),
		newReportsCmd(a),
		newUsersCmd(a),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	root := NewRootCommand(Options{})
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
