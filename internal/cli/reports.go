package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wbsplanner/internal/views"
)

var exportFormats = []string{"csv", "excel", "pdf"}

func newReportsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report", "r"},
		Short:   "Statistics and exports",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show project and task statistics",
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := views.NewReports(a.env, a.client).Render(cmd.Context())
				if err != nil {
					return err
				}
				a.println(out)
				return nil
			},
		},
		newExportCmd(a),
	)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format  string
		project int
		dir     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download projects as csv, excel or pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			valid := false
			for _, f := range exportFormats {
				valid = valid || f == format
			}
			if !valid {
				return fmt.Errorf("unsupported format %q (want %s)", format, strings.Join(exportFormats, ", "))
			}
			var pid *int
			if project > 0 {
				pid = &project
			}
			path, err := views.NewReports(a.env, a.client).Export(cmd.Context(), format, pid, dir)
			if err != nil {
				return err
			}
			a.println(path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, excel or pdf")
	cmd.Flags().IntVar(&project, "project", 0, "Only this project")
	cmd.Flags().StringVarP(&dir, "dir", "o", ".", "Directory to write the file to")
	return cmd
}
