package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"wbsplanner/internal/client"
	"wbsplanner/internal/i18n"
)

// Exporter requests an export file from the server.
type Exporter interface {
	ExportProjects(ctx context.Context, format string, projectID *int) (*client.Download, error)
}

// Reports shows the statistics and saves exports.
type Reports struct {
	env      *Env
	exporter Exporter
}

func NewReports(env *Env, exporter Exporter) *Reports {
	return &Reports{env: env, exporter: exporter}
}

func (s *Reports) Render(ctx context.Context) (string, error) {
	stats, err := s.env.Queries.Statistics(ctx)
	if err != nil {
		return "", err
	}
	l := s.env.label
	st := s.env.Styles

	card := func(label string, n int) string {
		return st.Border.Padding(0, 1).Render(st.Muted.Render(label) + "\n" + st.Title.UnsetMarginBottom().Render(fmt.Sprint(n)))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(l("stats.projects"), stats.ProjectStats.TotalProjects),
		card(l("stats.active"), stats.ProjectStats.ActiveProjects),
		card(l("stats.completed_projects"), stats.ProjectStats.CompletedProjects),
		card(l("stats.tasks"), stats.TaskStats.TotalTasks),
		card(l("stats.completed_tasks"), stats.TaskStats.CompletedTasks),
		card(l("stats.overdue"), stats.TaskStats.OverdueTasks),
	)

	byStatus := st.table(
		[]string{l("col.status"), l("col.tasks")},
		[][]string{
			{tag(statusColors, "not_started", l("not_started")), fmt.Sprint(stats.TaskStats.NotStartedTasks)},
			{tag(statusColors, "in_progress", l("in_progress")), fmt.Sprint(stats.TaskStats.InProgressTasks)},
			{tag(statusColors, "completed", l("completed")), fmt.Sprint(stats.TaskStats.CompletedTasks)},
			{tag(statusColors, "on_hold", l("on_hold")), fmt.Sprint(stats.TaskStats.OnHoldTasks)},
		},
	)

	rows := make([][]string, 0, len(stats.ProjectProgress))
	for _, p := range stats.ProjectProgress {
		rows = append(rows, []string{
			p.Name,
			tag(statusColors, string(p.Status), l(string(p.Status))),
			fmt.Sprint(p.TotalTasks),
			fmt.Sprint(p.CompletedTasks),
			fmt.Sprintf("%d%%", p.Progress),
		})
	}
	progress := st.Muted.Render(s.env.Locale.T(i18n.NoData))
	if len(rows) > 0 {
		progress = st.table([]string{l("col.project"), l("col.status"), l("col.tasks"), l("col.completed"), l("col.progress")}, rows)
	}

	return strings.Join([]string{st.Title.Render(l("title.reports")), cards, byStatus, progress}, "\n"), nil
}

// Export downloads the report in format for projectID (nil for all projects)
// and writes it into dir. It returns the written path.
func (s *Reports) Export(ctx context.Context, format string, projectID *int, dir string) (string, error) {
	format = strings.ToLower(format)
	dl, err := s.exporter.ExportProjects(ctx, format, projectID)
	if err != nil {
		return "", s.exportFailed(err)
	}

	path := filepath.Join(dir, filepath.Base(dl.Filename))
	if err := os.WriteFile(path, dl.Body, 0o644); err != nil {
		return "", s.exportFailed(err)
	}
	s.env.logger().Info("Export saved", zap.String("format", format), zap.String("path", path), zap.Int("bytes", len(dl.Body)))
	s.env.Notify.Success(strings.ToUpper(format) + s.env.Locale.T(i18n.ExportDone))
	return path, nil
}

func (s *Reports) exportFailed(err error) error {
	detail := client.Detail(err)
	if detail == "" {
		detail = err.Error()
	}
	s.env.logger().Warn("Export failed", zap.Error(err))
	s.env.Notify.Error(s.env.Locale.Tf(i18n.ExportFailed, detail))
	return err
}
