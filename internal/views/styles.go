// Package views holds the screens of the terminal client: tables filled by
// cached read-queries, forms validated before any request, and deletes gated
// by a confirmation.
package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"wbsplanner/internal/model"
)

type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Border  lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 2),
		TabOn: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 2),
	}
}

// statusColors follow the chart bar colors.
var statusColors = map[string]string{
	string(model.TaskCompleted):    "#52c41a",
	string(model.TaskInProgress):   "#1890ff",
	string(model.TaskOnHold):       "#faad14",
	string(model.ProjectActive):    "#1890ff",
	string(model.ProjectCancelled): "#ff4d4f",
}

var roleColors = map[string]string{
	string(model.RoleSystemAdmin):    "#ff4d4f",
	string(model.RoleProjectOwner):   "#722ed1",
	string(model.RoleProjectManager): "#1890ff",
	string(model.RoleTeamMember):     "#52c41a",
}

// tag renders label in the color registered for value, gray otherwise.
func tag(colors map[string]string, value, label string) string {
	c, ok := colors[value]
	if !ok {
		c = "#8c8c8c"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(label)
}

func (s Styles) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		}).
		String()
}
