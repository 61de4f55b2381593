package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wbsplanner/internal/views"
)

type detailKeyMap struct {
	Next   key.Binding
	Tasks  key.Binding
	Deps   key.Binding
	Gantt  key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var detailKeys = detailKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Tasks:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "tasks")),
	Deps:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "dependencies")),
	Gantt:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "gantt")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)

type renderedMsg struct {
	body string
	err  error
}

// DetailModel is the interactive project detail screen.
type DetailModel struct {
	ctx    context.Context
	detail *views.ProjectDetail
	help   string

	body   string
	err    error
	width  int
	height int
}

func NewDetailModel(ctx context.Context, detail *views.ProjectDetail, help string) DetailModel {
	return DetailModel{ctx: ctx, detail: detail, help: help}
}

func (m DetailModel) render() tea.Cmd {
	return func() tea.Msg {
		body, err := m.detail.Render(m.ctx)
		return renderedMsg{body: body, err: err}
	}
}

func (m DetailModel) Init() tea.Cmd {
	return m.render()
}

func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case renderedMsg:
		m.body, m.err = msg.body, msg.err
		return m, nil

	case tea.FocusMsg:
		if m.detail.Gantt == nil || m.detail.Active() != views.TabGantt {
			return m, nil
		}
		m.detail.Gantt.Retry(m.ctx)
		return m, m.render()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, detailKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, detailKeys.Next):
			m.detail.Next()
			m.detail.Show(m.ctx, m.detail.Active())
		case key.Matches(msg, detailKeys.Tasks):
			m.detail.Show(m.ctx, views.TabTasks)
		case key.Matches(msg, detailKeys.Deps):
			m.detail.Show(m.ctx, views.TabDependencies)
		case key.Matches(msg, detailKeys.Gantt):
			m.detail.Show(m.ctx, views.TabGantt)
		case key.Matches(msg, detailKeys.Reload):
			m.detail.Reload(m.ctx)
		default:
			return m, nil
		}
		return m, m.render()
	}
	return m, nil
}

func (m DetailModel) View() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(m.err.Error())
	} else {
		b.WriteString(m.body)
	}
	if m.help != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help))
	}
	b.WriteString("\n")
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

// RunDetail runs the detail screen until the user quits.
func RunDetail(ctx context.Context, detail *views.ProjectDetail, help string) error {
	p := tea.NewProgram(NewDetailModel(ctx, detail, help), tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
