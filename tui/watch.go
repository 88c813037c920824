// Package tui provides the live status view for `ocmgr status --watch`.
// It polls the session state once per second and renders it until the
// user quits with q or ctrl-c.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/ocmgr/common"
	"github.com/yllada/ocmgr/session"
)

// StatusFunc polls the current session state.
type StatusFunc func() (session.State, int)

var (
	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	staleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tickMsg time.Time

type model struct {
	status  StatusFunc
	spinner spinner.Model
	state   session.State
	pid     int
	checked time.Time
}

func newModel(status StatusFunc) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = dimStyle

	state, pid := status()
	return model{
		status:  status,
		spinner: sp,
		state:   state,
		pid:     pid,
		checked: time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(common.WatchInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.state, m.pid = m.status()
		m.checked = time.Time(msg)
		return m, tick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var line string
	switch m.state {
	case session.StateConnected:
		line = connectedStyle.Render(fmt.Sprintf("CONNECTED pid=%d", m.pid))
	case session.StateStale:
		line = staleStyle.Render(fmt.Sprintf("STALE pid_file (pid=%d not running)", m.pid))
	default:
		line = disconnectedStyle.Render("DISCONNECTED")
	}

	return fmt.Sprintf("%s %s\n%s\n",
		m.spinner.View(),
		line,
		dimStyle.Render(fmt.Sprintf("last check %s (q to quit)",
			m.checked.Format("15:04:05"))))
}

// Watch runs the live status view until the user quits.
func Watch(status StatusFunc) error {
	_, err := tea.NewProgram(newModel(status)).Run()
	return err
}
