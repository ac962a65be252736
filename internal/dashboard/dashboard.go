// Package dashboard is the interactive progress view: it recomputes the
// diver's progress through the tracker and renders the report, refreshing
// on demand.
package dashboard

import (
	"context"
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wreckdiver/internal/progress"
	"github.com/abhisek/wreckdiver/internal/report"
	"github.com/abhisek/wreckdiver/internal/tracker"
)

type resultMsg struct {
	result *progress.Result
}

type errMsg struct {
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	tracker *tracker.Tracker
	spinner spinner.Model

	width   int
	height  int
	loading bool
	result  *progress.Result
	err     error
}

// New creates the dashboard model.
func New(tr *tracker.Tracker) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9"))
	return Model{
		tracker: tr,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.recalculate())
}

func (m Model) recalculate() tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		res, err := tr.Recalculate(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return resultMsg{result: res}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.recalculate())
		}
		return m, nil

	case resultMsg:
		m.loading = false
		m.result = msg.result
		m.err = nil
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " surveying the dive log..."
	case m.err != nil:
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB7185")).
			Render("Error: " + m.err.Error())
	case m.result != nil:
		content = report.Render(m.result)
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).
		Render("r refresh · q quit")

	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(content + "\n" + footer))
	return v
}

// Run starts the Bubble Tea program.
func Run(tr *tracker.Tracker) error {
	p := tea.NewProgram(New(tr))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
