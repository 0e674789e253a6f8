package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-dao/internal/cli/render"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// watchEventMsg carries a refresh result into the dashboard
type watchEventMsg usecase.WatchEvent

// dashboardModel is the bubbletea model for the live dashboard
type dashboardModel struct {
	network  *config.Network
	interval time.Duration

	status  render.Status
	views   []models.ProposalView
	updated time.Time
	lastErr error

	done bool
}

func newDashboardModel(network *config.Network, interval time.Duration) dashboardModel {
	return dashboardModel{
		network:  network,
		interval: interval,
	}
}

// apply folds a watch event into the model. A failed refresh keeps the
// last good view and shows the error.
func (m dashboardModel) apply(event usecase.WatchEvent) dashboardModel {
	if event.Err != nil {
		m.lastErr = event.Err
		return m
	}
	m.status = render.NewStatus(m.network, event.Session, event.Snapshot)
	m.views = event.Views
	m.updated = time.Now()
	m.lastErr = nil
	return m
}

// Init is the initial command for bubbletea
func (m dashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		}
	case watchEventMsg:
		return m.apply(usecase.WatchEvent(msg)), nil
	}
	return m, nil
}

// View renders the UI
func (m dashboardModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	if m.status.Snapshot == nil {
		b.WriteString("Loading...\n")
	} else {
		_ = render.NewStatusRenderer(&b).Render(m.status)
		b.WriteString("\n")
		_ = render.NewProposalsRenderer(&b).Render(render.ProposalList{
			Proposals:   m.views,
			EvaluatedAt: time.Now(),
		})
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(render.FormatError(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := "q: quit"
	if !m.updated.IsZero() {
		footer = fmt.Sprintf("updated %s", m.updated.Format(time.TimeOnly))
		if m.interval > 0 {
			footer += fmt.Sprintf(", refreshing every %s", m.interval)
		}
		footer += "  q: quit"
	}
	b.WriteString(color.New(color.FgYellow).Sprint(footer + "\n"))

	return b.String()
}
