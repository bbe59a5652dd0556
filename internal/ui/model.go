package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/autoclick/internal/clicker"
)

// PollInterval is how often the surface refreshes the engine status.
const PollInterval = 100 * time.Millisecond

// Engine is the part of the click engine the status surface drives.
type Engine interface {
	Start() error
	Stop()
	Running() bool
	Terminated() bool
	ClickCount() int
	ClickLimit() int
	Health() clicker.Health
}

// Summary describes the active configuration for display.
type Summary struct {
	Button    string
	ClickType string
	Interval  string
	Target    string
	Mode      string
	Humanize  bool
}

// Model holds the state of the status surface.
type Model struct {
	Engine       Engine
	State        state
	Clicks       int
	Limit        int
	Health       clicker.Health
	LastStop     string
	ErrorMessage string
	Summary      Summary
	ShowHelp     bool
	Version      string
	StartedAt    time.Time

	keys KeyMap
	help help.Model
	now  func() time.Time
}

// InitialModel returns an idle model driving engine.
func InitialModel(engine Engine, summary Summary) Model {
	m := Model{
		Engine:  engine,
		State:   stateIdle,
		Summary: summary,
		keys:    DefaultKeys(),
		help:    NewHelpModel(),
		now:     time.Now,
	}
	m.refresh()
	return m
}

// SetVersion sets the version shown in the footer.
func (m *Model) SetVersion(v string) {
	m.Version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return poll()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// Elapsed returns how long the current run has been going.
func (m Model) Elapsed() time.Duration {
	if m.State != stateRunning || m.StartedAt.IsZero() {
		return 0
	}
	return m.now().Sub(m.StartedAt)
}

// refresh copies the engine status into the model.
func (m *Model) refresh() {
	m.Clicks = m.Engine.ClickCount()
	m.Limit = m.Engine.ClickLimit()
	m.Health = m.Engine.Health()

	switch {
	case m.Engine.Terminated():
		m.State = stateTerminated
	case m.Engine.Running():
		if m.State != stateRunning {
			m.StartedAt = m.now()
		}
		m.State = stateRunning
	default:
		m.State = stateIdle
	}
}
