package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/autoclick/internal/clicker"
)

// pollMsg is sent when the status poll timer fires.
type pollMsg time.Time

// AutoStoppedMsg reports that the engine stopped itself.
type AutoStoppedMsg struct {
	Reason clicker.StopReason
}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		m.refresh()
		return m, poll()

	case AutoStoppedMsg:
		m.refresh()
		m.LastStop = msg.Reason.String()
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.ShowHelp {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			m.ShowHelp = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.Engine.Running() {
				m.Engine.Stop()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHelp):
			m.ShowHelp = true
			m.help.ShowAll = true
		case key.Matches(msg, m.keys.Toggle):
			if m.Engine.Running() {
				return stop(m), nil
			}
			return start(m), nil
		case key.Matches(msg, m.keys.Start):
			return start(m), nil
		case key.Matches(msg, m.keys.Stop):
			return stop(m), nil
		}
	}

	return m, nil
}

func start(m Model) Model {
	if err := m.Engine.Start(); err != nil {
		m.ErrorMessage = err.Error()
		m.refresh()
		return m
	}
	m.ErrorMessage = ""
	m.LastStop = ""
	m.refresh()
	return m
}

func stop(m Model) Model {
	if m.Engine.Running() {
		m.Engine.Stop()
		m.LastStop = clicker.StopRequested.String()
	}
	m.refresh()
	return m
}

func poll() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}
