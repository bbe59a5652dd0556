package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/autoclick/internal/clicker"
)

// Notifier forwards engine auto-stop events to a running program. It is
// created before the engine and attached once the program exists.
type Notifier struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program that receives events.
func (n *Notifier) Attach(p *tea.Program) {
	n.program.Store(p)
}

// AutoStopped is suitable for clicker.WithAutoStop.
func (n *Notifier) AutoStopped(reason clicker.StopReason) {
	if p := n.program.Load(); p != nil {
		p.Send(AutoStoppedMsg{Reason: reason})
	}
}

// NewProgram builds the full-screen program for m. Signal handling is left
// to the caller.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}, opts...)
	return tea.NewProgram(m, opts...)
}
