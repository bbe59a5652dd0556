package ui

import (
	"fmt"
	"strings"
	"time"
)

const progressWidth = 24

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView(m)
	}

	var b strings.Builder

	b.WriteString(Current.Title.Render("Autoclick"))
	if m.Version != "" {
		b.WriteString(Current.Help.Render("v" + m.Version))
	}
	b.WriteString("\n\n")

	switch m.State {
	case stateRunning:
		b.WriteString(Current.ActiveStatus.Render("● Running"))
		b.WriteString(Current.Help.Render(formatElapsed(m.Elapsed())))
	case stateTerminated:
		b.WriteString(Current.InactiveStatus.Render("■ Terminated"))
	default:
		b.WriteString(Current.InactiveStatus.Render("○ Idle"))
	}
	b.WriteString("\n\n")

	b.WriteString(Current.Panel.Render(detailsView(m)))
	b.WriteString("\n")

	if m.Limit > 0 {
		b.WriteString(" " + progressBar(m.Clicks, m.Limit) + "\n")
	}

	if m.LastStop != "" && m.State != stateRunning {
		b.WriteString("\n" + Current.Notice.Render("Last run ended: "+m.LastStop))
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + Current.Help.Render(m.help.View(m.keys.ForState(m.State))))
	return b.String()
}

func detailsView(m Model) string {
	clicks := fmt.Sprintf("%d", m.Clicks)
	if m.Limit > 0 {
		clicks = fmt.Sprintf("%d / %d", m.Clicks, m.Limit)
	}

	humanize := "off"
	if m.Summary.Humanize {
		humanize = "on"
	}

	rows := [][2]string{
		{"Clicks", Current.Counter.Render(clicks)},
		{"Backend", m.Health.String()},
		{"Button", m.Summary.Button + " " + m.Summary.ClickType},
		{"Interval", m.Summary.Interval},
		{"Target", m.Summary.Target},
		{"Mode", m.Summary.Mode},
		{"Humanize", humanize},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Current.Label.Render(row[0]) + Current.Value.Render(row[1]))
	}
	return b.String()
}

func progressBar(clicks, limit int) string {
	filled := clicks * progressWidth / limit
	filled = min(max(filled, 0), progressWidth)

	var bar strings.Builder
	for i := 0; i < progressWidth; i++ {
		if i < filled {
			bar.WriteString(Current.ProgressFilled.Render(" "))
		} else {
			bar.WriteString(Current.ProgressEmpty.Render(" "))
		}
	}
	return bar.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func helpView(m Model) string {
	text := `Autoclick Help

The engine clicks with the settings shown on the main screen.
Change them in autoclick.yaml or with flags, then restart.

Keys:
  enter/space : Start or stop clicking
  s           : Start
  x/esc       : Stop
  h/?         : Toggle this help
  q           : Stop and quit

Clicking stops on its own when the click limit is reached
or when the captured background window closes.

Press any key to close help`

	return Current.Help.Render(text) + "\n\n" + Current.Help.Render(m.help.View(m.keys.ForState(m.State)))
}
