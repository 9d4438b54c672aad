package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TheDeepDelve/cubeviz"
	"github.com/TheDeepDelve/cubeviz/internal/render"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View renders the player.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.session.Snapshot()
	group := m.session.Group()

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubeviz"))
	b.WriteString("\n\n")

	net := render.Net(m.session.Lattice(), render.Options{Highlight: group.Members, Labels: true})
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(net), " ", m.sidePanel(st, group)))
	b.WriteString("\n")

	b.WriteString(renderStatus(st.Status))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(dimStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sidePanel(st cubeviz.State, group cubeviz.Group) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scramble length: %d\n", m.scrambleLength)
	if len(st.ScrambleHistory) > 0 {
		fmt.Fprintf(&b, "Scramble: %s\n", st.Scramble())
	}
	if cur, ok := currentMove(m.session.Queue()); ok && len(group.Members) > 0 {
		fmt.Fprintf(&b, "Move: %s  axis %s  %.0f°\n", cur, group.Axis, group.Angle*180/math.Pi)
	}

	for _, method := range cubeviz.Methods {
		sol, ok := st.Results[method]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d moves):\n%s\n", method.DisplayName(), sol.Len(), wrap(sol.String(), 48))
	}
	for _, method := range st.InFlight {
		fmt.Fprintf(&b, "%s: waiting for solver...\n", method.DisplayName())
	}

	if stats := st.Stats; stats.Total() > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Step %d/%d  %.1fs\n", stats.CurrentMove, stats.Total(), stats.Elapsed.Seconds())
		b.WriteString(m.progress.ViewAs(stats.Percent() / 100))
		b.WriteString("\n")
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func currentMove(queue []string) (string, bool) {
	if len(queue) == 0 {
		return "", false
	}
	return queue[0], true
}

func renderStatus(status string) string {
	if strings.HasPrefix(status, "Error") {
		return errorStyle.Render(status)
	}
	return statusStyle.Render(status)
}

// wrap breaks a move string into lines of at most width characters.
func wrap(s string, width int) string {
	var lines []string
	var line strings.Builder
	for _, tok := range strings.Fields(s) {
		if line.Len() > 0 && line.Len()+1+len(tok) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(tok)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
