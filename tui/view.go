package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// maxNoteLines caps the release notes panel.
	maxNoteLines = 12
	defaultWidth = 92
	columnGap    = 2
	minListW     = 40
	minSideW     = 34
)

var (
	frameStyle = lipgloss.NewStyle().Padding(1, 2)
	faintStyle = lipgloss.NewStyle().Faint(true)
	boldStyle  = lipgloss.NewStyle().Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	boxStyle = lipgloss.NewStyle().
			Padding(1, 1).
			MarginTop(1).
			Border(lipgloss.RoundedBorder())

	activeBoxStyle = boxStyle.Border(lipgloss.ThickBorder())

	bannerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder())

	failureStyle = bannerStyle.Bold(true)
)

// layout holds the column widths for one frame.
type layout struct {
	total, list, side, sideInner int
}

func newLayout(termWidth int) layout {
	total := termWidth - 4
	if total <= 0 {
		total = defaultWidth
	}
	avail := total - 4 - columnGap
	l := layout{total: total, list: avail * 2 / 3}
	l.side = avail - l.list
	l.list = max(l.list, minListW)
	l.side = max(l.side, minSideW)
	l.sideInner = max(l.side-4, 10)
	return l
}

func (m model) View() string {
	lay := newLayout(m.width)

	row := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.viewAssets(lay),
		strings.Repeat(" ", columnGap),
		m.viewSide(lay),
	)

	parts := []string{m.viewHeader(lay), row}
	if m.notes != "" {
		parts = append(parts, boxStyle.Width(lay.total-4).Render(
			boldStyle.Render("Release Notes")+"\n"+clipLines(m.notes, maxNoteLines),
		))
	}
	parts = append(parts, "\n"+faintStyle.Render(helpText))

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) viewHeader(lay layout) string {
	label := "Latest Release"
	if m.release != nil {
		label += ": " + m.release.Name
	}

	repo := m.owner + "/" + m.repo
	switch {
	case m.loading:
		repo += "  •  " + m.spin.View() + " Loading…"
	case m.downloading:
		repo += "  •  " + m.spin.View() + " Downloading…"
	}

	return headerStyle.Width(lay.total - 4).Render(boldStyle.Render(label) + "\n" + faintStyle.Render(repo))
}

func (m model) viewAssets(lay layout) string {
	style, heading := boxStyle, "Downloads"
	if m.focus == focusAssets {
		style, heading = activeBoxStyle, "▶ "+heading
	}
	return style.Width(lay.list).Render(boldStyle.Render(heading) + "\n" + m.assets.View())
}

func (m model) viewSide(lay layout) string {
	style, heading := boxStyle, "Save To"
	if m.focus == focusOutput {
		style, heading = activeBoxStyle, "▶ "+heading
	}

	var b strings.Builder
	b.WriteString(boldStyle.Render(heading))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("tab switches panels"))
	fmt.Fprintf(&b, "\n\n%s\n", m.output.View())

	if s := strings.TrimSpace(m.status); s != "" {
		fmt.Fprintf(&b, "\n%s\n", bannerStyle.Width(lay.sideInner).Render(s))
	}
	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", failureStyle.Width(lay.sideInner).Render("Error: "+m.err.Error()))
	}

	return style.Width(lay.side).Render(b.String())
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
