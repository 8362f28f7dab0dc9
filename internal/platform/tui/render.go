package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/theory-games/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	frozenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// styled renders text in a core color.
func styled(c core.Color, text string) string {
	style, ok := colorStyles[c]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	return style.Render(text)
}

// padRight pads s with spaces to width terminal cells. Emoji avatars are two
// cells wide, so byte or rune counts would misalign columns.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// formatCountdown renders a remaining duration as m:ss.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// formatValue renders a numeric answer with its unit.
func formatValue(v float64, unit string) string {
	s := fmt.Sprintf("%.6g", v)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// playerLabel renders "avatar name".
func playerLabel(p core.Player) string {
	if p.Avatar == "" {
		return p.Name
	}
	return p.Avatar + " " + p.Name
}

// powerUpList renders held power-ups as glyph×uses.
func powerUpList(p core.Player) string {
	if len(p.PowerUps) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(p.PowerUps))
	for _, pu := range p.PowerUps {
		parts = append(parts, fmt.Sprintf("%s×%d", pu.Type.Glyph(), pu.Uses))
	}
	return strings.Join(parts, " ")
}

// avatars are handed out to hot-seat players in order.
var avatars = []string{"🦊", "🐼", "🐙", "🦉", "🐢", "🦄", "🐝", "🐧"}

func avatarFor(i int) string {
	return avatars[i%len(avatars)]
}
