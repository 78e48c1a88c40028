package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

const (
	colorAccent   = "#4ec9b0"
	colorHeading  = "#569cd6"
	colorMuted    = "#666666"
	colorSubtle   = "#999999"
	colorText     = "#d4d4d4"
	colorDisabled = "#3c3c3c"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
)

// palette holds the colours the fades blend between.
type palette struct {
	surface string // terminal background
	shade   string // fully faded-in backdrop
	panel   string // panel border at full opacity
}

func detectPalette() palette {
	if termenv.HasDarkBackground() {
		return palette{surface: "#1e1e1e", shade: "#5a5a5a", panel: colorHeading}
	}
	return palette{surface: "#ffffff", shade: "#b0b0b0", panel: colorHeading}
}

// blend mixes two hex colours; t=0 is from, t=1 is to.
func blend(from, to string, t float64) lipgloss.Color {
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(to)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(to)
	}
	if t <= 0 {
		return lipgloss.Color(from)
	}
	if t >= 1 {
		return lipgloss.Color(to)
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
