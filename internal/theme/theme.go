// Package theme holds the dark and light palettes and the lipgloss styles
// built from them.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects a palette.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
	// System follows the terminal background.
	System Mode = "system"
)

// ParseMode parses a configured theme name. Empty means System.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	case System, "":
		return System, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want dark, light or system)", s)
	}
}

// Resolve turns System into Dark or Light using darkBackground.
func (m Mode) Resolve(darkBackground bool) Mode {
	switch m {
	case Dark, Light:
		return m
	default:
		if darkBackground {
			return Dark
		}
		return Light
	}
}

// Toggle flips between Dark and Light. An unresolved System toggles as Dark.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Glyph is the indicator shown next to the title.
func (m Mode) Glyph() string {
	if m == Light {
		return "☀"
	}
	return "☾"
}

// Palette is the set of colors for one mode.
type Palette struct {
	Background  lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	InputBG     lipgloss.Color
	Border      lipgloss.Color
	Placeholder lipgloss.Color
	Completed   lipgloss.Color
	Accent      lipgloss.Color
	Error       lipgloss.Color
}

var palettes = map[Mode]Palette{
	Dark: {
		Background:  lipgloss.Color("#121212"),
		Text:        lipgloss.Color("#FFFFFF"),
		Muted:       lipgloss.Color("#767577"),
		InputBG:     lipgloss.Color("#1E1E1E"),
		Border:      lipgloss.Color("#333333"),
		Placeholder: lipgloss.Color("#AAAAAA"),
		Completed:   lipgloss.Color("#888888"),
		Accent:      lipgloss.Color("#F5DD4B"),
		Error:       lipgloss.Color("#FF6B6B"),
	},
	Light: {
		Background:  lipgloss.Color("#F5F5F5"),
		Text:        lipgloss.Color("#000000"),
		Muted:       lipgloss.Color("#767577"),
		InputBG:     lipgloss.Color("#FFFFFF"),
		Border:      lipgloss.Color("#CCCCCC"),
		Placeholder: lipgloss.Color("#555555"),
		Completed:   lipgloss.Color("#888888"),
		Accent:      lipgloss.Color("#81B0FF"),
		Error:       lipgloss.Color("#C62828"),
	},
}

// PaletteFor returns the palette for m. System uses the dark palette.
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[Dark]
}

// Styles are the rendered styles the screen uses.
type Styles struct {
	Mode      Mode
	App       lipgloss.Style
	Title     lipgloss.Style
	Indicator lipgloss.Style
	Input     lipgloss.Style
	Task      lipgloss.Style
	Done      lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

// New builds the styles for m.
func New(m Mode) Styles {
	p := PaletteFor(m)
	return Styles{
		Mode: m,
		App: lipgloss.NewStyle().
			Background(p.Background).
			Foreground(p.Text).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
		Indicator: lipgloss.NewStyle().
			Foreground(p.Accent),
		Input: lipgloss.NewStyle().
			Background(p.InputBG).
			Foreground(p.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Task: lipgloss.NewStyle().
			Foreground(p.Text),
		Done: lipgloss.NewStyle().
			Foreground(p.Completed).
			Strikethrough(true),
		Cursor: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(p.Placeholder),
		Error: lipgloss.NewStyle().
			Foreground(p.Error),
	}
}
