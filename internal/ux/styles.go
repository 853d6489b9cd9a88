package ux

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	LightForeground = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#5c6b80")
	DarkForeground  = lipgloss.Color("#f2f2f2")
	DarkMuted       = lipgloss.Color("#8a97ab")

	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{Foreground: LightForeground, Muted: LightMuted}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{Foreground: DarkForeground, Muted: DarkMuted, IsDark: true}
}

// DetectTheme picks a theme from COLORFGBG or JAVAXIFY_DARK_MODE, defaulting to light.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// "foreground;background"; backgrounds 0-6 and 8 are dark.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	if os.Getenv("JAVAXIFY_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components of notifier output.
type Styles struct {
	Theme   Theme
	OK      lipgloss.Style
	Fail    lipgloss.Style
	Kind    lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	Heading lipgloss.Style
}

// NewStyles builds the styles for theme using renderer r.
func NewStyles(r *lipgloss.Renderer, theme Theme) Styles {
	return Styles{
		Theme:   theme,
		OK:      r.NewStyle().Foreground(Success).Bold(true),
		Fail:    r.NewStyle().Foreground(Destructive).Bold(true),
		Kind:    r.NewStyle().Foreground(Warning),
		Path:    r.NewStyle().Foreground(theme.Foreground),
		Muted:   r.NewStyle().Foreground(theme.Muted),
		Heading: r.NewStyle().Foreground(Info).Bold(true),
	}
}
