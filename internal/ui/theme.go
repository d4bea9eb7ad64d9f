package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the report viewer and the console summary
var (
	accentRed  = lipgloss.Color("#ef233c")
	background = lipgloss.Color("#2b2d42")
	foreground = lipgloss.Color("#edf2f4")
	mutedGray  = lipgloss.Color("#8d99ae")

	colorSuccess = lipgloss.Color("#2ecc71")
	colorWarning = lipgloss.Color("#f39c12")
	colorError   = accentRed
	colorInfo    = lipgloss.Color("#3498db")
)

var (
	// Header style (view titles)
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			Background(accentRed).
			Padding(0, 1).
			Width(80)

	// Footer style (keybindings)
	FooterStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Background(background).
			Padding(0, 1).
			Width(80)

	// Title style (report sections)
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentRed).
			MarginTop(1).
			MarginBottom(1)

	// Content style
	ContentStyle = lipgloss.NewStyle().
			Foreground(foreground)

	// Muted text style
	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	// Success style (markers written)
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	// Error style (failed items)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// Warning style (skipped items)
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	// Info style (field labels)
	InfoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	// Stat style (counters)
	StatStyle = lipgloss.NewStyle().
			Foreground(accentRed).
			Bold(true)
)

// Status markers for per-item lines
var (
	OKMarker   = lipgloss.NewStyle().Foreground(colorSuccess).SetString("[OK]")
	WarnMarker = lipgloss.NewStyle().Foreground(colorWarning).SetString("[WARN]")
	FailMarker = lipgloss.NewStyle().Foreground(colorError).SetString("[FAIL]")
)

// FormatKeybinding formats a keybinding for display in footer
func FormatKeybinding(key, description string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(accentRed).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(mutedGray)

	return keyStyle.Render(key) + " " + descStyle.Render(description)
}

// FormatHeader formats a header with consistent styling
func FormatHeader(title string) string {
	return HeaderStyle.Render(title)
}

// FormatFooter formats footer with keybindings
func FormatFooter(keybindings ...string) string {
	footer := ""
	for i, kb := range keybindings {
		if i > 0 {
			footer += "  "
		}
		footer += kb
	}
	return FooterStyle.Render(footer)
}

// FormatStatusOK returns an [OK] marker with message
func FormatStatusOK(message string) string {
	return OKMarker.String() + " " + message
}

// FormatStatusWarn returns a [WARN] marker with message
func FormatStatusWarn(message string) string {
	return WarnMarker.String() + " " + message
}

// FormatStatusFail returns a [FAIL] marker with message
func FormatStatusFail(message string) string {
	return FailMarker.String() + " " + message
}
