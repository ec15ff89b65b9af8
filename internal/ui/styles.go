package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors, chosen once at startup based on the terminal
// background.
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSurface   lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background.
func initializeColors() {
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
		return
	case "dark":
		setDarkThemeColors()
		return
	}
	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
}

var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleText = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StyleTextDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)

	StyleFormLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)

	StyleContentContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				MarginTop(1).
				MarginBottom(1)

	StyleContainer = lipgloss.NewStyle().
			Padding(1, 2)
)
