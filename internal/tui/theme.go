package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Chronicle palette, matching the programme's newspaper look.
const (
	colorInk     = "#2b1f12"
	colorPaper   = "#f3ead6"
	colorBrass   = "#ecc66e"
	colorMuted   = "#6b5a46"
	colorError   = "#8b0000"
	colorLink    = "#1d4c8f"
	colorSuccess = "#2f5d3a"
)

type Theme struct {
	Masthead    lipgloss.Style
	Headline    lipgloss.Style
	Subheadline lipgloss.Style
	Body        lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Chip        lipgloss.Style
	ChipActive  lipgloss.Style
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	TabBar      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Button      lipgloss.Style
	HelpBar     lipgloss.Style
	Spinner     lipgloss.Style
}

func NewTheme() Theme {
	if os.Getenv("WVA_NO_COLOR") == "1" {
		return newNoColorTheme()
	}

	ink := lipgloss.Color(colorInk)
	brass := lipgloss.Color(colorBrass)
	muted := lipgloss.Color(colorMuted)

	return Theme{
		Masthead:    lipgloss.NewStyle().Bold(true).Foreground(ink).Background(lipgloss.Color(colorPaper)).Padding(0, 2),
		Headline:    lipgloss.NewStyle().Bold(true).Foreground(ink),
		Subheadline: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Body:        lipgloss.NewStyle().Foreground(ink),
		Label:       lipgloss.NewStyle().Foreground(muted).Bold(true),
		Value:       lipgloss.NewStyle().Foreground(ink),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)).Bold(true),
		Chip:        lipgloss.NewStyle().Foreground(ink).Border(lipgloss.RoundedBorder()).BorderForeground(ink).Padding(0, 1),
		ChipActive:  lipgloss.NewStyle().Foreground(ink).Background(brass).Border(lipgloss.RoundedBorder()).BorderForeground(ink).Padding(0, 1).Bold(true),
		Card:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted).Padding(0, 1),
		CardFocused: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(ink).Padding(0, 1).Bold(true),
		TabBar:      lipgloss.NewStyle().Foreground(muted),
		Tab:         lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Foreground(ink).Background(brass).Padding(0, 1).Bold(true),
		Button:      lipgloss.NewStyle().Foreground(ink).Background(brass).Padding(0, 2).Bold(true),
		HelpBar:     lipgloss.NewStyle().Foreground(muted),
		Spinner:     lipgloss.NewStyle().Foreground(muted),
	}
}

func newNoColorTheme() Theme {
	plain := lipgloss.NewStyle()
	bordered := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	return Theme{
		Masthead:    plain.Bold(true),
		Headline:    plain.Bold(true),
		Subheadline: plain,
		Body:        plain,
		Label:       plain.Bold(true),
		Value:       plain,
		Muted:       plain,
		Error:       plain.Bold(true),
		Success:     plain.Bold(true),
		Chip:        bordered,
		ChipActive:  bordered.Bold(true),
		Card:        bordered,
		CardFocused: bordered.Bold(true),
		TabBar:      plain,
		Tab:         plain.Padding(0, 1),
		TabActive:   plain.Padding(0, 1).Bold(true).Reverse(true),
		Button:      plain.Bold(true),
		HelpBar:     plain,
		Spinner:     plain,
	}
}
