package tui

import "github.com/charmbracelet/lipgloss"

// Styles.
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	priceStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	neutralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sparkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	volumeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	simulatedStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("208"))
	unusualStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
)

// toneStyle maps a colour name from the dashboard formatters to a style.
func toneStyle(tone string) lipgloss.Style {
	switch tone {
	case "green":
		return gainStyle
	case "red":
		return lossStyle
	case "amber":
		return neutralStyle
	default:
		return lipgloss.NewStyle()
	}
}
