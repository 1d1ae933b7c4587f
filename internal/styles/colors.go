package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Magenta = "#FF6188" // Titles, emphasis
	Comment = "#727072" // Dim text, help
)

// Common styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
)
