package utils

import (
	"log"

	"github.com/charmbracelet/lipgloss"
)

var Success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
var Fail = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
var Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9300"))
var Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
var Gray = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
var Cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
var Default = lipgloss.NewStyle()

// Handle names in build summaries.
var Handle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

var WarningBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(lipgloss.Color("#ff9300")).
	Padding(0, 1)

var ErrorBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")).
	Background(lipgloss.Color("196")).
	Padding(0, 1)

func LogWithColor(color lipgloss.Style, text string) {
	log.SetFlags(0)
	log.Printf("%s\n", color.Render(text))
}
