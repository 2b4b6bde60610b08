// Package ui holds the terminal styling shared by the CLI commands and the
// interactive shell.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/shai-term/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Cyan
			Bold(true)

	severityStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		domain.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		domain.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true), // Orange
		domain.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("160")).Bold(true),
	}
)

// Title renders a section heading.
func Title(text string) string { return titleStyle.Render(text) }

// Dim renders secondary text.
func Dim(text string) string { return dimStyle.Render(text) }

// Success renders a confirmation.
func Success(text string) string { return successStyle.Render(text) }

// Command renders a shell command.
func Command(text string) string { return commandStyle.Render(text) }

// Severity renders a severity badge such as [HIGH].
func Severity(s domain.Severity) string {
	style, ok := severityStyles[s]
	if !ok {
		style = severityStyles[domain.SeverityLow]
	}
	return style.Render("[" + strings.ToUpper(string(s)) + "]")
}

// HealthMark renders the status marker of a doctor check.
func HealthMark(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return successStyle.Render("✓")
	case domain.HealthWarn:
		return severityStyles[domain.SeverityMedium].Render("!")
	default:
		return severityStyles[domain.SeverityHigh].Render("✗")
	}
}

// MatchWarning describes a safeguard hit on one line.
func MatchWarning(m domain.MatchResult) string {
	pattern := ""
	if m.MatchedPattern != nil {
		pattern = Dim(fmt.Sprintf(" (matched %q)", *m.MatchedPattern))
	}
	return fmt.Sprintf("%s %s%s", Severity(m.Severity), m.Description, pattern)
}

// HarmWarning describes an AI harm verdict on one line.
func HarmWarning(h domain.HarmResult) string {
	reason := h.Reason
	if reason == "" {
		reason = "The assistant flagged this command as harmful"
	}
	return fmt.Sprintf("%s %s", Severity(h.Severity), reason)
}
