// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the tone explorer
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI program. The caller drains control.Requests and sends
// PlayedMsg back through the returned program.
func Run(control *Control) *tea.Program {
	return tea.NewProgram(NewModel(control), tea.WithAltScreen())
}
