// ABOUTME: Bubbletea model for the interactive tone explorer
// ABOUTME: Tracks waveform, frequency and amplitude state and play requests
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tonefall/tonefall-go/pkg/synth"
)

const (
	minFrequency = 20
	maxFrequency = 8000
	freqStep     = 10

	ampStep = 0.05
)

var waveforms = []synth.Kind{synth.KindSine, synth.KindSquare, synth.KindSawtooth}

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

// PlayRequest asks the host application to render and play a tone.
type PlayRequest struct {
	Kind      synth.Kind
	Frequency float64
	Amplitude float64
}

// PlayedMsg reports a finished (or failed) playback back to the model.
type PlayedMsg struct {
	Err error
}

// Control carries requests from the TUI to the host application.
type Control struct {
	Requests chan PlayRequest
}

// NewControl creates a control channel set.
func NewControl() *Control {
	return &Control{
		Requests: make(chan PlayRequest, 4),
	}
}

// Model represents the TUI state.
type Model struct {
	waveIndex int
	frequency float64
	amplitude float64

	playing bool
	lastErr error

	control *Control

	width  int
	height int
}

// NewModel creates a model with an A4 sine at half amplitude.
func NewModel(control *Control) Model {
	return Model{
		frequency: 440,
		amplitude: 0.5,
		control:   control,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case PlayedMsg:
		m.playing = false
		m.lastErr = msg.Err
	}

	return m, nil
}

// handleKey applies key bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "w":
		m.waveIndex = (m.waveIndex + 1) % len(waveforms)
	case "up":
		m.frequency += freqStep
		if m.frequency > maxFrequency {
			m.frequency = maxFrequency
		}
	case "down":
		m.frequency -= freqStep
		if m.frequency < minFrequency {
			m.frequency = minFrequency
		}
	case "right":
		m.amplitude += ampStep
		if m.amplitude > 1 {
			m.amplitude = 1
		}
	case "left":
		m.amplitude -= ampStep
		if m.amplitude < 0 {
			m.amplitude = 0
		}
	case " ":
		if m.playing || m.control == nil {
			break
		}
		req := PlayRequest{
			Kind:      m.Waveform(),
			Frequency: m.frequency,
			Amplitude: m.amplitude,
		}
		select {
		case m.control.Requests <- req:
			m.playing = true
			m.lastErr = nil
		default:
		}
	}

	return m, nil
}

// Waveform returns the currently selected waveform kind.
func (m Model) Waveform() synth.Kind {
	return waveforms[m.waveIndex]
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := titleStyle.Render("Tonefall") + "\n\n"
	s += fmt.Sprintf("  Waveform:  %s\n", m.Waveform())
	s += fmt.Sprintf("  Frequency: %.0f Hz\n", m.frequency)
	s += fmt.Sprintf("  Amplitude: %.2f\n", m.amplitude)
	s += "\n"

	switch {
	case m.playing:
		s += "  Playing...\n"
	case m.lastErr != nil:
		s += fmt.Sprintf("  Playback error: %v\n", m.lastErr)
	default:
		s += "  Ready.\n"
	}

	s += "\n  tab: waveform  up/down: frequency  left/right: amplitude  space: play  q: quit\n"
	return s
}
