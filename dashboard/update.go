package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"courtside/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.state), tickCmd())
	case StatusUpdateMsg:
		m.Status = msg.Status
		return m, nil
	case RunStartedMsg:
		return m.handleRunStarted(msg)
	case PublishDoneMsg:
		return m.handlePublishDone(msg)
	case ImageRegeneratedMsg:
		return m.handleImageRegenerated(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "g", "G":
		if !m.Status.State.Active() {
			m.Err = nil
			return m, startRunCmd(m.runner, m.Date)
		}
	case "p", "P":
		if m.Status.State == types.StateReady {
			m.Err = nil
			return m, publishCmd(m.runner)
		}
	case "i", "I":
		if m.Status.State == types.StateReady {
			m.Err = nil
			return m, regenImageCmd(m.runner)
		}
	}
	return m, nil
}

// handleRunStarted processes the launch of a generation run
func (m Model) handleRunStarted(msg RunStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	return m, pollStatus(m.state)
}

// handlePublishDone processes a finished publish attempt
func (m Model) handlePublishDone(msg PublishDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	return m, pollStatus(m.state)
}

// handleImageRegenerated processes a replacement header image
func (m Model) handleImageRegenerated(msg ImageRegeneratedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	return m, pollStatus(m.state)
}
