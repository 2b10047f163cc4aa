package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"courtside/orchestrator"
)

// pollStatus creates a command that snapshots the pipeline state
func pollStatus(state *orchestrator.Manager) tea.Cmd {
	return func() tea.Msg {
		return StatusUpdateMsg{Status: state.Snapshot()}
	}
}

// startRunCmd launches a background generation run for the date
func startRunCmd(runner *orchestrator.Runner, date time.Time) tea.Cmd {
	return func() tea.Msg {
		runID, err := runner.Start(date)
		return RunStartedMsg{RunID: runID, Err: err}
	}
}

// publishCmd publishes the ready draft
func publishCmd(runner *orchestrator.Runner) tea.Cmd {
	return func() tea.Msg {
		result, err := runner.Publish(context.Background())
		return PublishDoneMsg{Result: result, Err: err}
	}
}

// regenImageCmd renders a replacement header image for the ready draft
func regenImageCmd(runner *orchestrator.Runner) tea.Cmd {
	return func() tea.Msg {
		path, err := runner.RegenerateImage(context.Background())
		return ImageRegeneratedMsg{Path: path, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
