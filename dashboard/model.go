// Package dashboard is a terminal front end for the recap pipeline. It
// drives the runner in-process and polls the state manager for progress.
package dashboard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"courtside/orchestrator"
	"courtside/types"
)

// Model represents the dashboard state
type Model struct {
	runner *orchestrator.Runner
	state  *orchestrator.Manager

	// Date being recapped
	Date time.Time

	// Latest pipeline snapshot
	Status types.StatusResponse

	// Local UI errors (key presses rejected, publish failures)
	Err error
}

// NewModel creates a new dashboard model for the given date
func NewModel(runner *orchestrator.Runner, state *orchestrator.Manager, date time.Time) Model {
	return Model{
		runner: runner,
		state:  state,
		Date:   date,
		Status: types.StatusResponse{State: types.StateIdle},
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		pollStatus(m.state),
		tickCmd(),
	)
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.Status.State {
	case types.StateIdle:
		return HighlightStyle.Render("👋 Ready to start!") + "\n\n" +
			InfoStyle.Render(fmt.Sprintf("Press 'g' to generate the recap for %s", m.Date.Format("January 2, 2006")))
	case types.StateFetchingGames:
		return StatusStyle.Render("⏳ Fetching final scores...")
	case types.StateFetchingNews:
		return StatusStyle.Render("📰 Gathering game coverage...")
	case types.StateSummarizing:
		return StatusStyle.Render("🔍 Summarizing each game...")
	case types.StateWriting:
		return StatusStyle.Render("✍️  Writing the daily recap...")
	case types.StateImaging:
		return StatusStyle.Render("🎨 Generating the header image...")
	case types.StateReady:
		return HighlightStyle.Render("📋 Draft ready") + "\n\n" +
			InfoStyle.Render("Press 'p' to publish | Press 'i' to regenerate the image")
	case types.StatePublishing:
		return StatusStyle.Render("📤 Publishing to the blog host...")
	case types.StatePublished:
		return HighlightStyle.Render("✅ PUBLISHED")
	case types.StateError:
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %s", m.Status.Error))
	default:
		return ""
	}
}
