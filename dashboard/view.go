package dashboard

import (
	"fmt"
	"strings"

	"courtside/types"
)

const draftPreviewLimit = 400

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🏀 Courtside Daily Recap"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Statistics
	if m.Status.GameCount > 0 {
		stats := fmt.Sprintf("📊 Games found: %d", m.Status.GameCount)
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n")
	}
	if m.Status.ImagePath != "" {
		b.WriteString(InfoStyle.Render("🖼  Header image: " + m.Status.ImagePath))
		b.WriteString("\n")
	}

	// Logs
	if len(m.Status.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		logs := m.Status.Logs
		if len(logs) > 10 {
			logs = logs[len(logs)-10:]
		}
		for _, entry := range logs {
			line := fmt.Sprintf("   [%s] %s", entry.Timestamp.Format("15:04:05"), entry.Message)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Draft preview
	if m.Status.State == types.StateReady && m.Status.DraftTitle != "" {
		b.WriteString(BoxStyle.Render(m.formatDraftPreview()))
		b.WriteString("\n\n")
	}

	// Publish result
	if m.Status.State == types.StatePublished && m.Status.Result != nil {
		b.WriteString(BoxStyle.Render(m.formatPublishResult()))
		b.WriteString("\n\n")
	}

	// Local errors (rejected actions, publish failures)
	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ %v", m.Err)))
		b.WriteString("\n\n")
	}

	// Help text
	switch m.Status.State {
	case types.StateReady:
		b.WriteString(InfoStyle.Render("Press 'p' to publish | 'i' to regenerate image | 'g' to rerun | 'q' to quit"))
	case types.StatePublished:
		b.WriteString(HighlightStyle.Render("Press 'q' or Ctrl+C to exit"))
	default:
		b.WriteString(InfoStyle.Render("Press 'g' to generate | Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

// formatDraftPreview renders the ready draft for review before publishing
func (m Model) formatDraftPreview() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Draft Recap"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", StatusStyle.Render(m.Status.DraftTitle)))

	draft := m.state.Draft()
	preview := strings.TrimSpace(draft.Content)
	if runes := []rune(preview); len(runes) > draftPreviewLimit {
		preview = string(runes[:draftPreviewLimit]) + "..."
	}
	if preview != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(preview))
		b.WriteString("\n")
	}

	return b.String()
}

// formatPublishResult renders the upload outcome
func (m Model) formatPublishResult() string {
	result := m.Status.Result
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Publish Result"))
	b.WriteString("\n\n")

	if result.UploadInfo != nil {
		b.WriteString(fmt.Sprintf("File: %s\n", StatusStyle.Render(result.UploadInfo.Filename)))
		b.WriteString(fmt.Sprintf("Remote: %s\n", result.UploadInfo.RemotePath))
		b.WriteString(fmt.Sprintf("Host: %s\n", result.UploadInfo.Host))
	}
	if result.Record != nil && result.Record.URL != "" {
		b.WriteString(fmt.Sprintf("URL: %s\n", result.Record.URL))
	}

	for _, w := range result.Warnings {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Warning: %s\n", w)))
	}

	return b.String()
}
