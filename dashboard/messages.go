package dashboard

import (
	"time"

	"courtside/types"
)

// Messages for the tea program (polling-based)

// StatusUpdateMsg carries a fresh pipeline snapshot
type StatusUpdateMsg struct {
	Status types.StatusResponse
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// RunStartedMsg is sent when a generation run was launched
type RunStartedMsg struct {
	RunID string
	Err   error
}

// PublishDoneMsg is sent when a publish attempt finished
type PublishDoneMsg struct {
	Result types.PublishResult
	Err    error
}

// ImageRegeneratedMsg is sent when a replacement header image is ready
type ImageRegeneratedMsg struct {
	Path string
	Err  error
}
