package types

import "time"

// State represents the recap pipeline state machine
type State string

const (
	StateIdle          State = "idle"
	StateFetchingGames State = "fetching-games"
	StateFetchingNews  State = "fetching-news"
	StateSummarizing   State = "summarizing"
	StateWriting       State = "writing"
	StateImaging       State = "imaging"
	StateReady         State = "ready"
	StatePublishing    State = "publishing"
	StatePublished     State = "published"
	StateError         State = "error"
)

// Active reports whether a run is currently in flight. Idle, ready,
// published and error states accept a new run.
func (s State) Active() bool {
	switch s {
	case StateIdle, StateReady, StatePublished, StateError, "":
		return false
	}
	return true
}

// LogEntry represents a single log line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// StatusResponse is the pipeline state snapshot returned by the API and
// polled by the dashboard.
type StatusResponse struct {
	State      State          `json:"state"`
	RunID      string         `json:"run_id,omitempty"`
	Logs       []LogEntry     `json:"logs"`
	GameCount  int            `json:"game_count"`
	DraftTitle string         `json:"draft_title,omitempty"`
	ImagePath  string         `json:"image_path,omitempty"`
	Result     *PublishResult `json:"result,omitempty"`
	Error      string         `json:"error,omitempty"`
}
