package orchestrator

import (
	"fmt"
	"sync"
	"time"

	"courtside/types"
)

// Manager holds the complete recap pipeline state with thread-safe access
type Manager struct {
	mu sync.RWMutex

	// Current state
	currentState types.State
	runID        string

	// Data
	games     []types.Game
	news      []types.GameNews
	draft     Draft
	imagePath string
	result    *types.PublishResult

	// Logs (ring buffer)
	logs    []types.LogEntry
	maxLogs int
	lastErr error
}

// Draft is a generated recap awaiting publish.
type Draft struct {
	Title   string
	Content string
	Date    time.Time
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		currentState: types.StateIdle,
		logs:         make([]types.LogEntry, 0),
		maxLogs:      50, // Keep last 50 log entries
	}
}

// AddLog adds a log entry (thread-safe)
func (m *Manager) AddLog(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLog(message)
}

// appendLog must be called with the lock held.
func (m *Manager) appendLog(message string) {
	m.logs = append(m.logs, types.LogEntry{
		Timestamp: time.Now(),
		Message:   message,
	})
	if len(m.logs) > m.maxLogs {
		m.logs = m.logs[len(m.logs)-m.maxLogs:]
	}
}

// Snapshot returns a copy of the current state (thread-safe)
func (m *Manager) Snapshot() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resp := types.StatusResponse{
		State:      m.currentState,
		RunID:      m.runID,
		Logs:       append([]types.LogEntry{}, m.logs...), // Copy slice
		GameCount:  len(m.games),
		DraftTitle: m.draft.Title,
		ImagePath:  m.imagePath,
		Result:     m.result,
	}

	if m.lastErr != nil {
		resp.Error = m.lastErr.Error()
	}

	return resp
}

// SetState sets the current state (thread-safe)
func (m *Manager) SetState(state types.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentState = state
}

// State gets the current state (thread-safe)
func (m *Manager) State() types.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

// StartRun atomically claims the manager for a new run: when no run is
// active it clears the previous run's data, moves to fetching-games and
// returns true. A second caller racing the first observes the transition
// and is refused. The check and the transition share one critical section
// so two concurrent starts can never both succeed.
func (m *Manager) StartRun(runID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentState.Active() {
		return false
	}
	m.runID = runID
	m.games = nil
	m.news = nil
	m.draft = Draft{}
	m.imagePath = ""
	m.result = nil
	m.lastErr = nil
	m.currentState = types.StateFetchingGames
	return true
}

// SetError records the error and moves to the error state
func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentState = types.StateError
	m.lastErr = err
	m.appendLog(fmt.Sprintf("Error: %v", err))
}

// SetGames stores the fetched games (thread-safe)
func (m *Manager) SetGames(games []types.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = games
}

// Games returns a copy of the fetched games (thread-safe)
func (m *Manager) Games() []types.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Game{}, m.games...)
}

// SetNews stores the fetched per-game news (thread-safe)
func (m *Manager) SetNews(news []types.GameNews) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.news = news
}

// News returns a copy of the fetched per-game news (thread-safe)
func (m *Manager) News() []types.GameNews {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.GameNews{}, m.news...)
}

// SetDraft stores the generated recap draft (thread-safe)
func (m *Manager) SetDraft(draft Draft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = draft
}

// Draft returns the current recap draft (thread-safe)
func (m *Manager) Draft() Draft {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.draft
}

// SetImagePath stores the generated header image path (thread-safe)
func (m *Manager) SetImagePath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imagePath = path
}

// ImagePath returns the generated header image path (thread-safe)
func (m *Manager) ImagePath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.imagePath
}

// SetResult stores the publish result (thread-safe)
func (m *Manager) SetResult(result *types.PublishResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = result
}

// Result returns the publish result, or nil if nothing was published (thread-safe)
func (m *Manager) Result() *types.PublishResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result
}
