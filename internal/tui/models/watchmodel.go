package models

import (
	"time"

	"github.com/allbin/ledlink/internal/tui/components"
)

// QueryResultMsg carries one finished round of queries
type QueryResultMsg struct {
	Devices []components.DeviceState
	Err     error
	At      time.Time
}

// TickMsg asks for the next round. Round is the round count when it was
// scheduled; a tick from an older round is stale.
type TickMsg struct {
	Round int
}

// WatchModel is the state behind the watch view. Rounds never overlap, so
// the controller port is only ever driven by one exchange.
type WatchModel struct {
	serialNumber string

	devices    []components.DeviceState
	err        error
	ready      bool
	paused     bool
	querying   bool
	rounds     int
	lastUpdate time.Time
}

func NewWatchModel(serialNumber string) *WatchModel {
	return &WatchModel{serialNumber: serialNumber}
}

func (m *WatchModel) SerialNumber() string {
	return m.serialNumber
}

func (m *WatchModel) IsReady() bool {
	return m.ready
}

func (m *WatchModel) SetReady(ready bool) {
	m.ready = ready
}

func (m *WatchModel) IsPaused() bool {
	return m.paused
}

// TogglePause flips the paused flag and returns the new value
func (m *WatchModel) TogglePause() bool {
	m.paused = !m.paused
	return m.paused
}

func (m *WatchModel) IsQuerying() bool {
	return m.querying
}

// BeginQuery marks a round as started. It returns false if one is already running.
func (m *WatchModel) BeginQuery() bool {
	if m.querying {
		return false
	}
	m.querying = true
	return true
}

// Apply stores the result of the running round and ends it
func (m *WatchModel) Apply(msg QueryResultMsg) {
	m.querying = false
	m.rounds++
	m.lastUpdate = msg.At
	m.err = msg.Err
	if msg.Err == nil {
		m.devices = msg.Devices
	}
}

// Rounds returns how many rounds have finished
func (m *WatchModel) Rounds() int {
	return m.rounds
}

// IsCurrent reports whether tick was scheduled after the latest round
func (m *WatchModel) IsCurrent(tick TickMsg) bool {
	return tick.Round == m.rounds
}

func (m *WatchModel) Devices() []components.DeviceState {
	return m.devices
}

func (m *WatchModel) Error() error {
	return m.err
}

func (m *WatchModel) LastUpdate() time.Time {
	return m.lastUpdate
}
