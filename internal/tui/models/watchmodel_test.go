package models

import (
	"errors"
	"testing"
	"time"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/tui/components"
)

func TestWatchModelRoundsDoNotOverlap(t *testing.T) {
	m := NewWatchModel("SN")

	if !m.BeginQuery() {
		t.Fatal("first BeginQuery() = false")
	}
	if m.BeginQuery() {
		t.Error("second BeginQuery() while running = true")
	}

	m.Apply(QueryResultMsg{At: time.Unix(100, 0)})
	if m.IsQuerying() {
		t.Error("still querying after Apply")
	}
	if !m.BeginQuery() {
		t.Error("BeginQuery() after Apply = false")
	}
}

func TestWatchModelApply(t *testing.T) {
	m := NewWatchModel("SN")
	devices := []components.DeviceState{{
		Port:    "/dev/ttyACM0",
		Outcome: ledlink.OutcomeState,
		State:   &ledlink.State{Pattern: 7},
	}}

	m.BeginQuery()
	m.Apply(QueryResultMsg{Devices: devices, At: time.Unix(100, 0)})
	if len(m.Devices()) != 1 || m.Devices()[0].State.Pattern != 7 {
		t.Fatalf("Devices() = %+v", m.Devices())
	}
	if m.Rounds() != 1 {
		t.Errorf("Rounds() = %d, want 1", m.Rounds())
	}

	// A failed round keeps the last known devices
	failure := errors.New("no port")
	m.BeginQuery()
	m.Apply(QueryResultMsg{Err: failure, At: time.Unix(101, 0)})
	if !errors.Is(m.Error(), failure) {
		t.Errorf("Error() = %v", m.Error())
	}
	if len(m.Devices()) != 1 {
		t.Errorf("devices dropped on failed round: %+v", m.Devices())
	}
	if !m.LastUpdate().Equal(time.Unix(101, 0)) {
		t.Errorf("LastUpdate() = %v", m.LastUpdate())
	}
}

func TestWatchModelStaleTicks(t *testing.T) {
	m := NewWatchModel("SN")
	tick := TickMsg{Round: m.Rounds()}
	if !m.IsCurrent(tick) {
		t.Error("fresh tick reported stale")
	}

	m.BeginQuery()
	m.Apply(QueryResultMsg{})
	if m.IsCurrent(tick) {
		t.Error("tick from an earlier round reported current")
	}
}

func TestWatchModelPause(t *testing.T) {
	m := NewWatchModel("SN")
	if !m.TogglePause() || !m.IsPaused() {
		t.Error("TogglePause() did not pause")
	}
	if m.TogglePause() || m.IsPaused() {
		t.Error("TogglePause() did not resume")
	}
}
