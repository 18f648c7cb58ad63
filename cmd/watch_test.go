package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/tui/components"
	"github.com/allbin/ledlink/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestWatch(calls *int) *watchModel {
	query := func() models.QueryResultMsg {
		*calls++
		return models.QueryResultMsg{
			Devices: []components.DeviceState{{
				Port:    "/dev/ttyACM0",
				Outcome: ledlink.OutcomeState,
				State:   &testState,
				Elapsed: 3 * time.Millisecond,
			}},
			At: time.Now(),
		}
	}
	return newWatchModel(testSerial, time.Second, testLinkConfig(), query)
}

func TestWatchQueriesOneAtATime(t *testing.T) {
	var calls int
	m := newTestWatch(&calls)

	first := m.startQuery()
	if first == nil {
		t.Fatal("startQuery() = nil on an idle model")
	}
	if m.startQuery() != nil {
		t.Error("second query started while the first is running")
	}

	msg := first()
	if calls != 1 {
		t.Fatalf("query ran %d times, want 1", calls)
	}

	_, next := m.Update(msg)
	if next == nil {
		t.Error("no tick scheduled after a finished round")
	}
	if m.IsQuerying() {
		t.Error("still querying after the result arrived")
	}
	if m.table.Len() != 1 {
		t.Errorf("table rows = %d, want 1", m.table.Len())
	}
}

func TestWatchIgnoresStaleTick(t *testing.T) {
	var calls int
	m := newTestWatch(&calls)

	stale := models.TickMsg{Round: m.Rounds()}
	m.Update(m.startQuery()())

	if _, cmd := m.Update(stale); cmd != nil {
		t.Error("stale tick started a query")
	}
	if _, cmd := m.Update(models.TickMsg{Round: m.Rounds()}); cmd == nil {
		t.Error("current tick did not start a query")
	}
}

func TestWatchPauseStopsQueries(t *testing.T) {
	var calls int
	m := newTestWatch(&calls)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !m.IsPaused() {
		t.Fatal("p did not pause")
	}
	if _, cmd := m.Update(models.TickMsg{Round: m.Rounds()}); cmd != nil {
		t.Error("tick started a query while paused")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.IsPaused() || cmd == nil {
		t.Error("resuming did not start a query")
	}
}

func TestWatchView(t *testing.T) {
	var calls int
	m := newTestWatch(&calls)

	if m.View() != "Initializing..." {
		t.Errorf("View() before size = %q", m.View())
	}

	m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	m.Update(m.startQuery()())

	view := m.View()
	for _, want := range []string{testSerial, "/dev/ttyACM0", "[0.5, 1, 0.25]", "WATCH"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
