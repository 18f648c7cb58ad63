package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/allbin/ledlink"
)

func TestStateTableRows(t *testing.T) {
	st := NewStateTable()
	st.SetWidth(120)
	st.SetDevices([]DeviceState{
		{
			Port:    "/dev/ttyACM0",
			Outcome: ledlink.OutcomeState,
			State: &ledlink.State{
				Pattern: 7,
				A:       ledlink.Color{H: 0.5, S: 1, V: 0.25},
				B:       ledlink.Color{V: 1},
			},
			Elapsed: 5 * time.Millisecond,
		},
		{Port: "/dev/ttyACM1", Outcome: ledlink.OutcomeTimeout, Elapsed: 10 * time.Second},
		{Port: "/dev/ttyACM2", Err: errors.New("permission denied")},
	})

	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", st.Len())
	}

	view := st.View()
	for _, want := range []string{"/dev/ttyACM0", "[0.5, 1, 0.25]", "5ms", "timeout", "10s", "open-failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{5 * time.Millisecond, "5ms"},
		{1234567 * time.Microsecond, "1.235s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusBar(t *testing.T) {
	sb := NewStatusBar("ledlink watch", "E66138528350A22B")
	sb.SetWidth(160)

	sb.SetQuerying()
	if sb.Status() != "Querying..." {
		t.Errorf("Status() = %q", sb.Status())
	}

	sb.SetUpdated(time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC), 2, nil)
	if sb.Status() != "2 device(s)" {
		t.Errorf("Status() = %q", sb.Status())
	}

	sb.SetPaused(true)
	view := sb.View(false, "")
	for _, want := range []string{"PAUSED", "E66138528350A22B", "12:30:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %s", want, view)
		}
	}

	sb.SetUpdated(time.Now(), 0, errors.New("no port"))
	if !strings.HasPrefix(sb.Status(), "Query failed") {
		t.Errorf("Status() = %q", sb.Status())
	}
}
