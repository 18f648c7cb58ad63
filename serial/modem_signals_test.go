package serial

import (
	"testing"

	"golang.org/x/sys/unix"
)

// TestDecodeModemStatus tests TIOCMGET bit decoding
func TestDecodeModemStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected ModemSignals
	}{
		{
			name:     "All low",
			status:   0,
			expected: ModemSignals{},
		},
		{
			name:     "CTS only",
			status:   unix.TIOCM_CTS,
			expected: ModemSignals{CTS: true},
		},
		{
			name:     "Handshake ready",
			status:   unix.TIOCM_RTS | unix.TIOCM_CTS,
			expected: ModemSignals{RTS: true, CTS: true},
		},
		{
			name:     "DCD maps from CAR",
			status:   unix.TIOCM_CAR,
			expected: ModemSignals{DCD: true},
		},
		{
			name:     "All signals",
			status:   unix.TIOCM_CTS | unix.TIOCM_DSR | unix.TIOCM_RI | unix.TIOCM_CAR | unix.TIOCM_RTS | unix.TIOCM_DTR,
			expected: ModemSignals{CTS: true, DSR: true, RI: true, DCD: true, RTS: true, DTR: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decodeModemStatus(tt.status)
			if result != tt.expected {
				t.Errorf("decodeModemStatus(%#x) = %+v, want %+v", tt.status, result, tt.expected)
			}
		})
	}
}

// TestWithInitialRTS tests the initial RTS configuration
func TestWithInitialRTS(t *testing.T) {
	for _, state := range []bool{true, false} {
		config := DefaultConfig()
		if err := WithInitialRTS(state)(&config); err != nil {
			t.Errorf("WithInitialRTS(%v) returned error: %v", state, err)
		}
		if config.InitialRTS == nil {
			t.Errorf("WithInitialRTS(%v) did not set InitialRTS", state)
		} else if *config.InitialRTS != state {
			t.Errorf("WithInitialRTS(%v) set InitialRTS to %v", state, *config.InitialRTS)
		}
	}
}

// TestWithInitialDTR tests the initial DTR configuration
func TestWithInitialDTR(t *testing.T) {
	for _, state := range []bool{true, false} {
		config := DefaultConfig()
		if err := WithInitialDTR(state)(&config); err != nil {
			t.Errorf("WithInitialDTR(%v) returned error: %v", state, err)
		}
		if config.InitialDTR == nil {
			t.Errorf("WithInitialDTR(%v) did not set InitialDTR", state)
		} else if *config.InitialDTR != state {
			t.Errorf("WithInitialDTR(%v) set InitialDTR to %v", state, *config.InitialDTR)
		}
	}
}

// TestMethodsOnClosedPort tests that methods return ErrPortClosed on closed ports
func TestMethodsOnClosedPort(t *testing.T) {
	p := &port{closed: true}

	t.Run("GetModemSignals", func(t *testing.T) {
		if _, err := p.GetModemSignals(); err != ErrPortClosed {
			t.Errorf("GetModemSignals() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("SetRTS", func(t *testing.T) {
		if err := p.SetRTS(true); err != ErrPortClosed {
			t.Errorf("SetRTS() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("GetRTS", func(t *testing.T) {
		if _, err := p.GetRTS(); err != ErrPortClosed {
			t.Errorf("GetRTS() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("FlushInput", func(t *testing.T) {
		if err := p.FlushInput(); err != ErrPortClosed {
			t.Errorf("FlushInput() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("InputWaiting", func(t *testing.T) {
		if _, err := p.InputWaiting(); err != ErrPortClosed {
			t.Errorf("InputWaiting() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("ReadExact", func(t *testing.T) {
		if err := p.ReadExact(make([]byte, 4)); err != ErrPortClosed {
			t.Errorf("ReadExact() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("Write", func(t *testing.T) {
		if _, err := p.Write([]byte{2}); err != ErrPortClosed {
			t.Errorf("Write() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("Drain", func(t *testing.T) {
		if err := p.Drain(); err != ErrPortClosed {
			t.Errorf("Drain() error = %v, want %v", err, ErrPortClosed)
		}
	})

	t.Run("Close", func(t *testing.T) {
		if err := p.Close(); err != ErrPortClosed {
			t.Errorf("Close() error = %v, want %v", err, ErrPortClosed)
		}
	})
}
