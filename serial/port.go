package serial

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Port represents a serial port connection interface
type Port interface {
	Path() string
	Close() error
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	ReadExact(buf []byte) error
	InputWaiting() (int, error)
	Drain() error
	FlushInput() error

	// Modem signal control and monitoring
	GetModemSignals() (ModemSignals, error)
	SetRTS(state bool) error
	GetRTS() (bool, error)
}

// port is the concrete implementation of the Port interface
type port struct {
	mu     sync.RWMutex
	fd     int
	path   string
	config Config
	closed bool
}

// Ensure port implements Port interface at compile time
var _ Port = (*port)(nil)

// FlowControl represents the flow control mode
type FlowControl int

const (
	FlowControlNone FlowControl = iota
	FlowControlRTSCTS
)

func (fc FlowControl) String() string {
	switch fc {
	case FlowControlNone:
		return "none"
	case FlowControlRTSCTS:
		return "rtscts"
	default:
		return "unknown"
	}
}

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// ModemSignals represents modem control signal states
type ModemSignals struct {
	CTS bool // Clear To Send
	DSR bool // Data Set Ready
	RI  bool // Ring Indicator
	DCD bool // Data Carrier Detect
	RTS bool // Request To Send
	DTR bool // Data Terminal Ready
}

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 2000000:
		return unix.B2000000, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// getModemStatus retrieves modem control signals
func getModemStatus(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCMGET)
}

// setModemLine raises or drops a single TIOCM output line
func setModemLine(fd int, line int, state bool) error {
	if state {
		return unix.IoctlSetPointerInt(fd, unix.TIOCMBIS, line)
	}
	return unix.IoctlSetPointerInt(fd, unix.TIOCMBIC, line)
}

func decodeModemStatus(status int) ModemSignals {
	return ModemSignals{
		CTS: status&unix.TIOCM_CTS != 0,
		DSR: status&unix.TIOCM_DSR != 0,
		RI:  status&unix.TIOCM_RI != 0,
		DCD: status&unix.TIOCM_CAR != 0,
		RTS: status&unix.TIOCM_RTS != 0,
		DTR: status&unix.TIOCM_DTR != 0,
	}
}

// classifyOpenError maps errno values from open(2) onto the package sentinels
func classifyOpenError(device string, err error) error {
	switch {
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENXIO):
		return fmt.Errorf("failed to open %s: %w", device, ErrDeviceNotFound)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("failed to open %s: %w", device, ErrPermissionDenied)
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("failed to open %s: %w", device, ErrDeviceInUse)
	default:
		return fmt.Errorf("failed to open %s: %w", device, err)
	}
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	// Apply default configuration
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	flags := unix.O_RDWR | unix.O_NOCTTY
	if config.WriteMode == WriteModeSynced {
		flags |= unix.O_SYNC
	}

	fd, err := unix.Open(device, flags, 0)
	if err != nil {
		return nil, classifyOpenError(device, err)
	}

	if err := configurePort(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	if err := applyInitialLines(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &port{
		fd:     fd,
		path:   device,
		config: config,
	}, nil
}

// applyInitialLines drives RTS and DTR to the configured levels, if any
func applyInitialLines(fd int, config Config) error {
	lines := []struct {
		name  string
		bit   int
		state *bool
	}{
		{"RTS", unix.TIOCM_RTS, config.InitialRTS},
		{"DTR", unix.TIOCM_DTR, config.InitialDTR},
	}
	for _, l := range lines {
		if l.state == nil {
			continue
		}
		if err := setModemLine(fd, l.bit, *l.state); err != nil {
			return fmt.Errorf("failed to set initial %s: %w", l.name, err)
		}
	}
	return nil
}

// configurePort puts the tty in raw mode with the requested framing
func configurePort(fd int, config Config) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}

	// Raw mode, 8N1 by default
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	// VMIN=0 with VTIME makes every read return after at most ReadTimeout
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = uint8(config.ReadTimeout / readTimeoutUnit)

	baudRate, err := getBaudRate(config.BaudRate)
	if err != nil {
		return err
	}
	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate

	if config.DataBits != 8 {
		termios.Cflag &^= unix.CSIZE
		switch config.DataBits {
		case 5:
			termios.Cflag |= unix.CS5
		case 6:
			termios.Cflag |= unix.CS6
		case 7:
			termios.Cflag |= unix.CS7
		}
	}

	if config.StopBits == 2 {
		termios.Cflag |= unix.CSTOPB
	}

	switch config.Parity {
	case ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		termios.Cflag |= unix.PARENB
	}

	if config.FlowControl == FlowControlRTSCTS {
		termios.Cflag |= unix.CRTSCTS
	}

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}

	return nil
}

// Path returns the device path the port was opened with
func (p *port) Path() string {
	return p.path
}

// Close releases the descriptor. A second Close returns ErrPortClosed.
func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	p.closed = true
	return unix.Close(p.fd)
}

// use runs fn with the descriptor while holding the read lock so Close
// cannot release it underneath
func (p *port) use(fn func(fd int) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}
	return fn(p.fd)
}

// Read returns whatever is buffered, waiting at most the configured read timeout
func (p *port) Read(buf []byte) (n int, err error) {
	err = p.use(func(fd int) error {
		n, err = unix.Read(fd, buf)
		return err
	})
	return n, err
}

// Write hands data to the driver. With RTS/CTS flow control the driver holds
// it back while the device drops CTS.
func (p *port) Write(data []byte) (n int, err error) {
	err = p.use(func(fd int) error {
		n, err = unix.Write(fd, data)
		return err
	})
	return n, err
}

// ReadExact fills buf completely. A read that returns no data within the
// configured read timeout aborts with ErrReadTimeout.
func (p *port) ReadExact(buf []byte) error {
	return p.use(func(fd int) error {
		for off := 0; off < len(buf); {
			n, err := unix.Read(fd, buf[off:])
			switch {
			case errors.Is(err, unix.EINTR):
				continue
			case err != nil:
				return fmt.Errorf("read after %d of %d bytes: %w", off, len(buf), err)
			case n == 0:
				return fmt.Errorf("read after %d of %d bytes: %w", off, len(buf), ErrReadTimeout)
			}
			off += n
		}
		return nil
	})
}

// InputWaiting returns the number of received bytes not yet read (TIOCINQ)
func (p *port) InputWaiting() (n int, err error) {
	err = p.use(func(fd int) error {
		n, err = unix.IoctlGetInt(fd, unix.TIOCINQ)
		return err
	})
	return n, err
}

// FlushInput discards received but unread bytes
func (p *port) FlushInput() error {
	return p.use(func(fd int) error {
		return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
	})
}

// Drain blocks until everything written has left the UART
func (p *port) Drain() error {
	return p.use(func(fd int) error {
		return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
	})
}

// GetModemSignals reads all modem lines at once
func (p *port) GetModemSignals() (signals ModemSignals, err error) {
	err = p.use(func(fd int) error {
		status, err := getModemStatus(fd)
		if err != nil {
			return err
		}
		signals = decodeModemStatus(status)
		return nil
	})
	return signals, err
}

// SetRTS raises (true) or drops (false) Request To Send.
// The controller only answers a query while RTS is raised.
func (p *port) SetRTS(state bool) error {
	return p.use(func(fd int) error {
		return setModemLine(fd, unix.TIOCM_RTS, state)
	})
}

// GetRTS reports whether RTS is currently raised
func (p *port) GetRTS() (bool, error) {
	signals, err := p.GetModemSignals()
	return signals.RTS, err
}
