package ledlink

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultDeadline bounds a query from before the command byte is written
	DefaultDeadline = 10 * time.Second

	// DefaultPollInterval is the sleep between checks of the input queue
	DefaultPollInterval = time.Millisecond
)

// Transport is the already-open duplex byte stream the exchange drives.
// serial.Port satisfies it.
type Transport interface {
	FlushInput() error
	SetRTS(state bool) error
	InputWaiting() (int, error)
	Write(data []byte) (int, error)
	ReadExact(buf []byte) error
}

// Outcome identifies which of the disjoint results an exchange produced
type Outcome int

const (
	OutcomeNoop      Outcome = iota // Idle or unknown kind, no I/O
	OutcomeSent                     // SetPattern frame handed to the transport
	OutcomeState                    // Query reply read and decoded
	OutcomeReadError                // Query reply was available but the read failed
	OutcomeTimeout                  // Query reply never became available
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeSent:
		return "sent"
	case OutcomeState:
		return "state"
	case OutcomeReadError:
		return "read-error"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Result reports the outcome of one Execute call.
// State is non-nil only when Outcome is OutcomeState.
type Result struct {
	Outcome Outcome
	State   *State
	Elapsed time.Duration
}

// Exchanger runs command/response exchanges. It holds no state between calls
// and may be reused, but a Transport must only be driven by one exchange at a time.
type Exchanger struct {
	deadline     time.Duration
	pollInterval time.Duration
	logger       zerolog.Logger
	now          func() time.Time
	sleep        func(time.Duration)
}

// Option configures an Exchanger
type Option func(*Exchanger) error

// WithDeadline sets how long a query waits for the full reply
func WithDeadline(d time.Duration) Option {
	return func(x *Exchanger) error {
		if d <= 0 {
			return ErrInvalidTiming
		}
		x.deadline = d
		return nil
	}
}

// WithPollInterval sets the sleep between input queue checks
func WithPollInterval(d time.Duration) Option {
	return func(x *Exchanger) error {
		if d <= 0 {
			return ErrInvalidTiming
		}
		x.pollInterval = d
		return nil
	}
}

// WithLogger attaches a logger; exchanges log at debug and trace level
func WithLogger(l zerolog.Logger) Option {
	return func(x *Exchanger) error {
		x.logger = l
		return nil
	}
}

// WithClock replaces the wall clock and sleep used by the poll loop
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(x *Exchanger) error {
		if now == nil || sleep == nil {
			return ErrInvalidTiming
		}
		x.now = now
		x.sleep = sleep
		return nil
	}
}

// NewExchanger returns an Exchanger with DefaultDeadline and DefaultPollInterval
// unless overridden by opts.
func NewExchanger(opts ...Option) (*Exchanger, error) {
	x := &Exchanger{
		deadline:     DefaultDeadline,
		pollInterval: DefaultPollInterval,
		logger:       zerolog.Nop(),
		now:          time.Now,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		if err := opt(x); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Deadline returns the configured query deadline
func (x *Exchanger) Deadline() time.Duration {
	return x.deadline
}

// Execute performs one exchange for cmd over t.
//
// Idle and unknown kinds return OutcomeNoop without touching t. SetPattern
// writes its frame once and never reports a write failure. QueryState returns
// a *ReadError or ErrTimeout alongside the matching outcome when no state
// could be decoded.
func (x *Exchanger) Execute(cmd Command, t Transport) (Result, error) {
	switch cmd.Kind {
	case KindSetPattern:
		return x.setPattern(cmd, t), nil
	case KindQueryState:
		return x.queryState(t)
	default:
		x.logger.Debug().Stringer("kind", cmd.Kind).Msg("no-op command")
		return Result{Outcome: OutcomeNoop}, nil
	}
}

func (x *Exchanger) setPattern(cmd Command, t Transport) Result {
	log := x.logger.With().Str("exchange", uuid.NewString()).Logger()

	frame := SetPatternFrame{Pattern: cmd.Pattern, A: cmd.Colors[0], B: cmd.Colors[1]}.encode()
	written := x.bestEffort(log, "write set-pattern", func() error {
		_, err := t.Write(frame[:])
		return err
	})

	if written {
		log.Debug().
			Uint8("pattern", cmd.Pattern).
			Hex("frame", frame[:]).
			Msg("set-pattern frame sent")
	}
	return Result{Outcome: OutcomeSent}
}

func (x *Exchanger) queryState(t Transport) (Result, error) {
	log := x.logger.With().Str("exchange", uuid.NewString()).Logger()

	x.bestEffort(log, "flush input", t.FlushInput)
	log.Trace().Msg("buffer cleared")

	x.bestEffort(log, "deassert rts", func() error { return t.SetRTS(false) })
	log.Trace().Msg("request low")

	start := x.now()
	x.bestEffort(log, "write query", func() error {
		_, err := t.Write([]byte{byte(KindQueryState)})
		return err
	})
	log.Trace().Msg("command sent")

	x.bestEffort(log, "assert rts", func() error { return t.SetRTS(true) })
	log.Trace().Msg("request high, polling")

	for {
		elapsed := x.now().Sub(start)
		if elapsed >= x.deadline {
			log.Debug().Dur("elapsed", elapsed).Msg("query timed out")
			return Result{Outcome: OutcomeTimeout, Elapsed: elapsed}, ErrTimeout
		}

		if n, err := t.InputWaiting(); err == nil && n >= ReplySize {
			var buf [ReplySize]byte
			if err := t.ReadExact(buf[:]); err != nil {
				elapsed = x.now().Sub(start)
				log.Debug().Err(err).Dur("elapsed", elapsed).Msg("reply read failed")
				return Result{Outcome: OutcomeReadError, Elapsed: elapsed}, &ReadError{Err: err}
			}

			state := decodeReply(buf)
			elapsed = x.now().Sub(start)
			log.Debug().
				Uint8("pattern", state.Pattern).
				Hex("reply", buf[:]).
				Dur("elapsed", elapsed).
				Msg("query answered")
			return Result{Outcome: OutcomeState, State: &state, Elapsed: elapsed}, nil
		}

		x.sleep(x.pollInterval)
	}
}

// bestEffort runs a step whose failure must not change the exchange outcome.
// The error is logged and otherwise dropped; the result reports success.
func (x *Exchanger) bestEffort(log zerolog.Logger, step string, fn func() error) bool {
	if err := fn(); err != nil {
		log.Debug().Err(err).Str("step", step).Msg("ignoring best-effort failure")
		return false
	}
	return true
}
