package ledlink

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout means the full reply never became available before the deadline
	ErrTimeout = errors.New("timed out waiting for device reply")

	// ErrReadFailed matches any *ReadError through errors.Is
	ErrReadFailed = errors.New("failed to read device reply")

	ErrInvalidTiming = errors.New("invalid exchange timing")
)

// ReadError carries the cause of a failed exact-length reply read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read reply: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func (e *ReadError) Is(target error) bool {
	return target == ErrReadFailed
}
