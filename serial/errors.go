package serial

import "errors"

// Open failures. Open wraps them with the device path; match with errors.Is.
var (
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
)

// Configuration errors returned by options
var (
	ErrInvalidBaudRate = errors.New("invalid baud rate")
	ErrInvalidConfig   = errors.New("invalid serial configuration")
)

// I/O errors
var (
	ErrPortClosed = errors.New("serial port is closed")

	// ErrReadTimeout means ReadExact saw no data for a whole read timeout
	ErrReadTimeout = errors.New("read operation timed out")
)

// USB errors
var (
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)
