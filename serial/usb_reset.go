package serial

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// reenumerationDelay is how long a reset device usually takes to come back
const reenumerationDelay = 2 * time.Second

// ResetUSBDevice performs a USB-level reset of the device behind portPath.
// This can recover a controller that stopped answering queries.
//
// Requirements:
// - usbreset utility must be installed (from usbutils package)
// - Requires appropriate permissions (typically root/sudo)
//
// Returns:
// - nil if reset successful
// - ErrUSBResetNotAvailable if usbreset utility not found
// - ErrUSBInfoNotAvailable if device is not USB or metadata unavailable
// - error if reset fails
func ResetUSBDevice(portPath string) error {
	info, err := GetPortInfo(portPath)
	if err != nil {
		return fmt.Errorf("failed to get port info: %w", err)
	}

	usbPath, err := formatUSBPath(info.BusNumber, info.DeviceNumber)
	if err != nil {
		return err
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	cmd := exec.Command("usbreset", usbPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}

	time.Sleep(reenumerationDelay)
	return nil
}

// ResetUSBDeviceBySerial resets the first port whose USB serial number matches.
// Serial numbers survive re-enumeration where port paths may not.
func ResetUSBDeviceBySerial(serialNumber string) error {
	ports, err := ListPorts()
	if err != nil {
		return err
	}

	for _, portPath := range ports {
		info, err := GetPortInfo(portPath)
		if err != nil {
			continue
		}
		if info.SerialNumber == serialNumber {
			return ResetUSBDevice(portPath)
		}
	}

	return fmt.Errorf("device with serial %s: %w", serialNumber, ErrDeviceNotFound)
}

// formatUSBPath builds the BBB/DDD argument usbreset expects
func formatUSBPath(bus, device string) (string, error) {
	if bus == "" || device == "" {
		return "", ErrUSBInfoNotAvailable
	}
	b, err := strconv.Atoi(bus)
	if err != nil {
		return "", fmt.Errorf("bad bus number %q: %w", bus, ErrUSBInfoNotAvailable)
	}
	d, err := strconv.Atoi(device)
	if err != nil {
		return "", fmt.Errorf("bad device number %q: %w", device, ErrUSBInfoNotAvailable)
	}
	return fmt.Sprintf("%03d/%03d", b, d), nil
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}
