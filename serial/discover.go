package serial

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// listDetailedPorts is swapped out in tests
var listDetailedPorts = enumerator.GetDetailedPortsList

// USBPort is a USB-attached serial port as reported by the platform enumerator
type USBPort struct {
	Path         string
	VendorID     string
	ProductID    string
	SerialNumber string
	Product      string
}

// ListUSBPorts returns every USB-attached serial port, in enumeration order.
// Non-USB ports are skipped.
func ListUSBPorts() ([]USBPort, error) {
	details, err := listDetailedPorts()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	var ports []USBPort
	for _, d := range details {
		if d == nil || !d.IsUSB {
			continue
		}
		ports = append(ports, USBPort{
			Path:         d.Name,
			VendorID:     d.VID,
			ProductID:    d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return ports, nil
}

// FindBySerialNumber returns the paths of all USB ports whose serial number
// equals serialNumber exactly. An empty serialNumber matches nothing.
func FindBySerialNumber(serialNumber string) ([]string, error) {
	if serialNumber == "" {
		return nil, nil
	}

	ports, err := ListUSBPorts()
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, p := range ports {
		if p.SerialNumber == serialNumber {
			matches = append(matches, p.Path)
		}
	}
	return matches, nil
}
