// Package serial is the Linux serial transport used by ledlink.
//
// It opens a tty in raw mode through termios, exposes the RTS/DTR modem
// lines and the kernel input queue length, and finds controllers by their
// USB serial number.
//
// # Basic Usage
//
//	port, err := serial.Open("/dev/ttyACM0",
//	    serial.WithBaudRate(115200),
//	    serial.WithFlowControl(serial.FlowControlRTSCTS),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, _ := port.InputWaiting()  // bytes buffered by the kernel
//	buf := make([]byte, n)
//	err = port.ReadExact(buf)    // fills buf or fails
//
// # Port Discovery
//
//	paths, err := serial.FindBySerialNumber("E66138528350A22B")
//
//	ports, _ := serial.ListPorts()
//	for _, p := range ports {
//	    info, _ := serial.GetPortInfo(p)
//	    fmt.Printf("%s: %s (VID=%s PID=%s Serial=%s)\n",
//	        info.Path, info.Description, info.VendorID, info.ProductID, info.SerialNumber)
//	}
//
// FindBySerialNumber uses the go.bug.st enumerator; GetPortInfo reads
// sysfs directly and also reports bus and device numbers.
//
// # Modem Lines
//
//	signals, err := port.GetModemSignals()
//	err = port.SetRTS(false) // not ready to receive
//	err = port.SetRTS(true)  // ready to receive
//
// # USB Reset
//
//	err := serial.ResetUSBDeviceBySerial("E66138528350A22B")
//
// Requires the usbreset utility from usbutils and root permissions.
//
// # Errors
//
// Open failures wrap ErrDeviceNotFound, ErrPermissionDenied or
// ErrDeviceInUse; check them with errors.Is.
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - FlowControl: None
//   - ReadTimeout: 2.5 seconds
//   - WriteMode: Buffered
package serial
