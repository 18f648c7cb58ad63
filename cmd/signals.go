/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/allbin/ledlink/serial"
	"github.com/spf13/cobra"
)

// signalsCmd represents the signals command
var signalsCmd = &cobra.Command{
	Use:   "signals [port]",
	Short: "Display modem signal states",
	Long: `Display the modem control lines of a controller port.

The query handshake drops RTS while the command byte is written and raises
it to let the controller answer; CTS is the controller's side of the same
hardware flow control. Use this to check both lines when queries time out.

The port is given as a path, or found through --serial.

Examples:
  ledlink signals /dev/ttyACM0
  ledlink signals --serial E66138528350A22B
  ledlink signals /dev/ttyACM0 --rts low

Signal meanings:
  CTS - Clear To Send (input)
  DSR - Data Set Ready (input)
  RI  - Ring Indicator (input)
  DCD - Data Carrier Detect (input)
  RTS - Request To Send (output)
  DTR - Data Terminal Ready (output)`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := resolveTargets(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var rts *bool
		if rtsArg, _ := cmd.Flags().GetString("rts"); rtsArg != "" {
			state, err := parseSignalState(rtsArg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			rts = &state
		}

		cfg := loadLinkConfig()
		for _, path := range paths {
			if err := showSignals(cmd.OutOrStdout(), path, cfg.BaudRate, rts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd)

	signalsCmd.Flags().String("rts", "", "Drive RTS before reading: high or low")
}

func showSignals(w io.Writer, path string, baud int, rts *bool) error {
	port, err := openPort(path, baud)
	if err != nil {
		return fmt.Errorf("open port: %w", err)
	}
	defer port.Close()

	if rts != nil {
		if err := port.SetRTS(*rts); err != nil {
			return fmt.Errorf("set RTS: %w", err)
		}
	}

	signals, err := port.GetModemSignals()
	if err != nil {
		return fmt.Errorf("read modem signals: %w", err)
	}

	fmt.Fprintf(w, "Modem Signals for %s:\n\n", path)
	fmt.Fprintf(w, "  CTS (Clear To Send):       %s\n", formatSignalState(signals.CTS))
	fmt.Fprintf(w, "  DSR (Data Set Ready):      %s\n", formatSignalState(signals.DSR))
	fmt.Fprintf(w, "  RI  (Ring Indicator):      %s\n", formatSignalState(signals.RI))
	fmt.Fprintf(w, "  DCD (Data Carrier Detect): %s\n", formatSignalState(signals.DCD))
	fmt.Fprintf(w, "  RTS (Request To Send):     %s\n", formatSignalState(signals.RTS))
	fmt.Fprintf(w, "  DTR (Data Terminal Ready): %s\n", formatSignalState(signals.DTR))
	return nil
}

// resolveTargets returns the port path argument, or every port matching --serial
func resolveTargets(args []string) ([]string, error) {
	if len(args) == 1 {
		return args, nil
	}

	serialNumber, err := configuredSerial()
	if err != nil {
		return nil, fmt.Errorf("requires a port path argument or --serial: %w", err)
	}
	paths, err := findPorts(serialNumber)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no port with serial number %q: %w", serialNumber, serial.ErrDeviceNotFound)
	}
	return paths, nil
}

func formatSignalState(state bool) string {
	if state {
		return "HIGH"
	}
	return "LOW"
}

func parseSignalState(state string) (bool, error) {
	switch strings.ToLower(state) {
	case "high", "on", "true", "1":
		return true, nil
	case "low", "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid state: %s (valid: high, low, on, off, true, false, 1, 0)", state)
	}
}
