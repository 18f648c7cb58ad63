/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/allbin/ledlink/serial"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset [port]",
	Short: "USB-reset a controller",
	Long: `Perform a USB-level reset on a controller. This can bring back a
controller that stopped answering queries without unplugging it.

The device re-enumerates after the reset and its port path may change.
Its USB serial number does not, so --serial keeps working.

Requirements:
- usbreset utility must be installed (from usbutils package)
- Root/sudo permissions required for USB operations

Examples:
  sudo ledlink reset /dev/ttyACM0
  sudo ledlink reset --serial E66138528350A22B`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !serial.IsUSBResetAvailable() {
			fmt.Fprintln(os.Stderr, "Error: usbreset utility not available")
			fmt.Fprintln(os.Stderr, "Install with: sudo apt-get install usbutils")
			os.Exit(1)
		}

		serialNumber := viper.GetString("serial")
		if len(args) == 0 && serialNumber == "" {
			fmt.Fprintf(os.Stderr, "Error: requires a port path argument or --serial\n")
			os.Exit(1)
		}

		var err error
		if len(args) == 1 {
			log.Info().Str("port", args[0]).Msg("resetting USB device")
			err = serial.ResetUSBDevice(args[0])
		} else {
			log.Info().Str("serial", serialNumber).Msg("resetting USB device")
			err = serial.ResetUSBDeviceBySerial(serialNumber)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, serial.ErrUSBInfoNotAvailable) {
				fmt.Fprintln(os.Stderr, "This device does not appear to be a USB device")
			}
			os.Exit(1)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "USB device reset successfully")
		fmt.Fprintln(cmd.OutOrStdout(), "Use 'ledlink list --usb' to see where it came back")
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
