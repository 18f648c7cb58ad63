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
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List serial ports and their USB serial numbers",
	Long: `List serial ports so the right controller can be picked with --serial.

By default all serial ports found under /dev are listed. With --usb only
USB-attached ports are shown, as reported by the platform enumerator, with
vendor, product and serial number.

Examples:
  ledlink list
  ledlink list --table
  ledlink list --usb`,
	Run: func(cmd *cobra.Command, args []string) {
		usbOnly, _ := cmd.Flags().GetBool("usb")
		tableFormat, _ := cmd.Flags().GetBool("table")
		w := cmd.OutOrStdout()

		if usbOnly {
			ports, err := serial.ListUSBPorts()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error listing USB ports: %v\n", err)
				os.Exit(1)
			}
			if len(ports) == 0 {
				fmt.Fprintln(w, "No USB serial ports found")
				return
			}
			renderUSBTable(w, ports)
			return
		}

		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}
		if len(ports) == 0 {
			fmt.Fprintln(w, "No serial ports found")
			return
		}

		if tableFormat {
			renderTable(w, ports)
		} else {
			renderSimple(w, ports)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().BoolP("usb", "u", false, "Only USB ports, with serial numbers from the enumerator")
}

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("99")).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("240"))

	tableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// renderTable renders the port list with type and USB serial number columns
func renderTable(w io.Writer, ports []string) {
	fmt.Fprintf(w, "Found %d serial port(s):\n\n", len(ports))

	const portWidth, typeWidth, serialWidth = 15, 18, 24

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		portWidth, "Port",
		typeWidth, "Type",
		serialWidth, "Serial",
		"Description")
	fmt.Fprintln(w, tableHeaderStyle.Render(header))

	for _, port := range ports {
		info, err := serial.GetPortInfo(port)
		if err != nil {
			row := fmt.Sprintf("%-*s %-*s %-*s %s",
				portWidth, port,
				typeWidth, "Unknown",
				serialWidth, "-",
				fmt.Sprintf("Error: %v", err))
			fmt.Fprintln(w, tableCellStyle.Render(row))
			continue
		}

		serialNumber := info.SerialNumber
		if serialNumber == "" {
			serialNumber = "-"
		}
		description := info.Description
		if info.Product != "" {
			description = info.Product
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			portWidth, info.Name,
			typeWidth, getPortType(info.Name),
			serialWidth, serialNumber,
			description)
		fmt.Fprintln(w, tableCellStyle.Render(row))
	}
}

// renderUSBTable renders enumerator results, one line per USB port
func renderUSBTable(w io.Writer, ports []serial.USBPort) {
	const pathWidth, idWidth, serialWidth = 16, 10, 24

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		pathWidth, "Port",
		idWidth, "VID:PID",
		serialWidth, "Serial",
		"Product")
	fmt.Fprintln(w, tableHeaderStyle.Render(header))

	for _, p := range ports {
		serialNumber := p.SerialNumber
		if serialNumber == "" {
			serialNumber = "-"
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			pathWidth, p.Path,
			idWidth, strings.ToLower(p.VendorID+":"+p.ProductID),
			serialWidth, serialNumber,
			p.Product)
		fmt.Fprintln(w, tableCellStyle.Render(row))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(w io.Writer, ports []string) {
	for _, port := range ports {
		fmt.Fprintln(w, port)
	}
}

// getPortType returns a more specific type classification for the port
func getPortType(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "ttyusb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	default:
		return "Serial Port"
	}
}
