/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/invocation"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errBadColorArgs = errors.New("colors take three values each: h s v [h s v]")

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <pattern> [h s v [h s v]]",
	Short: "Set the pattern and its two colors",
	Long: `Send a set-pattern command to the controller selected by --serial.

The pattern is a number from 0 to 255. Colors are given as hue, saturation
and value, each between 0 and 1. Color A comes first, then color B; missing
colors are black. The controller does not acknowledge the command.

Examples:
  ledlink set 3 0.1 0.2 0.3 0.4 0.5 0.6 --serial E66138528350A22B
  ledlink set 0 --serial E66138528350A22B`,
	Args: cobra.RangeArgs(1, 7),
	Run: func(cmd *cobra.Command, args []string) {
		command, err := parseSetArgs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		serialNumber, err := configuredSerial()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		if err := runSet(cmd.OutOrStdout(), serialNumber, command, loadLinkConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// parseSetArgs validates the set surface strictly, unlike exec which defaults everything
func parseSetArgs(args []string) (ledlink.Command, error) {
	if len(args) == 0 {
		return ledlink.Command{}, errors.New("missing pattern")
	}
	pattern, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return ledlink.Command{}, fmt.Errorf("pattern %q must be a number from 0 to 255", args[0])
	}

	channels := args[1:]
	if len(channels)%3 != 0 {
		return ledlink.Command{}, errBadColorArgs
	}
	values := make([]float32, 0, len(channels))
	for _, s := range channels {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil || !(v >= 0 && v <= 1) {
			return ledlink.Command{}, fmt.Errorf("color value %q must be between 0 and 1", s)
		}
		values = append(values, float32(v))
	}

	return ledlink.Command{
		Kind:    ledlink.KindSetPattern,
		Pattern: byte(pattern),
		Colors:  invocation.ColorsFromValues(values),
	}, nil
}

var sentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

func runSet(w io.Writer, serialNumber string, command ledlink.Command, cfg linkConfig) error {
	results, err := executeOnDevices(serialNumber, command, cfg)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintln(w, sentStyle.Render(fmt.Sprintf("Pattern %d sent to %s", command.Pattern, r.Path)))
		}
	}
	return firstError(results)
}
