/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/allbin/ledlink"
	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read the current pattern and colors",
	Long: `Ask the controller selected by --serial for its current pattern and colors.

The reply is waited for until --deadline (default 10s). A controller that
never answers exits with status 2; a reply that could not be read exits
with status 3.

Examples:
  ledlink query --serial E66138528350A22B
  ledlink query --serial E66138528350A22B --output json
  LEDLINK_SERIAL=E66138528350A22B ledlink query -o yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := validOutput(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		serialNumber, err := configuredSerial()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		if err := runQuery(cmd.OutOrStdout(), serialNumber, output, loadLinkConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, ledlink.ErrTimeout) {
				fmt.Fprintln(os.Stderr, "The controller did not answer; check the cable and that --serial is right")
			}
			os.Exit(exitCode(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringP("output", "o", outputText, "Output format: text, json, yaml")
}

func runQuery(w io.Writer, serialNumber, output string, cfg linkConfig) error {
	results, err := executeOnDevices(serialNumber, ledlink.Command{Kind: ledlink.KindQueryState}, cfg)
	if err != nil {
		return err
	}
	if err := writeReports(w, output, results); err != nil {
		return err
	}
	return firstError(results)
}
