/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/invocation"
	"github.com/spf13/cobra"
)

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec <serial> [kind] [pattern] [h1 s1 v1 h2 s2 v2]",
	Short: "Run a raw command by kind number",
	Long: `Run one command given as positional numbers, the way controller scripts call it.

  kind     0 = idle, 1 = set pattern, 2 = query state (default 0)
  pattern  pattern number 0-255 (default 0)
  colors   up to six hue/saturation/value channels for color A then color B

Malformed numbers fall back to 0, channel values are clamped to [0, 1] and
anything after the sixth channel is ignored. The command is sent to every
port whose USB serial number matches.

Examples:
  ledlink exec E66138528350A22B 1 3 0.1 0.2 0.3 0.4 0.5 0.6
  ledlink exec E66138528350A22B 2`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := validOutput(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}

		if err := runExec(cmd.OutOrStdout(), args, output, loadLinkConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCode(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().StringP("output", "o", outputText, "Output format for query replies: text, json, yaml")
}

func runExec(w io.Writer, args []string, output string, cfg linkConfig) error {
	inv := invocation.Parse(args)

	results, err := executeOnDevices(inv.SerialNumber, inv.Command, cfg)
	if err != nil {
		return err
	}

	if inv.Command.Kind == ledlink.KindQueryState || output != outputText {
		if err := writeReports(w, output, results); err != nil {
			return err
		}
	}
	return firstError(results)
}
