/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/allbin/ledlink"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v2"
)

// Output formats accepted by --output
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// report is the machine-readable form of one device result
type report struct {
	Port      string         `json:"port" yaml:"port"`
	Outcome   string         `json:"outcome" yaml:"outcome"`
	State     *ledlink.State `json:"state,omitempty" yaml:"state,omitempty"`
	ElapsedMs int64          `json:"elapsed_ms" yaml:"elapsed_ms"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReports(results []deviceResult) []report {
	reports := make([]report, 0, len(results))
	for _, r := range results {
		rep := report{
			Port:      r.Path,
			Outcome:   r.Result.Outcome.String(),
			State:     r.Result.State,
			ElapsedMs: r.Result.Elapsed.Milliseconds(),
		}
		if r.Err != nil {
			rep.Error = r.Err.Error()
			if r.Result.Outcome == ledlink.OutcomeNoop {
				rep.Outcome = "open-failed"
			}
		}
		reports = append(reports, rep)
	}
	return reports
}

var (
	portHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

func validOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be text, json or yaml", format)
	}
}

// writeReports renders results to w. Text output only shows decoded states;
// failures are reported on stderr by the caller.
func writeReports(w io.Writer, format string, results []deviceResult) error {
	reports := newReports(results)

	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case outputYAML:
		data, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return writeText(w, reports)
	}
}

func writeText(w io.Writer, reports []report) error {
	var b strings.Builder
	for _, rep := range reports {
		if rep.State == nil {
			continue
		}
		if len(reports) > 1 {
			b.WriteString(portHeaderStyle.Render(rep.Port))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("pattern:"), rep.State.Pattern)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("color1:"), rep.State.A)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("color2:"), rep.State.B)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
