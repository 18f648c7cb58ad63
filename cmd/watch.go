/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/tui/components"
	"github.com/allbin/ledlink/internal/tui/keys"
	"github.com/allbin/ledlink/internal/tui/models"
	"github.com/allbin/ledlink/internal/tui/styles"
	"github.com/allbin/ledlink/serial"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultWatchInterval = 2 * time.Second

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the controller state live",
	Long: `Query the controller selected by --serial over and over and show its
pattern and colors, with a swatch for each color.

Only one query runs at a time; the next one starts --interval after the
previous one finished.

Examples:
  ledlink watch --serial E66138528350A22B
  ledlink watch --serial E66138528350A22B --interval 500ms`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 {
			fmt.Fprintf(os.Stderr, "Error: --interval must be positive\n")
			os.Exit(1)
		}

		serialNumber, err := configuredSerial()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := runWatchTUI(serialNumber, interval, loadLinkConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", defaultWatchInterval, "Pause between queries")
}

// watchModel represents the Bubble Tea model for the watch command
type watchModel struct {
	*models.WatchModel
	table     *components.StateTable
	statusBar *components.StatusBar
	spinner   spinner.Model
	help      help.Model
	keys      keys.WatchKeys
	interval  time.Duration
	query     func() models.QueryResultMsg
}

func newWatchModel(serialNumber string, interval time.Duration, cfg linkConfig, query func() models.QueryResultMsg) *watchModel {
	statusBar := components.NewStatusBar("ledlink watch", serialNumber)
	statusBar.SetLinkInfo(&components.LinkInfo{
		BaudRate:    cfg.BaudRate,
		FlowControl: serial.FlowControlRTSCTS,
		Deadline:    cfg.Deadline,
		Interval:    interval,
	})

	return &watchModel{
		WatchModel: models.NewWatchModel(serialNumber),
		table:      components.NewStateTable(),
		statusBar:  statusBar,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		keys:       keys.NewWatchKeys(),
		interval:   interval,
		query:      query,
	}
}

func runWatchTUI(serialNumber string, interval time.Duration, cfg linkConfig) error {
	// The alt screen owns the terminal; exchange logs would tear it
	log.Logger = zerolog.Nop()

	query := func() models.QueryResultMsg {
		results, err := executeOnDevices(serialNumber, ledlink.Command{Kind: ledlink.KindQueryState}, cfg)
		return models.QueryResultMsg{Devices: deviceStates(results), Err: err, At: time.Now()}
	}

	m := newWatchModel(serialNumber, interval, cfg, query)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func deviceStates(results []deviceResult) []components.DeviceState {
	states := make([]components.DeviceState, 0, len(results))
	for _, r := range results {
		states = append(states, components.DeviceState{
			Port:    r.Path,
			Outcome: r.Result.Outcome,
			State:   r.Result.State,
			Elapsed: r.Result.Elapsed,
			Err:     r.Err,
		})
	}
	return states
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startQuery())
}

// startQuery begins a round unless one is running or the view is paused
func (m *watchModel) startQuery() tea.Cmd {
	if m.IsPaused() || !m.BeginQuery() {
		return nil
	}
	m.statusBar.SetQuerying()
	query := m.query
	return func() tea.Msg {
		return query()
	}
}

func (m *watchModel) scheduleTick() tea.Cmd {
	round := m.Rounds()
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return models.TickMsg{Round: round}
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetReady(true)
		m.table.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case models.QueryResultMsg:
		m.Apply(msg)
		if msg.Err == nil {
			m.table.SetDevices(msg.Devices)
		}
		m.statusBar.SetUpdated(msg.At, len(m.Devices()), msg.Err)
		return m, m.scheduleTick()

	case models.TickMsg:
		if !m.IsCurrent(msg) {
			return m, nil
		}
		return m, m.startQuery()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Refresh):
			return m, m.startQuery()

		case key.Matches(msg, m.keys.Pause):
			paused := m.TogglePause()
			m.statusBar.SetPaused(paused)
			if !paused {
				return m, m.startQuery()
			}
		}
	}

	return m, nil
}

func (m *watchModel) View() string {
	if !m.IsReady() {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("ledlink · " + m.SerialNumber()))
	b.WriteString("\n\n")

	if m.table.Len() == 0 {
		b.WriteString(styles.InfoStyle.Render("Waiting for the first reply..."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if err := m.Error(); err != nil {
		b.WriteString(styles.ErrorStyle.Render(err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		m.statusBar.View(m.IsQuerying(), m.spinner.View()),
	)
}
