package components

import (
	"fmt"
	"time"

	"github.com/allbin/ledlink/internal/tui/colors"
	"github.com/allbin/ledlink/serial"
	"github.com/charmbracelet/lipgloss"
)

// LinkInfo describes how the controller is driven
type LinkInfo struct {
	BaudRate    int
	FlowControl serial.FlowControl
	Deadline    time.Duration
	Interval    time.Duration
}

type StatusBar struct {
	title        string
	serialNumber string
	status       string
	err          error
	paused       bool
	lastUpdate   time.Time
	width        int
	linkInfo     *LinkInfo
}

func NewStatusBar(title, serialNumber string) *StatusBar {
	return &StatusBar{
		title:        title,
		serialNumber: serialNumber,
		status:       "Initializing...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetLinkInfo(info *LinkInfo) {
	sb.linkInfo = info
}

func (sb *StatusBar) SetPaused(paused bool) {
	sb.paused = paused
}

func (sb *StatusBar) SetQuerying() {
	sb.status = "Querying..."
}

// SetUpdated records a finished round; err is the round-level failure, if any
func (sb *StatusBar) SetUpdated(at time.Time, devices int, err error) {
	sb.lastUpdate = at
	sb.err = err
	if err != nil {
		sb.status = fmt.Sprintf("Query failed: %v", err)
		return
	}
	sb.status = fmt.Sprintf("%d device(s)", devices)
}

// Status returns the current status text
func (sb *StatusBar) Status() string {
	return sb.status
}

func flowControlToString(fc serial.FlowControl) string {
	switch fc {
	case serial.FlowControlNone:
		return "None"
	case serial.FlowControlRTSCTS:
		return "RTS/CTS"
	default:
		return "Unknown"
	}
}

// View renders the status bar across the full width. spin is shown while a query is in flight.
func (sb *StatusBar) View(querying bool, spin string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	// Section 1: Mode indicator
	modeStyle := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(colors.Blue).
		Bold(true).
		Padding(0, 1)
	modeText := "WATCH"
	if sb.paused {
		modeStyle = modeStyle.Background(colors.Peach)
		modeText = "PAUSED"
	}
	mode := modeStyle.Render(modeText)

	// Section 2: Serial number
	serialStyle := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1)
	serialNumber := serialStyle.Render(sb.serialNumber)

	// Section 3: Activity indicator
	var indicator string
	switch {
	case querying:
		indicator = spin
	case sb.err != nil:
		indicator = lipgloss.NewStyle().Foreground(colors.Red).Render("✗")
	case !sb.lastUpdate.IsZero():
		indicator = lipgloss.NewStyle().Foreground(colors.Green).Render("●")
	default:
		indicator = lipgloss.NewStyle().Foreground(colors.Yellow).Render("○")
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1)
	status := statusStyle.Render(sb.status)

	// Section 4: Link details
	linkText := "⚡ serial"
	if sb.linkInfo != nil {
		linkText = fmt.Sprintf("⚡ %d baud 8N1 %s, deadline %v, every %v",
			sb.linkInfo.BaudRate,
			flowControlToString(sb.linkInfo.FlowControl),
			sb.linkInfo.Deadline,
			sb.linkInfo.Interval)
	}
	linkStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
	link := linkStyle.Render(linkText)

	// Section 5: Time of the last finished round
	updated := "--:--:--"
	if !sb.lastUpdate.IsZero() {
		updated = sb.lastUpdate.Format(time.TimeOnly)
	}
	timeStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1)
	timestamp := timeStyle.Render(updated)

	dividerStyle := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1)
	divider := dividerStyle.Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, mode, serialNumber, indicator, status, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, link, divider, timestamp)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	content := lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
	return statusBarStyle.Render(content)
}
