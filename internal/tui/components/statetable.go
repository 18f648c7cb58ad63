package components

import (
	"fmt"
	"time"

	"github.com/allbin/ledlink"
	"github.com/allbin/ledlink/internal/tui/styles"
	"github.com/evertras/bubble-table/table"
)

// DeviceState is the latest query result for one matched port
type DeviceState struct {
	Port    string
	Outcome ledlink.Outcome
	State   *ledlink.State
	Elapsed time.Duration
	Err     error
}

const (
	columnPort    = "port"
	columnPattern = "pattern"
	columnSwatchA = "swatchA"
	columnColorA  = "colorA"
	columnSwatchB = "swatchB"
	columnColorB  = "colorB"
	columnElapsed = "elapsed"
	columnOutcome = "outcome"
)

const (
	minTableWidth = 60
	swatchWidth   = 4
)

// StateTable renders one row per controller port
type StateTable struct {
	table table.Model
	rows  int
}

func NewStateTable() *StateTable {
	columns := []table.Column{
		table.NewFlexColumn(columnPort, "Port", 2),
		table.NewColumn(columnPattern, "Pattern", 9),
		table.NewColumn(columnSwatchA, "A", swatchWidth),
		table.NewFlexColumn(columnColorA, "Color A (h, s, v)", 3),
		table.NewColumn(columnSwatchB, "B", swatchWidth),
		table.NewFlexColumn(columnColorB, "Color B (h, s, v)", 3),
		table.NewColumn(columnElapsed, "Reply", 9),
		table.NewColumn(columnOutcome, "Outcome", 12),
	}

	t := table.New(columns).
		WithBaseStyle(styles.TableBaseStyle).
		HeaderStyle(styles.TableHeaderStyle).
		BorderRounded().
		WithTargetWidth(minTableWidth)

	return &StateTable{table: t}
}

func (st *StateTable) SetWidth(width int) {
	if width < minTableWidth {
		width = minTableWidth
	}
	st.table = st.table.WithTargetWidth(width)
}

// SetDevices replaces all rows
func (st *StateTable) SetDevices(devices []DeviceState) {
	rows := make([]table.Row, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, newStateRow(d))
	}
	st.rows = len(rows)
	st.table = st.table.WithRows(rows)
}

// Len returns the number of rows shown
func (st *StateTable) Len() int {
	return st.rows
}

func (st *StateTable) View() string {
	return st.table.View()
}

func newStateRow(d DeviceState) table.Row {
	outcome := d.Outcome.String()
	if d.Err != nil && d.Outcome == ledlink.OutcomeNoop {
		outcome = "open-failed"
	}

	data := table.RowData{
		columnPort:    d.Port,
		columnPattern: "-",
		columnSwatchA: "",
		columnColorA:  "-",
		columnSwatchB: "",
		columnColorB:  "-",
		columnElapsed: formatElapsed(d.Elapsed),
		columnOutcome: table.NewStyledCell(outcome, styles.OutcomeStyle(d.Outcome)),
	}

	if d.State != nil {
		data[columnPattern] = fmt.Sprintf("%d", d.State.Pattern)
		data[columnSwatchA] = table.NewStyledCell("", styles.SwatchStyle(d.State.A))
		data[columnColorA] = d.State.A.String()
		data[columnSwatchB] = table.NewStyledCell("", styles.SwatchStyle(d.State.B))
		data[columnColorB] = d.State.B.String()
	}
	return table.NewRow(data)
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
