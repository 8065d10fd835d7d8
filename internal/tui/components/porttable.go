package components

import (
	"strings"
	"time"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyPort   = "port"
	columnKeyName   = "name"
	columnKeyVIDPID = "vidpid"
	columnKeySince  = "since"

	// attachedAtStartup is shown in the since column for ports seeded at launch.
	attachedAtStartup = "at startup"
)

// PortTable renders the current port list, most recently plugged first.
type PortTable struct {
	table     table.Model
	entries   []portwatch.Entry
	recent    map[string]bool
	now       time.Time
	showSince bool
	width     int
	height    int
}

func NewPortTable(width, height int) *PortTable {
	pt := &PortTable{
		recent:    make(map[string]bool),
		showSince: true,
	}
	pt.table = table.New(pt.columns()).
		WithBaseStyle(styles.TableBaseStyle).
		HeaderStyle(styles.TableHeaderStyle).
		BorderRounded().
		Focused(true)
	pt.SetSize(width, height)
	return pt
}

func (pt *PortTable) columns() []table.Column {
	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 12),
		table.NewFlexColumn(columnKeyName, "Description", 1),
		table.NewColumn(columnKeyVIDPID, "VID/PID", 20),
	}
	if pt.showSince {
		columns = append(columns, table.NewColumn(columnKeySince, "Plugged", 16))
	}
	return columns
}

// SetSize fits the table into the given area. Rows beyond the page size are
// paged.
func (pt *PortTable) SetSize(width, height int) {
	if width < 40 {
		width = 40
	}
	// Header and borders take four lines.
	pageSize := height - 4
	if pageSize < 1 {
		pageSize = 1
	}
	pt.width, pt.height = width, height
	pt.table = pt.table.WithTargetWidth(width).WithPageSize(pageSize)
}

// ToggleSince shows or hides the plugged-in time column.
func (pt *PortTable) ToggleSince() {
	pt.showSince = !pt.showSince
	pt.table = pt.table.WithColumns(pt.columns())
	pt.refreshRows()
}

// SetEntries replaces the list. Ports named in added are highlighted.
func (pt *PortTable) SetEntries(entries []portwatch.Entry, added []string, now time.Time) {
	pt.entries = entries
	pt.now = now
	pt.recent = make(map[string]bool, len(added))
	for _, name := range added {
		pt.recent[strings.ToUpper(name)] = true
	}
	pt.refreshRows()
}

func (pt *PortTable) refreshRows() {
	rows := make([]table.Row, 0, len(pt.entries))
	for _, e := range pt.entries {
		vidpid, _ := portwatch.ExtractVIDPID(e.Port.DeviceID)
		row := table.NewRow(table.RowData{
			columnKeyPort:   e.Port.Name,
			columnKeyName:   e.Port.DisplayName,
			columnKeyVIDPID: vidpid,
			columnKeySince:  since(e.InsertedAt, pt.now),
		})
		if pt.recent[strings.ToUpper(e.Port.Name)] {
			row = row.WithStyle(styles.RecentRowStyle)
		}
		rows = append(rows, row)
	}
	pt.table = pt.table.WithRows(rows)
}

// since renders an insertion time relative to now.
func since(at, now time.Time) string {
	if at.Equal(portwatch.Earliest) {
		return attachedAtStartup
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

func (pt *PortTable) Len() int {
	return len(pt.entries)
}

func (pt *PortTable) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	pt.table, cmd = pt.table.Update(msg)
	return cmd
}

func (pt *PortTable) View() string {
	if len(pt.entries) == 0 {
		return styles.InfoStyle.Width(pt.width).Render("No USB serial ports attached")
	}
	return pt.table.View()
}
