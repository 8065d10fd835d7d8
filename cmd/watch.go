/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/logger"
	"github.com/allbin/portwatch/internal/tui/components"
	"github.com/allbin/portwatch/internal/tui/keys"
	"github.com/allbin/portwatch/internal/tui/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive view of attached USB serial ports",
	Long: `Show the attached USB serial ports in a live terminal interface.

The most recently plugged port is listed first. Plugging in a port shows a
short notification; unplugging one only updates the status line. Press r to
poll immediately, ? for help and q to quit.

Logs go to $TMPDIR/portwatch.log unless --log-output says otherwise.

Examples:
  portwatch watch
  portwatch watch --interval 500ms --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		toastDuration, _ := cmd.Flags().GetDuration("toast-duration")

		log, closer, err := setupLogger(logger.OutputFile)
		if err != nil {
			return err
		}
		defer closer.Close()

		opts := monitorOptions(interval, log)
		opts = append(opts, portwatch.WithNotifier(portwatch.NewLogNotifier(log)))

		rich, minimal := providers()
		mon, err := portwatch.New(rich, minimal, opts...)
		if err != nil {
			return err
		}

		m := newWatchModel(cmd.Context(), mon, interval.String(), toastDuration)
		return runWatchTUI(m, mon)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", time.Second, "Time between polls")
	watchCmd.Flags().Duration("toast-duration", components.DefaultToastDuration, "How long notifications stay on screen")
}

// watchModel represents the Bubble Tea model for the watch command
type watchModel struct {
	*models.WatchModel
	table     *components.PortTable
	statusBar *components.StatusBar
	toast     *components.Toast
	help      help.Model
	keys      keys.WatchKeys

	// Ports highlighted since the last change
	recent []string

	width  int
	height int
}

func newWatchModel(ctx context.Context, refresher models.Refresher, interval string, toastDuration time.Duration) *watchModel {
	return &watchModel{
		WatchModel: models.NewWatchModel(ctx, refresher),
		table:      components.NewPortTable(0, 0), // Will be properly sized by WindowSizeMsg
		statusBar:  components.NewStatusBar("portwatch", interval),
		toast:      components.NewToast(toastDuration),
		help:       help.New(),
		keys:       keys.NewWatchKeys(),
	}
}

func runWatchTUI(m *watchModel, mon *portwatch.Monitor) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.GetContext()))

	g, ctx := errgroup.WithContext(m.GetContext())
	g.Go(func() error {
		err := mon.Run(ctx, func(res portwatch.Result) {
			p.Send(models.PollResultMsg{Result: res})
		})
		if err != nil {
			p.Send(models.MonitorStoppedMsg{Err: err})
		}
		return err
	})

	_, err := p.Run()

	// Ensure cleanup
	m.Cancel()
	werr := g.Wait()

	// Killed means the parent context was cancelled, which is a normal exit.
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	return errors.Join(err, werr, m.GetError())
}

func (m *watchModel) Init() tea.Cmd {
	return nil
}

func (m *watchModel) refresh() tea.Cmd {
	return func() tea.Msg {
		if msg := m.Refresh(); msg != nil {
			return *msg
		}
		return nil
	}
}

// layout divides the screen between the toast, the table, the help line and
// the status bar.
func (m *watchModel) layout() {
	m.statusBar.SetWidth(m.width)
	m.toast.SetWidth(m.width)
	m.help.Width = m.width

	used := 1 + lipgloss.Height(m.help.View(m.keys))
	if m.toast.Visible() {
		used += lipgloss.Height(m.toast.View())
	}
	m.table.SetSize(m.width, m.height-used)
}

func (m *watchModel) applyResult(msg models.PollResultMsg) tea.Cmd {
	res, ok := m.Apply(msg)
	if !ok {
		return nil
	}

	switch {
	case res.Mode != portwatch.ModeWatch:
		m.recent = nil
	case res.Diff != nil && len(res.Diff.Added) > 0:
		m.recent = res.Diff.Added
	}

	m.table.SetEntries(res.Rendering.Entries, m.recent, res.Time)
	m.statusBar.SetResult(res)

	if res.Notification == nil {
		return nil
	}
	cmd := m.toast.Show(*res.Notification)
	m.layout()
	return cmd
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.SetReady(true)
		m.layout()

	case models.PollResultMsg:
		return m, m.applyResult(msg)

	case components.ToastExpiredMsg:
		m.toast.Update(msg)
		m.layout()

	case models.MonitorStoppedMsg:
		m.SetError(msg.Err)
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.Dismiss):
			m.toast.Dismiss()
			m.layout()
		case key.Matches(msg, m.keys.ToggleSince):
			m.table.ToggleSince()
		default:
			return m, m.table.Update(msg)
		}
	}

	return m, nil
}

func (m *watchModel) View() string {
	if !m.IsReady() {
		return "Scanning serial ports..."
	}

	sections := make([]string, 0, 4)
	if m.toast.Visible() {
		sections = append(sections, m.toast.View())
	}
	sections = append(sections,
		m.table.View(),
		m.help.View(m.keys),
		m.statusBar.View(),
	)

	if err := m.GetError(); err != nil {
		sections = append(sections, fmt.Sprintf("Error: %v", err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
