package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/JPM1118/cimcheck/internal/logger"
	"github.com/JPM1118/cimcheck/internal/notify"
	"github.com/JPM1118/cimcheck/internal/suite"
)

const (
	colIndex    = 4
	colLabel    = 44
	colStatus   = 12
	colDuration = 10
	minWidth    = 40
)

// Messages

type startMsg struct {
	index int
}

type finishedMsg struct {
	index int
	err   error
}

type row struct {
	inv     suite.Invocation
	status  string
	outcome suite.Outcome
}

// Dashboard is the main Bubble Tea model. It hands the terminal to each
// invocation in turn and shows the running tally between them.
type Dashboard struct {
	exec      suite.Executor
	rows      []row
	current   int
	startedAt time.Time
	cursor    int
	width     int
	height    int
	done      bool
	bell      *notify.Bell
	bar       *notify.Bar
	now       func() time.Time
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithBell rings the terminal bell on failures.
func WithBell(b *notify.Bell) Option {
	return func(d *Dashboard) { d.bell = b }
}

// WithNotifyBar shows status transitions in a notification bar.
func WithNotifyBar(b *notify.Bar) Option {
	return func(d *Dashboard) { d.bar = b }
}

// NewDashboard creates a dashboard model for plan.
func NewDashboard(ex suite.Executor, plan []suite.Invocation, opts ...Option) Dashboard {
	rows := make([]row, len(plan))
	for i, inv := range plan {
		rows[i] = row{inv: inv, status: suite.StatusPending}
	}
	d := Dashboard{
		exec:    ex,
		rows:    rows,
		current: -1,
		bar:     notify.NewBar(20),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Done reports whether every invocation has finished.
func (d Dashboard) Done() bool {
	return d.done
}

// Results returns outcomes of the finished invocations, in plan order.
func (d Dashboard) Results() suite.Results {
	results := make(suite.Results, 0, len(d.rows))
	for _, r := range d.rows {
		if r.status == suite.StatusPass || r.status == suite.StatusFail {
			results = append(results, r.outcome)
		}
	}
	return results
}

// ExitCode is 0 only when every invocation ran and passed.
func (d Dashboard) ExitCode() int {
	if !d.done {
		return 1
	}
	return d.Results().ExitCode()
}

// Init starts the first invocation.
func (d Dashboard) Init() tea.Cmd {
	return d.startCmd(0)
}

func (d Dashboard) startCmd(index int) tea.Cmd {
	return func() tea.Msg {
		return startMsg{index: index}
	}
}

// Update handles messages.
func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return d.handleKey(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case startMsg:
		return d.start(msg.index)

	case finishedMsg:
		return d.finish(msg)
	}

	return d, nil
}

func (d Dashboard) start(index int) (tea.Model, tea.Cmd) {
	if index >= len(d.rows) {
		d.done = true
		d.current = len(d.rows)
		return d, nil
	}

	d.current = index
	d.cursor = index
	d.startedAt = d.now()
	d.transition(index, suite.StatusRunning, suite.Outcome{Label: d.rows[index].inv.Label})
	if d.bell != nil {
		d.bell.Suspend()
	}

	c := d.exec.Command(context.Background(), d.rows[index].inv)
	return d, tea.ExecProcess(c, func(err error) tea.Msg {
		return finishedMsg{index: index, err: err}
	})
}

func (d Dashboard) finish(msg finishedMsg) (tea.Model, tea.Cmd) {
	if msg.index != d.current || msg.index >= len(d.rows) {
		return d, nil
	}

	label := d.rows[msg.index].inv.Label
	o := suite.OutcomeFor(label, msg.err, d.now().Sub(d.startedAt))
	d.transition(msg.index, o.Status(), o)
	logger.Info("sub-test finished",
		zap.String("label", label),
		zap.Int("exit_code", o.ExitCode),
		zap.Duration("duration", o.Duration))

	if d.bell != nil {
		d.bell.Resume()
		d.bell.Ring(o.Status(), d.now())
	}

	return d, d.startCmd(msg.index + 1)
}

// transition copies rows so earlier model values are left untouched.
func (d *Dashboard) transition(index int, status string, outcome suite.Outcome) {
	rows := make([]row, len(d.rows))
	copy(rows, d.rows)
	old := rows[index].status
	rows[index].status = status
	rows[index].outcome = outcome
	d.rows = rows

	if d.bar != nil {
		d.bar.Push(notify.Notification{
			Label:     rows[index].inv.Label,
			OldStatus: old,
			NewStatus: status,
			Timestamp: d.now(),
		})
	}
}

func (d Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return d, tea.Quit

	case "j", "down":
		if d.cursor < len(d.rows)-1 {
			d.cursor++
		}
		return d, nil

	case "k", "up":
		if d.cursor > 0 {
			d.cursor--
		}
		return d, nil

	case "G":
		if len(d.rows) > 0 {
			d.cursor = len(d.rows) - 1
		}
		return d, nil

	case "g":
		d.cursor = 0
		return d, nil
	}

	return d, nil
}

// View renders the dashboard.
func (d Dashboard) View() string {
	if d.width > 0 && d.width < minWidth {
		return fmt.Sprintf("\n  Terminal too small (need %d columns, got %d)\n", minWidth, d.width)
	}

	var b strings.Builder

	b.WriteString(d.renderHeader())
	b.WriteString("\n")
	b.WriteString(d.renderSubheader())
	b.WriteString("\n")
	b.WriteString(d.renderColumnHeaders())
	b.WriteString("\n")
	b.WriteString(d.renderRows())
	b.WriteString(d.renderDetail())
	b.WriteString("\n")
	b.WriteString(d.renderNotificationBar())
	b.WriteString("\n")
	b.WriteString(d.renderStatusBar())
	b.WriteString("\n")

	return b.String()
}

func (d Dashboard) failures() int {
	n := 0
	for _, r := range d.rows {
		if r.status == suite.StatusFail {
			n++
		}
	}
	return n
}

func (d Dashboard) renderHeader() string {
	title := headerStyle.Render("cimcheck")

	right := ""
	if n := d.failures(); n > 0 {
		right = badgeStyle.Render(fmt.Sprintf("[%d failed]", n))
	}

	width := d.width
	if width == 0 {
		width = colIndex + colLabel + colStatus + colDuration
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + right
}

func (d Dashboard) renderSubheader() string {
	switch {
	case len(d.rows) == 0:
		return subheaderStyle.Render("Nothing to run")
	case d.done:
		passed := d.Results().Passed()
		return subheaderStyle.Render(fmt.Sprintf("Finished: %d passed, %d failed", passed, len(d.rows)-passed))
	case d.current >= 0:
		return subheaderStyle.Render(fmt.Sprintf("Running %d/%d: %s", d.current+1, len(d.rows), d.rows[d.current].inv.Label))
	default:
		return subheaderStyle.Render("Starting...")
	}
}

func (d Dashboard) renderColumnHeaders() string {
	header := padRight("#", colIndex) +
		padRight("LABEL", colLabel) +
		padRight("STATUS", colStatus) +
		"TIME"
	return columnHeaderStyle.Render(header)
}

func (d Dashboard) renderRows() string {
	var b strings.Builder
	for i, r := range d.rows {
		prefix := "  "
		if i == d.cursor {
			prefix = cursorStyle.Render("▸ ")
		}

		index := padRight(fmt.Sprintf("%d", i+1), colIndex-2)
		label := padRight(truncate(r.inv.Label, colLabel-1), colLabel)
		status := statusStyle(r.status).Render(padRight(statusLabel(r.status), colStatus))

		elapsed := "—"
		if r.status == suite.StatusPass || r.status == suite.StatusFail {
			elapsed = r.outcome.Duration.Truncate(time.Millisecond).String()
		}

		b.WriteString(prefix + index + label + status + elapsed)
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail shows the command and exit status of the row under the cursor.
func (d Dashboard) renderDetail() string {
	if d.cursor < 0 || d.cursor >= len(d.rows) {
		return ""
	}
	r := d.rows[d.cursor]
	detail := "  $ " + r.inv.String()
	if r.status == suite.StatusFail {
		if r.outcome.Err != nil {
			detail += fmt.Sprintf("  (could not start: %v)", r.outcome.Err)
		} else {
			detail += fmt.Sprintf("  (exit %d)", r.outcome.ExitCode)
		}
	}
	if d.width > 0 {
		detail = truncate(detail, d.width)
	}
	return subheaderStyle.Render(detail)
}

func (d Dashboard) renderNotificationBar() string {
	if d.bar == nil {
		return ""
	}
	width := d.width - 4
	if d.width == 0 {
		width = 76
	}
	text := d.bar.Render(width, d.now())
	if text == "" {
		return ""
	}
	return notificationBarStyle.Render("  " + text)
}

func (d Dashboard) renderStatusBar() string {
	return statusBarStyle.Render("  j/k:navigate  q:quit")
}

// Helpers

func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
