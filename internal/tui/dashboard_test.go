package tui

import (
	"bytes"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JPM1118/cimcheck/internal/notify"
	"github.com/JPM1118/cimcheck/internal/suite"
	"github.com/JPM1118/cimcheck/internal/testutil"
)

var testPlan = []suite.Invocation{
	{Command: []string{"node", "tests/test_symbols.js"}, Label: "Symbol round-trip (Node.js)"},
	{Command: []string{"node", "tests/test_rs.js"}, Label: "Reed-Solomon (Node.js)"},
	{Command: []string{"cimcheck", "gif", "out.gif", "256"}, Label: "GIF structure check (out.gif)"},
}

func keyMsg(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func exitErr(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("/bin/sh", "-c", "exit "+strconv.Itoa(code)).Run()
	if err == nil {
		t.Fatalf("expected exit error for code %d", code)
	}
	return err
}

// step feeds msg to d and returns the updated model and command.
func step(t *testing.T, d Dashboard, msg tea.Msg) (Dashboard, tea.Cmd) {
	t.Helper()
	updated, cmd := d.Update(msg)
	return updated.(Dashboard), cmd
}

// testDashboard creates a Dashboard with a fixed clock and a started first row.
func testDashboard(t *testing.T, opts ...Option) (Dashboard, *testutil.MockExecutor) {
	t.Helper()
	mock := &testutil.MockExecutor{}
	d := NewDashboard(mock, testPlan, opts...)
	clock := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }
	d.width = 100

	msg := d.Init()()
	d, cmd := step(t, d, msg)
	if cmd == nil {
		t.Fatal("starting a row should return an exec command")
	}
	return d, mock
}

func TestDashboard_InitStartsFirstRow(t *testing.T) {
	d, mock := testDashboard(t)

	if d.rows[0].status != suite.StatusRunning {
		t.Errorf("row 0 status = %q, want RUNNING", d.rows[0].status)
	}
	if d.rows[1].status != suite.StatusPending {
		t.Errorf("row 1 status = %q, want PENDING", d.rows[1].status)
	}
	if labels := mock.Labels(); len(labels) != 1 || labels[0] != testPlan[0].Label {
		t.Errorf("spawned = %v, want only the first invocation", labels)
	}
	if !strings.Contains(d.View(), "Running 1/3") {
		t.Errorf("View() should show progress, got:\n%s", d.View())
	}
}

func TestDashboard_RunsAllInOrderDespiteFailure(t *testing.T) {
	d, mock := testDashboard(t)

	d, cmd := step(t, d, finishedMsg{index: 0, err: nil})
	d, _ = step(t, d, cmd())
	d, cmd = step(t, d, finishedMsg{index: 1, err: exitErr(t, 2)})
	d, _ = step(t, d, cmd())
	d, cmd = step(t, d, finishedMsg{index: 2, err: nil})
	d, next := step(t, d, cmd())

	if next != nil {
		t.Error("no command should follow the last row")
	}
	if !d.Done() {
		t.Fatal("dashboard should be done")
	}

	labels := mock.Labels()
	if len(labels) != 3 {
		t.Fatalf("expected 3 spawns, got %v", labels)
	}
	for i, inv := range testPlan {
		if labels[i] != inv.Label {
			t.Errorf("spawn %d = %q, want %q", i, labels[i], inv.Label)
		}
	}

	results := d.Results()
	if len(results) != 3 {
		t.Fatalf("Results() = %d outcomes, want 3", len(results))
	}
	if !results[0].Success || results[1].Success || !results[2].Success {
		t.Errorf("outcomes = %+v", results)
	}
	if results[1].ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", results[1].ExitCode)
	}
	if d.ExitCode() == 0 {
		t.Error("ExitCode() should be non-zero with a failure")
	}

	view := d.View()
	if !strings.Contains(view, "[1 failed]") {
		t.Errorf("View() should show failure badge, got:\n%s", view)
	}
	if !strings.Contains(view, "Finished: 2 passed, 1 failed") {
		t.Errorf("View() should show final tally, got:\n%s", view)
	}
}

func TestDashboard_AllPass(t *testing.T) {
	d, _ := testDashboard(t)

	for i := range testPlan {
		var cmd tea.Cmd
		d, cmd = step(t, d, finishedMsg{index: i})
		d, _ = step(t, d, cmd())
	}

	if !d.Done() || d.ExitCode() != 0 {
		t.Errorf("done = %v, exit = %d; want done with exit 0", d.Done(), d.ExitCode())
	}
}

func TestDashboard_QuitEarlyIsFailure(t *testing.T) {
	d, _ := testDashboard(t)

	for _, key := range []string{"q", "ctrl+c"} {
		_, cmd := step(t, d, keyMsg(key))
		if cmd == nil {
			t.Fatalf("%s should return tea.Quit", key)
		}
	}
	if d.ExitCode() == 0 {
		t.Error("quitting before all tests ran should not report success")
	}
}

func TestDashboard_StaleFinishIgnored(t *testing.T) {
	d, _ := testDashboard(t)

	d, cmd := step(t, d, finishedMsg{index: 2})
	if cmd != nil {
		t.Error("finish for a row that is not running should be ignored")
	}
	if d.rows[2].status != suite.StatusPending {
		t.Errorf("row 2 status = %q, want PENDING", d.rows[2].status)
	}
}

func TestDashboard_StartErrorIsFailure(t *testing.T) {
	d, _ := testDashboard(t)

	d, _ = step(t, d, finishedMsg{index: 0, err: errors.New("exec: \"node\": executable file not found in $PATH")})

	if d.rows[0].status != suite.StatusFail {
		t.Fatalf("status = %q, want FAIL", d.rows[0].status)
	}
	if !strings.Contains(d.View(), "could not start") {
		t.Errorf("detail line should explain start failure, got:\n%s", d.View())
	}
}

func TestDashboard_BellAndNotifications(t *testing.T) {
	var out bytes.Buffer
	bell := notify.NewBell(&out, time.Second, []string{suite.StatusFail})
	bar := notify.NewBar(20)
	d, _ := testDashboard(t, WithBell(bell), WithNotifyBar(bar))
	d.width = 160

	if bell.Ring(suite.StatusFail, time.Now()) || out.Len() != 0 {
		t.Error("bell should stay silent while a child owns the terminal")
	}

	d, _ = step(t, d, finishedMsg{index: 0, err: exitErr(t, 1)})

	if out.String() != "\a" {
		t.Errorf("bell should ring once after the child exits, got %q", out.String())
	}
	visible := bar.Visible()
	if len(visible) != 2 || visible[0].NewStatus != suite.StatusRunning || visible[1].NewStatus != suite.StatusFail {
		t.Errorf("bar should hold PENDING→RUNNING and RUNNING→FAIL, got %+v", visible)
	}
	if !strings.Contains(d.View(), "RUNNING → FAIL") {
		t.Errorf("View() should render the transition, got:\n%s", d.View())
	}
}

func TestDashboard_EmptyPlan(t *testing.T) {
	d := NewDashboard(&testutil.MockExecutor{}, nil)

	d, cmd := step(t, d, d.Init()())
	if cmd != nil {
		t.Error("empty plan should not spawn anything")
	}
	if !d.Done() || d.ExitCode() != 0 {
		t.Errorf("empty plan should finish and pass, done=%v exit=%d", d.Done(), d.ExitCode())
	}
	if !strings.Contains(d.View(), "Nothing to run") {
		t.Errorf("View() = %q", d.View())
	}
}

func TestUpdate_JKNavigation(t *testing.T) {
	d, _ := testDashboard(t)

	d, _ = step(t, d, keyMsg("j"))
	d, _ = step(t, d, keyMsg("j"))
	d, _ = step(t, d, keyMsg("j"))
	if d.cursor != 2 {
		t.Errorf("after j j j: cursor = %d, want 2 (clamped)", d.cursor)
	}

	d, _ = step(t, d, keyMsg("k"))
	if d.cursor != 1 {
		t.Errorf("after k: cursor = %d, want 1", d.cursor)
	}

	d, _ = step(t, d, keyMsg("g"))
	if d.cursor != 0 {
		t.Errorf("after g: cursor = %d, want 0", d.cursor)
	}

	d, _ = step(t, d, keyMsg("G"))
	if d.cursor != 2 {
		t.Errorf("after G: cursor = %d, want 2", d.cursor)
	}
	if !strings.Contains(d.View(), "$ cimcheck gif out.gif 256") {
		t.Errorf("detail line should show the selected command, got:\n%s", d.View())
	}
}

func TestView_TooSmall(t *testing.T) {
	d, _ := testDashboard(t)
	d, _ = step(t, d, tea.WindowSizeMsg{Width: 20, Height: 10})

	if !strings.Contains(d.View(), "Terminal too small") {
		t.Errorf("View() = %q", d.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"longer-than-ten", 10, "longer-th…"},
		{"×××", 2, "×…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
