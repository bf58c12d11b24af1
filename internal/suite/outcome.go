package suite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Status constants used across the codebase.
const (
	StatusPending = "PENDING"
	StatusRunning = "RUNNING"
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
)

// Outcome is the result of one invocation. Only the exit status counts.
type Outcome struct {
	Label    string
	Success  bool
	ExitCode int
	Duration time.Duration
	// Err is set when the child could not be started at all.
	Err error
}

// Status returns StatusPass or StatusFail.
func (o Outcome) Status() string {
	if o.Success {
		return StatusPass
	}
	return StatusFail
}

// Results holds outcomes in invocation order.
type Results []Outcome

// AllPassed reports whether every outcome succeeded. Empty results pass.
func (rs Results) AllPassed() bool {
	for _, o := range rs {
		if !o.Success {
			return false
		}
	}
	return true
}

// Passed returns the number of successful outcomes.
func (rs Results) Passed() int {
	n := 0
	for _, o := range rs {
		if o.Success {
			n++
		}
	}
	return n
}

// ExitCode is 0 when every outcome passed, 1 otherwise.
func (rs Results) ExitCode() int {
	if rs.AllPassed() {
		return 0
	}
	return 1
}

const summaryWidth = 40

// Print writes the fixed-width summary table.
func (rs Results) Print(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	pass := r.NewStyle().Foreground(lipgloss.Color("2"))
	fail := r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	rule := strings.Repeat("=", summaryWidth)
	fmt.Fprintf(w, "\n%s\nSUMMARY\n%s\n", rule, rule)
	for _, o := range rs {
		tag := pass.Render("[" + StatusPass + "]")
		if !o.Success {
			tag = fail.Render("[" + StatusFail + "]")
		}
		fmt.Fprintf(w, "  %s  %s\n", tag, o.Label)
	}
}
