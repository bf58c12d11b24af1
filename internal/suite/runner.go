package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JPM1118/cimcheck/internal/logger"
)

// Executor builds the child process for an invocation.
// ProcessExecutor implements this interface. Tests can provide mock implementations.
type Executor interface {
	Command(ctx context.Context, inv Invocation) *exec.Cmd
}

// ProcessExecutor spawns invocations as plain child processes.
type ProcessExecutor struct {
	// Dir is the working directory of every child. Empty inherits ours.
	Dir string
}

var _ Executor = ProcessExecutor{}

// Command returns an *exec.Cmd for inv. The caller is responsible for
// setting Stdin/Stdout/Stderr and running it.
func (e ProcessExecutor) Command(ctx context.Context, inv Invocation) *exec.Cmd {
	var cmd *exec.Cmd
	if len(inv.Command) == 0 {
		cmd = exec.CommandContext(ctx, "")
	} else {
		//nolint:gosec // G204: sub-test commands come from the operator's config
		cmd = exec.CommandContext(ctx, inv.Command[0], inv.Command[1:]...)
	}
	cmd.Dir = e.Dir
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	return cmd
}

// Runner executes a plan strictly in order, never stopping early.
type Runner struct {
	Exec   Executor
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	RunID  string
}

// NewRunner returns a Runner whose children inherit the process streams.
func NewRunner(ex Executor) *Runner {
	return &Runner{
		Exec:   ex,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		RunID:  uuid.NewString(),
	}
}

// Run spawns every invocation in turn and waits for each to exit.
// Failures are recorded, not returned.
func (r *Runner) Run(ctx context.Context, plan []Invocation) Results {
	header := lipgloss.NewRenderer(r.Stdout).NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	logger.Info("suite started", zap.String("run_id", r.RunID), zap.Int("invocations", len(plan)))
	results := make(Results, 0, len(plan))
	for _, inv := range plan {
		fmt.Fprintf(r.Stdout, "\n%s\n", header.Render(fmt.Sprintf("─── %s ───", inv.Label)))
		results = append(results, r.runOne(ctx, inv))
	}
	logger.Info("suite finished",
		zap.String("run_id", r.RunID),
		zap.Int("passed", results.Passed()),
		zap.Int("failed", len(results)-results.Passed()))
	return results
}

func (r *Runner) runOne(ctx context.Context, inv Invocation) Outcome {
	cmd := r.Exec.Command(ctx, inv)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	start := time.Now()
	err := cmd.Run()
	o := OutcomeFor(inv.Label, err, time.Since(start))

	fields := []zap.Field{
		zap.String("run_id", r.RunID),
		zap.String("label", inv.Label),
		zap.Int("exit_code", o.ExitCode),
		zap.Duration("duration", o.Duration),
	}
	switch {
	case o.Err != nil:
		logger.Warn("sub-test could not run", append(fields, zap.Error(o.Err))...)
	case !o.Success:
		logger.Info("sub-test failed", fields...)
	default:
		logger.Info("sub-test passed", fields...)
	}
	return o
}

// OutcomeFor converts the error of a finished child process to an Outcome.
// A child that could not be started counts as a failure with exit code -1.
func OutcomeFor(label string, err error, d time.Duration) Outcome {
	o := Outcome{Label: label, Duration: d, Success: err == nil}
	if err == nil {
		return o
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		o.ExitCode = exitErr.ExitCode()
	} else {
		o.ExitCode = -1
		o.Err = err
	}
	return o
}
