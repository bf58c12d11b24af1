package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JPM1118/cimcheck/internal/logger"
	"github.com/JPM1118/cimcheck/internal/notify"
	"github.com/JPM1118/cimcheck/internal/suite"
	"github.com/JPM1118/cimcheck/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [path] [expectedSize]",
	Short: "Run the suite in the interactive TUI dashboard",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	plan, err := buildPlan(args)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithNotifyBar(notify.NewBar(20))}
	if cfg.Notifications.TerminalBell {
		opts = append(opts, tui.WithBell(notify.NewBell(os.Stderr, 30*time.Second, []string{
			suite.StatusFail,
		})))
	}

	model := tui.NewDashboard(suite.ProcessExecutor{Dir: cfg.Suite.Workdir}, plan, opts...)
	program := tea.NewProgram(model)

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	m, ok := finalModel.(tui.Dashboard)
	if !ok {
		return fmt.Errorf("dashboard: unexpected model %T", finalModel)
	}
	results := m.Results()
	results.Print(cmd.OutOrStdout())

	writeMetrics(uuid.NewString(), results)
	if m.ExitCode() != 0 {
		return ErrSuiteFailed
	}
	return nil
}
