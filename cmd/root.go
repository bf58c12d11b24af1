package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JPM1118/cimcheck/internal/config"
	"github.com/JPM1118/cimcheck/internal/logger"
	"github.com/JPM1118/cimcheck/internal/metrics"
	"github.com/JPM1118/cimcheck/internal/suite"
)

// ErrSuiteFailed is returned when at least one sub-test did not pass.
var ErrSuiteFailed = errors.New("one or more sub-tests failed")

var (
	cfgPath     string
	logLevel    string
	logFile     string
	workdir     string
	metricsFile string

	cfg = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "cimcheck [path] [expectedSize]",
	Short: "cimcheck runs the CimBar test suite",
	Long: `cimcheck runs the CimBar sub-test executables one after another and
prints a PASS/FAIL summary. When a GIF path is given, the structural GIF
check runs last.

The exit code is 0 only when every sub-test passed.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuite(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "path to the YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&workdir, "workdir", "C", "", "working directory for sub-tests (overrides config)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write a Prometheus textfile with the results")
}

// setup loads the config and initializes logging. Flags win over config.
func setup(cmd *cobra.Command) error {
	loaded, err := config.LoadFrom(cfgPath)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("workdir") {
		cfg.Suite.Workdir = workdir
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("config loaded", zap.String("path", cfgPath), zap.Int("tests", len(cfg.Suite.Tests)))
	return nil
}

func runSuite(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	plan, err := buildPlan(args)
	if err != nil {
		return err
	}

	runner := suite.NewRunner(suite.ProcessExecutor{Dir: cfg.Suite.Workdir})
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	results := runner.Run(context.Background(), plan)
	results.Print(cmd.OutOrStdout())

	writeMetrics(runner.RunID, results)
	if results.ExitCode() != 0 {
		return ErrSuiteFailed
	}
	return nil
}

// writeMetrics writes the optional Prometheus textfile. A failed write is
// logged and does not change the exit code.
func writeMetrics(runID string, results suite.Results) {
	if metricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(metricsFile, runID, results, time.Now()); err != nil {
		logger.Error("metrics textfile not written", zap.String("path", metricsFile), zap.Error(err))
	}
}

// silent reports whether err has already been explained on stdout.
func silent(err error) bool {
	return errors.Is(err, ErrSuiteFailed) || errors.Is(err, ErrGIFInvalid)
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if !silent(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}
