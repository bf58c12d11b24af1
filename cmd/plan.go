package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/JPM1118/cimcheck/internal/suite"
)

// buildPlan turns the configured tests and the optional [path] [expectedSize]
// arguments into the ordered invocation list.
func buildPlan(args []string) ([]suite.Invocation, error) {
	path := ""
	size := strconv.Itoa(cfg.GIF.ExpectedSize)
	if len(args) > 0 {
		path = args[0]
	}
	if len(args) > 1 {
		size = args[1]
	}

	self, err := selfInvocation()
	if err != nil {
		return nil, err
	}

	tests := make([]suite.Invocation, len(cfg.Suite.Tests))
	for i, tc := range cfg.Suite.Tests {
		tests[i] = suite.Invocation{Command: tc.Command, Label: tc.Label}
	}
	return suite.Plan(tests, self, path, size), nil
}

// selfInvocation re-runs this binary from the current directory with the
// config and log settings this process resolved.
func selfInvocation() (suite.Self, error) {
	exe, err := os.Executable()
	if err != nil {
		return suite.Self{}, fmt.Errorf("locate cimcheck executable: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return suite.Self{}, fmt.Errorf("get working directory: %w", err)
	}
	cfgAbs, err := filepath.Abs(cfgPath)
	if err != nil {
		return suite.Self{}, fmt.Errorf("resolve config path: %w", err)
	}

	selfArgs := []string{exe, "--config", cfgAbs, "--log-level", cfg.Log.Level}
	if cfg.Log.File != "" {
		logPath, err := filepath.Abs(cfg.Log.File)
		if err != nil {
			return suite.Self{}, fmt.Errorf("resolve log file: %w", err)
		}
		selfArgs = append(selfArgs, "--log-file", logPath)
	}
	return suite.Self{Args: selfArgs, Dir: wd}, nil
}
