// Package metrics exports suite outcomes in the Prometheus textfile format,
// for pickup by node_exporter's textfile collector on CI hosts.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JPM1118/cimcheck/internal/suite"
)

// Collectors for one suite run. A fresh registry is built per export so
// repeated runs never accumulate stale labels.
type Collectors struct {
	registry *prometheus.Registry

	// 1 when the sub-test exited 0. Watch for: flapping between runs.
	SubtestPassed *prometheus.GaugeVec

	// Wall time of each sub-test. Watch for: slow Reed-Solomon runs.
	SubtestDuration *prometheus.GaugeVec

	// Exit status of each sub-test (-1 when it could not start).
	SubtestExitCode *prometheus.GaugeVec

	// 1 when every sub-test passed.
	SuitePassed prometheus.Gauge

	// Completion time, seconds since epoch.
	SuiteLastRun prometheus.Gauge

	// Constant 1 carrying the run ID.
	SuiteInfo *prometheus.GaugeVec
}

// NewCollectors registers the suite metrics on a private registry.
func NewCollectors() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		SubtestPassed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cimcheck_subtest_passed",
				Help: "Whether the sub-test exited with status 0",
			},
			[]string{"label"},
		),
		SubtestDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cimcheck_subtest_duration_seconds",
				Help: "Sub-test wall time in seconds",
			},
			[]string{"label"},
		),
		SubtestExitCode: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cimcheck_subtest_exit_code",
				Help: "Sub-test exit status, -1 if it could not be started",
			},
			[]string{"label"},
		),
		SuitePassed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cimcheck_suite_passed",
			Help: "Whether every sub-test passed",
		}),
		SuiteLastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cimcheck_suite_last_run_timestamp_seconds",
			Help: "Unix time the suite finished",
		}),
		SuiteInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cimcheck_suite_info",
				Help: "Suite run metadata",
			},
			[]string{"run_id"},
		),
	}
	c.registry.MustRegister(
		c.SubtestPassed,
		c.SubtestDuration,
		c.SubtestExitCode,
		c.SuitePassed,
		c.SuiteLastRun,
		c.SuiteInfo,
	)
	return c
}

// Record sets every collector from results.
func (c *Collectors) Record(runID string, results suite.Results, finished time.Time) {
	for _, o := range results {
		c.SubtestPassed.WithLabelValues(o.Label).Set(boolValue(o.Success))
		c.SubtestDuration.WithLabelValues(o.Label).Set(o.Duration.Seconds())
		c.SubtestExitCode.WithLabelValues(o.Label).Set(float64(o.ExitCode))
	}
	c.SuitePassed.Set(boolValue(results.AllPassed()))
	c.SuiteLastRun.Set(float64(finished.Unix()))
	c.SuiteInfo.WithLabelValues(runID).Set(1)
}

// WriteTextfile records results and writes them atomically to path.
func WriteTextfile(path, runID string, results suite.Results, finished time.Time) error {
	c := NewCollectors()
	c.Record(runID, results, finished)
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
