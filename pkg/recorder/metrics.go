// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recorder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
)

var (
	// Per-command metrics
	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gathermeta_command_duration_seconds",
			Help:    "Wall time of individual catalog commands",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"command"},
	)

	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gathermeta_commands_total",
			Help: "Total number of recorded commands by outcome",
		},
		[]string{"status"}, // success, timeout, or an error kind
	)

	outputBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gathermeta_output_bytes_total",
			Help: "Bytes of captured command output",
		},
		[]string{"stream"}, // stdout or stderr
	)

	// Run metrics
	runDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gathermeta_run_duration_seconds",
			Help: "Wall time of the last RecordAll run",
		},
	)

	runCommands = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gathermeta_run_commands",
			Help: "Number of commands recorded in the last RecordAll run",
		},
	)
)

func observe(r Result, stdout, stderr int) {
	if r.ExecTime != nil {
		commandDuration.WithLabelValues(r.Name).Observe(*r.ExecTime)
	}
	commandsTotal.WithLabelValues(r.Outcome()).Inc()
	outputBytesTotal.WithLabelValues("stdout").Add(float64(stdout))
	outputBytesTotal.WithLabelValues("stderr").Add(float64(stderr))
}

// WriteMetrics writes all registered metrics to path in the Prometheus text
// format, suitable for the node_exporter textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write metrics file", err)
	}
	return nil
}
