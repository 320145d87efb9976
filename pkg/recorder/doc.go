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

// Package recorder runs catalog commands one at a time and records their
// output and execution metadata.
//
// Each command is expanded with package command, started in its own process
// group with stdin connected to /dev/null, and killed when the per-command
// timeout expires. Execution time ends when the command is reaped; the group
// is then killed so background children do not outlive the command, and
// output still held open is drained for at most the drain timeout.
// Non-empty stdout and stderr are written to <outdir>/<name>.out and
// <outdir>/<name>.err.
//
// # Usage
//
//	rec, err := recorder.New("about",
//	    recorder.WithTimeout(10*time.Second),
//	    recorder.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	results, err := rec.RecordAll(ctx, catalog.Default())
//
// # Failure Handling
//
// Per-command failures never stop a run. They are classified in
// Result.ErrorKind:
//
//	expansion     undefined or malformed placeholder
//	spawn         executable not found or not invocable
//	process       waiting on the process failed
//	io            output could not be written
//
// A command that exceeds its timeout keeps Success set and is flagged with
// TimedOut; whatever output it produced is persisted. A run stops early only
// when WithErrorsFatal is set and a command writes to stderr (error code
// STDERR_FATAL), or when the context is canceled.
//
// # Metrics
//
// Command durations, outcomes and output volume are exported through the
// Prometheus default registry. WriteMetrics dumps them in textfile format.
package recorder
