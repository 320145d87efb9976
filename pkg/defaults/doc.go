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

// Package defaults provides centralized configuration constants for gathermeta.
//
// This package defines timeout values, thresholds and file names used across
// the codebase. Centralizing these values ensures the CLI flags, the recorder
// and the publishers agree on the same defaults.
//
// # Timeout Categories
//
//   - Recorder timeouts: per-command execution bound, slow-command logging
//     threshold, and the post-kill output drain bound
//   - Publishing timeouts: ConfigMap apply and OCI registry push
//
// # Usage
//
//	rec, err := recorder.New(outdir,
//	    recorder.WithTimeout(defaults.CommandTimeout),
//	    recorder.WithLogThreshold(defaults.LogTimeThreshold),
//	)
//
// # Timeout Guidelines
//
//   - Commands: 10s default; slow hardware probes (lshw, hwloc) may need more
//   - Drain: 5s after a kill, enough for buffered pipe contents
//   - ConfigMap: 30s; OCI push: 5m for large output directories
package defaults
