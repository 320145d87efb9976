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

// Package cli implements the gathermeta command-line interface.
//
// # Commands
//
// gather - Run the catalog and record outputs:
//
//	gathermeta gather [--command-timeout 10] [--errors-fatal] <outdir>
//
// Runs every catalog command sequentially with a per-command timeout, stores
// non-empty stdout and stderr as <outdir>/<name>.out and <name>.err, and writes
// <outdir>/gather.json. The report can additionally be applied to a ConfigMap
// (--publish cm://namespace/name) and the whole directory pushed as an OCI
// artifact (--push oci://registry/repository).
//
// catalog - Print the effective catalog:
//
//	gathermeta catalog [--catalog file.yaml] [--only name] [--skip name]
//
// report - Summarize a gather report:
//
//	gathermeta report [--failed] <outdir>/gather.json
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL                      Logging verbosity
//	GATHERMETA_CATALOG             Catalog file
//	GATHERMETA_COMMAND_TIMEOUT     Per-command timeout
//	GATHERMETA_LOG_TIME_THRESHOLD  Slow command logging threshold
//	GATHERMETA_ERRORS_FATAL        Stop at the first command writing to stderr
//	GATHERMETA_METRICS_FILE        Prometheus textfile output
//	GATHERMETA_PUBLISH             ConfigMap target
//	GATHERMETA_PUSH                OCI target
//	KUBECONFIG                     Kubeconfig for ConfigMap access
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, fatal stderr, I/O failure)
//	2  Interrupted
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/gathermeta/pkg/cli.version=1.0.0'"
package cli
