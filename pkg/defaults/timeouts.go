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

package defaults

import "time"

// Recorder timeouts for command execution.
const (
	// CommandTimeout is the default time a single catalog command may run
	// before it is killed.
	CommandTimeout = 10 * time.Second

	// LogTimeThreshold is the default duration above which command execution
	// or output persistence is logged at info level.
	LogTimeThreshold = 1 * time.Second

	// OutputDrainTimeout bounds how long output pipes are drained after a
	// timed-out process was killed. Descendants that inherited the pipes
	// would otherwise keep the recorder waiting.
	OutputDrainTimeout = 5 * time.Second
)

// Publishing timeouts for report and artifact uploads.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second

	// OCIPushTimeout is the timeout for pushing the output directory to a registry.
	OCIPushTimeout = 5 * time.Minute
)

// File names and limits used inside the output directory.
const (
	// ReportFileName is the name of the aggregate report inside the output directory.
	ReportFileName = "gather.json"

	// LogOutputLimit caps how many bytes of partial output are echoed to the
	// log when a command times out. The full output is still persisted.
	LogOutputLimit = 4 << 10
)
