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

// Package report builds, writes and loads the gather.json document.
//
// A Report carries the header, the tool version, the effective arguments,
// the Run block (id, start, ctime-style "at", total_time, host), the order
// in which commands ran and one recorder.Result per command:
//
//	run := report.NewRun()
//	results, runErr := rec.RecordAll(ctx, cat)
//	rep := report.Build(run, cat, results, report.WithVersion(version))
//	path, err := rep.Write(ctx, outdir)
package report
