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

// Package command turns catalog command templates into argument vectors.
//
// Templates use a small placeholder language:
//
//	{outdir}   the recorder's output directory
//	{name}     the catalog entry name
//	{VAR}      environment variable VAR
//	${VAR}     environment variable VAR
//	{{ }}      literal braces
//
// The expanded string is split into words following shell quoting rules
// without invoking a shell:
//
//	argv, err := command.Build("lstopo --of ascii {outdir}/{name}", command.Vars{
//	    Outdir: "/scratch/meta",
//	    Name:   "lstopo",
//	})
//	// argv == []string{"lstopo", "--of", "ascii", "/scratch/meta/lstopo"}
//
// Failures are reported as *ExpansionError with a Reason; an unset
// environment variable yields ReasonUndefined naming the variable.
package command
