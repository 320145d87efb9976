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
	"time"

	"k8s.io/utils/ptr"
)

// ErrorKind classifies why a command did not produce a successful Result.
type ErrorKind string

const (
	// ErrorKindNone marks a successful Result.
	ErrorKindNone ErrorKind = ""
	// ErrorKindExpansion means the template referenced an undefined or malformed placeholder.
	ErrorKindExpansion ErrorKind = "expansion"
	// ErrorKindSpawn means the executable could not be found or started.
	ErrorKindSpawn ErrorKind = "spawn"
	// ErrorKindProcess means waiting on the started process failed for a reason
	// other than its exit status.
	ErrorKindProcess ErrorKind = "process"
	// ErrorKindIO means captured output could not be written to the output directory.
	ErrorKindIO ErrorKind = "io"
	// ErrorKindStderrFatal means the command wrote to stderr while errors are fatal.
	ErrorKindStderrFatal ErrorKind = "stderr_fatal"
	// ErrorKindCanceled means the run was interrupted while the command was running.
	ErrorKindCanceled ErrorKind = "canceled"
)

// String returns the string representation of the ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// Result describes one command execution. Durations are seconds; StartTime is
// seconds since the Unix epoch. Pointer fields are nil when the value was never
// observed, e.g. ReturnCode after a spawn failure or a timeout.
//
// A Result is complete once Record returns and must not be modified afterwards.
type Result struct {
	Name         string    `json:"name" yaml:"name"`
	Command      string    `json:"command" yaml:"command"`
	StartTime    float64   `json:"starttime" yaml:"starttime"`
	ExecTime     *float64  `json:"exectime,omitempty" yaml:"exectime,omitempty"`
	IOTime       *float64  `json:"iotime,omitempty" yaml:"iotime,omitempty"`
	Success      bool      `json:"success" yaml:"success"`
	ReturnCode   *int      `json:"return_code,omitempty" yaml:"return_code,omitempty"`
	Shell        []string  `json:"shell,omitempty" yaml:"shell,omitempty"`
	StdoutFile   string    `json:"stdout_file,omitempty" yaml:"stdout_file,omitempty"`
	StderrFile   string    `json:"stderr_file,omitempty" yaml:"stderr_file,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	TimedOut     bool      `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
}

// Outcome is a short label for metrics and summaries: "success", "timeout",
// or the error kind.
func (r Result) Outcome() string {
	switch {
	case r.Success && r.TimedOut:
		return "timeout"
	case r.Success:
		return "success"
	case r.ErrorKind != ErrorKindNone:
		return r.ErrorKind.String()
	default:
		return "failed"
	}
}

// Started returns StartTime as a time.Time.
func (r Result) Started() time.Time {
	sec := int64(r.StartTime)
	nsec := int64((r.StartTime - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

func (r *Result) fail(kind ErrorKind, msg string) {
	r.Success = false
	r.ErrorKind = kind
	r.ErrorMessage = msg
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func seconds(d time.Duration) *float64 {
	return ptr.To(d.Seconds())
}
