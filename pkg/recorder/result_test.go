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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestResult_Outcome(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"success", Result{Success: true, ReturnCode: ptr.To(0)}, "success"},
		{"non-zero exit", Result{Success: true, ReturnCode: ptr.To(2)}, "success"},
		{"timeout", Result{Success: true, TimedOut: true}, "timeout"},
		{"spawn", Result{ErrorKind: ErrorKindSpawn}, "spawn"},
		{"unclassified", Result{}, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Outcome())
		})
	}
}

func TestResult_JSONOmitsUnobserved(t *testing.T) {
	res := Result{
		Name:         "missing",
		Command:      "/nonexistent",
		StartTime:    1700000000.5,
		ErrorMessage: "executable not found",
		ErrorKind:    ErrorKindSpawn,
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"exectime", "iotime", "return_code", "stdout_file", "stderr_file", "timed_out"} {
		assert.NotContains(t, fields, key)
	}
	assert.Equal(t, false, fields["success"])
	assert.Equal(t, "spawn", fields["error_kind"])
	assert.InDelta(t, 1700000000.5, fields["starttime"], 1e-6)
}

func TestResult_Started(t *testing.T) {
	now := time.Now()
	res := Result{StartTime: epochSeconds(now)}
	assert.WithinDuration(t, now, res.Started(), time.Millisecond)
}
