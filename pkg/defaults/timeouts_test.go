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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Recorder timeouts
		{"CommandTimeout", CommandTimeout, 1 * time.Second, 60 * time.Second},
		{"LogTimeThreshold", LogTimeThreshold, 100 * time.Millisecond, 10 * time.Second},
		{"OutputDrainTimeout", OutputDrainTimeout, 1 * time.Second, 30 * time.Second},

		// Publishing timeouts
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 10 * time.Second, 60 * time.Second},
		{"OCIPushTimeout", OCIPushTimeout, 1 * time.Minute, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if LogTimeThreshold >= CommandTimeout {
		t.Errorf("LogTimeThreshold (%v) should be less than CommandTimeout (%v)",
			LogTimeThreshold, CommandTimeout)
	}
}

func TestReportFileName(t *testing.T) {
	if ReportFileName != "gather.json" {
		t.Errorf("ReportFileName = %q, want gather.json", ReportFileName)
	}
}
