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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindGatherReport, "v1.2.3")

	assert.Equal(t, KindGatherReport, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata[MetadataVersion])

	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	h.Init(KindCatalog, "")
	assert.NotContains(t, h.Metadata, MetadataVersion)
}

func TestNew(t *testing.T) {
	h := New(KindGatherReport, WithMetadata(MetadataHost, "node01"), WithMetadata(MetadataRunID, ""))
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, map[string]string{MetadataHost: "node01"}, h.Metadata)

	h = New(KindCatalog, WithKind(KindGatherReport))
	assert.Equal(t, KindGatherReport, h.Kind)
}

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindGatherReport.IsValid())
	assert.True(t, KindCatalog.IsValid())
	assert.False(t, Kind("Snapshot").IsValid())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		wantErr bool
	}{
		{"valid", Header{Kind: KindGatherReport, APIVersion: APIVersion}, false},
		{"wrong kind", Header{Kind: KindCatalog, APIVersion: APIVersion}, true},
		{"wrong version", Header{Kind: KindGatherReport, APIVersion: "v1"}, true},
		{"empty", Header{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Validate(KindGatherReport)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetters(t *testing.T) {
	h := New(KindGatherReport, WithMetadata(MetadataHost, "node01"))
	assert.Equal(t, KindGatherReport, h.GetKind())
	assert.Equal(t, "node01", h.GetMetadata()[MetadataHost])
}
