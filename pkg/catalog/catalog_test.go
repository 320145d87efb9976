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

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
	"github.com/NVIDIA/gathermeta/pkg/header"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Greater(t, c.Len(), 30)

	names := c.Names()
	assert.Equal(t, "date", names[0], "catalog order must be preserved")

	cmd, ok := c.Lookup("scontrol")
	require.True(t, ok)
	assert.Contains(t, cmd, "${SLURM_JOBID}")

	// Default returns a copy.
	c.Entries[0].Command = "changed"
	assert.Equal(t, "date --iso=seconds", Default().Entries[0].Command)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "valid",
			entries: []Entry{{"echo", "echo hello"}, {"env", "/usr/bin/env"}},
		},
		{
			name:    "duplicate",
			entries: []Entry{{"echo", "echo a"}, {"echo", "echo b"}},
			wantErr: "duplicate catalog entry",
		},
		{
			name:    "path traversal name",
			entries: []Entry{{"../etc", "echo"}},
			wantErr: "invalid catalog entry name",
		},
		{
			name:    "empty name",
			entries: []Entry{{"", "echo"}},
			wantErr: "invalid catalog entry name",
		},
		{
			name:    "bad template",
			entries: []Entry{{"awk", "awk '{print $1}'"}},
			wantErr: "invalid command template",
		},
		{
			name:    "unset env is fine",
			entries: []Entry{{"job", "scontrol show jobid {SURELY_UNSET_JOB_ID}"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.entries...)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, len(tt.entries), c.Len())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
		})
	}
}

func TestFilter(t *testing.T) {
	c, err := New(Entry{"a", "echo a"}, Entry{"b", "echo b"}, Entry{"c", "echo c"})
	require.NoError(t, err)

	got, err := c.Filter([]string{"c", "a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got.Names(), "filter keeps catalog order")

	got, err = c.Filter(nil, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got.Names())

	got, err = c.Filter([]string{"a", "b"}, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Names())

	_, err = c.Filter([]string{"nope"}, nil)
	assert.Error(t, err)

	assert.Equal(t, 3, c.Len(), "original catalog is untouched")
}

func TestParse(t *testing.T) {
	doc := `
commands:
  - name: date
    command: date --iso=seconds
  - name: lstopo
    command: lstopo --of ascii {outdir}/{name}
`
	c, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "lstopo"}, c.Names())
}

func TestParse_WithHeader(t *testing.T) {
	doc := `
kind: GatherCatalog
apiVersion: gathermeta.nvidia.com/v1alpha1
metadata:
  version: v1.0.0
commands:
  - name: date
    command: date
`
	c, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, header.KindCatalog, c.Kind)
	assert.Equal(t, []string{"date"}, c.Names())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no commands", "commands: []\n"},
		{"unknown field", "commands:\n  - name: a\n    cmd: echo\n"},
		{"not yaml", "commands: [\n"},
		{"duplicate", "commands:\n  - {name: a, command: echo}\n  - {name: a, command: echo}\n"},
		{"wrong kind", "kind: GatherReport\napiVersion: gathermeta.nvidia.com/v1alpha1\ncommands:\n  - {name: a, command: echo}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands:\n  - name: echo\n    command: echo hello\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo"}, c.Names())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}
