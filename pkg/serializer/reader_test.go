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

package serializer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"gather.json", FormatJSON},
		{"GATHER.JSON", FormatJSON},
		{"catalog.yaml", FormatYAML},
		{"catalog.yml", FormatYAML},
		{"report.txt", FormatTable},
		{"report.table", FormatTable},
		{"report", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestNewReader(t *testing.T) {
	_, err := NewReader(FormatTable, strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewReader(Format("xml"), strings.NewReader(""))
	assert.Error(t, err)

	r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"date","success":true}`))
	require.NoError(t, err)
	var got testEntry
	require.NoError(t, r.Deserialize(&got))
	assert.Equal(t, testEntry{Name: "date", Success: true}, got)
	assert.NoError(t, r.Close())
}

type trackingCloser struct {
	io.Reader
	closed int
}

func (c *trackingCloser) Close() error {
	c.closed++
	return nil
}

func TestReader_Close(t *testing.T) {
	src := &trackingCloser{Reader: strings.NewReader("name: date\n")}
	r, err := NewReader(FormatYAML, src)
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 1, src.closed)

	var nilReader *Reader
	assert.NoError(t, nilReader.Close())
	assert.Error(t, nilReader.Deserialize(&testEntry{}))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	want := sampleDoc()
	want.Results["date"] = testEntry{Name: "date", Code: want.Results["date"].Code, Success: true, Shell: want.Results["date"].Shell}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "doc."+format.Extension())
			w, err := NewFileWriter(format, path)
			require.NoError(t, err)
			require.NoError(t, w.Serialize(context.Background(), want))
			require.NoError(t, w.Close())

			got, err := FromFile[testDoc](context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, want, *got)
		})
	}
}

func TestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("results: [\n"), 0o600))
	table := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(table, []byte("FIELD VALUE\n"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing", filepath.Join(dir, "missing.json"), "failed to open file"},
		{"empty", empty, "is empty"},
		{"broken", broken, "failed to decode YAML"},
		{"table", table, "does not support deserialization"},
		{"bad configmap uri", "cm://only-namespace", "invalid ConfigMap URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromFile[testDoc](context.Background(), tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
