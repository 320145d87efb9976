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

//go:build unix

package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/gathermeta/pkg/catalog"
	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
	"github.com/NVIDIA/gathermeta/pkg/header"
	"github.com/NVIDIA/gathermeta/pkg/recorder"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Entry{Name: "echo", Command: "echo hello"},
		catalog.Entry{Name: "missing", Command: "/nonexistent-binary-xyz"},
		catalog.Entry{Name: "undefined", Command: "echo {GATHERMETA_UNSET}"},
		catalog.Entry{Name: "empty", Command: "true"},
	)
	require.NoError(t, err)
	return c
}

func TestNewRun(t *testing.T) {
	run := NewRun()
	assert.Len(t, run.ID, 36)
	assert.NotEmpty(t, run.Host)
	assert.InDelta(t, float64(time.Now().Unix()), run.Start, 5)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z][a-z]{2} [A-Z][a-z]{2} [ 0-9]\d \d{2}:\d{2}:\d{2} \d{4}$`), run.At)
}

func TestBuild(t *testing.T) {
	c := testCatalog(t)
	run := NewRun()
	results := map[string]*recorder.Result{
		"empty": {Name: "empty", Success: true, ReturnCode: ptr.To(0)},
		"echo":  {Name: "echo", Success: true, ReturnCode: ptr.To(0)},
	}

	rep := Build(run, c, results, WithVersion("v1.0.0"), WithArgs(map[string]string{"outdir": "about"}))

	assert.Equal(t, header.KindGatherReport, rep.Kind)
	assert.Equal(t, header.APIVersion, rep.APIVersion)
	assert.Equal(t, "v1.0.0", rep.Version)
	assert.Equal(t, "v1.0.0", rep.Metadata[header.MetadataVersion])
	assert.Equal(t, run.ID, rep.Metadata[header.MetadataRunID])
	assert.Equal(t, run.Host, rep.Metadata[header.MetadataHost])
	assert.Equal(t, []string{"echo", "empty"}, rep.Order, "catalog order, unreached entries left out")
	assert.Len(t, rep.Results, 2)
	assert.GreaterOrEqual(t, rep.Run.TotalTime, 0.0)
	assert.Equal(t, "about", rep.Args["outdir"])
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	outdir := t.TempDir()
	c := testCatalog(t)

	rec, err := recorder.New(outdir, recorder.WithEnvLookup(func(string) (string, bool) { return "", false }))
	require.NoError(t, err)

	run := NewRun()
	results, err := rec.RecordAll(ctx, c)
	require.NoError(t, err)

	rep := Build(run, c, results, WithVersion("test"))
	path, err := rep.Write(ctx, outdir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outdir, "gather.json"), path)

	loaded, err := Load(ctx, path, "")
	require.NoError(t, err)

	assert.Equal(t, rep.Results, loaded.Results)
	assert.Equal(t, rep.Order, loaded.Order)
	assert.Equal(t, rep.Run.ID, loaded.Run.ID)
	assert.Equal(t, rep.Run.Start, loaded.Run.Start)
	assert.Equal(t, rep.Header, loaded.Header)

	// Field names on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"kind", "apiVersion", "metadata", "version", "run", "order", "results"} {
		assert.Contains(t, raw, key)
	}
	echo := raw["results"].(map[string]any)["echo"].(map[string]any)
	for _, key := range []string{"name", "command", "starttime", "exectime", "iotime", "success", "return_code", "shell", "stdout_file"} {
		assert.Contains(t, echo, key)
	}
	assert.NotContains(t, echo, "stderr_file")
}

func TestWrite_Error(t *testing.T) {
	rep := Build(NewRun(), testCatalog(t), nil)
	_, err := rep.Write(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInternal))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	wrongKind := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(wrongKind, []byte(`{"kind":"GatherCatalog","apiVersion":"gathermeta.nvidia.com/v1alpha1"}`), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.json")},
		{"wrong kind", wrongKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.path, "")
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
		})
	}
}

func TestSummaryAndFailedOnly(t *testing.T) {
	rep := &Report{
		Order: []string{"ok", "slow", "missing"},
		Results: map[string]*recorder.Result{
			"ok":      {Name: "ok", Success: true},
			"slow":    {Name: "slow", Success: true, TimedOut: true},
			"missing": {Name: "missing", ErrorKind: recorder.ErrorKindSpawn},
		},
	}

	assert.Equal(t, Summary{Total: 3, Succeeded: 2, Failed: 1, TimedOut: 1}, rep.Summary())

	failed := rep.FailedOnly()
	assert.Equal(t, []string{"slow", "missing"}, failed.Order)
	assert.Len(t, failed.Results, 2)
	assert.Len(t, rep.Results, 3, "original is untouched")
}
