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

package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/gathermeta/pkg/catalog"
	"github.com/NVIDIA/gathermeta/pkg/defaults"
	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
	"github.com/NVIDIA/gathermeta/pkg/header"
	"github.com/NVIDIA/gathermeta/pkg/recorder"
	"github.com/NVIDIA/gathermeta/pkg/serializer"
)

// ctimeLayout renders Run.At like C's ctime(3).
const ctimeLayout = "Mon Jan _2 15:04:05 2006"

// Run identifies one gather invocation.
type Run struct {
	ID        string  `json:"id" yaml:"id"`
	Start     float64 `json:"start" yaml:"start"`
	At        string  `json:"at" yaml:"at"`
	TotalTime float64 `json:"total_time" yaml:"total_time"`
	Host      string  `json:"host" yaml:"host"`

	started time.Time
}

// NewRun starts the run clock.
func NewRun() Run {
	now := time.Now()
	host, err := os.Hostname()
	if err != nil {
		slog.Warn("failed to resolve hostname", "error", err)
		host = "unknown"
	}
	return Run{
		ID:      uuid.New().String(),
		Start:   float64(now.UnixNano()) / float64(time.Second),
		At:      now.Format(ctimeLayout),
		Host:    host,
		started: now,
	}
}

// Report is the gather.json document.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Version string                      `json:"version" yaml:"version"`
	Args    map[string]string           `json:"args,omitempty" yaml:"args,omitempty"`
	Run     Run                         `json:"run" yaml:"run"`
	Order   []string                    `json:"order" yaml:"order"`
	Results map[string]*recorder.Result `json:"results" yaml:"results"`
}

// Option is a functional option for Build.
type Option func(*Report)

// WithVersion records the tool version.
func WithVersion(version string) Option {
	return func(r *Report) {
		r.Version = version
	}
}

// WithArgs records the effective command line settings.
func WithArgs(args map[string]string) Option {
	return func(r *Report) {
		r.Args = args
	}
}

// Build assembles the report for run. Order lists the catalog entries that
// have a result, in catalog order; entries not reached are left out.
func Build(run Run, c *catalog.Catalog, results map[string]*recorder.Result, opts ...Option) *Report {
	r := &Report{
		Run:     run,
		Order:   make([]string, 0, len(results)),
		Results: make(map[string]*recorder.Result, len(results)),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, name := range c.Names() {
		if res, ok := results[name]; ok && res != nil {
			r.Order = append(r.Order, name)
			r.Results[name] = res
		}
	}

	if !run.started.IsZero() {
		r.Run.TotalTime = time.Since(run.started).Seconds()
	}

	r.Init(header.KindGatherReport, r.Version)
	r.SetMetadata(header.MetadataHost, run.Host)
	r.SetMetadata(header.MetadataRunID, run.ID)
	return r
}

// Path returns the report location inside outdir.
func Path(outdir string) string {
	return filepath.Join(outdir, defaults.ReportFileName)
}

// Write stores the report as indented JSON at Path(outdir) and returns the path.
func (r *Report) Write(ctx context.Context, outdir string) (string, error) {
	path := Path(outdir)
	w, err := serializer.NewFileWriter(serializer.FormatJSON, path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create report file", err)
	}
	if err := w.Serialize(ctx, r); err != nil {
		_ = w.Close()
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write report", err)
	}
	if err := w.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to close report file", err)
	}
	return path, nil
}

// Load reads a report from a JSON or YAML file or a cm://namespace/name ConfigMap.
func Load(ctx context.Context, path, kubeconfig string) (*Report, error) {
	r, err := serializer.FromFileWithKubeconfig[Report](ctx, path, kubeconfig)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to load report", err)
	}
	if err := r.Validate(header.KindGatherReport); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, fmt.Sprintf("%s is not a gather report", path), err)
	}
	return r, nil
}

// Summary counts results by outcome.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	TimedOut  int `json:"timed_out" yaml:"timed_out"`
}

// Summary returns outcome counts over all results.
func (r *Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		s.Total++
		switch {
		case !res.Success:
			s.Failed++
		case res.TimedOut:
			s.TimedOut++
			s.Succeeded++
		default:
			s.Succeeded++
		}
	}
	return s
}

// FailedOnly returns a copy of the report restricted to failed or timed
// out results.
func (r *Report) FailedOnly() *Report {
	out := *r
	out.Order = nil
	out.Results = make(map[string]*recorder.Result)
	for _, name := range r.Order {
		res := r.Results[name]
		if res != nil && (!res.Success || res.TimedOut) {
			out.Order = append(out.Order, name)
			out.Results[name] = res
		}
	}
	return &out
}
