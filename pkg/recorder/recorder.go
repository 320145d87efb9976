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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/gathermeta/pkg/catalog"
	"github.com/NVIDIA/gathermeta/pkg/command"
	"github.com/NVIDIA/gathermeta/pkg/defaults"
	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
)

const (
	stdoutExt = ".out"
	stderrExt = ".err"
)

// Recorder runs command templates one at a time and records their output
// into an output directory. Its configuration is fixed at construction.
type Recorder struct {
	outdir       string
	timeout      time.Duration
	drainTimeout time.Duration
	logThreshold time.Duration
	errorsFatal  bool
	logger       *slog.Logger
	lookupEnv    func(string) (string, bool)
}

// Option is a functional option for configuring Recorder instances.
type Option func(*Recorder)

// WithTimeout sets the per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		r.timeout = d
	}
}

// WithErrorsFatal makes any output on stderr stop the run.
func WithErrorsFatal(fatal bool) Option {
	return func(r *Recorder) {
		r.errorsFatal = fatal
	}
}

// WithLogThreshold sets the execution and persistence time above which a
// command is logged as slow.
func WithLogThreshold(d time.Duration) Option {
	return func(r *Recorder) {
		r.logThreshold = d
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEnvLookup sets the function resolving environment placeholders.
func WithEnvLookup(fn func(string) (string, bool)) Option {
	return func(r *Recorder) {
		if fn != nil {
			r.lookupEnv = fn
		}
	}
}

// WithDrainTimeout bounds how long output is drained after a process exits
// or is killed.
func WithDrainTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		r.drainTimeout = d
	}
}

// New returns a Recorder writing into outdir, creating it when absent.
func New(outdir string, opts ...Option) (*Recorder, error) {
	r := &Recorder{
		outdir:       outdir,
		timeout:      defaults.CommandTimeout,
		drainTimeout: defaults.OutputDrainTimeout,
		logThreshold: defaults.LogTimeThreshold,
		logger:       slog.Default(),
		lookupEnv:    os.LookupEnv,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.drainTimeout <= 0 {
		r.drainTimeout = defaults.OutputDrainTimeout
	}

	if outdir == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "output directory is required")
	}
	if r.timeout <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("command timeout must be positive, got %s", r.timeout))
	}

	info, err := os.Stat(outdir)
	switch {
	case err == nil && !info.IsDir():
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"output path exists and is not a directory", map[string]any{"outdir": outdir})
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Warn("creating output directory", "outdir", outdir)
		if err := os.MkdirAll(outdir, 0o755); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
				"failed to create output directory", err, map[string]any{"outdir": outdir})
		}
	case err != nil:
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
			"failed to stat output directory", err, map[string]any{"outdir": outdir})
	}

	return r, nil
}

// Outdir returns the output directory.
func (r *Recorder) Outdir() string {
	return r.outdir
}

// execution is the raw outcome of running one argument vector.
type execution struct {
	stdout   []byte
	stderr   []byte
	started  time.Time
	exited   time.Time
	state    *os.ProcessState
	timedOut bool
	canceled bool
	spawnErr error
	err      error
}

// Record expands tmpl, runs it, and persists its output as <name>.out and
// <name>.err (each only when non-empty).
//
// Per-command failures are reported in the Result with a nil error. The
// returned error is non-nil only when stderr output is fatal (code
// STDERR_FATAL) or ctx was canceled; the Result is still returned then.
func (r *Recorder) Record(ctx context.Context, name, tmpl string) (*Result, error) {
	log := r.logger.With("name", name)
	res := &Result{
		Name:      name,
		Command:   tmpl,
		StartTime: epochSeconds(time.Now()),
	}

	if err := ctx.Err(); err != nil {
		res.fail(ErrorKindCanceled, fmt.Sprintf("not started: %v", err))
		observe(*res, 0, 0)
		return res, err
	}

	argv, err := command.Build(tmpl, command.Vars{
		Outdir:    r.outdir,
		Name:      name,
		LookupEnv: r.lookupEnv,
	})
	if err != nil {
		log.Error("failed to expand command", "command", tmpl, "error", err)
		res.fail(ErrorKindExpansion, err.Error())
		observe(*res, 0, 0)
		return res, nil
	}
	res.Shell = argv
	log.Info("running command", "shell", argv)

	ex := r.run(ctx, argv)
	if ex.spawnErr != nil && !ex.canceled {
		res.fail(ErrorKindSpawn, spawnMessage(ex.spawnErr))
		log.Error("failed to start command", "error", ex.spawnErr)
		observe(*res, 0, 0)
		return res, nil
	}

	if ex.state != nil {
		res.ExecTime = seconds(ex.exited.Sub(ex.started))
	}
	res.Success = true
	switch {
	case ex.canceled:
		res.fail(ErrorKindCanceled, "interrupted while running")
		log.Warn("command interrupted, output will be incomplete")
	case ex.timedOut:
		res.TimedOut = true
		log.Warn("process did not finish in time, output will be incomplete",
			"timeout", r.timeout.String())
		r.logPartial(log, "stdout", ex.stdout)
		r.logPartial(log, "stderr", ex.stderr)
	case ex.err != nil:
		res.fail(ErrorKindProcess, ex.err.Error())
		log.Error("failed to wait for command", "error", ex.err)
	default:
		code := exitStatus(ex.state)
		res.ReturnCode = ptr.To(code)
		if code != 0 {
			log.Warn("command exited with non-zero status", "return_code", code)
		}
	}

	if err := r.persist(res, ex.stdout, ex.stderr); err != nil {
		res.fail(ErrorKindIO, err.Error())
		log.Error("failed to persist command output", "error", err)
	}
	res.IOTime = seconds(time.Since(ex.exited))
	r.logSlow(log, res)

	var retErr error
	switch {
	case ex.canceled:
		retErr = ctx.Err()
	case len(ex.stderr) > 0 && r.errorsFatal:
		msg := "command wrote to stderr and errors are fatal"
		if res.ErrorMessage != "" {
			msg = fmt.Sprintf("%s; %s", msg, res.ErrorMessage)
		}
		res.fail(ErrorKindStderrFatal, msg)
		log.Error("command wrote to stderr and errors are fatal, stopping", "stderr_file", res.StderrFile)
		retErr = apperrors.NewWithContext(apperrors.ErrCodeStderrFatal,
			fmt.Sprintf("command %q wrote to stderr", name),
			map[string]any{"name": name, "stderr_file": res.StderrFile})
	}

	observe(*res, len(ex.stdout), len(ex.stderr))
	return res, retErr
}

// RecordAll records every catalog entry in order. It stops at the first
// entry for which Record returns an error and returns the results gathered
// so far, including that entry, together with the error. A nil catalog
// records nothing.
func (r *Recorder) RecordAll(ctx context.Context, c *catalog.Catalog) (map[string]*Result, error) {
	start := time.Now()
	results := make(map[string]*Result, c.Len())
	if c == nil {
		return results, nil
	}
	defer func() {
		runDuration.Set(time.Since(start).Seconds())
		runCommands.Set(float64(len(results)))
	}()

	for _, e := range c.Entries {
		res, err := r.Record(ctx, e.Name, e.Command)
		results[e.Name] = res
		if err != nil {
			r.logger.Error("stopping run", "name", e.Name, "recorded", len(results),
				"remaining", c.Len()-len(results), "error", err)
			return results, err
		}
	}

	r.logger.Info("run complete", "commands", len(results),
		"total_time", time.Since(start).Seconds())
	return results, nil
}

func (r *Recorder) run(ctx context.Context, argv []string) execution {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil
	configureProcess(cmd)

	ex := execution{started: time.Now()}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		ex.exited, ex.spawnErr = ex.started, err
		return ex
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		_ = stdoutPipe.Close()
		ex.exited, ex.spawnErr = ex.started, err
		return ex
	}
	if err := cmd.Start(); err != nil {
		ex.exited = time.Now()
		ex.spawnErr = err
		ex.canceled = ctx.Err() != nil
		return ex
	}

	var stdout, stderr bytes.Buffer
	var copiers sync.WaitGroup
	copiers.Go(func() { _, _ = io.Copy(&stdout, stdoutPipe) })
	copiers.Go(func() { _, _ = io.Copy(&stderr, stderrPipe) })

	type reaped struct {
		state *os.ProcessState
		err   error
	}
	done := make(chan reaped, 1)
	go func() {
		state, err := cmd.Process.Wait()
		done <- reaped{state, err}
	}()

	var w reaped
	select {
	case w = <-done:
	case <-cctx.Done():
		select {
		case w = <-done:
		default:
			// Only a kill issued here counts as a timeout or interruption.
			if ctx.Err() != nil {
				ex.canceled = true
			} else {
				ex.timedOut = true
			}
			r.killGroup(cmd.Process, argv[0])
			w = <-done
		}
	}
	ex.exited = time.Now()
	ex.state = w.state
	ex.err = w.err

	// Background children left in the group would hold the pipes open and
	// outlive the run.
	r.killGroup(cmd.Process, argv[0])

	drained := make(chan struct{})
	go func() {
		copiers.Wait()
		close(drained)
	}()
	timer := time.NewTimer(r.drainTimeout)
	defer timer.Stop()
	select {
	case <-drained:
	case <-timer.C:
		// A descendant outside the process group still holds the pipes.
		r.logger.Warn("output not drained in time", "command", argv[0],
			"drain_timeout", r.drainTimeout.String())
		_ = stdoutPipe.Close()
		_ = stderrPipe.Close()
		<-drained
	}
	_ = stdoutPipe.Close()
	_ = stderrPipe.Close()

	ex.stdout = stdout.Bytes()
	ex.stderr = stderr.Bytes()
	return ex
}

func (r *Recorder) killGroup(p *os.Process, command string) {
	if err := killProcessGroup(p); err != nil && !errors.Is(err, os.ErrProcessDone) {
		r.logger.Warn("failed to kill process group", "command", command, "error", err)
	}
}

func (r *Recorder) persist(res *Result, stdout, stderr []byte) error {
	var errs []error
	if len(stdout) > 0 {
		path := filepath.Join(r.outdir, res.Name+stdoutExt)
		if err := os.WriteFile(path, stdout, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write stdout: %w", err))
		} else {
			res.StdoutFile = path
		}
	}
	if len(stderr) > 0 {
		path := filepath.Join(r.outdir, res.Name+stderrExt)
		if err := os.WriteFile(path, stderr, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write stderr: %w", err))
		} else {
			res.StderrFile = path
		}
	}
	return errors.Join(errs...)
}

func (r *Recorder) logSlow(log *slog.Logger, res *Result) {
	if res.ExecTime != nil && *res.ExecTime > r.logThreshold.Seconds() {
		log.Info("execution took", "exectime", *res.ExecTime)
	}
	if res.IOTime != nil && *res.IOTime > r.logThreshold.Seconds() {
		log.Info("output persistence took", "iotime", *res.IOTime)
	}
}

func (r *Recorder) logPartial(log *slog.Logger, stream string, out []byte) {
	if len(out) == 0 {
		return
	}
	truncated := len(out) > defaults.LogOutputLimit
	if truncated {
		out = out[len(out)-defaults.LogOutputLimit:]
	}
	log.Error("final output before timeout", "stream", stream,
		"output", string(out), "truncated", truncated)
}

func spawnMessage(err error) string {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("executable not found: %v", err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("executable not invocable: %v", err)
	default:
		return fmt.Sprintf("failed to start: %v", err)
	}
}
