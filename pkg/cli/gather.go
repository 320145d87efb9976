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

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gathermeta/pkg/catalog"
	"github.com/NVIDIA/gathermeta/pkg/defaults"
	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
	"github.com/NVIDIA/gathermeta/pkg/k8s/client"
	"github.com/NVIDIA/gathermeta/pkg/logging"
	"github.com/NVIDIA/gathermeta/pkg/oci"
	"github.com/NVIDIA/gathermeta/pkg/recorder"
	"github.com/NVIDIA/gathermeta/pkg/report"
	"github.com/NVIDIA/gathermeta/pkg/serializer"
)

// gatherConfig holds the parsed gather command line.
type gatherConfig struct {
	outdir       string
	timeout      time.Duration
	logThreshold time.Duration
	errorsFatal  bool
	noResultJSON bool
	verbose      bool
	logLevel     string
	catalogFile  string
	only         []string
	skip         []string
	metricsFile  string
	publish      string
	push         string
	plainHTTP    bool
	insecureTLS  bool
	kubeconfig   string

	// kubeClient overrides the client built from kubeconfig for --publish.
	kubeClient client.Interface
}

// args is the view of the configuration recorded in the report.
func (c *gatherConfig) args() map[string]string {
	args := map[string]string{
		"outdir":             c.outdir,
		"command-timeout":    c.timeout.String(),
		"log-time-threshold": c.logThreshold.String(),
		"errors-fatal":       strconv.FormatBool(c.errorsFatal),
		"no-result-json":     strconv.FormatBool(c.noResultJSON),
		"verbose":            strconv.FormatBool(c.verbose),
	}
	optional := map[string]string{
		"catalog":      c.catalogFile,
		"only":         strings.Join(c.only, ","),
		"skip":         strings.Join(c.skip, ","),
		"metrics-file": c.metricsFile,
		"publish":      c.publish,
		"push":         c.push,
	}
	for k, v := range optional {
		if v != "" {
			args[k] = v
		}
	}
	return args
}

func gatherCmd() *cli.Command {
	return &cli.Command{
		Name:                  "gather",
		EnableShellCompletion: true,
		Usage:                 "Run the catalog and record outputs into a directory",
		ArgsUsage:             "<outdir>",
		Description: `Runs every catalog command one at a time with a per-command timeout and
stores non-empty stdout and stderr as <outdir>/<name>.out and <name>.err.
Timing, exit codes and failures are written to <outdir>/gather.json.

Placeholders in commands: {outdir}, {name}, and environment variables as
{VAR} or ${VAR}. A command referencing an unset variable is recorded as
failed without being run.

A failing command never stops the run unless --errors-fatal is set and it
writes to stderr; gather.json is still written in that case and the exit
status is non-zero.

# Examples

Gather with the built-in catalog:
  gathermeta gather about

Only CPU topology, with a longer timeout:
  gathermeta gather --only lscpu-json --only numactl-show --command-timeout 30 about

Publish the report to a ConfigMap and push the directory to a registry:
  gathermeta gather --publish cm://hpc/gathermeta-node01 \
    --push oci://ghcr.io/nvidia/gathermeta about`,
		Flags: append(catalogFlags(),
			&cli.StringFlag{
				Name:    "command-timeout",
				Usage:   "Per-command timeout (seconds or Go duration)",
				Value:   defaults.CommandTimeout.String(),
				Sources: cli.EnvVars("GATHERMETA_COMMAND_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "log-time-threshold",
				Usage:   "Log commands whose execution or output persistence takes longer (seconds or Go duration)",
				Value:   defaults.LogTimeThreshold.String(),
				Sources: cli.EnvVars("GATHERMETA_LOG_TIME_THRESHOLD"),
			},
			&cli.BoolFlag{
				Name:    "errors-fatal",
				Usage:   "Stop at the first command that writes to stderr",
				Sources: cli.EnvVars("GATHERMETA_ERRORS_FATAL"),
			},
			&cli.BoolFlag{
				Name:  "no-result-json",
				Usage: "Do not write gather.json",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging",
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write Prometheus textfile metrics of the run to this path",
				Sources: cli.EnvVars("GATHERMETA_METRICS_FILE"),
			},
			&cli.StringFlag{
				Name:    "publish",
				Usage:   "Also apply the report to a ConfigMap (cm://namespace/name)",
				Sources: cli.EnvVars("GATHERMETA_PUBLISH"),
			},
			&cli.StringFlag{
				Name:    "push",
				Usage:   "Push the output directory as an OCI artifact (oci://registry/repository[:tag], tag defaults to the run id)",
				Sources: cli.EnvVars("GATHERMETA_PUSH"),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
			kubeconfigFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := gatherConfigFromCmd(cmd)
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			return runGather(ctx, cfg, c)
		},
	}
}

func gatherConfigFromCmd(cmd *cli.Command) (*gatherConfig, error) {
	if cmd.NArg() != 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("expected exactly one argument <outdir>, got %d", cmd.NArg()))
	}

	timeout, err := parseDuration(cmd.String("command-timeout"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --command-timeout", err)
	}
	if timeout == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "--command-timeout must be positive")
	}
	threshold, err := parseDuration(cmd.String("log-time-threshold"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --log-time-threshold", err)
	}

	cfg := &gatherConfig{
		outdir:       cmd.Args().First(),
		timeout:      timeout,
		logThreshold: threshold,
		errorsFatal:  cmd.Bool("errors-fatal"),
		noResultJSON: cmd.Bool("no-result-json"),
		verbose:      cmd.Bool("verbose"),
		logLevel:     cmd.String("log-level"),
		catalogFile:  cmd.String(flagCatalog),
		only:         cmd.StringSlice(flagOnly),
		skip:         cmd.StringSlice(flagSkip),
		metricsFile:  cmd.String("metrics-file"),
		publish:      cmd.String("publish"),
		push:         cmd.String("push"),
		plainHTTP:    cmd.Bool("plain-http"),
		insecureTLS:  cmd.Bool("insecure-tls"),
		kubeconfig:   cmd.String(flagKubeconfig),
	}
	if cfg.verbose {
		cfg.logLevel = "debug"
	}
	return cfg, nil
}

// publishTargets are parsed before the run so a typo fails fast instead of
// after minutes of gathering.
type publishTargets struct {
	configMap *serializer.ConfigMapWriter
	oci       *oci.Reference
}

func parsePublishTargets(cfg *gatherConfig) (*publishTargets, error) {
	var t publishTargets
	if cfg.publish != "" {
		opts := []serializer.ConfigMapOption{serializer.WithKubeconfig(cfg.kubeconfig)}
		if cfg.kubeClient != nil {
			opts = append(opts, serializer.WithClient(cfg.kubeClient))
		}
		w, err := serializer.NewConfigMapWriterFromURI(cfg.publish, serializer.FormatJSON, opts...)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --publish", err)
		}
		t.configMap = w
	}
	if cfg.push != "" {
		ref, err := oci.ParseReference(cfg.push)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --push", err)
		}
		t.oci = ref
	}
	return &t, nil
}

func runGather(ctx context.Context, cfg *gatherConfig, c *catalog.Catalog) error {
	targets, err := parsePublishTargets(cfg)
	if err != nil {
		return err
	}

	// --verbose applies to every package, not only the recorder.
	logger := logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.logLevel)
	rec, err := recorder.New(cfg.outdir,
		recorder.WithTimeout(cfg.timeout),
		recorder.WithLogThreshold(cfg.logThreshold),
		recorder.WithErrorsFatal(cfg.errorsFatal),
		recorder.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("gathering", "outdir", cfg.outdir, "commands", c.Len(),
		"command_timeout", cfg.timeout.String())

	run := report.NewRun()
	results, runErr := rec.RecordAll(ctx, c)
	rep := report.Build(run, c, results, report.WithVersion(version), report.WithArgs(cfg.args()))

	summary := rep.Summary()
	logger.Info("gather finished",
		"run_id", run.ID,
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"timed_out", summary.TimedOut,
		"total_time", rep.Run.TotalTime)

	// The report is written even when the run stopped early.
	if !cfg.noResultJSON {
		path, err := rep.Write(ctx, cfg.outdir)
		if err != nil {
			return err
		}
		logger.Info("report written", "path", path)
	}

	if cfg.metricsFile != "" {
		if err := recorder.WriteMetrics(cfg.metricsFile); err != nil {
			return err
		}
		logger.Debug("metrics written", "path", cfg.metricsFile)
	}

	if runErr != nil {
		return runErr
	}

	if targets.configMap != nil {
		if err := targets.configMap.Serialize(ctx, rep); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to publish report", err)
		}
		logger.Info("report published", "target", cfg.publish)
	}

	if targets.oci != nil {
		res, err := oci.Push(ctx, oci.PushOptions{
			SourceDir:   cfg.outdir,
			Reference:   targets.oci.WithDefaultTag(run.ID),
			Annotations: ociAnnotations(rep),
			PlainHTTP:   cfg.plainHTTP,
			InsecureTLS: cfg.insecureTLS,
		})
		if err != nil {
			return err
		}
		logger.Info("output pushed", "reference", res.Reference, "digest", res.Digest)
	}

	return nil
}

func ociAnnotations(rep *report.Report) map[string]string {
	created := time.Unix(0, int64(rep.Run.Start*float64(time.Second))).UTC()
	return map[string]string{
		ociv1.AnnotationCreated: created.Format(time.RFC3339),
		ociv1.AnnotationTitle:   fmt.Sprintf("%s output of %s", name, rep.Run.Host),
		ociv1.AnnotationVersion: version,
		ociv1.AnnotationVendor:  "NVIDIA",
		oci.AnnotationRunID:     rep.Run.ID,
		oci.AnnotationHost:      rep.Run.Host,
	}
}
