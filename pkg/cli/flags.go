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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gathermeta/pkg/catalog"
	"github.com/NVIDIA/gathermeta/pkg/serializer"
)

const (
	flagCatalog    = "catalog"
	flagOnly       = "only"
	flagSkip       = "skip"
	flagFormat     = "format"
	flagKubeconfig = "kubeconfig"
)

func kubeconfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagKubeconfig,
		Usage:   "Path to kubeconfig for ConfigMap access (default: KUBECONFIG, ~/.kube/config, in-cluster)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

// catalogFlags select and filter the catalog.
func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagCatalog,
			Aliases: []string{"c"},
			Usage:   "YAML catalog file replacing the built-in catalog",
			Sources: cli.EnvVars("GATHERMETA_CATALOG"),
		},
		&cli.StringSliceFlag{
			Name:  flagOnly,
			Usage: "Restrict to these catalog entries (can be repeated)",
		},
		&cli.StringSliceFlag{
			Name:  flagSkip,
			Usage: "Drop these catalog entries (can be repeated)",
		},
	}
}

func formatFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"t"},
		Value:   value,
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f, err := serializer.ParseFormat(cmd.String(flagFormat))
	if err != nil {
		return "", fmt.Errorf("invalid --format: %w", err)
	}
	return f, nil
}

// maxDurationSeconds is the largest number of seconds a time.Duration holds.
const maxDurationSeconds = float64(math.MaxInt64 / int64(time.Second))

// parseDuration accepts Go durations ("1m30s") and bare numbers of seconds ("2.5").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		switch {
		case math.IsNaN(secs) || math.IsInf(secs, 0):
			return 0, fmt.Errorf("invalid duration %q: not a finite number", s)
		case secs < 0:
			return 0, fmt.Errorf("duration must not be negative: %q", s)
		case secs > maxDurationSeconds:
			return 0, fmt.Errorf("duration %q is out of range", s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: use seconds (10) or a Go duration (10s, 1m)", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative: %q", s)
	}
	return d, nil
}

// loadCatalog returns the built-in catalog or the one at path, filtered by
// the --only and --skip flags.
func loadCatalog(cmd *cli.Command) (*catalog.Catalog, error) {
	c := catalog.Default()
	if path := cmd.String(flagCatalog); path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	return c.Filter(cmd.StringSlice(flagOnly), cmd.StringSlice(flagSkip))
}
