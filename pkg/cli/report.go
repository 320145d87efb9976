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
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
	"github.com/NVIDIA/gathermeta/pkg/report"
	"github.com/NVIDIA/gathermeta/pkg/serializer"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "report",
		EnableShellCompletion: true,
		Usage:                 "Summarize a gather report",
		ArgsUsage:             "<path|cm://namespace/name>",
		Description: `Loads a gather.json written by gather, or a report published with
--publish, and prints its results in catalog order.

# Examples

Show what failed in a run:
  gathermeta report about/gather.json --failed

Read a published report:
  gathermeta report cm://hpc/gathermeta-node01 --format yaml`,
		Flags: []cli.Flag{
			formatFlag(string(serializer.FormatTable)),
			&cli.BoolFlag{
				Name:  "failed",
				Usage: "Only show failed and timed out commands",
			},
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return apperrors.New(apperrors.ErrCodeInvalidRequest,
					fmt.Sprintf("expected exactly one argument <path>, got %d", cmd.NArg()))
			}
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			rep, err := report.Load(ctx, cmd.Args().First(), cmd.String(flagKubeconfig))
			if err != nil {
				return err
			}
			if cmd.Bool("failed") {
				rep = rep.FailedOnly()
			}

			out := cmd.Root().Writer
			if format == serializer.FormatTable {
				return writeResultsTable(out, rep)
			}
			return serializer.NewWriter(format, out).Serialize(ctx, rep)
		},
	}
}

// writeResultsTable prints one row per result followed by a summary line.
func writeResultsTable(w io.Writer, rep *report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARTED\tOUTCOME\tRC\tEXEC\tIO\tOUTPUT\tERROR")
	for _, n := range rep.Order {
		r, ok := rep.Results[n]
		if !ok {
			continue
		}
		rc := "-"
		if r.ReturnCode != nil {
			rc = strconv.Itoa(*r.ReturnCode)
		}
		output := joinNonEmpty(r.StdoutFile, r.StderrFile)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Started().Format(time.TimeOnly), r.Outcome(), rc, secondsCell(r.ExecTime), secondsCell(r.IOTime),
			dash(output), dash(r.ErrorMessage))
	}
	if err := tw.Flush(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write table", err)
	}

	s := rep.Summary()
	_, err := fmt.Fprintf(w, "\nrun %s on %s at %s: %d commands, %d succeeded, %d failed, %d timed out, %.2fs\n",
		rep.Run.ID, rep.Run.Host, rep.Run.At, s.Total, s.Succeeded, s.Failed, s.TimedOut, rep.Run.TotalTime)
	return err
}

func secondsCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3fs", *v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "," + b
	}
}
