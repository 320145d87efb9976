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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gathermeta/pkg/header"
	"github.com/NVIDIA/gathermeta/pkg/serializer"
)

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:                  "catalog",
		EnableShellCompletion: true,
		Usage:                 "Print the effective command catalog",
		Description: `Prints the catalog gather would run, after --catalog, --only and --skip
are applied. The YAML output is a valid --catalog file.

# Examples

Dump the built-in catalog as a starting point for a custom one:
  gathermeta catalog > catalog.yaml

Check a filtered selection:
  gathermeta catalog --catalog catalog.yaml --skip ps-aux --format table`,
		Flags: append(catalogFlags(), formatFlag(string(serializer.FormatYAML))),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			c.Init(header.KindCatalog, version)

			return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, c)
		},
	}
}
