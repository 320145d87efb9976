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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, name, root.Name)

	want := []string{"gather", "catalog", "report"}
	require.Len(t, root.Commands, len(want))
	for i, n := range want {
		assert.Equal(t, n, root.Commands[i].Name)
		assert.NotNil(t, root.Commands[i].Action, n)
	}

	// Flags are built per command so repeated runs do not share state.
	assert.NotSame(t, newRootCmd().Commands[0].Flags[0], root.Commands[0].Flags[0])
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"plain", errors.New("boom"), exitError},
		{"structured", apperrors.New(apperrors.ErrCodeStderrFatal, "stderr"), exitError},
		{"canceled", context.Canceled, exitCanceled},
		{"wrapped canceled", fmt.Errorf("run: %w", context.Canceled), exitCanceled},
		{"deadline", context.DeadlineExceeded, exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
