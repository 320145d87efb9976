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

package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	vars := Vars{Outdir: "/tmp/out dir", Name: "proc-sys-kernel", LookupEnv: testEnv(nil)}

	tests := []struct {
		name string
		tmpl string
		want []string
	}{
		{
			name: "simple",
			tmpl: "lscpu --json --output-all",
			want: []string{"lscpu", "--json", "--output-all"},
		},
		{
			name: "single quoted script",
			tmpl: "bash -c 'cp -r /proc/sys/kernel {outdir}/{name}; chmod -R u+w {outdir}/{name}'",
			want: []string{"bash", "-c", "cp -r /proc/sys/kernel /tmp/out dir/proc-sys-kernel; chmod -R u+w /tmp/out dir/proc-sys-kernel"},
		},
		{
			name: "double quoted python",
			tmpl: `python -c "import os; print(os.getpid())"`,
			want: []string{"python", "-c", "import os; print(os.getpid())"},
		},
		{
			name: "shell operators are plain words",
			tmpl: "echo a | wc -l > out",
			want: []string{"echo", "a", "|", "wc", "-l", ">", "out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.tmpl, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	vars := Vars{LookupEnv: testEnv(nil)}

	tests := []struct {
		name   string
		tmpl   string
		reason Reason
	}{
		{"undefined", "echo {UNSET_VAR}", ReasonUndefined},
		{"unterminated quote", `echo "unterminated`, ReasonTokenize},
		{"blank", "   ", ReasonEmpty},
		{"empty", "", ReasonEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := Build(tt.tmpl, vars)
			require.Error(t, err)
			assert.Nil(t, argv)

			var expErr *ExpansionError
			require.True(t, errors.As(err, &expErr))
			assert.Equal(t, tt.reason, expErr.Reason)
		})
	}
}
