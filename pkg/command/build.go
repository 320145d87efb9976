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
	"github.com/google/shlex"
)

// Build expands tmpl and splits the result into an argument vector using
// shell word splitting rules. Quotes and backslash escapes are honored; pipes,
// redirections and other shell operators are passed through as plain words.
func Build(tmpl string, vars Vars) ([]string, error) {
	expanded, err := Expand(tmpl, vars)
	if err != nil {
		return nil, err
	}

	argv, err := shlex.Split(expanded)
	if err != nil {
		return nil, &ExpansionError{Template: tmpl, Reason: ReasonTokenize, Cause: err}
	}
	if len(argv) == 0 {
		return nil, &ExpansionError{Template: tmpl, Reason: ReasonEmpty}
	}

	return argv, nil
}
