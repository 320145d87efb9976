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
	"fmt"
	"os"
	"strings"
)

// Recognized built-in placeholders. Everything else is looked up in the environment.
const (
	PlaceholderOutdir = "outdir"
	PlaceholderName   = "name"
)

// Reason classifies why a template could not be turned into an argument vector.
type Reason string

const (
	// ReasonUndefined means a placeholder named neither a built-in nor a set environment variable.
	ReasonUndefined Reason = "undefined variable"
	// ReasonMalformed means a placeholder was empty or not a valid identifier.
	ReasonMalformed Reason = "malformed placeholder"
	// ReasonUnbalanced means a brace was opened but not closed, or closed without being opened.
	ReasonUnbalanced Reason = "unbalanced brace"
	// ReasonTokenize means shell word splitting failed, e.g. an unterminated quote.
	ReasonTokenize Reason = "tokenize"
	// ReasonEmpty means the expanded command contained no words.
	ReasonEmpty Reason = "empty command"
)

// ExpansionError reports a template that cannot be expanded into an argument vector.
type ExpansionError struct {
	Template    string
	Placeholder string
	Reason      Reason
	Cause       error
}

func (e *ExpansionError) Error() string {
	switch {
	case e.Reason == ReasonUndefined:
		return fmt.Sprintf("undefined variable %q", e.Placeholder)
	case e.Placeholder != "":
		return fmt.Sprintf("%s %q in %q", e.Reason, e.Placeholder, e.Template)
	case e.Cause != nil:
		return fmt.Sprintf("%s %q: %v", e.Reason, e.Template, e.Cause)
	default:
		return fmt.Sprintf("%s %q", e.Reason, e.Template)
	}
}

func (e *ExpansionError) Unwrap() error {
	return e.Cause
}

// Vars resolves placeholders for one catalog entry.
type Vars struct {
	// Outdir is substituted for {outdir}.
	Outdir string
	// Name is substituted for {name}.
	Name string
	// LookupEnv resolves any other identifier. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func (v Vars) resolve(key string) (string, bool) {
	switch key {
	case PlaceholderOutdir:
		return v.Outdir, true
	case PlaceholderName:
		return v.Name, true
	}
	lookup := v.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(key)
}

// Expand substitutes placeholders in tmpl.
//
//	{outdir}, {name}   built-ins
//	{VAR}, ${VAR}      environment variable VAR
//	{{, }}             literal braces
//
// Any other use of a brace is an error. A '$' not followed by '{' is kept.
func Expand(tmpl string, vars Vars) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '}':
			return "", &ExpansionError{Template: tmpl, Reason: ReasonUnbalanced}
		case c == '{' || (c == '$' && i+1 < len(tmpl) && tmpl[i+1] == '{'):
			if c == '$' {
				i++
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", &ExpansionError{Template: tmpl, Reason: ReasonUnbalanced}
			}
			key := tmpl[i+1 : i+1+end]
			if !isIdentifier(key) {
				return "", &ExpansionError{Template: tmpl, Placeholder: key, Reason: ReasonMalformed}
			}
			val, ok := vars.resolve(key)
			if !ok {
				return "", &ExpansionError{Template: tmpl, Placeholder: key, Reason: ReasonUndefined}
			}
			b.WriteString(val)
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}

// EnvRefs lists the environment variables referenced by tmpl in order of
// appearance, without resolving them. Built-in placeholders are not listed.
// A malformed template returns its expansion error.
func EnvRefs(tmpl string) ([]string, error) {
	var keys []string
	_, err := Expand(tmpl, Vars{LookupEnv: func(key string) (string, bool) {
		keys = append(keys, key)
		return "", true
	}})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
