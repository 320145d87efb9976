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

package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gathermeta/pkg/command"
	apperrors "github.com/NVIDIA/gathermeta/pkg/errors"
	"github.com/NVIDIA/gathermeta/pkg/header"
)

// validName restricts entry names to characters that are safe as file name stems.
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Entry is one named command template.
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Command string `json:"command" yaml:"command"`
}

// Catalog is an ordered set of entries. Order is execution order.
// The header is optional in catalog files; when present it must be of kind
// GatherCatalog.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Entries []Entry `json:"commands" yaml:"commands"`
}

// New builds a catalog from entries, validating names and templates.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{Entries: slices.Clone(entries)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Names returns entry names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.Len())
	for _, e := range c.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Lookup returns the command template registered under name.
func (c *Catalog) Lookup(name string) (string, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e.Command, true
		}
	}
	return "", false
}

// Validate checks that names are unique and file-name safe and that every
// template is syntactically valid. Unset environment variables are not an
// error here; they are reported per command at execution time.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, c.Len())
	for i, e := range c.Entries {
		if !validName.MatchString(e.Name) {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid catalog entry name %q", e.Name),
				map[string]any{"index": i})
		}
		if _, dup := seen[e.Name]; dup {
			return apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate catalog entry %q", e.Name))
		}
		seen[e.Name] = struct{}{}

		if _, err := command.EnvRefs(e.Command); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid command template for %q", e.Name), err)
		}
	}
	return nil
}

// Filter returns a new catalog restricted to only (when non-empty) and
// without skip, preserving order. Unknown names are an error so typos in
// --only/--skip do not silently drop diagnostics.
func (c *Catalog) Filter(only, skip []string) (*Catalog, error) {
	for _, n := range append(slices.Clone(only), skip...) {
		if _, ok := c.Lookup(n); !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown catalog entry %q", n))
		}
	}

	out := &Catalog{Header: c.Header, Entries: make([]Entry, 0, c.Len())}
	for _, e := range c.Entries {
		if len(only) > 0 && !slices.Contains(only, e.Name) {
			continue
		}
		if slices.Contains(skip, e.Name) {
			continue
		}
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

// Parse decodes a YAML (or JSON) catalog document of the form:
//
//	kind: GatherCatalog                          # optional
//	apiVersion: gathermeta.nvidia.com/v1alpha1   # optional
//	commands:
//	  - name: date
//	    command: date --iso=seconds
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "catalog is empty")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse catalog", err)
	}
	if c.Kind != "" {
		if err := c.Header.Validate(header.KindCatalog); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid catalog header", err)
		}
	}
	if len(c.Entries) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "catalog has no commands")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "catalog file not found", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to open catalog", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
