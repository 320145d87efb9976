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

// Package serializer encodes and decodes gathermeta documents.
//
// # Formats
//
// JSON: indented two spaces, the on-disk report format.
//
// YAML: gopkg.in/yaml.v3, used for catalogs and human review.
//
// Table: flattened FIELD/VALUE rows keyed by JSON field names, for the
// terminal. Write-only.
//
// # Writing
//
//	w, err := serializer.NewFileWriter(serializer.FormatJSON, "about/gather.json")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Serialize(ctx, report)
//
// ConfigMapWriter applies the document to cm://namespace/name with
// server-side apply under the "gathermeta" field manager.
//
// # Reading
//
//	rep, err := serializer.FromFile[report.Report](ctx, "about/gather.json")
//
// FromFile also accepts cm://namespace/name and reads the data key written
// by ConfigMapWriter.
package serializer
