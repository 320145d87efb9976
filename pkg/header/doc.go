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

// Package header provides the kind/apiVersion/metadata header shared by
// gathermeta documents.
//
//	kind: GatherReport
//	apiVersion: gathermeta.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-01-02T15:04:05Z"
//	  version: v0.1.0
//	  host: node01
//	  run-id: 0b8e...
//
// Documents embed Header inline and call Init when they are built:
//
//	type Report struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    ...
//	}
//
//	r.Init(header.KindGatherReport, version)
//
// Readers call Validate to reject documents of another kind or version.
package header
