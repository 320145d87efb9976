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

// Package oci pushes a gather output directory to an OCI registry as a
// single-layer artifact using ORAS.
//
//	ref, err := oci.ParseReference("oci://ghcr.io/nvidia/gathermeta:node01")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{
//	    SourceDir: "about",
//	    Reference: ref.WithDefaultTag(runID),
//	})
//
// The directory is packed as a reproducible gzip tar. The manifest uses
// artifact type "application/vnd.nvidia.gathermeta.output" so consumers do
// not mistake it for a runnable image.
//
// Credentials come from the Docker configuration (~/.docker/config.json)
// via the ORAS credentials package. PlainHTTP and InsecureTLS serve local
// development registries.
package oci
