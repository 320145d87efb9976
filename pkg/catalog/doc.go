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

// Package catalog defines the ordered set of diagnostic commands a run executes.
//
// A Catalog is a list of named command templates. Names double as output file
// stems (<outdir>/<name>.out, <outdir>/<name>.err) and as report keys, so they
// must be unique and file-name safe. Templates are validated for syntax when a
// catalog is built; placeholders are resolved only when a command runs.
//
// The built-in catalog covers hardware topology, kernel and OS state, MPI/UCX
// stacks and the Python/conda environment of a typical HPC benchmark node.
// Sites replace it with a YAML file:
//
//	commands:
//	  - name: nvidia-smi
//	    command: nvidia-smi -q -x
//	  - name: slurm-job
//	    command: scontrol show jobid ${SLURM_JOBID} -d
package catalog
