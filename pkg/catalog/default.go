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

import "slices"

// defaultEntries is the built-in HPC diagnostic catalog.
// hwloc-gather-topology is left out: it takes minutes on high core count nodes.
var defaultEntries = []Entry{
	{"date", "date --iso=seconds"},
	{"sysctl-a", "sysctl -a"},
	{"lshw", "lshw -json -quiet"},
	{"dmidecode", "dmidecode"},
	{"lspci", "lspci -v"},
	{"cpuinfo", "cat /proc/cpuinfo"},
	{"meminfo", "cat /proc/meminfo"},
	{"env-vars", "/usr/bin/env"},
	{"ldd-nest", "ldd nest"},
	{"conda-environment", "conda env export"},
	{"hostname", "hostname -f"},
	{"ompi_info", "ompi_info"},
	{"ompi_info-parsable", "ompi_info --parsable --all"},
	{"lsmod", "lsmod"},
	{"ip-r", "ip r"},
	{"ip-l", "ip l"},
	{"nproc", "nproc"},
	{"numactl-show", "numactl --show"},
	{"numastat", "numastat"},
	{"lscpu-json", "lscpu --json --output-all"},
	{"lscpu-extended-json", "lscpu --json --output-all --bytes --extended"},
	{"lscpu-caches-json", "lscpu --json --output-all --bytes --caches"},
	{"hwloc-info", "hwloc-info"},
	{"hwloc-ls", "hwloc-ls"},
	{"pip-list", "pip list --format json"},
	{"lstopo", "lstopo --of ascii {outdir}/{name}"},
	{"getconf", "getconf -a"},
	{"ulimit", "ulimit -a"},
	{"ucx_info-v", "ucx_info -v"},
	{"ucx_info-c", "ucx_info -c"},
	{"modules", "module list"},
	{"proc-sys-kernel", "bash -c 'cp -r /proc/sys/kernel {outdir}/{name}; chmod -R u+w {outdir}/{name}'"},
	{"ps-aux", "ps aux"},
	{"scontrol", "scontrol show jobid ${SLURM_JOBID} -d"},
	{"mpivars", "mpivars"},
	{"pldd-nest", `python -c "import nest, subprocess as s, os; s.check_call(['/usr/bin/pldd', str(os.getpid())])"`},
}

// Default returns a copy of the built-in catalog.
func Default() *Catalog {
	return &Catalog{Entries: slices.Clone(defaultEntries)}
}
