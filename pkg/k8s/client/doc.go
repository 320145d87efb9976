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

// Package client returns the clientset used to publish and read reports in
// ConfigMaps.
//
// ResolveKubeconfig picks the first of the --kubeconfig path, KUBECONFIG and
// ~/.kube/config that is set. With none, BuildKubeClient falls back to the
// in-cluster service account. A report published from a batch job inside the
// cluster therefore needs no flags.
//
//	cs, cfg, err := client.GetKubeClientWithConfig(kubeconfig)
//	if err != nil {
//	    return err
//	}
//	slog.Info("publishing", "auth_method", client.AuthMethod(cfg))
//
// An empty path reuses one client for the process.
package client
