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

// Package k8s groups the Kubernetes integration used to publish gather
// reports.
//
// # Sub-packages
//
// client: shared clientset construction with in-cluster and kubeconfig
// authentication.
//
//	clientset, _, err := client.GetKubeClientWithConfig(kubeconfig)
//	if err != nil {
//	    return err
//	}
//
// Reports are applied as ConfigMaps by pkg/serializer using server-side
// apply, so the identity only needs get and patch on configmaps in the
// target namespace.
package k8s
