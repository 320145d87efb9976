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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/gathermeta/pkg/defaults"
	"github.com/NVIDIA/gathermeta/pkg/header"
	"github.com/NVIDIA/gathermeta/pkg/k8s/client"
)

const (
	// FieldManager owns the fields gathermeta applies.
	FieldManager = "gathermeta"

	configMapDataPrefix = "report"
	configMapFormatKey  = "format"
	configMapTimeKey    = "timestamp"
)

// ConfigMapWriter applies serialized data to a Kubernetes ConfigMap using
// server-side apply, creating it when absent.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     client.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithClient sets the clientset instead of building one from kubeconfig.
func WithClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// WithKubeconfig sets the kubeconfig used to build the client.
func WithKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// NewConfigMapWriter creates a writer for namespace/name. Table format is
// accepted; unknown formats default to JSON.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalize(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewConfigMapWriterFromURI parses a cm://namespace/name URI and returns a writer for it.
func NewConfigMapWriterFromURI(uri string, format Format, opts ...ConfigMapOption) (*ConfigMapWriter, error) {
	namespace, name, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}
	return NewConfigMapWriter(namespace, name, format, opts...), nil
}

// Serialize applies v to the ConfigMap. Data keys:
//
//	report.{json|yaml|txt}   the serialized document
//	format                   the format used
//	timestamp                creation time from the document header
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		c, cfg, err := client.GetKubeClientWithConfig(w.kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		cs = c
		slog.Info("configmap operation", "namespace", w.namespace, "name", w.name,
			"auth_method", client.AuthMethod(cfg))
	}

	content, err := Marshal(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	cm := buildConfigMap(w.namespace, w.name, w.format, v, content)

	slog.Info("applying ConfigMap", "namespace", w.namespace, "name", w.name,
		"format", w.format, "size", len(content))

	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; ConfigMapWriter holds no resources.
func (w *ConfigMapWriter) Close() error {
	return nil
}

type headered interface {
	GetKind() header.Kind
	GetMetadata() map[string]string
}

func buildConfigMap(namespace, name string, format Format, v any, content []byte) *accorev1.ConfigMapApplyConfiguration {
	kind, version := "unknown", "unknown"
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if h, ok := v.(headered); ok {
		if k := h.GetKind(); k != "" {
			kind = k.String()
		}
		md := h.GetMetadata()
		if md[header.MetadataVersion] != "" {
			version = md[header.MetadataVersion]
		}
		if md[header.MetadataTimestamp] != "" {
			timestamp = md[header.MetadataTimestamp]
		}
	}

	return accorev1.ConfigMap(name, namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "gathermeta",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			configMapDataPrefix + "." + format.Extension(): string(content),
			configMapFormatKey: string(format),
			configMapTimeKey:   timestamp,
		})
}

// FromConfigMap reads a T previously written by ConfigMapWriter.
func FromConfigMap[T any](ctx context.Context, c client.Interface, namespace, name string) (*T, error) {
	cm, err := c.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := Format(cm.Data[configMapFormatKey])
	content, ok := cm.Data[configMapDataPrefix+"."+format.Extension()]
	if !ok || checkReadable(format) != nil {
		format = ""
		for _, f := range []Format{FormatJSON, FormatYAML} {
			if data, found := cm.Data[configMapDataPrefix+"."+f.Extension()]; found {
				format, content = f, data
				break
			}
		}
		if format == "" {
			return nil, fmt.Errorf("ConfigMap %s/%s has no readable report data", namespace, name)
		}
	}

	reader, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}

	var v T
	if err := reader.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap data: %w", err)
	}
	return &v, nil
}

// ParseConfigMapURI splits cm://namespace/name into its components.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
