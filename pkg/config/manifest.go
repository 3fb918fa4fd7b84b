package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"container-deploy/pkg/quadlet"
)

// Manifest is the structured configuration source: one document with
// containers, pods and networks arrays. Missing arrays decode to
// empty lists.
type Manifest struct {
	Containers []quadlet.ContainerSpec `json:"containers"`
	Pods       []quadlet.PodSpec       `json:"pods"`
	Networks   []quadlet.NetworkSpec   `json:"networks"`
}

// ParseManifest decodes a JSON or YAML manifest document. YAML is a
// superset of JSON, so one decode path covers both encodings; a
// document valid as neither is a configuration error and the caller
// must abort generation.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest is not valid JSON or YAML: %w", err)
	}
	return &m, nil
}

// LoadManifest reads and decodes the manifest file at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ContainerNames returns the container names in declaration order.
func (m *Manifest) ContainerNames() []string {
	names := make([]string, 0, len(m.Containers))
	for _, c := range m.Containers {
		names = append(names, c.Name)
	}
	return names
}

func (m *Manifest) PodNames() []string {
	names := make([]string, 0, len(m.Pods))
	for _, p := range m.Pods {
		names = append(names, p.Name)
	}
	return names
}

func (m *Manifest) NetworkNames() []string {
	names := make([]string, 0, len(m.Networks))
	for _, n := range m.Networks {
		names = append(names, n.Name)
	}
	return names
}

// Container returns the named container record, or a zero record when
// no container by that name is declared.
func (m *Manifest) Container(name string) quadlet.ContainerSpec {
	for _, c := range m.Containers {
		if c.Name == name {
			return c
		}
	}
	return quadlet.ContainerSpec{}
}

func (m *Manifest) Pod(name string) quadlet.PodSpec {
	for _, p := range m.Pods {
		if p.Name == name {
			return p
		}
	}
	return quadlet.PodSpec{}
}

func (m *Manifest) Network(name string) quadlet.NetworkSpec {
	for _, n := range m.Networks {
		if n.Name == name {
			return n
		}
	}
	return quadlet.NetworkSpec{}
}
