// SPDX-License-Identifier: MIT

// Package study reads mesh refinement studies from YAML files for the CLI:
//
//	mesh_key: hs        # optional, the configured mesh key otherwise
//	orientation: size   # optional, inferred from mesh_key otherwise
//	dimension: 1        # optional
//	columns:            # ordered; the mesh column is found by mesh_key
//	  hs: [0.00292402, 0.00414913, 0.00573555]
//	  pressure: [100, 98, 95]
package study

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridverify/mesh"
	"github.com/katalvlaran/gridverify/verify"
)

// ErrMalformedStudy indicates a study file that does not have the expected shape.
var ErrMalformedStudy = errors.New("study: malformed study file")

// Study is one decoded study file.
type Study struct {
	MeshKey     string
	Orientation string
	Dimension   int
	Columns     mesh.Table
}

type document struct {
	MeshKey     string    `yaml:"mesh_key"`
	Orientation string    `yaml:"orientation"`
	Dimension   int       `yaml:"dimension"`
	Columns     yaml.Node `yaml:"columns"`
}

// Load reads and parses the study at path.
func Load(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading study: %w", err)
	}

	return Parse(data)
}

// Parse decodes a study, keeping the column order of the document.
func Parse(data []byte) (*Study, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStudy, err)
	}
	if doc.Columns.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: columns must be a mapping of name to values", ErrMalformedStudy)
	}
	switch doc.Orientation {
	case "", "size", "density":
	default:
		return nil, fmt.Errorf("%w: orientation %q", ErrMalformedStudy, doc.Orientation)
	}

	st := &Study{
		MeshKey:     doc.MeshKey,
		Orientation: doc.Orientation,
		Dimension:   doc.Dimension,
		Columns:     make(mesh.Table, 0, len(doc.Columns.Content)/2),
	}
	for i := 0; i+1 < len(doc.Columns.Content); i += 2 {
		name, body := doc.Columns.Content[i], doc.Columns.Content[i+1]
		var values []float64
		if err := body.Decode(&values); err != nil {
			return nil, fmt.Errorf("%w: column %q (line %d): %v", ErrMalformedStudy, name.Value, body.Line, err)
		}
		st.Columns = append(st.Columns, mesh.Column{Key: name.Value, Values: values})
	}

	return st, nil
}

// Options returns the verify options the study file itself specifies.
// They are meant to follow configuration options so that they win. An empty
// MeshKey leaves the configured one in place.
func (s *Study) Options() []verify.Option {
	var opts []verify.Option
	if s.MeshKey != "" {
		opts = append(opts, verify.WithMeshKey(s.MeshKey))
	}
	switch s.Orientation {
	case "size":
		opts = append(opts, verify.WithOrientation(mesh.Size))
	case "density":
		opts = append(opts, verify.WithOrientation(mesh.Density))
	}
	if s.Dimension > 0 {
		opts = append(opts, verify.WithDimension(s.Dimension))
	}

	return opts
}
