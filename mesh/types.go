// SPDX-License-Identifier: MIT

package mesh

import "sort"

// Defaults shared by the normalizer and its callers.
const (
	// DefaultMeshKey labels mesh values supplied without a label.
	DefaultMeshKey = "hs"

	// DefaultResponseKey labels a single unlabeled response sequence.
	DefaultResponseKey = "System Response Quantity"

	// MinLevels is the smallest number of mesh levels a Series may hold.
	MinLevels = 2
)

// Orientation tells whether mesh values shrink or grow under refinement.
type Orientation int

const (
	// Size values (cell size, spacing) decrease as the mesh is refined.
	Size Orientation = iota + 1

	// Density values (cell count, nodes per length) increase as the mesh is refined.
	Density
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	switch o {
	case Size:
		return "size"
	case Density:
		return "density"
	default:
		return "unknown"
	}
}

// Column is one labeled sequence of values.
type Column struct {
	Key    string
	Values []float64
}

// MeshInput is the closed set of accepted mesh shapes:
// Sizes, Labeled and Table.
type MeshInput interface {
	meshInput()
}

// ResponseInput is the closed set of accepted response shapes:
// Values and Columns.
type ResponseInput interface {
	responseInput()
}

// Sizes is a plain mesh sequence labeled with the configured mesh key
// (DefaultMeshKey unless WithMeshKey is given).
type Sizes []float64

// Labeled is a mesh sequence carrying its own label (a single-entry mapping).
type Labeled Column

// Table combines the mesh column and every response column. The mesh column
// is located by the mesh key; all remaining columns become responses, in order.
type Table []Column

// Values is a single unlabeled response sequence, stored under DefaultResponseKey.
type Values []float64

// Columns is an ordered set of labeled response sequences.
type Columns []Column

func (Sizes) meshInput()   {}
func (Labeled) meshInput() {}
func (Table) meshInput()   {}

func (Values) responseInput()  {}
func (Columns) responseInput() {}

// FromMap converts a key→values mapping into Columns ordered by key, since Go
// maps carry no order of their own.
func FromMap(m map[string][]float64) Columns {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make(Columns, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{Key: k, Values: m[k]})
	}

	return cols
}
