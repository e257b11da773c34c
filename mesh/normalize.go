// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Normalize validates a grid study supplied in any accepted shape and returns
// its canonical Series.
//
// Stages:
//  1. Resolve the mesh column and the response columns from the input shapes.
//  2. Validate keys, lengths (N ≥ MinLevels), finiteness and mesh positivity.
//  3. Resolve the orientation (WithOrientation, else inferred from the key).
//  4. Argsort the mesh values coarsest→finest, apply it to every column,
//     and reject numerically equal neighbours.
//
// Errors: ErrNilInput, ErrMeshKeyNotFound, ErrAmbiguousInput, ErrNoResponses,
// ErrEmptyKey, ErrDuplicateKey, ErrShapeMismatch, ErrInsufficientLevels,
// ErrNaNInf, ErrNonPositiveMesh, ErrDuplicateMeshSize.
//
// Inputs are never modified; the Series owns fresh copies.
func Normalize(meshIn MeshInput, respIn ResponseInput, opts ...Option) (*Series, error) {
	o := gatherOptions(opts...)

	meshCol, responses, err := resolve(meshIn, respIn, o)
	if err != nil {
		return nil, err
	}
	if err = validate(meshCol, responses); err != nil {
		return nil, err
	}

	orientation := o.orientation
	if orientation == 0 {
		orientation = inferOrientation(meshCol.Key)
	}

	// coarsest first: largest size, smallest density
	n := len(meshCol.Values)
	order := make([]float64, n)
	for i, v := range meshCol.Values {
		order[i] = -v
		if orientation == Density {
			order[i] = v
		}
	}
	perm := make([]int, n)
	floats.ArgsortStable(order, perm)

	s := &Series{
		sizes:       permute(meshCol.Values, perm),
		meshKey:     meshCol.Key,
		orientation: orientation,
		dimension:   o.dimension,
		keys:        make([]string, 0, len(responses)),
		data:        make(map[string][]float64, len(responses)),
	}
	for i := 1; i < n; i++ {
		a, b := s.sizes[i-1], s.sizes[i]
		if math.Abs(a-b) <= o.dupTol*math.Max(math.Abs(a), math.Abs(b)) {
			return nil, fmt.Errorf("Normalize: %s=%g appears twice: %w", meshCol.Key, b, ErrDuplicateMeshSize)
		}
	}
	for _, col := range responses {
		s.keys = append(s.keys, col.Key)
		s.data[col.Key] = permute(col.Values, perm)
	}

	return s, nil
}

// resolve maps the closed input unions onto one mesh column and the response columns.
func resolve(meshIn MeshInput, respIn ResponseInput, o Options) (Column, []Column, error) {
	var meshCol Column
	switch in := meshIn.(type) {
	case nil:
		return Column{}, nil, ErrNilInput
	case Sizes:
		key := o.meshKey
		if key == "" {
			key = DefaultMeshKey
		}
		meshCol = Column{Key: key, Values: in}
	case Labeled:
		if in.Key == "" {
			return Column{}, nil, fmt.Errorf("Normalize: mesh column: %w", ErrEmptyKey)
		}
		meshCol = Column(in)
	case Table:
		if respIn != nil {
			return Column{}, nil, ErrAmbiguousInput
		}
		key := o.meshKey
		if key == "" {
			key = DefaultMeshKey
		}
		idx := slices.IndexFunc(in, func(c Column) bool { return c.Key == key })
		if idx < 0 {
			return Column{}, nil, fmt.Errorf("Normalize: %q: %w", key, ErrMeshKeyNotFound)
		}
		responses := make([]Column, 0, len(in)-1)
		for i, c := range in {
			if i != idx {
				responses = append(responses, c)
			}
		}

		return in[idx], responses, nil
	}

	switch in := respIn.(type) {
	case nil:
		return Column{}, nil, ErrNoResponses
	case Values:
		return meshCol, []Column{{Key: DefaultResponseKey, Values: in}}, nil
	case Columns:
		return meshCol, in, nil
	}

	// unreachable: both unions are sealed
	return Column{}, nil, ErrNilInput
}

// validate enforces key, shape and value rules before reordering.
func validate(meshCol Column, responses []Column) error {
	if len(responses) == 0 {
		return ErrNoResponses
	}

	n := len(meshCol.Values)
	if n < MinLevels {
		return fmt.Errorf("Normalize: %d level(s): %w", n, ErrInsufficientLevels)
	}
	for i, v := range meshCol.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("Normalize: %s[%d]: %w", meshCol.Key, i, ErrNaNInf)
		}
		if v <= 0 {
			return fmt.Errorf("Normalize: %s[%d]=%g: %w", meshCol.Key, i, v, ErrNonPositiveMesh)
		}
	}

	seen := map[string]struct{}{meshCol.Key: {}}
	for _, col := range responses {
		if col.Key == "" {
			return fmt.Errorf("Normalize: response column: %w", ErrEmptyKey)
		}
		if _, dup := seen[col.Key]; dup {
			return fmt.Errorf("Normalize: %q: %w", col.Key, ErrDuplicateKey)
		}
		seen[col.Key] = struct{}{}

		if len(col.Values) != n {
			return fmt.Errorf("Normalize: %q has %d values, %s has %d: %w",
				col.Key, len(col.Values), meshCol.Key, n, ErrShapeMismatch)
		}
		for i, v := range col.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("Normalize: %s[%d]: %w", col.Key, i, ErrNaNInf)
			}
		}
	}

	return nil
}

func permute(values []float64, perm []int) []float64 {
	out := make([]float64, len(perm))
	for i, p := range perm {
		out[i] = values[p]
	}

	return out
}
