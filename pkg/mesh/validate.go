package mesh

import "fmt"

// ValidationError describes a single structural inconsistency in the input
// mesh. Any finding is fatal to the transform: a mesh with dangling
// references must never reach the shrink pipeline.
type ValidationError struct {
	Elem    ElemID  // offending element (0 if grain-level)
	Grain   GrainID // offending grain (0 if element-level)
	Node    NodeID  // dangling node reference (0 if not a node problem)
	Message string
}

func (e ValidationError) Error() string {
	switch {
	case e.Grain != 0:
		return fmt.Sprintf("grain %d: %s", e.Grain, e.Message)
	case e.Elem != 0:
		return fmt.Sprintf("element %d: %s", e.Elem, e.Message)
	default:
		return e.Message
	}
}

// Validate runs all structural checks on the mesh and returns the findings.
// An empty slice means the mesh is consistent. Validate is read-only.
func Validate(m *Mesh) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateElementRefs(m)...)
	errs = append(errs, validateGrains(m)...)
	return errs
}

// validateElementRefs checks that every node id referenced by a triangle or
// cohesive element exists in the node table, and that element ids are
// unique within the triangle table.
func validateElementRefs(m *Mesh) []ValidationError {
	var errs []ValidationError

	seen := make(map[ElemID]bool, len(m.Triangles))
	for _, t := range m.Triangles {
		if seen[t.ID] {
			errs = append(errs, ValidationError{
				Elem:    t.ID,
				Message: "duplicate triangle element id",
			})
		}
		seen[t.ID] = true
		for _, n := range t.Nodes {
			if !m.Nodes.Has(n) {
				errs = append(errs, ValidationError{
					Elem:    t.ID,
					Node:    n,
					Message: fmt.Sprintf("triangle references unknown node %d", n),
				})
			}
		}
	}

	for _, c := range m.Cohesives {
		for _, n := range c.Nodes {
			if !m.Nodes.Has(n) {
				errs = append(errs, ValidationError{
					Elem:    c.ID,
					Node:    n,
					Message: fmt.Sprintf("cohesive element references unknown node %d", n),
				})
			}
		}
	}

	return errs
}

// validateGrains checks that grain indices are contiguous 1..G and that
// every boundary face set entry resolves to a known triangle.
func validateGrains(m *Mesh) []ValidationError {
	var errs []ValidationError

	for i, g := range m.Grains {
		if want := GrainID(i + 1); g.Index != want {
			errs = append(errs, ValidationError{
				Grain:   g.Index,
				Message: fmt.Sprintf("grain indices not contiguous: expected %d at position %d", want, i),
			})
		}
		for _, id := range g.Boundary {
			if _, ok := m.Triangle(id); !ok {
				errs = append(errs, ValidationError{
					Grain:   g.Index,
					Elem:    id,
					Message: fmt.Sprintf("boundary face set references unknown triangle %d", id),
				})
			}
		}
	}

	return errs
}
