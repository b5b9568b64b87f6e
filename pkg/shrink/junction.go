package shrink

import (
	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// Junction is a group of coincident nodes at a point where three or more
// grains meet. An ordinary two-grain boundary point carries 2–3 coincident
// node ids after cohesive-element insertion; a triple or quadruple point
// carries 4 or more, one per adjoining grain plus possibly a shared corner.
type Junction struct {
	Nodes []mesh.NodeID // ascending member ids
}

// DetectJunctions returns the junction groups of the original node table.
// Groups are keyed by quantized coordinates, so two nodes belong to the
// same group exactly when their positions coincide within mesh.Eps; the
// map-based grouping also means each physical junction appears once, with
// no duplicate sets to reduce. Output order is stable: groups sorted by
// minimum member id, members ascending. Detection is idempotent.
func DetectJunctions(m *mesh.Mesh) []Junction {
	var js []Junction
	for _, group := range m.CoincidentGroups() {
		if len(group) <= 3 {
			// Normal two-grain (or corner) pairing, handled by the
			// boundary merge alone.
			continue
		}
		js = append(js, Junction{Nodes: group})
	}
	return js
}
