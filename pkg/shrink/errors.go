package shrink

import (
	"fmt"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// PeriodicityError reports opposite domain edges with different node
// counts. Periodicity cannot be enforced on such a mesh, so the whole
// transform aborts rather than silently truncating the longer edge.
type PeriodicityError struct {
	Axis  string // "x" or "y"
	Lower int    // node count on the min edge
	Upper int    // node count on the max edge
}

func (e *PeriodicityError) Error() string {
	return fmt.Sprintf("periodicity mismatch on %s axis: %d nodes on the min edge, %d on the max edge",
		e.Axis, e.Lower, e.Upper)
}

// JunctionError reports an inconsistent junction group: a state the shrink
// invariants rule out, so it indicates a malformed input mesh. Junction
// numbers are 1-based detection-order positions.
type JunctionError struct {
	Junction int
	Message  string
}

func (e *JunctionError) Error() string {
	return fmt.Sprintf("junction %d: %s", e.Junction, e.Message)
}

// ElemRefError reports a grain boundary face set entry that does not
// resolve to a triangle in the mesh.
type ElemRefError struct {
	Grain mesh.GrainID
	Elem  mesh.ElemID
}

func (e *ElemRefError) Error() string {
	return fmt.Sprintf("grain %d: boundary face set references unknown triangle %d", e.Grain, e.Elem)
}

// NodeRefError reports a node id referenced during the transform that is
// absent from the node table.
type NodeRefError struct {
	Node    mesh.NodeID
	Context string
}

func (e *NodeRefError) Error() string {
	return fmt.Sprintf("%s: unknown node %d", e.Context, e.Node)
}
