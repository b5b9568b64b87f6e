// Package mesh defines the polycrystal mesh model: nodes, triangular and
// cohesive elements, and grains with their boundary face sets. The model is
// built once from parsed input and treated as read-only by the transform
// pipeline; only the working node table (a clone) is ever mutated.
package mesh

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// NodeID identifies a mesh node. Positive and unique within a mesh.
type NodeID int

// ElemID identifies an element (triangle or cohesive).
type ElemID int

// GrainID is a grain index. Grains are numbered contiguously 1..G.
type GrainID int

// Eps is the coordinate tolerance used for coincidence grouping and for
// domain edge/corner membership. The upstream mesh generator emits
// coincident nodes with textually identical coordinates, so any small
// tolerance groups them; edge membership additionally tolerates roundoff
// introduced by earlier tooling.
const Eps = 1e-9

// Node is a mesh node. The z coordinate is fixed at 0 and exists only for
// output-format compatibility, so positions are stored as 2D vectors.
type Node struct {
	ID  NodeID
	Pos v2.Vec
}

// Triangle is a 3-node plane-strain element (CPE3). Immutable once read;
// junction filling appends new triangles, it never rewrites existing ones.
type Triangle struct {
	ID    ElemID
	Nodes [3]NodeID
}

// Cohesive is a 4-node zero-thickness interface element (COH2D4). It is
// copied through the pipeline unchanged; the shrink step turns the seam it
// occupies into a finite gap.
type Cohesive struct {
	ID    ElemID
	Nodes [4]NodeID
}

// Grain is one crystal region: its centroid and the set of triangles whose
// edges lie on the grain's outer boundary.
type Grain struct {
	Index    GrainID
	Centroid v2.Vec
	Boundary []ElemID
}
