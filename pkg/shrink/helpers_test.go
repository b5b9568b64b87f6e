package shrink

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// approxEq reports float equality within tol.
func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// vecApproxEq reports component-wise vector equality within tol.
func vecApproxEq(a, b v2.Vec, tol float64) bool {
	return approxEq(a.X, b.X, tol) && approxEq(a.Y, b.Y, tol)
}

// tripleJunctionMesh builds a synthetic mesh with three grains meeting at
// (2, 2). Four node ids coincide at the junction: 101..103 belong to the
// boundary face sets of grains 1..3, 104 belongs to none (the future hub).
// With factor 0.1 the satellites shrink to exactly (1.8, 2.0), (2.2, 1.9)
// and (2.0, 2.3). Anchors at (0, 0) and (10, 10) span the domain box so
// no junction or filler node sits on a domain edge.
func tripleJunctionMesh(t *testing.T) *mesh.Mesh {
	t.Helper()

	nodes := mesh.NewNodeTable()
	nodes.Set(1, v2.Vec{X: 0, Y: 0})
	nodes.Set(2, v2.Vec{X: 10, Y: 10})
	for id := mesh.NodeID(101); id <= 104; id++ {
		nodes.Set(id, v2.Vec{X: 2, Y: 2})
	}
	nodes.Set(111, v2.Vec{X: 1, Y: 3})
	nodes.Set(112, v2.Vec{X: 1, Y: 2})
	nodes.Set(121, v2.Vec{X: 3, Y: 1})
	nodes.Set(122, v2.Vec{X: 3, Y: 2})
	nodes.Set(131, v2.Vec{X: 2, Y: 3})
	nodes.Set(132, v2.Vec{X: 3, Y: 3})

	tris := []mesh.Triangle{
		{ID: 11, Nodes: [3]mesh.NodeID{101, 111, 112}},
		{ID: 21, Nodes: [3]mesh.NodeID{102, 121, 122}},
		{ID: 31, Nodes: [3]mesh.NodeID{103, 131, 132}},
	}
	grains := []mesh.Grain{
		{Index: 1, Centroid: v2.Vec{X: 0, Y: 2}, Boundary: []mesh.ElemID{11}},
		{Index: 2, Centroid: v2.Vec{X: 4, Y: 1}, Boundary: []mesh.ElemID{21}},
		{Index: 3, Centroid: v2.Vec{X: 2, Y: 5}, Boundary: []mesh.ElemID{31}},
	}
	return mesh.New(nodes, tris, nil, grains)
}

// singleGrainMesh builds a one-grain mesh on a domain larger than the
// grain, so the grain's boundary nodes are interior to the domain box.
// The grain centroid is (0.5, 0.5) and node 10 sits at (1.0, 0.5).
func singleGrainMesh(t *testing.T) *mesh.Mesh {
	t.Helper()

	nodes := mesh.NewNodeTable()
	nodes.Set(1, v2.Vec{X: -1, Y: -1})
	nodes.Set(2, v2.Vec{X: 2, Y: 2})
	nodes.Set(10, v2.Vec{X: 1.0, Y: 0.5})
	nodes.Set(11, v2.Vec{X: 0.5, Y: 1.0})
	nodes.Set(12, v2.Vec{X: 1.0, Y: 1.0})

	tris := []mesh.Triangle{
		{ID: 5, Nodes: [3]mesh.NodeID{10, 11, 12}},
	}
	grains := []mesh.Grain{
		{Index: 1, Centroid: v2.Vec{X: 0.5, Y: 0.5}, Boundary: []mesh.ElemID{5}},
	}
	return mesh.New(nodes, tris, nil, grains)
}
