package shrink

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

func TestRun_SingleGrain(t *testing.T) {
	m := singleGrainMesh(t)

	res, err := Run(m, Options{Factor: 0.1})
	if err != nil {
		t.Fatal(err)
	}

	// Node 10 at (1.0, 0.5), centroid (0.5, 0.5): the x offset shrinks by
	// the factor, (1.0 - 0.1*0.5, 0.5) = (0.95, 0.5).
	got, _ := res.Nodes.Get(10)
	if !vecApproxEq(got, v2.Vec{X: 0.95, Y: 0.5}, 1e-12) {
		t.Errorf("node 10 = %v, want (0.95, 0.5)", got)
	}

	// No coincident groups, so nothing to fill.
	if len(res.Junctions) != 0 || len(res.NewTriangles) != 0 {
		t.Errorf("got %d junctions and %d new triangles, want none",
			len(res.Junctions), len(res.NewTriangles))
	}
}

func TestRun_TripleJunctionEndToEnd(t *testing.T) {
	m := tripleJunctionMesh(t)

	res, err := Run(m, Options{Factor: 0.1})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Junctions) != 1 {
		t.Fatalf("got %d junctions, want 1", len(res.Junctions))
	}
	fj := res.Junctions[0]
	if fj.Hub != 104 {
		t.Errorf("hub = %d, want 104", fj.Hub)
	}
	if len(res.NewTriangles) != 3 {
		t.Fatalf("got %d new triangles, want 3", len(res.NewTriangles))
	}

	// The satellites land on their per-grain shrink targets and the hub on
	// their incenter.
	sat := map[mesh.NodeID]v2.Vec{
		101: {X: 1.8, Y: 2.0},
		102: {X: 2.2, Y: 1.9},
		103: {X: 2.0, Y: 2.3},
	}
	for n, want := range sat {
		got, _ := res.Nodes.Get(n)
		if !vecApproxEq(got, want, 1e-12) {
			t.Errorf("satellite %d = %v, want %v", n, got, want)
		}
	}
	hubPos, _ := res.Nodes.Get(104)
	want := incenter(sat[101], sat[102], sat[103])
	if !vecApproxEq(hubPos, want, 1e-12) {
		t.Errorf("hub = %v, want %v", hubPos, want)
	}

	// The working table mints no new node ids.
	if res.Nodes.Len() != m.Nodes.Len() {
		t.Errorf("working table has %d nodes, input had %d", res.Nodes.Len(), m.Nodes.Len())
	}
}

func TestRun_DomainCornersPinned(t *testing.T) {
	// The grain boundary reaches the domain corner at (0, 0); after a full
	// run the corner must still be exactly there.
	m := mergeFixture(t)

	res, err := Run(m, Options{Factor: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []mesh.NodeID{1, 4} {
		got, _ := res.Nodes.Get(id)
		orig, _ := m.Nodes.Get(id)
		if got != orig {
			t.Errorf("corner node %d moved from %v to %v", id, orig, got)
		}
	}
}

func TestRun_InvalidMeshRejected(t *testing.T) {
	m := tripleJunctionMesh(t)
	// A triangle referencing a node id that does not exist.
	m.Triangles = append(m.Triangles, mesh.Triangle{ID: 99, Nodes: [3]mesh.NodeID{1, 2, 9999}})
	m = mesh.New(m.Nodes, m.Triangles, m.Cohesives, m.Grains)

	res, err := Run(m, Options{Factor: 0.1})
	if err == nil {
		t.Fatal("expected validation to reject the mesh")
	}
	if res != nil {
		t.Error("got a partial result alongside the error")
	}
}
