package shrink

import (
	"errors"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"go.uber.org/zap"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

func TestIncenter(t *testing.T) {
	a := v2.Vec{X: 1.8, Y: 2.0}
	b := v2.Vec{X: 2.2, Y: 1.9}
	c := v2.Vec{X: 2.0, Y: 2.3}

	la := b.Sub(c).Length()
	lb := c.Sub(a).Length()
	lc := a.Sub(b).Length()
	want := a.MulScalar(la).Add(b.MulScalar(lb)).Add(c.MulScalar(lc)).MulScalar(1 / (la + lb + lc))

	got := incenter(a, b, c)
	if !vecApproxEq(got, want, 1e-14) {
		t.Errorf("incenter = %v, want %v", got, want)
	}

	// A 3-4-5 right triangle has its incenter at (r, r) from the right
	// angle, with r = (3 + 4 - 5) / 2 = 1.
	got = incenter(v2.Vec{X: 0, Y: 0}, v2.Vec{X: 4, Y: 0}, v2.Vec{X: 0, Y: 3})
	if !vecApproxEq(got, v2.Vec{X: 1, Y: 1}, 1e-12) {
		t.Errorf("3-4-5 incenter = %v, want (1, 1)", got)
	}
}

func TestSortCounterClockwise(t *testing.T) {
	nt := mesh.NewNodeTable()
	hub := v2.Vec{X: 0, Y: 0}
	nt.Set(1, v2.Vec{X: 1, Y: 0})   // 0
	nt.Set(2, v2.Vec{X: 0, Y: 1})   // pi/2
	nt.Set(3, v2.Vec{X: -1, Y: 0})  // pi
	nt.Set(4, v2.Vec{X: 0, Y: -1})  // 3*pi/2
	nt.Set(5, v2.Vec{X: 1, Y: -1})  // 7*pi/4

	got := sortCounterClockwise(nt, hub, []mesh.NodeID{4, 2, 5, 1, 3})
	want := []mesh.NodeID{1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestFillJunctions_TripleJunction(t *testing.T) {
	m := tripleJunctionMesh(t)
	junctions := DetectJunctions(m)
	if len(junctions) != 1 {
		t.Fatalf("got %d junctions, want 1", len(junctions))
	}

	working := m.Nodes.Clone()
	working.Set(101, v2.Vec{X: 1.8, Y: 2.0})
	working.Set(102, v2.Vec{X: 2.2, Y: 1.9})
	working.Set(103, v2.Vec{X: 2.0, Y: 2.3})

	filled, err := fillJunctions(m, working, junctions, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(filled) != 1 {
		t.Fatalf("got %d filled junctions, want 1", len(filled))
	}
	fj := filled[0]

	if fj.Hub != 104 {
		t.Errorf("hub = %d, want 104", fj.Hub)
	}

	// The hub is re-centered on the satellite incenter and written back.
	a := v2.Vec{X: 1.8, Y: 2.0}
	b := v2.Vec{X: 2.2, Y: 1.9}
	c := v2.Vec{X: 2.0, Y: 2.3}
	hubPos, _ := working.Get(104)
	if !vecApproxEq(hubPos, incenter(a, b, c), 1e-12) {
		t.Errorf("hub position = %v, want the satellite incenter %v", hubPos, incenter(a, b, c))
	}

	// Counter-clockwise from +x: 103 (above), then 101 (left), then 102.
	wantOrder := []mesh.NodeID{103, 101, 102}
	for i, want := range wantOrder {
		if fj.Satellites[i] != want {
			t.Fatalf("satellite order = %v, want %v", fj.Satellites, wantOrder)
		}
	}

	// A closed fan: n triangles, the hub in each, every satellite in
	// exactly two.
	if len(fj.Triangles) != 3 {
		t.Fatalf("got %d new triangles, want 3", len(fj.Triangles))
	}
	count := make(map[mesh.NodeID]int)
	for _, tri := range fj.Triangles {
		for _, n := range tri.Nodes {
			count[n]++
		}
	}
	if count[104] != 3 {
		t.Errorf("hub appears in %d triangles, want 3", count[104])
	}
	for _, s := range fj.Satellites {
		if count[s] != 2 {
			t.Errorf("satellite %d appears %d times, want 2", s, count[s])
		}
	}

	// Ids start at the max existing triangle id plus the fixed margin.
	wantFirst := m.MaxTriangleID() + NewElemIDOffset
	if fj.Triangles[0].ID != wantFirst {
		t.Errorf("first new element id = %d, want %d", fj.Triangles[0].ID, wantFirst)
	}
	if fj.Triangles[2].ID != wantFirst+2 {
		t.Errorf("last new element id = %d, want %d", fj.Triangles[2].ID, wantFirst+2)
	}
}

func TestFillJunctions_QuadrupleJunctionUnrefined(t *testing.T) {
	nodes := mesh.NewNodeTable()
	nodes.Set(1, v2.Vec{X: 0, Y: 0})
	nodes.Set(2, v2.Vec{X: 6, Y: 6})
	for id := mesh.NodeID(10); id <= 14; id++ {
		nodes.Set(id, v2.Vec{X: 3, Y: 3})
	}
	m := mesh.New(nodes, nil, nil, nil)

	working := nodes.Clone()
	working.Set(11, v2.Vec{X: 2.8, Y: 3})
	working.Set(12, v2.Vec{X: 3, Y: 2.8})
	working.Set(13, v2.Vec{X: 3.2, Y: 3})
	working.Set(14, v2.Vec{X: 3, Y: 3.2})

	junctions := []Junction{{Nodes: []mesh.NodeID{10, 11, 12, 13, 14}}}
	filled, err := fillJunctions(m, working, junctions, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	fj := filled[0]

	if fj.Hub != 10 {
		t.Errorf("hub = %d, want 10", fj.Hub)
	}
	// Four satellites: the hub keeps the original coincident point.
	hubPos, _ := working.Get(10)
	if hubPos != (v2.Vec{X: 3, Y: 3}) {
		t.Errorf("hub position = %v, want the original (3, 3)", hubPos)
	}
	if len(fj.Triangles) != 4 {
		t.Errorf("got %d new triangles, want 4", len(fj.Triangles))
	}
}

func TestFillJunctions_NoHubFails(t *testing.T) {
	nodes := mesh.NewNodeTable()
	for id := mesh.NodeID(10); id <= 13; id++ {
		nodes.Set(id, v2.Vec{X: 3, Y: 3})
	}
	m := mesh.New(nodes, nil, nil, nil)

	working := nodes.Clone()
	// Every member moved: the invariant is broken.
	working.Set(10, v2.Vec{X: 2.9, Y: 3})
	working.Set(11, v2.Vec{X: 2.8, Y: 3})
	working.Set(12, v2.Vec{X: 3, Y: 2.8})
	working.Set(13, v2.Vec{X: 3.2, Y: 3})

	junctions := []Junction{{Nodes: []mesh.NodeID{10, 11, 12, 13}}}
	_, err := fillJunctions(m, working, junctions, zap.NewNop())
	if err == nil {
		t.Fatal("expected an error for a hubless junction")
	}
	var jerr *JunctionError
	if !errors.As(err, &jerr) {
		t.Fatalf("error type = %T, want *JunctionError", err)
	}
	if jerr.Junction != 1 {
		t.Errorf("error names junction %d, want 1", jerr.Junction)
	}
}
