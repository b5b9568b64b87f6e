package shrink

import (
	"math"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// enforcePeriodicity re-aligns opposite domain edges after shrinkage.
// Per-grain shrinking perturbs the two sides of a periodic pairing
// independently, so node pairs meant to be geometrically identified can
// drift apart; this pass copies the free-axis coordinate of each min-edge
// node onto its same-rank max-edge partner.
//
// All four edge lists are snapshotted from the working table before any
// overwrite, matching the read-old/write-new discipline of the merge step.
// Opposite edges with different node counts indicate a malformed periodic
// mesh and fail the transform.
func enforcePeriodicity(working *mesh.NodeTable) error {
	min, max := tableBounds(working)

	x0 := edgeNodes(working, func(p v2.Vec) bool { return math.Abs(p.X-min.X) <= mesh.Eps })
	x1 := edgeNodes(working, func(p v2.Vec) bool { return math.Abs(p.X-max.X) <= mesh.Eps })
	y0 := edgeNodes(working, func(p v2.Vec) bool { return math.Abs(p.Y-min.Y) <= mesh.Eps })
	y1 := edgeNodes(working, func(p v2.Vec) bool { return math.Abs(p.Y-max.Y) <= mesh.Eps })

	if len(x0) != len(x1) {
		return &PeriodicityError{Axis: "x", Lower: len(x0), Upper: len(x1)}
	}
	if len(y0) != len(y1) {
		return &PeriodicityError{Axis: "y", Lower: len(y0), Upper: len(y1)}
	}

	byY := func(list []edgeNode) {
		sort.Slice(list, func(i, j int) bool {
			if list[i].pos.Y != list[j].pos.Y {
				return list[i].pos.Y < list[j].pos.Y
			}
			return list[i].id < list[j].id
		})
	}
	byX := func(list []edgeNode) {
		sort.Slice(list, func(i, j int) bool {
			if list[i].pos.X != list[j].pos.X {
				return list[i].pos.X < list[j].pos.X
			}
			return list[i].id < list[j].id
		})
	}

	byY(x0)
	byY(x1)
	byX(y0)
	byX(y1)

	// x = max edge inherits the y coordinates of the x = min edge.
	for i, en := range x1 {
		p, _ := working.Get(en.id)
		p.Y = x0[i].pos.Y
		working.Set(en.id, p)
	}
	// y = max edge inherits the x coordinates of the y = min edge. The y
	// lists were snapshotted before the x pass, so a corner node pairs by
	// its pre-pass rank on both axes.
	for i, en := range y1 {
		p, _ := working.Get(en.id)
		p.X = y0[i].pos.X
		working.Set(en.id, p)
	}

	return nil
}

type edgeNode struct {
	id  mesh.NodeID
	pos v2.Vec
}

// edgeNodes snapshots the nodes satisfying the membership predicate, in
// table order.
func edgeNodes(t *mesh.NodeTable, member func(v2.Vec) bool) []edgeNode {
	var list []edgeNode
	for _, id := range t.IDs() {
		p, _ := t.Get(id)
		if member(p) {
			list = append(list, edgeNode{id: id, pos: p})
		}
	}
	return list
}

// tableBounds returns the bounding box of a node table.
func tableBounds(t *mesh.NodeTable) (min, max v2.Vec) {
	first := true
	for _, id := range t.IDs() {
		p, _ := t.Get(id)
		if first {
			min, max = p, p
			first = false
			continue
		}
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}
