package shrink

import (
	"math"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// applyCandidates folds the per-grain shrink candidates into the working
// node table, preserving the outer domain geometry:
//
//  1. a node at both extremes of one axis and an extreme of the other (a
//     domain corner) never moves;
//  2. a node on exactly one domain edge keeps its coordinate on the edge
//     axis and takes the candidate on the free axis;
//  3. any other node adopts the candidate wholly.
//
// Classification reads only original positions — the working table is a
// fresh clone written here, never re-read, so the outcome cannot depend on
// apply order within a grain. Across grains the order does matter when two
// grains contest the same free coordinate: grains apply in ascending index
// order and the later grain wins.
func applyCandidates(m *mesh.Mesh, working *mesh.NodeTable, perGrain []map[mesh.NodeID]v2.Vec) {
	min, max := m.Bounds()

	for _, cands := range perGrain {
		ids := make([]mesh.NodeID, 0, len(cands))
		for n := range cands {
			ids = append(ids, n)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, n := range ids {
			orig, ok := m.Nodes.Get(n)
			if !ok {
				continue // unreachable after validation
			}
			cand := cands[n]

			onX := atExtreme(orig.X, min.X, max.X)
			onY := atExtreme(orig.Y, min.Y, max.Y)
			switch {
			case onX && onY:
				// Domain corner: pinned.
			case onX:
				working.Set(n, v2.Vec{X: orig.X, Y: cand.Y})
			case onY:
				working.Set(n, v2.Vec{X: cand.X, Y: orig.Y})
			default:
				working.Set(n, cand)
			}
		}
	}
}

// atExtreme reports whether c lies on either domain extreme of its axis,
// within the coordinate tolerance.
func atExtreme(c, min, max float64) bool {
	return math.Abs(c-min) <= mesh.Eps || math.Abs(c-max) <= mesh.Eps
}
