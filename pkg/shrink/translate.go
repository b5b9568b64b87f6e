package shrink

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// shrinkCandidates computes, for every grain, a candidate shrunk position
// for each node referenced by that grain's boundary triangles. The result
// is indexed by grain position (ascending grain index); a node on a
// multi-grain boundary receives one candidate per adjoining grain, which
// the merge step reconciles.
//
// Grains are independent — each reads only the immutable mesh and writes
// its own buffer — so they are computed concurrently.
func shrinkCandidates(m *mesh.Mesh, factor float64) ([]map[mesh.NodeID]v2.Vec, error) {
	out := make([]map[mesh.NodeID]v2.Vec, len(m.Grains))

	var eg errgroup.Group
	for i := range m.Grains {
		eg.Go(func() error {
			cands, err := grainCandidates(m, m.Grains[i], factor)
			if err != nil {
				return err
			}
			out[i] = cands
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// grainCandidates shrinks every node touched by one grain's boundary face
// set straight toward the grain centroid by a fraction factor of its
// distance: p' = p − factor·(p − centroid). The centroid-coincident case
// (zero distance) falls out as a zero displacement.
func grainCandidates(m *mesh.Mesh, g mesh.Grain, factor float64) (map[mesh.NodeID]v2.Vec, error) {
	cands := make(map[mesh.NodeID]v2.Vec)
	for _, elem := range g.Boundary {
		tri, ok := m.Triangle(elem)
		if !ok {
			return nil, &ElemRefError{Grain: g.Index, Elem: elem}
		}
		for _, n := range tri.Nodes {
			if _, done := cands[n]; done {
				continue
			}
			p, ok := m.Nodes.Get(n)
			if !ok {
				return nil, &NodeRefError{Node: n, Context: "grain shrink"}
			}
			d := p.Sub(g.Centroid)
			cands[n] = p.Sub(d.MulScalar(factor))
		}
	}
	return cands, nil
}
