package shrink

import (
	"math"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"go.uber.org/zap"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// NewElemIDOffset separates synthesized element ids from the existing
// range: the first new triangle id is the maximum existing triangle id
// plus this margin, and ids increment sequentially across all junctions.
const NewElemIDOffset = 1_000_000

// FilledJunction records how one junction gap was closed: the hub node
// that anchored the fan, the satellites in counter-clockwise order, and
// the synthesized triangles.
type FilledJunction struct {
	Hub        mesh.NodeID
	Satellites []mesh.NodeID
	Triangles  []mesh.Triangle
}

// fillJunctions synthesizes the triangles that close each junction gap.
// For every junction the member that kept its original position becomes
// the hub and the moved members become satellites; a closed fan
// (hub, sᵢ, sᵢ₊₁) over the angularly ordered satellites covers the gap
// with no overlap and no hole. Three-satellite junctions additionally
// re-center the hub on the incenter of the satellite triangle, writing the
// refined position into the working table.
func fillJunctions(m *mesh.Mesh, working *mesh.NodeTable, junctions []Junction, log *zap.Logger) ([]FilledJunction, error) {
	nextID := m.MaxTriangleID() + NewElemIDOffset
	var filled []FilledJunction

	for ji, j := range junctions {
		var hub mesh.NodeID
		var sats []mesh.NodeID
		hubFound := false

		for _, n := range j.Nodes {
			orig, ok := m.Nodes.Get(n)
			if !ok {
				return nil, &NodeRefError{Node: n, Context: "junction fill"}
			}
			cur, ok := working.Get(n)
			if !ok {
				return nil, &NodeRefError{Node: n, Context: "junction fill"}
			}
			if cur == orig {
				// Unmoved: no grain claimed it for shrinking. Members are
				// ascending, so the first match is the lowest id.
				if !hubFound {
					hub = n
					hubFound = true
				}
			} else {
				sats = append(sats, n)
			}
		}

		if !hubFound {
			return nil, &JunctionError{
				Junction: ji + 1,
				Message:  "every member moved during shrinking; no hub node to anchor the fill",
			}
		}
		if len(sats) < 2 {
			return nil, &JunctionError{
				Junction: ji + 1,
				Message:  "fewer than two satellites; junction gap has no area to fill",
			}
		}

		hubPos, _ := working.Get(hub)
		if len(sats) == 3 {
			a, _ := working.Get(sats[0])
			b, _ := working.Get(sats[1])
			c, _ := working.Get(sats[2])
			hubPos = incenter(a, b, c)
			working.Set(hub, hubPos)
		} else {
			// Quadruple and higher junctions keep the original coincident
			// point as hub. Geometrically less exact; the fan still closes.
			log.Debug("junction hub left unrefined",
				zap.Int("junction", ji+1),
				zap.Int("satellites", len(sats)))
		}

		ordered := sortCounterClockwise(working, hubPos, sats)

		fj := FilledJunction{Hub: hub, Satellites: ordered}
		for i := range ordered {
			fj.Triangles = append(fj.Triangles, mesh.Triangle{
				ID:    nextID,
				Nodes: [3]mesh.NodeID{hub, ordered[i], ordered[(i+1)%len(ordered)]},
			})
			nextID++
		}
		filled = append(filled, fj)
	}

	return filled, nil
}

// incenter returns the incenter of the triangle abc: each vertex weighted
// by the length of its opposite side, normalized by the perimeter.
func incenter(a, b, c v2.Vec) v2.Vec {
	la := b.Sub(c).Length()
	lb := c.Sub(a).Length()
	lc := a.Sub(b).Length()
	perim := la + lb + lc
	if perim == 0 {
		return a
	}
	return a.MulScalar(la).Add(b.MulScalar(lb)).Add(c.MulScalar(lc)).MulScalar(1 / perim)
}

// sortCounterClockwise orders the satellites by polar angle around the hub,
// measured from the +x axis and spanning [0, 2π): the raw arccos angle for
// offsets on or above the axis, 2π minus it below.
func sortCounterClockwise(t *mesh.NodeTable, hub v2.Vec, sats []mesh.NodeID) []mesh.NodeID {
	type polar struct {
		id    mesh.NodeID
		angle float64
	}
	ps := make([]polar, 0, len(sats))
	for _, n := range sats {
		p, _ := t.Get(n)
		d := p.Sub(hub)
		r := d.Length()
		angle := 0.0
		if r > 0 {
			angle = math.Acos(clamp(d.X/r, -1, 1))
			if d.Y < 0 {
				angle = 2*math.Pi - angle
			}
		}
		ps = append(ps, polar{id: n, angle: angle})
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].angle != ps[j].angle {
			return ps[i].angle < ps[j].angle
		}
		return ps[i].id < ps[j].id
	})

	out := make([]mesh.NodeID, len(ps))
	for i, p := range ps {
		out[i] = p.id
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
