package mesh

import (
	"math"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Mesh is the complete input model. All relationship lookups (element by
// id, triangles incident to a node, coincident node groups) are answered
// from indexes built once at construction, never by scanning coordinate
// tables.
type Mesh struct {
	Nodes     *NodeTable
	Triangles []Triangle
	Cohesives []Cohesive
	Grains    []Grain // ascending by Index, 1..G

	triByID    map[ElemID]int
	incident   map[NodeID][]ElemID
	coincident map[pointKey][]NodeID
}

// pointKey is a coordinate quantized by Eps, used to group coincident
// nodes without exact floating-point comparison.
type pointKey struct {
	x, y int64
}

func keyOf(p v2.Vec) pointKey {
	return pointKey{
		x: int64(math.Round(p.X / Eps)),
		y: int64(math.Round(p.Y / Eps)),
	}
}

// New assembles a mesh and builds its lookup indexes. Grains are sorted by
// index; structural consistency is checked separately by Validate.
func New(nodes *NodeTable, tris []Triangle, cohs []Cohesive, grains []Grain) *Mesh {
	m := &Mesh{
		Nodes:      nodes,
		Triangles:  tris,
		Cohesives:  cohs,
		Grains:     grains,
		triByID:    make(map[ElemID]int, len(tris)),
		incident:   make(map[NodeID][]ElemID),
		coincident: make(map[pointKey][]NodeID),
	}
	sort.Slice(m.Grains, func(i, j int) bool { return m.Grains[i].Index < m.Grains[j].Index })

	for i, t := range tris {
		m.triByID[t.ID] = i
		for _, n := range t.Nodes {
			m.incident[n] = append(m.incident[n], t.ID)
		}
	}
	for _, id := range nodes.IDs() {
		p, _ := nodes.Get(id)
		k := keyOf(p)
		m.coincident[k] = append(m.coincident[k], id)
	}
	return m
}

// Triangle returns the triangle with the given id.
func (m *Mesh) Triangle(id ElemID) (Triangle, bool) {
	i, ok := m.triByID[id]
	if !ok {
		return Triangle{}, false
	}
	return m.Triangles[i], true
}

// Incident returns the ids of the triangles that reference the node.
func (m *Mesh) Incident(id NodeID) []ElemID {
	return m.incident[id]
}

// CoincidentGroups returns the groups of node ids occupying the same
// position. Each group is sorted ascending and the groups are ordered by
// their minimum member id, so repeated calls on the same table yield
// identical output.
func (m *Mesh) CoincidentGroups() [][]NodeID {
	groups := make([][]NodeID, 0, len(m.coincident))
	for _, g := range m.coincident {
		s := make([]NodeID, len(g))
		copy(s, g)
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
		groups = append(groups, s)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}

// Bounds returns the axis-aligned bounding box of the original node table.
func (m *Mesh) Bounds() (min, max v2.Vec) {
	first := true
	for _, id := range m.Nodes.IDs() {
		p, _ := m.Nodes.Get(id)
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

// MaxTriangleID returns the largest triangle element id, or 0 for an empty
// triangle table.
func (m *Mesh) MaxTriangleID() ElemID {
	var max ElemID
	for _, t := range m.Triangles {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// Grain returns the grain with the given index.
func (m *Mesh) Grain(k GrainID) (Grain, bool) {
	// Grains are contiguous 1..G after validation; index arithmetic would
	// do, but lookup stays correct for unvalidated meshes too.
	for _, g := range m.Grains {
		if g.Index == k {
			return g, true
		}
	}
	return Grain{}, false
}
