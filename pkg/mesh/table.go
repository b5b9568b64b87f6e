package mesh

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// NodeTable maps node ids to positions while preserving the order in which
// nodes were inserted (the input file order). Two tables travel through the
// transform pipeline: the original table, which is never mutated after
// load, and a working clone that the shrink/merge/periodicity steps write.
type NodeTable struct {
	ids []NodeID
	pos map[NodeID]v2.Vec
}

// NewNodeTable returns an empty node table.
func NewNodeTable() *NodeTable {
	return &NodeTable{pos: make(map[NodeID]v2.Vec)}
}

// Set inserts or overwrites the position of a node. First-time inserts
// append to the iteration order; overwrites keep it.
func (t *NodeTable) Set(id NodeID, p v2.Vec) {
	if _, ok := t.pos[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.pos[id] = p
}

// Get returns the position of a node and whether it exists.
func (t *NodeTable) Get(id NodeID) (v2.Vec, bool) {
	p, ok := t.pos[id]
	return p, ok
}

// Has reports whether the table contains the node.
func (t *NodeTable) Has(id NodeID) bool {
	_, ok := t.pos[id]
	return ok
}

// Len returns the number of nodes.
func (t *NodeTable) Len() int {
	return len(t.ids)
}

// IDs returns the node ids in insertion order. The returned slice is shared
// with the table and must not be modified.
func (t *NodeTable) IDs() []NodeID {
	return t.ids
}

// Clone returns a deep copy with the same iteration order. Cloned positions
// compare bit-for-bit equal to the originals, which the junction filler
// relies on to classify unmoved nodes.
func (t *NodeTable) Clone() *NodeTable {
	c := &NodeTable{
		ids: make([]NodeID, len(t.ids)),
		pos: make(map[NodeID]v2.Vec, len(t.pos)),
	}
	copy(c.ids, t.ids)
	for id, p := range t.pos {
		c.pos[id] = p
	}
	return c
}
