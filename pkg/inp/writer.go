package inp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// newElsetPerLine is how many element ids go on one line of the
// newelements elset, matching the 16-id framing of the reference decks.
const newElsetPerLine = 16

// WriteMesh emits the modified deck: the original heading, the working
// node table in original file order, the untouched cohesive elements, the
// original triangles followed by the synthesized junction-fill triangles,
// an elset naming the new elements, and the retained trailer verbatim.
//
// Every node id referenced by a new triangle must exist in the working
// table and new element ids must not collide with existing ones; both are
// checked here as the writer's side of the core contract.
func WriteMesh(w io.Writer, f *File, nodes *mesh.NodeTable, newTris []mesh.Triangle) error {
	existing := make(map[mesh.ElemID]bool, len(f.Triangles))
	for _, t := range f.Triangles {
		existing[t.ID] = true
	}
	for _, t := range newTris {
		if existing[t.ID] {
			return fmt.Errorf("inp: new element id %d collides with an existing triangle", t.ID)
		}
		for _, n := range t.Nodes {
			if !nodes.Has(n) {
				return fmt.Errorf("inp: new element %d references node %d absent from the node table", t.ID, n)
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, line := range f.Heading {
		fmt.Fprintln(bw, line)
	}

	fmt.Fprintln(bw, "**")
	fmt.Fprintln(bw, "*Node")
	for _, id := range f.Nodes.IDs() {
		p, ok := nodes.Get(id)
		if !ok {
			return fmt.Errorf("inp: node %d missing from the working table", id)
		}
		fmt.Fprintf(bw, "%d, %.12f, %.12f, %.12f\n", id, p.X, p.Y, 0.0)
	}

	fmt.Fprintln(bw, "**")
	fmt.Fprintln(bw, "*Element, type=COH2D4")
	for _, c := range f.Cohesives {
		fmt.Fprintf(bw, "%d, %d, %d, %d, %d\n", c.ID, c.Nodes[0], c.Nodes[1], c.Nodes[2], c.Nodes[3])
	}

	fmt.Fprintln(bw, "**")
	fmt.Fprintln(bw, "*Element, type=CPE3")
	for _, t := range f.Triangles {
		fmt.Fprintf(bw, "%d, %d, %d, %d\n", t.ID, t.Nodes[0], t.Nodes[1], t.Nodes[2])
	}
	for _, t := range newTris {
		fmt.Fprintf(bw, "%d, %d, %d, %d\n", t.ID, t.Nodes[0], t.Nodes[1], t.Nodes[2])
	}

	if len(newTris) > 0 {
		fmt.Fprintln(bw, "**")
		fmt.Fprintln(bw, "*Elset, elset=newelements")
		for i, t := range newTris {
			fmt.Fprintf(bw, "%d,", t.ID)
			if (i+1)%newElsetPerLine == 0 || i == len(newTris)-1 {
				fmt.Fprintln(bw)
			} else {
				fmt.Fprint(bw, " ")
			}
		}
	}

	fmt.Fprintln(bw, "**")
	for _, line := range f.Trailer {
		fmt.Fprintln(bw, line)
	}

	return bw.Flush()
}
