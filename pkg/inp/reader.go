// Package inp reads and writes the Abaqus .inp subset produced by the
// Neper mesh generator and the Phon cohesive element inserter, plus the
// Neper grain centroid listing. Only the sections the transform needs are
// parsed; everything from the first grain face elset onward is retained
// verbatim so the writer can pass it through unchanged.
package inp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// File is the parsed input deck.
type File struct {
	Heading   []string                  // lines preceding the *Node section, verbatim
	Nodes     *mesh.NodeTable           // original node table, file order
	Triangles []mesh.Triangle           // CPE3 elements
	Cohesives []mesh.Cohesive           // COH2D4 elements
	FaceSets  map[int][]mesh.ElemID     // grain index -> boundary triangle ids
	Trailer   []string                  // from "*Elset, elset=face1" to EOF, verbatim
}

var faceElsetRe = regexp.MustCompile(`^\*Elset,\s*elset=face(\d+)\s*$`)

// ReadMesh parses the mesh deck. Section order follows the Neper/Phon
// output (*Node, CPE3 elements, COH2D4 elements, face elsets) but is not
// assumed; each section ends at the next keyword line.
func ReadMesh(r io.Reader) (*File, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("inp: %w", err)
	}

	f := &File{
		Nodes:    mesh.NewNodeTable(),
		FaceSets: make(map[int][]mesh.ElemID),
	}

	nodeLine := -1
	trailerStart := -1

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "*Node" || strings.HasPrefix(line, "*Node,"):
			nodeLine = i
			i, err = parseNodes(lines, i+1, f.Nodes)
		case strings.HasPrefix(line, "*Element, type=CPE3"):
			i, err = parseTriangles(lines, i+1, f)
		case strings.HasPrefix(line, "*Element, type=COH2D4"):
			i, err = parseCohesives(lines, i+1, f)
		case faceElsetRe.MatchString(line):
			k, _ := strconv.Atoi(faceElsetRe.FindStringSubmatch(line)[1])
			if trailerStart < 0 && k == 1 {
				trailerStart = i
			}
			i, err = parseFaceSet(lines, i+1, k, f)
		default:
			i++
		}
		if err != nil {
			return nil, err
		}
	}

	if nodeLine < 0 {
		return nil, fmt.Errorf("inp: missing *Node section")
	}
	if f.Nodes.Len() == 0 {
		return nil, fmt.Errorf("inp: empty *Node section")
	}
	if len(f.Triangles) == 0 {
		return nil, fmt.Errorf("inp: missing *Element, type=CPE3 section")
	}
	if trailerStart < 0 {
		return nil, fmt.Errorf("inp: missing *Elset, elset=face1 section")
	}

	f.Heading = lines[:nodeLine]
	f.Trailer = lines[trailerStart:]
	return f, nil
}

// BuildMesh assembles the full mesh model from the parsed deck and the
// grain centroids. Centroids are indexed 0..G-1 for grains 1..G and must
// match the face elset key space exactly.
func (f *File) BuildMesh(centroids []v2.Vec) (*mesh.Mesh, error) {
	if len(centroids) != len(f.FaceSets) {
		return nil, fmt.Errorf("inp: %d centroids but %d grain face sets", len(centroids), len(f.FaceSets))
	}
	grains := make([]mesh.Grain, 0, len(centroids))
	for k := 1; k <= len(centroids); k++ {
		set, ok := f.FaceSets[k]
		if !ok {
			return nil, fmt.Errorf("inp: no face elset for grain %d", k)
		}
		grains = append(grains, mesh.Grain{
			Index:    mesh.GrainID(k),
			Centroid: centroids[k-1],
			Boundary: set,
		})
	}
	return mesh.New(f.Nodes, f.Triangles, f.Cohesives, grains), nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// isKeyword reports whether the line opens a new section.
func isKeyword(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "*")
}

func parseNodes(lines []string, start int, t *mesh.NodeTable) (int, error) {
	i := start
	for ; i < len(lines) && !isKeyword(lines[i]); i++ {
		fields := splitData(lines[i])
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return i, fmt.Errorf("inp: line %d: node needs id and at least x, y", i+1)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return i, fmt.Errorf("inp: line %d: bad node id %q", i+1, fields[0])
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return i, fmt.Errorf("inp: line %d: bad x coordinate %q", i+1, fields[1])
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return i, fmt.Errorf("inp: line %d: bad y coordinate %q", i+1, fields[2])
		}
		t.Set(mesh.NodeID(id), v2.Vec{X: x, Y: y})
	}
	return i, nil
}

func parseTriangles(lines []string, start int, f *File) (int, error) {
	i := start
	for ; i < len(lines) && !isKeyword(lines[i]); i++ {
		ids, err := parseIntLine(lines[i], i)
		if err != nil {
			return i, err
		}
		if ids == nil {
			continue
		}
		if len(ids) != 4 {
			return i, fmt.Errorf("inp: line %d: CPE3 element needs id and 3 node ids", i+1)
		}
		f.Triangles = append(f.Triangles, mesh.Triangle{
			ID:    mesh.ElemID(ids[0]),
			Nodes: [3]mesh.NodeID{mesh.NodeID(ids[1]), mesh.NodeID(ids[2]), mesh.NodeID(ids[3])},
		})
	}
	return i, nil
}

func parseCohesives(lines []string, start int, f *File) (int, error) {
	i := start
	for ; i < len(lines) && !isKeyword(lines[i]); i++ {
		ids, err := parseIntLine(lines[i], i)
		if err != nil {
			return i, err
		}
		if ids == nil {
			continue
		}
		if len(ids) != 5 {
			return i, fmt.Errorf("inp: line %d: COH2D4 element needs id and 4 node ids", i+1)
		}
		f.Cohesives = append(f.Cohesives, mesh.Cohesive{
			ID:    mesh.ElemID(ids[0]),
			Nodes: [4]mesh.NodeID{mesh.NodeID(ids[1]), mesh.NodeID(ids[2]), mesh.NodeID(ids[3]), mesh.NodeID(ids[4])},
		})
	}
	return i, nil
}

func parseFaceSet(lines []string, start, grain int, f *File) (int, error) {
	i := start
	for ; i < len(lines) && !isKeyword(lines[i]); i++ {
		ids, err := parseIntLine(lines[i], i)
		if err != nil {
			return i, err
		}
		for _, id := range ids {
			f.FaceSets[grain] = append(f.FaceSets[grain], mesh.ElemID(id))
		}
	}
	return i, nil
}

// parseIntLine parses a comma-separated integer data line. Returns nil for
// a blank line; trailing commas are tolerated.
func parseIntLine(line string, lineIdx int) ([]int, error) {
	fields := splitData(line)
	if len(fields) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(fields))
	for _, fld := range fields {
		n, err := strconv.Atoi(fld)
		if err != nil {
			return nil, fmt.Errorf("inp: line %d: bad integer %q", lineIdx+1, fld)
		}
		ids = append(ids, n)
	}
	return ids, nil
}

// splitData splits a comma-separated data line into trimmed non-empty
// fields.
func splitData(line string) []string {
	parts := strings.Split(line, ",")
	fields := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}
