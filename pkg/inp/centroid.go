package inp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ReadCentroids parses the Neper grain centroid listing: one line per
// grain, "index x y" whitespace separated. Header lines before the first
// data line are skipped; once data starts, a malformed line is an error.
// Grain indices must be contiguous from 1, so the result is indexed
// 0..G-1 for grains 1..G.
func ReadCentroids(r io.Reader) ([]v2.Vec, error) {
	var out []v2.Vec
	started := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			if started {
				return nil, fmt.Errorf("centroids: line %d: bad grain index %q", lineNo, fields[0])
			}
			continue // header line
		}
		if !started && idx != 1 {
			continue // numeric header noise before the grain 1 line
		}
		started = true

		if len(fields) < 3 {
			return nil, fmt.Errorf("centroids: line %d: need index, x, y", lineNo)
		}
		if want := len(out) + 1; idx != want {
			return nil, fmt.Errorf("centroids: line %d: grain indices not contiguous: got %d, want %d", lineNo, idx, want)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("centroids: line %d: bad x coordinate %q", lineNo, fields[1])
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("centroids: line %d: bad y coordinate %q", lineNo, fields[2])
		}
		out = append(out, v2.Vec{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("centroids: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("centroids: no grain data found")
	}
	return out, nil
}
