// Package shrink implements the grain-boundary shrink-and-repair
// transform: junction detection, per-grain node translation toward the
// grain centroid, a boundary-coordinate merge that preserves the outer
// domain, optional periodicity enforcement, and junction gap filling with
// synthesized triangles.
//
// The pipeline is a single batch pass over an immutable input mesh. The
// only mutable state is the working node table, threaded sequentially
// through the steps; per-grain shrink candidates are computed concurrently
// because each grain reads shared read-only inputs and writes a disjoint
// buffer.
package shrink

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Mote3D/PhaceXL-2D/pkg/mesh"
)

// Options are the values the transform consumes. Factor is expected in
// (0, 0.5); out-of-range values are accepted and simply produce extreme or
// self-intersecting geometry, which is the caller's responsibility.
type Options struct {
	Factor   float64
	Periodic bool
	Logger   *zap.Logger // nil for silent operation
}

// Result is the transformed mesh state handed to the writer: the working
// node table (a superset of the original ids — no new node ids are ever
// minted), the synthesized junction-fill triangles, and the per-junction
// fill records. Original triangles and cohesive elements pass through the
// input mesh untouched.
type Result struct {
	Nodes        *mesh.NodeTable
	NewTriangles []mesh.Triangle
	Junctions    []FilledJunction
}

// Run executes the full transform. Structural inconsistencies (dangling
// references, periodicity mismatch, hubless junctions) abort with an error
// naming the offending grain, junction or node; geometric edge cases with
// a sound fallback (centroid-coincident node, non-triple junction) are
// absorbed and the pass continues. On error no partial result is returned.
func Run(m *mesh.Mesh, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if errs := mesh.Validate(m); len(errs) > 0 {
		return nil, fmt.Errorf("inconsistent input mesh (%d findings): %w", len(errs), errs[0])
	}

	junctions := DetectJunctions(m)
	log.Info("junctions detected", zap.Int("count", len(junctions)))

	cands, err := shrinkCandidates(m, opts.Factor)
	if err != nil {
		return nil, fmt.Errorf("grain shrink: %w", err)
	}

	working := m.Nodes.Clone()
	applyCandidates(m, working, cands)
	log.Info("boundary nodes translated",
		zap.Int("grains", len(m.Grains)),
		zap.Float64("factor", opts.Factor))

	if opts.Periodic {
		if err := enforcePeriodicity(working); err != nil {
			return nil, err
		}
		log.Info("periodicity enforced")
	}

	filled, err := fillJunctions(m, working, junctions, log)
	if err != nil {
		return nil, err
	}

	res := &Result{Nodes: working, Junctions: filled}
	for _, fj := range filled {
		res.NewTriangles = append(res.NewTriangles, fj.Triangles...)
	}
	log.Info("junction gaps filled",
		zap.Int("junctions", len(filled)),
		zap.Int("new_elements", len(res.NewTriangles)))

	return res, nil
}
