package engine

// emitter pairs an emitter position with its beam direction.
type emitter struct {
	pos Position
	dir Direction
}

// RecomputeBeams retraces every laser beam from scratch. All existing beam
// tiles are cleared to floor first, so beams are a pure function of the
// emitter positions and the static obstacles: recomputing twice in a row is
// a no-op, and the result does not depend on emitter iteration order.
//
// Tracing may convert the ram to RamDefeated when a beam reaches it; callers
// that need the resulting game status should follow up with ScanStatus.
func RecomputeBeams(g Grid) {
	for i, row := range g {
		for j, t := range row {
			if t.IsBeam() {
				g[i][j] = Floor
			}
		}
	}

	var emitters []emitter
	for i, row := range g {
		for j, t := range row {
			if dir, ok := t.EmitterDirection(); ok {
				emitters = append(emitters, emitter{pos: Position{Row: i, Col: j}, dir: dir})
			}
		}
	}

	for _, e := range emitters {
		trace(g, e)
	}
}

// trace marks the beam path of a single emitter, tile by tile, until it
// leaves the grid or hits something opaque.
func trace(g Grid, e emitter) {
	horizontal := e.dir.horizontal()
	mark := BeamVertical
	if horizontal {
		mark = BeamHorizontal
	}

	for p := e.pos.Step(e.dir); g.InBounds(p); p = p.Step(e.dir) {
		t := g[p.Row][p.Col]
		switch {
		case t == BeamCross:
			// Already an overlap, nothing to add.
		case t == BeamHorizontal && !horizontal, t == BeamVertical && horizontal:
			// Perpendicular beams cross each other.
			g[p.Row][p.Col] = BeamCross
		case t == Ram:
			g[p.Row][p.Col] = RamDefeated
			return
		case t.blocksLaser():
			return
		default:
			g[p.Row][p.Col] = mark
		}
	}
}
