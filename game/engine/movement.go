package engine

// Move slides the ram one direction until it stops, resolving every tile
// interaction along the way, and returns the resulting status. The grid is
// mutated in place. Beams are NOT recomputed here; Game.Move layers that on.
//
// If the grid holds no live ram the call is a no-op that reports the
// terminal state already on the board.
func Move(g Grid, d Direction) Status {
	rams := g.FindAll(Ram)
	if len(rams) == 0 {
		if len(g.FindAll(RamVictorious)) > 0 {
			return StatusVictory
		}
		if len(g.FindAll(RamDefeated)) > 0 {
			return StatusDefeated
		}
		return StatusInvalid
	}
	pos := rams[0]

	for {
		next := pos.Step(d)
		if !g.InBounds(next) {
			return StatusUnfinished
		}

		switch t := g[next.Row][next.Col]; t {
		case Floor, Rubble, Trail:
			g[next.Row][next.Col] = Ram
			g[pos.Row][pos.Col] = Trail
			pos = next

		case Wall:
			g[next.Row][next.Col] = DamagedWall
			return StatusUnfinished

		case DamagedWall:
			g[next.Row][next.Col] = Rubble
			return StatusUnfinished

		case EmitterUp, EmitterDown, EmitterLeft, EmitterRight:
			g[next.Row][next.Col] = Rubble
			return StatusUnfinished

		case Finish:
			g[pos.Row][pos.Col] = RamVictorious
			return StatusVictory

		case Trap, BeamHorizontal, BeamVertical, BeamCross:
			g[pos.Row][pos.Col] = RamDefeated
			return StatusDefeated

		case Hole:
			// One-time stopping hazard: consumed by entering it.
			g[next.Row][next.Col] = Ram
			g[pos.Row][pos.Col] = Trail
			return StatusUnfinished

		case HeavyWeight:
			return pushHeavyWeight(g, pos, next, d)

		case SlidingWeight:
			return pushSlidingWeight(g, pos, next, d)

		default:
			return StatusInvalid
		}
	}
}

// pushHeavyWeight shoves the weight exactly one tile. Whatever trap or beam
// it lands on is destroyed; a hole swallows the weight and fills with
// rubble. The resulting status is derived by rescanning the grid rather than
// tracking whether a hazard triggered.
func pushHeavyWeight(g Grid, ram, weight Position, d Direction) Status {
	beyond := weight.Step(d)
	if !g.InBounds(beyond) {
		return StatusUnfinished
	}

	switch t := g[beyond.Row][beyond.Col]; {
	case t.crushable():
		g[beyond.Row][beyond.Col] = HeavyWeight
		g[weight.Row][weight.Col] = Ram
		g[ram.Row][ram.Col] = Trail
	case t == Hole:
		g[beyond.Row][beyond.Col] = Rubble
		g[weight.Row][weight.Col] = Ram
		g[ram.Row][ram.Col] = Trail
	}
	// Blocked pushes fall through with nothing moved.
	return ScanStatus(g)
}

// pushSlidingWeight sends the weight sliding until it meets an obstacle or
// the grid edge, destroying traps and beams on the way. A hole consumes the
// weight and ends the slide. The ram advances exactly one tile, into the
// weight's starting cell, whenever the weight moved at all.
func pushSlidingWeight(g Grid, ram, start Position, d Direction) Status {
	w := start
	moved := false

slide:
	for {
		next := w.Step(d)
		if !g.InBounds(next) {
			break
		}
		switch t := g[next.Row][next.Col]; {
		case t.crushable():
			g[w.Row][w.Col] = Floor
			g[next.Row][next.Col] = SlidingWeight
			w = next
			moved = true
		case t == Hole:
			g[w.Row][w.Col] = Floor
			g[next.Row][next.Col] = Rubble
			moved = true
			break slide
		default:
			break slide
		}
	}

	if moved {
		g[start.Row][start.Col] = Ram
		g[ram.Row][ram.Col] = Trail
	}
	return StatusUnfinished
}
