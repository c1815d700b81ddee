package engine

// ScanStatus derives the game status from the board alone: a row-major scan
// that reports the first defeated or victorious ram it finds. Used after
// weight pushes and beam recomputes, where the engine does not know a priori
// whether a hazard was involved.
func ScanStatus(g Grid) Status {
	for _, row := range g {
		for _, t := range row {
			switch t {
			case RamDefeated:
				return StatusDefeated
			case RamVictorious:
				return StatusVictory
			}
		}
	}
	return StatusUnfinished
}
