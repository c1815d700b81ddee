package engine

import (
	"fmt"
	"time"
)

// MoveRecord is a single entry in a game's move history.
type MoveRecord struct {
	MoveNumber int       `json:"move_number"`
	Direction  Direction `json:"direction"`
	Status     Status    `json:"status"`
	Timestamp  int64     `json:"timestamp"`
}

// Game wraps a Grid with the full per-move pipeline: slide resolution, beam
// recompute, status rescan and history tracking. It keeps a pristine copy of
// the validated starting grid for Reset.
//
// Beams are recomputed after every move, in every mode. The original rules
// left batch runs with stale beams; one consistent policy is used here.
type Game struct {
	grid    Grid
	initial Grid
	status  Status
	history []MoveRecord
}

// NewGame validates the grid, materializes its laser beams and returns a
// playable game. The input grid is cloned, never retained.
func NewGame(g Grid) (*Game, error) {
	grid := g.Clone()
	RecomputeBeams(grid)
	status, err := Validate(grid)
	if err != nil {
		return nil, err
	}
	return &Game{
		grid:    grid,
		initial: grid.Clone(),
		status:  status,
	}, nil
}

// Grid returns the live grid. Callers rendering or persisting it must not
// mutate it while another operation is in flight.
func (gm *Game) Grid() Grid {
	return gm.grid
}

// Status returns the current game status.
func (gm *Game) Status() Status {
	return gm.status
}

// Over reports whether the game has reached a terminal status.
func (gm *Game) Over() bool {
	return gm.status.Terminal()
}

// Move advances the ram in direction d, retraces the lasers and rescans the
// board. A move against a finished game is a no-op returning the terminal
// status unchanged.
func (gm *Game) Move(d Direction) Status {
	if gm.status.Terminal() {
		return gm.status
	}

	status := Move(gm.grid, d)
	if status != StatusInvalid {
		RecomputeBeams(gm.grid)
		if status == StatusUnfinished {
			// A freshly traced beam may have caught the ram mid-slide.
			status = ScanStatus(gm.grid)
		}
	}
	gm.status = status

	gm.history = append(gm.history, MoveRecord{
		MoveNumber: len(gm.history) + 1,
		Direction:  d,
		Status:     status,
		Timestamp:  time.Now().Unix(),
	})
	return status
}

// Initial returns a copy of the validated starting grid.
func (gm *Game) Initial() Grid {
	return gm.initial.Clone()
}

// Reset restores the validated starting grid. Move history is cumulative
// and survives resets.
func (gm *Game) Reset() {
	gm.grid = gm.initial.Clone()
	gm.status = ScanStatus(gm.grid)
}

// History returns the cumulative move history.
func (gm *Game) History() []MoveRecord {
	return gm.history
}

// LastMove returns the most recent move, or nil if none were made.
func (gm *Game) LastMove() *MoveRecord {
	if len(gm.history) == 0 {
		return nil
	}
	return &gm.history[len(gm.history)-1]
}

// SetState replaces the live grid and history, used when loading a persisted
// session. The grid must still validate.
func (gm *Game) SetState(g Grid, history []MoveRecord) error {
	status, err := Validate(g)
	if err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	gm.grid = g.Clone()
	gm.status = status
	gm.history = history
	return nil
}

// PossibleMoves returns the directions in which a move would actually change
// the board, probing each direction against a clone.
func (gm *Game) PossibleMoves() []Direction {
	if gm.status.Terminal() {
		return nil
	}
	var possible []Direction
	for _, d := range Directions {
		probe := gm.grid.Clone()
		Move(probe, d)
		if !probe.Equal(gm.grid) {
			possible = append(possible, d)
		}
	}
	return possible
}
