package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel wraps every structural validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// Validate checks grid well-formedness and derives the initial game status.
// It is run once after load and never retried: every row must have the same
// length, every tile must be known, at least one finish tile must exist, and
// exactly one ram variant must be present. Any violation yields
// StatusInvalid together with a descriptive error.
func Validate(g Grid) (Status, error) {
	if len(g) == 0 {
		return StatusInvalid, fmt.Errorf("%w: level is empty", ErrInvalidLevel)
	}

	width := len(g[0])
	for i, row := range g {
		if len(row) != width {
			return StatusInvalid, fmt.Errorf("%w: len(row %d) = %d != len(row 0) = %d, all rows must have the same length",
				ErrInvalidLevel, i, len(row), width)
		}
	}

	var rams, finishes int
	var victory, defeated bool
	for i, row := range g {
		for j, t := range row {
			if !t.Known() {
				return StatusInvalid, fmt.Errorf("%w: unknown tile %d at row %d col %d", ErrInvalidLevel, int(t), i, j)
			}
			switch t {
			case Ram:
				rams++
			case RamVictorious:
				rams++
				victory = true
			case RamDefeated:
				rams++
				defeated = true
			case Finish:
				finishes++
			}
		}
	}

	if finishes == 0 {
		return StatusInvalid, fmt.Errorf("%w: no finish tile, level must contain at least 1", ErrInvalidLevel)
	}
	if rams != 1 {
		return StatusInvalid, fmt.Errorf("%w: level contains %d ram tiles, must contain exactly 1", ErrInvalidLevel, rams)
	}

	if victory {
		return StatusVictory, nil
	}
	if defeated {
		return StatusDefeated, nil
	}
	return StatusUnfinished, nil
}
