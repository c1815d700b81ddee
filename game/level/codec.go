package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ramknight/ramk/game/engine"
)

// ErrBadSymbol wraps every decode failure caused by a character outside the
// level alphabet.
var ErrBadSymbol = errors.New("invalid level character")

// The bidirectional rune<->tile mapping. This is the only place in the
// module that knows the external single-character encoding.
var tileRunes = map[engine.Tile]rune{
	engine.Floor:          ' ',
	engine.Rubble:         '_',
	engine.Trail:          '.',
	engine.Ram:            'G',
	engine.RamVictorious:  '@',
	engine.RamDefeated:    'Y',
	engine.Finish:         'F',
	engine.Wall:           'M',
	engine.DamagedWall:    'm',
	engine.Trap:           'x',
	engine.Hole:           'o',
	engine.HeavyWeight:    'W',
	engine.SlidingWeight:  'w',
	engine.EmitterUp:      '^',
	engine.EmitterDown:    'v',
	engine.EmitterLeft:    '<',
	engine.EmitterRight:   '>',
	engine.BeamHorizontal: '-',
	engine.BeamVertical:   '|',
	engine.BeamCross:      '+',
}

var runeTiles = func() map[rune]engine.Tile {
	m := make(map[rune]engine.Tile, len(tileRunes))
	for t, r := range tileRunes {
		m[r] = t
	}
	return m
}()

// DecodeTile converts a level character into a tile.
func DecodeTile(r rune) (engine.Tile, error) {
	t, ok := runeTiles[r]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrBadSymbol, r)
	}
	return t, nil
}

// EncodeTile converts a tile back into its level character.
func EncodeTile(t engine.Tile) rune {
	r, ok := tileRunes[t]
	if !ok {
		return '?'
	}
	return r
}

// Parse reads a textual level into a grid. Blank lines and lines starting
// with '#' are skipped; any character outside the level alphabet fails with
// its position. Parse does not validate the grid beyond its alphabet; run
// engine.Validate on the result.
func Parse(r io.Reader) (engine.Grid, error) {
	var grid engine.Grid

	scanner := bufio.NewScanner(r)
	lineNo := -1
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lineNo++

		row := make([]engine.Tile, 0, len(line))
		for col, c := range line {
			t, err := DecodeTile(c)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", lineNo, col, err)
			}
			row = append(row, t)
		}
		grid = append(grid, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return grid, nil
}

// ParseString parses a level held in a string.
func ParseString(s string) (engine.Grid, error) {
	return Parse(strings.NewReader(s))
}

// Load reads and parses a level file.
func Load(path string) (engine.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()

	grid, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grid, nil
}

// Encode renders a grid back into its row-joined textual form, the inverse
// of Parse.
func Encode(g engine.Grid) string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, t := range row {
			b.WriteRune(EncodeTile(t))
		}
	}
	return b.String()
}

// Save writes the encoded grid to path.
func Save(path string, g engine.Grid) error {
	if err := os.WriteFile(path, []byte(Encode(g)), 0644); err != nil {
		return fmt.Errorf("save level: %w", err)
	}
	return nil
}
