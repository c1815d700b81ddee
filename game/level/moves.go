package level

import (
	"fmt"
	"unicode"

	"github.com/ramknight/ramk/game/engine"
)

// The movement alphabet, vi-style and case-sensitive:
// h => left, j => down, k => up, l => right.
var moveRunes = map[rune]engine.Direction{
	'h': engine.Left,
	'j': engine.Down,
	'k': engine.Up,
	'l': engine.Right,
}

var directionRunes = map[engine.Direction]rune{
	engine.Left:  'h',
	engine.Down:  'j',
	engine.Up:    'k',
	engine.Right: 'l',
}

// DecodeMove converts a single movement character into a direction.
func DecodeMove(r rune) (engine.Direction, error) {
	d, ok := moveRunes[r]
	if !ok {
		return 0, fmt.Errorf("invalid input %q", r)
	}
	return d, nil
}

// EncodeMove converts a direction back into its movement character.
func EncodeMove(d engine.Direction) rune {
	return directionRunes[d]
}

// ParseMoves converts a command string into a direction sequence.
// Whitespace is ignored; anything else outside [hjkl] is rejected.
func ParseMoves(s string) ([]engine.Direction, error) {
	var dirs []engine.Direction
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		d, err := DecodeMove(r)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// EncodeMoves renders a direction sequence as a command string.
func EncodeMoves(dirs []engine.Direction) string {
	out := make([]rune, len(dirs))
	for i, d := range dirs {
		out[i] = EncodeMove(d)
	}
	return string(out)
}
