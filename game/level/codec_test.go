package level

import (
	"errors"
	"strings"
	"testing"

	"github.com/ramknight/ramk/game/engine"
)

func TestParse_SkipsCommentsAndBlankLines(t *testing.T) {
	input := "# ram knight level\n\nG  F\n# trailing comment\nM  M\n\n"

	grid, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	h, w := grid.Bounds()
	if h != 2 || w != 4 {
		t.Fatalf("expected 2x4 grid, got %dx%d", h, w)
	}
	if grid[0][0] != engine.Ram || grid[0][3] != engine.Finish || grid[1][0] != engine.Wall {
		t.Errorf("tiles decoded wrong: %v", grid)
	}
}

func TestParse_ReportsBadSymbolPosition(t *testing.T) {
	_, err := ParseString("G F\n M?M")
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}
	if !errors.Is(err, ErrBadSymbol) {
		t.Errorf("expected ErrBadSymbol, got %v", err)
	}
	for _, part := range []string{"row 1", "col 2", "'?'"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q missing %q", err, part)
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	// Every tile kind once.
	text := "G@YF _.\nMmxoWw\n^v<>-|+ "

	grid, err := ParseString(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := Encode(grid); got != text {
		t.Errorf("round trip:\ngot  %q\nwant %q", got, text)
	}
}

func TestDecodeTile_FullAlphabet(t *testing.T) {
	tests := []struct {
		symbol rune
		tile   engine.Tile
	}{
		{' ', engine.Floor},
		{'_', engine.Rubble},
		{'.', engine.Trail},
		{'G', engine.Ram},
		{'@', engine.RamVictorious},
		{'Y', engine.RamDefeated},
		{'F', engine.Finish},
		{'M', engine.Wall},
		{'m', engine.DamagedWall},
		{'x', engine.Trap},
		{'o', engine.Hole},
		{'W', engine.HeavyWeight},
		{'w', engine.SlidingWeight},
		{'^', engine.EmitterUp},
		{'v', engine.EmitterDown},
		{'<', engine.EmitterLeft},
		{'>', engine.EmitterRight},
		{'-', engine.BeamHorizontal},
		{'|', engine.BeamVertical},
		{'+', engine.BeamCross},
	}

	for _, test := range tests {
		tile, err := DecodeTile(test.symbol)
		if err != nil {
			t.Errorf("DecodeTile(%q): %v", test.symbol, err)
			continue
		}
		if tile != test.tile {
			t.Errorf("DecodeTile(%q): expected %v, got %v", test.symbol, test.tile, tile)
		}
		if back := EncodeTile(tile); back != test.symbol {
			t.Errorf("EncodeTile(%v): expected %q, got %q", tile, test.symbol, back)
		}
	}

	if _, err := DecodeTile('Z'); err == nil {
		t.Error("expected error for symbol outside the alphabet")
	}
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []engine.Direction
		wantErr bool
	}{
		{
			name:  "plain sequence",
			input: "hjkl",
			want:  []engine.Direction{engine.Left, engine.Down, engine.Up, engine.Right},
		},
		{
			name:  "whitespace ignored",
			input: " h\tj \n k l ",
			want:  []engine.Direction{engine.Left, engine.Down, engine.Up, engine.Right},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "case sensitive",
			input:   "H",
			wantErr: true,
		},
		{
			name:    "unknown command",
			input:   "hjq",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dirs, err := ParseMoves(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoves: %v", err)
			}
			if len(dirs) != len(test.want) {
				t.Fatalf("expected %d moves, got %d", len(test.want), len(dirs))
			}
			for i := range dirs {
				if dirs[i] != test.want[i] {
					t.Errorf("move %d: expected %v, got %v", i, test.want[i], dirs[i])
				}
			}
		})
	}
}

func TestEncodeMoves(t *testing.T) {
	dirs := []engine.Direction{engine.Left, engine.Left, engine.Up, engine.Right, engine.Down}
	if got := EncodeMoves(dirs); got != "hhklj" {
		t.Errorf("expected hhklj, got %q", got)
	}
}
