package engine_test

import (
	"strings"
	"testing"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
)

// mustParse builds a grid from level-file rows. Tests assert on the encoded
// form so fixtures and expectations read the same way.
func mustParse(t *testing.T, rows ...string) engine.Grid {
	t.Helper()
	grid, err := level.ParseString(strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return grid
}

func encode(g engine.Grid) string {
	return level.Encode(g)
}

func TestMove_SlideAndStop(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		dir    engine.Direction
		want   []string
		status engine.Status
	}{
		{
			name:   "slides to wall and damages it",
			rows:   []string{"G  M F"},
			dir:    engine.Right,
			want:   []string{"..Gm F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "damaged wall crumbles to rubble",
			rows:   []string{"Gm F"},
			dir:    engine.Right,
			want:   []string{"G_ F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "rubble and trail are walkable",
			rows:   []string{"G_. M", "F    "},
			dir:    engine.Right,
			want:   []string{"...Gm", "F    "},
			status: engine.StatusUnfinished,
		},
		{
			name:   "stops at grid edge without mutation",
			rows:   []string{"  G F"},
			dir:    engine.Up,
			want:   []string{"  G F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "emitter is destroyed on contact",
			rows:   []string{"G < F"},
			dir:    engine.Right,
			want:   []string{".G_ F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "reaching finish leaves victorious ram behind",
			rows:   []string{"G   F"},
			dir:    engine.Right,
			want:   []string{"...@F"},
			status: engine.StatusVictory,
		},
		{
			name:   "trap kills in place",
			rows:   []string{"GxF"},
			dir:    engine.Right,
			want:   []string{"YxF"},
			status: engine.StatusDefeated,
		},
		{
			name:   "horizontal beam kills in place",
			rows:   []string{"G-F"},
			dir:    engine.Right,
			want:   []string{"Y-F"},
			status: engine.StatusDefeated,
		},
		{
			name:   "beam cross kills in place",
			rows:   []string{"G+F"},
			dir:    engine.Right,
			want:   []string{"Y+F"},
			status: engine.StatusDefeated,
		},
		{
			name:   "hole is consumed and stops the ram",
			rows:   []string{"Go F"},
			dir:    engine.Right,
			want:   []string{".G F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "moves left into the finish",
			rows:   []string{"F  G"},
			dir:    engine.Left,
			want:   []string{"F@.."},
			status: engine.StatusVictory,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := mustParse(t, test.rows...)
			status := engine.Move(grid, test.dir)
			if status != test.status {
				t.Errorf("Move status: expected %v, got %v", test.status, status)
			}
			want := strings.Join(test.want, "\n")
			if got := encode(grid); got != want {
				t.Errorf("grid after move:\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestMove_WallProgression(t *testing.T) {
	grid := mustParse(t, "GM F")

	if status := engine.Move(grid, engine.Right); status != engine.StatusUnfinished {
		t.Fatalf("first hit: expected unfinished, got %v", status)
	}
	if got := encode(grid); got != "Gm F" {
		t.Fatalf("first hit: got %q", got)
	}

	if status := engine.Move(grid, engine.Right); status != engine.StatusUnfinished {
		t.Fatalf("second hit: expected unfinished, got %v", status)
	}
	if got := encode(grid); got != "G_ F" {
		t.Fatalf("second hit: got %q", got)
	}

	// Third approach passes through the rubble freely.
	if status := engine.Move(grid, engine.Right); status != engine.StatusVictory {
		t.Fatalf("third approach: expected victory, got %v", status)
	}
	if got := encode(grid); got != "..@F" {
		t.Fatalf("third approach: got %q", got)
	}
}

func TestMove_HeavyWeight(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		dir    engine.Direction
		want   []string
		status engine.Status
	}{
		{
			name:   "pushed one tile onto floor",
			rows:   []string{"GW  F"},
			dir:    engine.Right,
			want:   []string{".GW F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "push blocked by wall leaves everything in place",
			rows:   []string{"GWM F"},
			dir:    engine.Right,
			want:   []string{"GWM F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "push blocked by grid edge",
			rows:   []string{" GW", "F  "},
			dir:    engine.Right,
			want:   []string{" GW", "F  "},
			status: engine.StatusUnfinished,
		},
		{
			name:   "weight falls into hole and becomes rubble",
			rows:   []string{"GWo F"},
			dir:    engine.Right,
			want:   []string{".G_ F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "weight destroys the trap it lands on",
			rows:   []string{"GWx F"},
			dir:    engine.Right,
			want:   []string{".GW F"},
			status: engine.StatusUnfinished,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := mustParse(t, test.rows...)
			status := engine.Move(grid, test.dir)
			if status != test.status {
				t.Errorf("Move status: expected %v, got %v", test.status, status)
			}
			want := strings.Join(test.want, "\n")
			if got := encode(grid); got != want {
				t.Errorf("grid after push:\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestMove_SlidingWeight(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		dir    engine.Direction
		want   []string
		status engine.Status
	}{
		{
			name:   "slides until blocked, ram advances one tile",
			rows:   []string{"Gw  M F"},
			dir:    engine.Right,
			want:   []string{".G wM F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "slides through trap and destroys it",
			rows:   []string{"Gw xM F"},
			dir:    engine.Right,
			want:   []string{".G wM F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "slides to the grid edge",
			rows:   []string{"Gw  ", "F   "},
			dir:    engine.Right,
			want:   []string{".G w", "F   "},
			status: engine.StatusUnfinished,
		},
		{
			name:   "consumed by a hole mid-slide",
			rows:   []string{"Gw o F"},
			dir:    engine.Right,
			want:   []string{".G _ F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "blocked immediately, ram stays put",
			rows:   []string{"GwM F"},
			dir:    engine.Right,
			want:   []string{"GwM F"},
			status: engine.StatusUnfinished,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := mustParse(t, test.rows...)
			status := engine.Move(grid, test.dir)
			if status != test.status {
				t.Errorf("Move status: expected %v, got %v", test.status, status)
			}
			want := strings.Join(test.want, "\n")
			if got := encode(grid); got != want {
				t.Errorf("grid after slide:\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestMove_NoLiveRam(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		status engine.Status
	}{
		{"victorious ram reports victory", []string{"...@F"}, engine.StatusVictory},
		{"defeated ram reports defeat", []string{"YxF"}, engine.StatusDefeated},
		{"no ram at all is invalid", []string{" x F"}, engine.StatusInvalid},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := mustParse(t, test.rows...)
			before := grid.Clone()
			status := engine.Move(grid, engine.Right)
			if status != test.status {
				t.Errorf("expected %v, got %v", test.status, status)
			}
			if !grid.Equal(before) {
				t.Error("grid mutated by a no-op move")
			}
		})
	}
}

func TestMove_UnknownTileIsInvalid(t *testing.T) {
	grid := mustParse(t, "G  F")
	grid[0][1] = engine.Tile(99)

	if status := engine.Move(grid, engine.Right); status != engine.StatusInvalid {
		t.Errorf("expected invalid, got %v", status)
	}
}

func TestMove_Deterministic(t *testing.T) {
	rows := []string{"G wx<F", "M o  W"}
	first := mustParse(t, rows...)
	second := mustParse(t, rows...)

	s1 := engine.Move(first, engine.Right)
	s2 := engine.Move(second, engine.Right)

	if s1 != s2 {
		t.Fatalf("statuses differ: %v vs %v", s1, s2)
	}
	if !first.Equal(second) {
		t.Errorf("grids differ:\n%s\nvs\n%s", encode(first), encode(second))
	}
}
