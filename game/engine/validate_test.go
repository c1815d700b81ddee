package engine_test

import (
	"strings"
	"testing"

	"github.com/ramknight/ramk/game/engine"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		status  engine.Status
		wantErr string
	}{
		{
			name:   "minimal valid level",
			rows:   []string{"G F"},
			status: engine.StatusUnfinished,
		},
		{
			name:   "victorious level",
			rows:   []string{"..@F"},
			status: engine.StatusVictory,
		},
		{
			name:   "defeated level",
			rows:   []string{"YxF"},
			status: engine.StatusDefeated,
		},
		{
			name:    "unequal row lengths report both lengths",
			rows:    []string{"G F", "MM"},
			status:  engine.StatusInvalid,
			wantErr: "len(row 1) = 2 != len(row 0) = 3",
		},
		{
			name:    "no finish tile",
			rows:    []string{"G M"},
			status:  engine.StatusInvalid,
			wantErr: "no finish tile",
		},
		{
			name:    "two rams reported with count",
			rows:    []string{"GG F"},
			status:  engine.StatusInvalid,
			wantErr: "contains 2 ram tiles",
		},
		{
			name:    "no ram at all",
			rows:    []string{"x F"},
			status:  engine.StatusInvalid,
			wantErr: "contains 0 ram tiles",
		},
		{
			name:    "defeated and live ram together",
			rows:    []string{"GY F"},
			status:  engine.StatusInvalid,
			wantErr: "contains 2 ram tiles",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := mustParse(t, test.rows...)
			status, err := engine.Validate(grid)
			if status != test.status {
				t.Errorf("status: expected %v, got %v", test.status, status)
			}
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not contain %q", err, test.wantErr)
			}
		})
	}
}

func TestValidate_UnknownTile(t *testing.T) {
	grid := mustParse(t, "G F")
	grid[0][1] = engine.Tile(42)

	status, err := engine.Validate(grid)
	if status != engine.StatusInvalid {
		t.Errorf("expected invalid, got %v", status)
	}
	if err == nil || !strings.Contains(err.Error(), "row 0 col 1") {
		t.Errorf("error should report the position, got %v", err)
	}
}

func TestValidate_EmptyGrid(t *testing.T) {
	status, err := engine.Validate(engine.Grid{})
	if status != engine.StatusInvalid || err == nil {
		t.Errorf("expected invalid with error, got %v, %v", status, err)
	}
}

func TestScanStatus(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		status engine.Status
	}{
		{"live ram is unfinished", []string{"G F"}, engine.StatusUnfinished},
		{"defeated ram found first", []string{"Y F", "@ M"}, engine.StatusDefeated},
		{"victorious ram", []string{". F", "@ M"}, engine.StatusVictory},
		{"empty board is unfinished", []string{"   "}, engine.StatusUnfinished},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			grid := mustParse(t, test.rows...)
			if got := engine.ScanStatus(grid); got != test.status {
				t.Errorf("expected %v, got %v", test.status, got)
			}
		})
	}
}

func TestStatusValues(t *testing.T) {
	// The numeric values double as process exit codes and must not drift.
	if engine.StatusVictory != 0 || engine.StatusInvalid != 1 ||
		engine.StatusUnfinished != 2 || engine.StatusDefeated != 3 {
		t.Errorf("status codes changed: %d %d %d %d",
			engine.StatusVictory, engine.StatusInvalid, engine.StatusUnfinished, engine.StatusDefeated)
	}
}
