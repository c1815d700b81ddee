package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ramknight/ramk/game/engine"
)

func writeLevel(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write level: %v", err)
	}
}

func TestManager_LoadLevel(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "simple.txt", "G  F")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	grid, err := m.LoadLevel("simple")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if grid[0][0] != engine.Ram {
		t.Errorf("wrong grid: %v", grid)
	}

	// Returned grids are clones: mutating one must not poison the cache.
	grid[0][0] = engine.Trail
	again, err := m.LoadLevel("simple")
	if err != nil {
		t.Fatalf("LoadLevel again: %v", err)
	}
	if again[0][0] != engine.Ram {
		t.Error("cache was mutated through a returned grid")
	}
}

func TestManager_LoadLevelNotFound(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "only.txt", "G F")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := m.LoadLevel("missing"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("expected ErrLevelNotFound, got %v", err)
	}
}

func TestManager_LoadLevelRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "broken.txt", "G  ") // no finish

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := m.LoadLevel("broken"); !errors.Is(err, engine.ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestManager_MissingDirectory(t *testing.T) {
	if _, err := NewManager("/nonexistent/levels"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestManager_ListLevels(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.txt", "G xF\nM <w")
	writeLevel(t, dir, "b.txt", "G F")
	writeLevel(t, dir, "broken.txt", "no finish here")
	writeLevel(t, dir, "notes.md", "not a level")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	infos, err := m.ListLevels()
	if err != nil {
		t.Fatalf("ListLevels: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(infos))
	}

	byID := make(map[string]*Info)
	for _, info := range infos {
		byID[info.LevelID] = info
	}
	a, ok := byID["a"]
	if !ok {
		t.Fatal("level a missing from listing")
	}
	if a.Height != 2 || a.Width != 4 {
		t.Errorf("a dimensions: %dx%d", a.Height, a.Width)
	}
	if a.Traps != 1 || a.Walls != 1 || a.Emitters != 1 || a.Weights != 1 {
		t.Errorf("a counts: %+v", a)
	}
}

func TestManager_DefaultLevel(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "classic.txt", "G M F")
	writeLevel(t, dir, "other.txt", "G F")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	grid, name := m.GetDefault()
	if name != "classic" {
		t.Errorf("expected classic as default, got %q", name)
	}
	if Encode(grid) != "G M F" {
		t.Errorf("default grid: %q", Encode(grid))
	}
}

func TestManager_DefaultFallsBackToBuiltin(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	grid, name := m.GetDefault()
	if name != "default" {
		t.Errorf("expected builtin default, got %q", name)
	}
	if _, err := engine.Validate(grid); err != nil {
		t.Errorf("builtin default does not validate: %v", err)
	}
}

func TestManager_SaveLevel(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "seed.txt", "G F")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	grid, _ := ParseString("G  w F")
	if err := m.SaveLevel("pushed", grid); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "pushed.txt"))
	if err != nil {
		t.Fatalf("read saved level: %v", err)
	}
	if string(data) != "G  w F" {
		t.Errorf("saved content: %q", data)
	}

	if err := m.SaveLevel("bad", engine.Grid{{engine.Ram}}); err == nil {
		t.Error("expected validation error saving a level without a finish")
	}
}

func TestManager_LoadLevelWithExtension(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "full.txt", "G F")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := m.LoadLevel("full.txt"); err != nil {
		t.Errorf("LoadLevel with extension: %v", err)
	}
}
