package level

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ramknight/ramk/game/engine"
)

var (
	ErrLevelNotFound = errors.New("level not found")
)

// Info describes an available level file.
type Info struct {
	Filename string `json:"filename"`
	LevelID  string `json:"level_id"` // identifier to use for session creation
	Height   int    `json:"height"`
	Width    int    `json:"width"`
	Walls    int    `json:"walls"`
	Traps    int    `json:"traps"`
	Emitters int    `json:"emitters"`
	Weights  int    `json:"weights"`
}

// Manager handles level loading and caching from a directory of .txt files.
type Manager struct {
	levelDir    string
	defaultGrid engine.Grid
	defaultName string
	levels      map[string]engine.Grid
	mu          sync.RWMutex
}

// NewManager creates a new level manager rooted at levelDir.
func NewManager(levelDir string) (*Manager, error) {
	if _, err := os.Stat(levelDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("level directory does not exist: %s", levelDir)
	}

	m := &Manager{
		levelDir: levelDir,
		levels:   make(map[string]engine.Grid),
	}
	m.loadDefault()
	return m, nil
}

// LoadLevel loads a level by name, parses and validates it, and caches the
// pristine grid. Callers receive a clone they may mutate freely.
func (m *Manager) LoadLevel(name string) (engine.Grid, error) {
	m.mu.RLock()
	if grid, exists := m.levels[name]; exists {
		m.mu.RUnlock()
		return grid.Clone(), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if grid, exists := m.levels[name]; exists {
		return grid.Clone(), nil
	}

	path := filepath.Join(m.levelDir, m.filename(name))
	grid, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}
	if _, err := engine.Validate(grid); err != nil {
		return nil, err
	}

	m.levels[name] = grid
	return grid.Clone(), nil
}

// ListLevels returns information about every parseable level in the
// directory. Unparseable files are skipped.
func (m *Manager) ListLevels() ([]*Info, error) {
	entries, err := os.ReadDir(m.levelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var infos []*Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".txt")
		grid, err := m.LoadLevel(name)
		if err != nil {
			continue
		}
		infos = append(infos, describe(entry.Name(), name, grid))
	}
	return infos, nil
}

// GetDefault returns a clone of the default level grid and its name.
func (m *Manager) GetDefault() (engine.Grid, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultGrid.Clone(), m.defaultName
}

// SaveLevel validates and writes a grid to the level directory, replacing
// any cached copy.
func (m *Manager) SaveLevel(name string, g engine.Grid) error {
	if _, err := engine.Validate(g); err != nil {
		return err
	}

	path := filepath.Join(m.levelDir, m.filename(name))
	if err := Save(path, g); err != nil {
		return err
	}

	m.mu.Lock()
	m.levels[name] = g.Clone()
	m.mu.Unlock()
	return nil
}

// RefreshCache drops every cached level so the next load re-reads disk.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = make(map[string]engine.Grid)
	m.loadDefaultLocked()
}

func (m *Manager) filename(name string) string {
	if strings.HasSuffix(name, ".txt") {
		return name
	}
	return name + ".txt"
}

func (m *Manager) loadDefault() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadDefaultLocked()
}

// loadDefaultLocked picks classic.txt, else the first valid level, else a
// built-in minimal board. Callers hold m.mu.
func (m *Manager) loadDefaultLocked() {
	try := func(name string) bool {
		path := filepath.Join(m.levelDir, m.filename(name))
		grid, err := Load(path)
		if err != nil {
			return false
		}
		if _, err := engine.Validate(grid); err != nil {
			return false
		}
		m.defaultGrid = grid
		m.defaultName = name
		return true
	}

	if try("classic") {
		return
	}

	entries, err := os.ReadDir(m.levelDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			if try(strings.TrimSuffix(entry.Name(), ".txt")) {
				return
			}
		}
	}

	m.defaultGrid = minimalLevel()
	m.defaultName = "default"
}

// describe summarizes a level for listings.
func describe(filename, id string, g engine.Grid) *Info {
	h, w := g.Bounds()
	info := &Info{Filename: filename, LevelID: id, Height: h, Width: w}
	for _, row := range g {
		for _, t := range row {
			switch {
			case t == engine.Wall || t == engine.DamagedWall:
				info.Walls++
			case t == engine.Trap:
				info.Traps++
			case t.IsEmitter():
				info.Emitters++
			case t == engine.HeavyWeight || t == engine.SlidingWeight:
				info.Weights++
			}
		}
	}
	return info
}

// minimalLevel is a tiny always-valid board: ram on the left, finish on the
// right, one wall in between.
func minimalLevel() engine.Grid {
	grid, err := ParseString("G  M F")
	if err != nil {
		panic(err) // static level, cannot fail
	}
	return grid
}
