// Command validate provides a small CLI that validates level files in a
// levels directory. It checks:
//   - Allowed characters and parseability
//   - Exactly one ram and at least one finish tile
//   - That the starting position survives the laser pass
//   - Connectivity: some finish tile is reachable from the ram, treating
//     breakable obstacles as eventually passable
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevel loads and validates a single level file. It performs
// structural checks through the engine validator, materializes beams to
// catch lethal starting positions, and runs reachability analysis.
func validateLevel(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	grid, err := level.Load(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to load level: %v", err))
		return result
	}

	if _, err := engine.Validate(grid); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid board: %v", err))
		return result
	}

	engine.RecomputeBeams(grid)

	switch engine.ScanStatus(grid) {
	case engine.StatusDefeated:
		result.Valid = false
		result.Errors = append(result.Errors, "Ram is caught in a laser beam before the first move")
	case engine.StatusVictory:
		result.Valid = false
		result.Errors = append(result.Errors, "Level is already won at load time")
	}

	height, width := grid.Bounds()
	counts := map[engine.Tile]int{}
	for _, row := range grid {
		for _, t := range row {
			counts[t]++
		}
	}

	if result.Valid {
		reachability := validateReachability(grid)
		if !reachability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachability.Errors...)
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", height, width))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Finish tiles: %d", counts[engine.Finish]))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Walls: %d (%d damaged)", counts[engine.Wall]+counts[engine.DamagedWall], counts[engine.DamagedWall]))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Traps: %d, Holes: %d", counts[engine.Trap], counts[engine.Hole]))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Weights: %d heavy, %d sliding", counts[engine.HeavyWeight], counts[engine.SlidingWeight]))
		emitters := counts[engine.EmitterUp] + counts[engine.EmitterDown] + counts[engine.EmitterLeft] + counts[engine.EmitterRight]
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Emitters: %d", emitters))
	}

	return result
}

// validateReachability flood fills from the ram to check that a finish tile
// can be reached at all. Walls, damaged walls and emitters count as passable
// because the ram can destroy them over repeated moves; traps and beams do
// not, since entering them is fatal. This is an over-approximation of real
// sliding movement, so it only catches levels that are clearly impossible.
func validateReachability(grid engine.Grid) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	rams := grid.FindAll(engine.Ram)
	if len(rams) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No ram position found for reachability test")
		return result
	}

	passable := func(t engine.Tile) bool {
		return t != engine.Trap && !t.IsBeam()
	}

	visited := map[engine.Position]bool{rams[0]: true}
	queue := []engine.Position{rams[0]}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if grid[current.Row][current.Col] == engine.Finish {
			result.Errors = append(result.Errors, "✓ Connectivity: a finish tile is reachable from the ram")
			return result
		}

		for _, d := range engine.Directions {
			next := current.Step(d)
			if !grid.InBounds(next) || visited[next] {
				continue
			}
			if passable(grid[next.Row][next.Col]) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	result.Valid = false
	result.Errors = append(result.Errors, "Connectivity failure: no finish tile is reachable from the ram")
	return result
}

// main scans the levels directory for *.txt files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	levelsDir := flag.String("levels", "levels", "directory containing level files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*levelsDir, "*.txt"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No level files found in %s\n", *levelsDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateLevel(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All levels are valid!")
	} else {
		fmt.Println("❌ Some levels have errors")
		os.Exit(1)
	}
}
