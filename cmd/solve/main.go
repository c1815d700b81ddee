// Command solve finds the shortest winning command string for a level file.
// It runs a breadth-first search over board states, so the first victory it
// reaches uses the fewest moves. Boards that loop or die are pruned.
//
// Usage:
//
//	solve [-max-depth N] [-v] levels/classic.txt
//
// Exit codes: 0 when a solution is found, 1 on bad input, 2 when no solution
// exists within the depth limit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
)

// searchNode pairs a board with the commands that produced it.
type searchNode struct {
	grid  engine.Grid
	moves []engine.Direction
}

func main() {
	maxDepth := flag.Int("max-depth", 50, "maximum number of moves to search")
	verbose := flag.Bool("v", false, "print search statistics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: solve [-max-depth N] [-v] <levelfile>")
		os.Exit(1)
	}

	grid, err := level.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "solve: %v\n", err)
		os.Exit(1)
	}

	if _, err := engine.Validate(grid); err != nil {
		fmt.Fprintf(os.Stderr, "solve: %v\n", err)
		os.Exit(1)
	}
	engine.RecomputeBeams(grid)

	switch engine.ScanStatus(grid) {
	case engine.StatusVictory:
		// Already solved, nothing to print
		return
	case engine.StatusDefeated:
		fmt.Fprintln(os.Stderr, "solve: the ram is dead before the first move")
		os.Exit(2)
	}

	moves, explored, found := Solve(grid, *maxDepth)
	if *verbose {
		fmt.Fprintf(os.Stderr, "explored %d states\n", explored)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "solve: no solution within %d moves\n", *maxDepth)
		os.Exit(2)
	}
	fmt.Println(level.EncodeMoves(moves))
}

// Solve searches breadth-first for the shortest winning move sequence. It
// returns the moves, the number of distinct boards visited and whether a
// solution was found.
func Solve(start engine.Grid, maxDepth int) ([]engine.Direction, int, bool) {
	seen := map[string]bool{level.Encode(start): true}
	queue := []searchNode{{grid: start}}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if len(node.moves) >= maxDepth {
			continue
		}

		for _, d := range engine.Directions {
			next := node.grid.Clone()
			status := engine.Move(next, d)
			if status == engine.StatusInvalid {
				continue
			}
			engine.RecomputeBeams(next)
			if status != engine.StatusVictory {
				status = engine.ScanStatus(next)
			}

			moves := append(node.moves[:len(node.moves):len(node.moves)], d)

			switch status {
			case engine.StatusVictory:
				return moves, len(seen), true
			case engine.StatusDefeated:
				continue
			}

			key := level.Encode(next)
			if seen[key] {
				continue
			}
			seen[key] = true
			queue = append(queue, searchNode{grid: next, moves: moves})
		}
	}

	return nil, len(seen), false
}
