// Package engine provides the core simulation logic for Ram Knight.
//
// The engine package implements the game mechanics including:
//   - The closed tile model and the mutable level grid
//   - Sliding movement resolution with wall, weight, trap and hole interactions
//   - Laser beam propagation from directional emitters
//   - Level validation and terminal-state evaluation
//
// Core Types:
//
// Grid is the mutable 2D tile array shared by all operations. The free
// functions Move, RecomputeBeams, Validate and ScanStatus operate on a Grid
// the caller owns; Game wraps a Grid with history tracking, reset support
// and the beam-recompute-after-every-move policy.
//
// Usage:
//
//	grid, err := level.Load("levels/classic.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewGame(grid)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	status := game.Move(engine.Right)
//
// Game Rules:
//
// The ram slides in one of four cardinal directions until it meets an
// obstacle. Walls take two hits to crumble, weights are pushed, traps and
// laser beams kill, holes swallow whatever enters them first. Reaching a
// finish tile wins the game.
//
// Every operation is synchronous and single-threaded: the caller must not
// invoke two operations concurrently against the same Grid.
package engine
