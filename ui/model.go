package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
)

// snapshot is one undo step: the board and move list before a move.
type snapshot struct {
	grid  engine.Grid
	moves []engine.Direction
}

// Model is the Bubbletea model for interactive play.
type Model struct {
	grid     engine.Grid
	initial  engine.Grid
	status   engine.Status
	moves    []engine.Direction
	undo     []snapshot
	showHelp bool
	quitting bool
}

// NewModel creates a TUI model playing the given starting grid. The grid
// must already validate; beams are materialized here.
func NewModel(grid engine.Grid) Model {
	g := grid.Clone()
	engine.RecomputeBeams(g)
	return Model{
		grid:    g,
		initial: g.Clone(),
		status:  engine.ScanStatus(g),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "u":
		return m.undoMove(), nil

	case "r":
		return m.restart(), nil

	case "h", "left":
		return m.move(engine.Left), nil
	case "j", "down":
		return m.move(engine.Down), nil
	case "k", "up":
		return m.move(engine.Up), nil
	case "l", "right":
		return m.move(engine.Right), nil
	}

	return m, nil
}

// View renders the board, status line and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return Render(m.grid, m.status, len(m.moves), m.showHelp)
}

// Status returns the final status, used for the process exit code.
func (m Model) Status() engine.Status {
	return m.status
}

// Moves returns the commands played so far in hjkl form.
func (m Model) Moves() string {
	return level.EncodeMoves(m.moves)
}

// Grid returns a copy of the current board.
func (m Model) Grid() engine.Grid {
	return m.grid.Clone()
}

// move plays one sliding move, keeping an undo snapshot.
func (m Model) move(d engine.Direction) Model {
	if m.status.Terminal() {
		return m
	}

	m.undo = append(m.undo, snapshot{
		grid:  m.grid.Clone(),
		moves: m.moves,
	})

	status := engine.Move(m.grid, d)
	if status == engine.StatusInvalid {
		// Board untouched, drop the snapshot again
		m.undo = m.undo[:len(m.undo)-1]
		return m
	}

	engine.RecomputeBeams(m.grid)
	if status == engine.StatusUnfinished {
		status = engine.ScanStatus(m.grid)
	}

	m.status = status
	m.moves = append(m.moves[:len(m.moves):len(m.moves)], d)
	return m
}

// undoMove restores the board as it was before the last move.
func (m Model) undoMove() Model {
	if len(m.undo) == 0 {
		return m
	}

	last := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.grid = last.grid
	m.moves = last.moves
	m.status = engine.ScanStatus(m.grid)
	return m
}

// restart puts the starting board back and clears the move list.
func (m Model) restart() Model {
	m.grid = m.initial.Clone()
	m.status = engine.ScanStatus(m.grid)
	m.moves = nil
	m.undo = nil
	return m
}
