package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramknight/ramk/game/engine"
)

// Color palette
var (
	floorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#3a3a5e"))

	wallStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	damagedWallStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#2e2e2e")).
				Foreground(lipgloss.Color("#8B6914"))

	ramStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	ramDeadStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	ramWonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffff44")).
			Bold(true)

	finishStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a4a2e")).
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	hazardStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	beamStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2e1a1a")).
			Foreground(lipgloss.Color("#ff6600")).
			Bold(true)

	weightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#4488ff")).
			Bold(true)

	emitterStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ff44ff")).
			Bold(true)

	// Status line styles
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	victoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true)

	defeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// Render draws the board with a status line and optional key help.
func Render(grid engine.Grid, status engine.Status, moveCount int, showHelp bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("RAM KNIGHT"))
	b.WriteString("\n\n")
	b.WriteString(RenderBoard(grid))
	b.WriteString("\n\n")

	switch status {
	case engine.StatusVictory:
		b.WriteString(victoryStyle.Render("VICTORY! The ram reached the finish."))
	case engine.StatusDefeated:
		b.WriteString(defeatStyle.Render("DEFEATED. The ram was killed."))
	default:
		fmt.Fprintf(&b, "Moves: %d", moveCount)
	}
	b.WriteString("\n")

	if showHelp {
		b.WriteString(helpStyle.Render(helpText()))
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render("hjkl/Arrows: Move | u: Undo | r: Restart | ?: Help | q: Quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderBoard converts a grid into a styled terminal string. Each cell is
// two characters wide for a square-ish appearance.
func RenderBoard(grid engine.Grid) string {
	rows := make([]string, 0, len(grid))
	for _, row := range grid {
		var cells []string
		for _, t := range row {
			cells = append(cells, renderTile(t))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

// renderTile renders a single tile with the appropriate style.
func renderTile(t engine.Tile) string {
	switch t {
	case engine.Ram:
		return ramStyle.Render("@>")
	case engine.RamDefeated:
		return ramDeadStyle.Render("><")
	case engine.RamVictorious:
		return ramWonStyle.Render("@!")
	case engine.Finish:
		return finishStyle.Render("FI")
	case engine.Wall:
		return wallStyle.Render("██")
	case engine.DamagedWall:
		return damagedWallStyle.Render("▒▒")
	case engine.Rubble:
		return floorStyle.Render("░░")
	case engine.Trail:
		return floorStyle.Render("··")
	case engine.Trap:
		return hazardStyle.Render("xx")
	case engine.Hole:
		return hazardStyle.Render("()")
	case engine.HeavyWeight:
		return weightStyle.Render("▓▓")
	case engine.SlidingWeight:
		return weightStyle.Render("▚▚")
	case engine.EmitterUp:
		return emitterStyle.Render("^^")
	case engine.EmitterDown:
		return emitterStyle.Render("vv")
	case engine.EmitterLeft:
		return emitterStyle.Render("<<")
	case engine.EmitterRight:
		return emitterStyle.Render(">>")
	case engine.BeamHorizontal:
		return beamStyle.Render("--")
	case engine.BeamVertical:
		return beamStyle.Render("||")
	case engine.BeamCross:
		return beamStyle.Render("++")
	default:
		return floorStyle.Render("  ")
	}
}

func helpText() string {
	return `Keys:
  h / left   slide left        u  undo last move
  j / down   slide down        r  restart level
  k / up     slide up          ?  toggle this help
  l / right  slide right       q  quit

The ram slides until something stops it. Reach F to win.
Walls crack (M -> m -> rubble), weights push, lasers kill.`
}
