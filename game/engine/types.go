package engine

// Tile represents one cell of the level grid. The external single-character
// level encoding lives in game/level; the engine never touches characters.
type Tile int

const (
	Floor Tile = iota
	Rubble
	Trail
	Ram
	RamVictorious
	RamDefeated
	Finish
	Wall
	DamagedWall
	Trap
	Hole
	HeavyWeight
	SlidingWeight
	EmitterUp
	EmitterDown
	EmitterLeft
	EmitterRight
	BeamHorizontal
	BeamVertical
	BeamCross

	tileCount // sentinel, keep last
)

var tileNames = [...]string{
	Floor:          "floor",
	Rubble:         "rubble",
	Trail:          "trail",
	Ram:            "ram",
	RamVictorious:  "ram_victorious",
	RamDefeated:    "ram_defeated",
	Finish:         "finish",
	Wall:           "wall",
	DamagedWall:    "damaged_wall",
	Trap:           "trap",
	Hole:           "hole",
	HeavyWeight:    "heavy_weight",
	SlidingWeight:  "sliding_weight",
	EmitterUp:      "emitter_up",
	EmitterDown:    "emitter_down",
	EmitterLeft:    "emitter_left",
	EmitterRight:   "emitter_right",
	BeamHorizontal: "beam_horizontal",
	BeamVertical:   "beam_vertical",
	BeamCross:      "beam_cross",
}

// Known reports whether t is a member of the closed tile set.
func (t Tile) Known() bool {
	return t >= 0 && t < tileCount
}

func (t Tile) String() string {
	if !t.Known() {
		return "unknown"
	}
	return tileNames[t]
}

// IsRamVariant reports whether t is the live, victorious or defeated actor.
func (t Tile) IsRamVariant() bool {
	return t == Ram || t == RamVictorious || t == RamDefeated
}

// IsEmitter reports whether t is a laser emitter of any direction.
func (t Tile) IsEmitter() bool {
	return t == EmitterUp || t == EmitterDown || t == EmitterLeft || t == EmitterRight
}

// IsBeam reports whether t is a derived laser beam tile.
func (t Tile) IsBeam() bool {
	return t == BeamHorizontal || t == BeamVertical || t == BeamCross
}

// walkable reports whether the ram slides through t freely.
func (t Tile) walkable() bool {
	return t == Floor || t == Rubble || t == Trail
}

// lethal reports whether entering t kills the ram.
func (t Tile) lethal() bool {
	return t == Trap || t.IsBeam()
}

// crushable reports whether a pushed weight may land on t. Traps and beams
// are destroyed by the weight landing on them.
func (t Tile) crushable() bool {
	return t.walkable() || t.lethal()
}

// blocksLaser reports whether a beam trace stops at t without marking it.
// Traps, holes and sliding weights are transparent: a beam overwrites them.
func (t Tile) blocksLaser() bool {
	switch t {
	case Finish, Wall, DamagedWall, HeavyWeight, RamDefeated, RamVictorious:
		return true
	}
	return t.IsEmitter()
}

// EmitterDirection returns the beam direction of an emitter tile.
func (t Tile) EmitterDirection() (Direction, bool) {
	switch t {
	case EmitterUp:
		return Up, true
	case EmitterDown:
		return Down, true
	case EmitterLeft:
		return Left, true
	case EmitterRight:
		return Right, true
	}
	return 0, false
}

// Direction is one of the four cardinal movement directions.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

// Directions lists all movement directions in a stable order.
var Directions = [4]Direction{Left, Down, Up, Right}

var directionNames = [...]string{
	Left:  "left",
	Down:  "down",
	Up:    "up",
	Right: "right",
}

func (d Direction) String() string {
	if d < Left || d > Right {
		return "invalid"
	}
	return directionNames[d]
}

// Delta returns the (row, col) offset of a single step in direction d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	}
	return 0, 0
}

// horizontal reports whether d moves along the column axis.
func (d Direction) horizontal() bool {
	return d == Left || d == Right
}

// ParseDirection converts a direction name ("left", "down", "up", "right")
// into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return Left, true
	case "down":
		return Down, true
	case "up":
		return Up, true
	case "right":
		return Right, true
	}
	return 0, false
}

// Position is a (row, column) coordinate on the grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the adjacent position in direction d. It performs no bounds
// check; use Grid.InBounds before dereferencing.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Status is the outcome of a validation or movement operation. The numeric
// values are a stable external contract: they double as process exit codes.
type Status int

const (
	StatusVictory    Status = 0
	StatusInvalid    Status = 1
	StatusUnfinished Status = 2
	StatusDefeated   Status = 3
)

var statusNames = [...]string{
	StatusVictory:    "victory",
	StatusInvalid:    "invalid",
	StatusUnfinished: "unfinished",
	StatusDefeated:   "defeated",
}

func (s Status) String() string {
	if s < StatusVictory || s > StatusDefeated {
		return "unknown"
	}
	return statusNames[s]
}

// Terminal reports whether s ends the game.
func (s Status) Terminal() bool {
	return s != StatusUnfinished
}
