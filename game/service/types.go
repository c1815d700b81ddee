package service

import "time"

// GameState is the wire representation of a live board.
type GameState struct {
	Board      []string `json:"board"` // encoded level rows, one string per row
	Height     int      `json:"height"`
	Width      int      `json:"width"`
	Status     string   `json:"status"`
	StatusCode int      `json:"status_code"` // victory=0 invalid=1 unfinished=2 defeated=3
	GameOver   bool     `json:"game_over"`
	TotalMoves int      `json:"total_moves"`
	Moves      string   `json:"moves"` // cumulative hjkl command string
}

// SessionInfo provides information about a game session.
type SessionInfo struct {
	ID             string     `json:"id"`
	LevelName      string     `json:"level_name"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	GameState      *GameState `json:"game_state"`
}

// MoveResult contains the result of a single move.
type MoveResult struct {
	Success    bool       `json:"success"`
	Status     string     `json:"status"`
	StatusCode int        `json:"status_code"`
	GameState  *GameState `json:"game_state"`
	Message    string     `json:"message,omitempty"`
}

// BulkMoveResult contains the result of a command string execution. The run
// stops on the first terminal status, like the original batch mode.
type BulkMoveResult struct {
	RequestedMoves int        `json:"requested_moves"`
	MovesExecuted  int        `json:"moves_executed"`
	Success        bool       `json:"success"`
	Status         string     `json:"status"`
	StatusCode     int        `json:"status_code"`
	StoppedOnMove  int        `json:"stopped_on_move,omitempty"` // 1-based index of the terminal move
	StoppedReason  string     `json:"stopped_reason,omitempty"`
	GameState      *GameState `json:"game_state"`
}

// MoveEntry is one record of a session's move history.
type MoveEntry struct {
	MoveNumber int    `json:"move_number"`
	Direction  string `json:"direction"`
	Command    string `json:"command"` // hjkl form
	Status     string `json:"status"`
	Timestamp  int64  `json:"timestamp"`
}

// HistoryOptions configures move history retrieval.
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history.
type HistoryResponse struct {
	Moves       []MoveEntry `json:"moves"`
	TotalMoves  int         `json:"total_moves"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
}
