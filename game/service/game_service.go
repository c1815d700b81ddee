package service

import (
	"context"
	"time"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
)

// GameService defines all game-related operations exposed to transports.
type GameService interface {
	// Session management
	CreateSession(ctx context.Context, levelName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID, moves string) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*GameState, error)

	// Game state
	GetGameState(ctx context.Context, sessionID string) (*GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Levels
	ListLevels(ctx context.Context) ([]*level.Info, error)
	SaveLevel(ctx context.Context, name, content string) error
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id, levelName string, grid engine.Grid) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// LevelManager handles level file loading.
type LevelManager interface {
	LoadLevel(name string) (engine.Grid, error)
	ListLevels() ([]*level.Info, error)
	GetDefault() (engine.Grid, string)
	SaveLevel(name string, g engine.Grid) error
}

// Session represents an active game session.
type Session struct {
	ID             string
	Game           *engine.Game
	LevelName      string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
