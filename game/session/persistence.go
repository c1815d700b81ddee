package session

import (
	"time"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/service"
)

// SessionPersistence defines the interface for persisting sessions.
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. The starting and
// live boards are stored as encoded level rows so a session survives
// restarts without needing the level file it came from.
type PersistedSessionData struct {
	ID             string              `json:"id"`
	LevelName      string              `json:"level_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	InitialBoard   []string            `json:"initial_board"`
	Board          []string            `json:"board"`
	History        []engine.MoveRecord `json:"history"`
}
