package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
	"github.com/ramknight/ramk/game/service"
)

// FilePersistence implements SessionPersistence using file system storage.
// Each session lives in one JSON file named after its ID.
type FilePersistence struct {
	sessionsDir string
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{sessionsDir: sessionsDir}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := persist(session)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return restore(&data)
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// persist flattens a session into its stored form.
func persist(session *service.Session) *PersistedSessionData {
	return &PersistedSessionData{
		ID:             session.ID,
		LevelName:      session.LevelName,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		InitialBoard:   strings.Split(level.Encode(session.Game.Initial()), "\n"),
		Board:          strings.Split(level.Encode(session.Game.Grid()), "\n"),
		History:        session.Game.History(),
	}
}

// restore rebuilds a live session from its stored form. The starting board
// seeds the game so Reset still works, then the live board and history are
// layered back on.
func restore(data *PersistedSessionData) (*service.Session, error) {
	initial, err := level.ParseString(strings.Join(data.InitialBoard, "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse starting board: %w", err)
	}

	game, err := engine.NewGame(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild game: %w", err)
	}

	board, err := level.ParseString(strings.Join(data.Board, "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse live board: %w", err)
	}
	if err := game.SetState(board, data.History); err != nil {
		return nil, fmt.Errorf("failed to restore game state: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Game:           game,
		LevelName:      data.LevelName,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
