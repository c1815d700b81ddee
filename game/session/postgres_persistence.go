package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/ramknight/ramk/game/service"
)

// PostgresPersistence implements SessionPersistence backed by PostgreSQL.
// The stored row mirrors PersistedSessionData, with the boards and history
// packed into JSONB columns.
type PostgresPersistence struct {
	db *sql.DB
}

// NewPostgresPersistence opens a connection and ensures the schema exists
func NewPostgresPersistence(connectionString string) (*PostgresPersistence, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &PostgresPersistence{db: db}
	if err := p.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return p, nil
}

func (p *PostgresPersistence) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS game_sessions (
		id TEXT PRIMARY KEY,
		level_name TEXT NOT NULL,
		initial_board JSONB NOT NULL,
		board JSONB NOT NULL,
		history JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		last_accessed_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	`

	_, err := p.db.Exec(schema)
	return err
}

// Save upserts a session row
func (p *PostgresPersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := persist(session)

	initialJSON, err := json.Marshal(data.InitialBoard)
	if err != nil {
		return fmt.Errorf("failed to marshal starting board: %w", err)
	}
	boardJSON, err := json.Marshal(data.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	historyJSON, err := json.Marshal(data.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	query := `
	INSERT INTO game_sessions (id, level_name, initial_board, board, history, created_at, last_accessed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id)
	DO UPDATE SET
		board = $4, history = $5, last_accessed_at = $7
	`

	_, err = p.db.Exec(query,
		data.ID, data.LevelName, string(initialJSON), string(boardJSON),
		string(historyJSON), data.CreatedAt, data.LastAccessedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Load reads a session row and rebuilds the live game
func (p *PostgresPersistence) Load(id string) (*service.Session, error) {
	query := `SELECT id, level_name, initial_board, board, history, created_at, last_accessed_at FROM game_sessions WHERE id = $1`

	var data PersistedSessionData
	var initialJSON, boardJSON, historyJSON []byte

	err := p.db.QueryRow(query, id).Scan(
		&data.ID, &data.LevelName, &initialJSON, &boardJSON,
		&historyJSON, &data.CreatedAt, &data.LastAccessedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal(initialJSON, &data.InitialBoard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal starting board: %w", err)
	}
	if err := json.Unmarshal(boardJSON, &data.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	if err := json.Unmarshal(historyJSON, &data.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return restore(&data)
}

// Delete removes a session row
func (p *PostgresPersistence) Delete(id string) error {
	result, err := p.db.Exec(`DELETE FROM game_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListAll returns all persisted session IDs
func (p *PostgresPersistence) ListAll() ([]string, error) {
	rows, err := p.db.Query(`SELECT id FROM game_sessions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Exists checks if a session row exists
func (p *PostgresPersistence) Exists(id string) bool {
	var one int
	err := p.db.QueryRow(`SELECT 1 FROM game_sessions WHERE id = $1`, id).Scan(&one)
	return err == nil
}

// Close releases the database connection
func (p *PostgresPersistence) Close() error {
	return p.db.Close()
}
