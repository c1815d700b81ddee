package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance.
func NewGameService(sessions SessionManager, levels LevelManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

// CreateSession starts a new game on the named level, or the default level
// when the name is empty.
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var grid engine.Grid
	if levelName != "" {
		var err error
		grid, err = s.levels.LoadLevel(levelName)
		if err != nil {
			if errors.Is(err, level.ErrLevelNotFound) {
				if infos, listErr := s.levels.ListLevels(); listErr == nil && len(infos) > 0 {
					ids := make([]string, 0, len(infos))
					for _, info := range infos {
						ids = append(ids, info.LevelID)
					}
					return nil, fmt.Errorf("level %q not found, available levels: %s", levelName, strings.Join(ids, ", "))
				}
			}
			return nil, fmt.Errorf("failed to load level %s: %w", levelName, err)
		}
	} else {
		grid, levelName = s.levels.GetDefault()
	}

	sess, err := s.sessions.Create("", levelName, grid)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Delete(sessionID)
}

// Move executes a single move. The direction may be a name ("left") or an
// hjkl command character.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	dir, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}

	status := sess.Game.Move(dir)
	s.sessions.Save(sessionID)

	result := &MoveResult{
		Success:    status != engine.StatusInvalid,
		Status:     status.String(),
		StatusCode: int(status),
		GameState:  snapshot(sess),
	}
	if status.Terminal() {
		result.Message = terminalMessage(status)
	}
	return result, nil
}

// BulkMove executes an hjkl command string, stopping on the first terminal
// status, like the original batch mode.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID, moves string) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	dirs, err := level.ParseMoves(moves)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(dirs),
		Status:         sess.Game.Status().String(),
		StatusCode:     int(sess.Game.Status()),
	}
	for i, d := range dirs {
		status := sess.Game.Move(d)
		result.MovesExecuted++
		result.Status = status.String()
		result.StatusCode = int(status)
		if status.Terminal() {
			result.StoppedOnMove = i + 1
			result.StoppedReason = terminalMessage(status)
			break
		}
	}
	s.sessions.Save(sessionID)

	result.Success = engine.Status(result.StatusCode) != engine.StatusInvalid
	result.GameState = snapshot(sess)
	return result, nil
}

// Reset restores a session's starting board.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Game.Reset()
	s.sessions.Save(sessionID)
	return snapshot(sess), nil
}

// GetGameState returns the current board for a session.
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return snapshot(sess), nil
}

// GetMoveHistory returns paginated move history for a session.
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Game.History()
	entries := make([]MoveEntry, len(history))
	for i, rec := range history {
		entries[i] = MoveEntry{
			MoveNumber: rec.MoveNumber,
			Direction:  rec.Direction.String(),
			Command:    string(level.EncodeMove(rec.Direction)),
			Status:     rec.Status.String(),
			Timestamp:  rec.Timestamp,
		}
	}

	if opts.Order == "desc" {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 50
	}

	total := len(entries)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Moves:       entries[start:end],
		TotalMoves:  total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// ListLevels returns the available levels.
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*level.Info, error) {
	return s.levels.ListLevels()
}

// SaveLevel parses, validates and stores a level definition.
func (s *gameServiceImpl) SaveLevel(ctx context.Context, name, content string) error {
	grid, err := level.ParseString(content)
	if err != nil {
		return err
	}
	return s.levels.SaveLevel(name, grid)
}

// sessionInfo builds the wire view of a session.
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		LevelName:      sess.LevelName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      snapshot(sess),
	}
}

// snapshot encodes a session's live board and counters.
func snapshot(sess *Session) *GameState {
	grid := sess.Game.Grid()
	h, w := grid.Bounds()
	status := sess.Game.Status()

	history := sess.Game.History()
	dirs := make([]engine.Direction, len(history))
	for i, rec := range history {
		dirs[i] = rec.Direction
	}

	return &GameState{
		Board:      strings.Split(level.Encode(grid), "\n"),
		Height:     h,
		Width:      w,
		Status:     status.String(),
		StatusCode: int(status),
		GameOver:   status.Terminal(),
		TotalMoves: len(history),
		Moves:      level.EncodeMoves(dirs),
	}
}

// parseDirection accepts both direction names and hjkl command characters.
func parseDirection(s string) (engine.Direction, error) {
	if d, ok := engine.ParseDirection(s); ok {
		return d, nil
	}
	if len([]rune(s)) == 1 {
		if d, err := level.DecodeMove([]rune(s)[0]); err == nil {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid direction %q, use left/down/up/right or hjkl", s)
}

// terminalMessage maps a terminal status to its player-facing line.
func terminalMessage(status engine.Status) string {
	switch status {
	case engine.StatusVictory:
		return "The ram reached the finish. Victory!"
	case engine.StatusDefeated:
		return "The ram was killed. Defeat."
	case engine.StatusInvalid:
		return "The board is in an invalid state."
	}
	return ""
}
