package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ramknight/ramk/game/level"
	"github.com/ramknight/ramk/game/service"
	"github.com/ramknight/ramk/game/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "classic.txt"), []byte("G   F\n"), 0644); err != nil {
		t.Fatalf("write level: %v", err)
	}

	levels, err := level.NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	svc := service.NewGameService(session.NewManager(), levels)
	return NewServer(svc)
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content in result")
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)

	if s == nil {
		t.Fatal("Expected server to be created")
	}
	if s.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
	if s.GetMCPServer() == nil {
		t.Error("GetMCPServer returned nil")
	}
}

func TestHandleCreateSessionAndMove(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleCreateSession(ctx, callTool("create_session", map[string]interface{}{
		"level": "classic",
	}))
	if err != nil {
		t.Fatalf("create_session: %v", err)
	}
	created := textOf(t, result)
	if !strings.Contains(created, "Level: classic") {
		t.Errorf("create output missing level: %s", created)
	}
	if !strings.Contains(created, "G   F") {
		t.Errorf("create output missing board: %s", created)
	}

	// Pull the session ID out of the first line
	var sessionID string
	for _, line := range strings.Split(created, "\n") {
		if strings.HasPrefix(line, "Created session: ") {
			sessionID = strings.TrimPrefix(line, "Created session: ")
		}
	}
	if sessionID == "" {
		t.Fatalf("no session ID in output: %s", created)
	}

	result, err = s.handleMove(ctx, callTool("move", map[string]interface{}{
		"session_id": sessionID,
		"direction":  "right",
		"intent":     "straight run to the finish",
	}))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	moved := textOf(t, result)
	if !strings.Contains(moved, "victory") {
		t.Errorf("move output should report victory: %s", moved)
	}
	if !strings.Contains(moved, "....@F") {
		t.Errorf("move output should show the finished board: %s", moved)
	}
}

func TestHandleMove_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleMove(context.Background(), callTool("move", map[string]interface{}{
		"session_id": "missing",
		"direction":  "left",
	}))
	if err != nil {
		t.Fatalf("handleMove: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for an unknown session")
	}
}

func TestHandleBulkMove(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	created, err := s.service.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	result, err := s.handleBulkMove(ctx, callTool("bulk_move", map[string]interface{}{
		"session_id": created.ID,
		"moves":      "hl",
	}))
	if err != nil {
		t.Fatalf("bulk_move: %v", err)
	}
	text := textOf(t, result)
	if !strings.Contains(text, "Executed 2 of 2 moves") {
		t.Errorf("bulk output = %s", text)
	}
	if !strings.Contains(text, "victory") {
		t.Errorf("bulk run should end in victory: %s", text)
	}
}

func TestHandleListLevels(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleListLevels(context.Background(), callTool("list_levels", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("list_levels: %v", err)
	}
	text := textOf(t, result)
	if !strings.Contains(text, "classic") {
		t.Errorf("level list missing classic: %s", text)
	}
}

func TestHandleDescribeTile(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	created, err := s.service.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	result, err := s.handleDescribeTile(ctx, callTool("describe_tile", map[string]interface{}{
		"session_id": created.ID,
		"row":        float64(0),
		"col":        float64(4),
	}))
	if err != nil {
		t.Fatalf("describe_tile: %v", err)
	}
	text := textOf(t, result)
	if !strings.Contains(text, "Finish tile") {
		t.Errorf("cell (0,4) should describe the finish: %s", text)
	}

	result, err = s.handleDescribeTile(ctx, callTool("describe_tile", map[string]interface{}{
		"session_id": created.ID,
		"row":        float64(9),
		"col":        float64(9),
	}))
	if err != nil {
		t.Fatalf("describe_tile out of bounds: %v", err)
	}
	if !result.IsError {
		t.Error("out-of-bounds cell should be an error result")
	}
}

func TestHandleGameInstructions(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGameInstructions(context.Background(), callTool("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("game_instructions: %v", err)
	}
	text := textOf(t, result)

	expectedContent := []string{
		"GAME OBJECTIVE:",
		"TILE LEGEND:",
		"WEIGHTS:",
		"LASERS:",
		"STATUS CODES:",
	}
	for _, content := range expectedContent {
		if !strings.Contains(text, content) {
			t.Errorf("instructions missing %q", content)
		}
	}
}

func TestFormatGameState(t *testing.T) {
	state := &service.GameState{
		Board:      []string{"G  <", "   F"},
		Height:     2,
		Width:      4,
		Status:     "unfinished",
		StatusCode: 2,
		TotalMoves: 3,
		Moves:      "hjl",
	}

	result := formatGameState(state)

	for _, want := range []string{"G  <", "unfinished", "code 2", "Moves so far: 3", "(hjl)"} {
		if !strings.Contains(result, want) {
			t.Errorf("formatted state missing %q: %s", want, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []service.MoveEntry{
			{MoveNumber: 1, Direction: "left", Command: "h", Status: "unfinished"},
			{MoveNumber: 2, Direction: "right", Command: "l", Status: "victory"},
		},
		TotalMoves: 2,
		Page:       1,
		TotalPages: 1,
	}

	result := formatHistory(history)
	if !strings.Contains(result, "left") || !strings.Contains(result, "victory") {
		t.Errorf("history output = %s", result)
	}
}
