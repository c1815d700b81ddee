package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ramknight/ramk/game/service"
)

// Server exposes the game over the Model Context Protocol. Tools call the
// game service directly, so the same Server works both over stdio and
// mounted inside an HTTP server.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server wired to the game service
func NewServer(gameService service.GameService) *Server {
	s := &Server{service: gameService}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Ram Knight",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ram Knight - MCP Interface

GAME OBJECTIVE:
Drive the ram (G) to the finish tile (F). Each move sends the ram sliding in
one cardinal direction until something stops it.

AVAILABLE TOOLS:
- game_state: Get the current board
- move: Single move (left/down/up/right, or h/j/k/l)
- bulk_move: Execute an hjkl command string
- reset_game: Restore the starting board
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_levels: List available levels
- game_instructions: Get the full rules and tile legend
- describe_tile: Get detailed info about one board cell

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck
debugging - explain your reasoning!`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Session management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional level selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Name of the level to play (optional)",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	// Game operations
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Send the ram sliding in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"left", "down", "up", "right", "h", "j", "k", "l"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute a command string of hjkl moves in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type":        "string",
					"description": "Command string, e.g. \"hhjl\" (h=left j=down k=up l=right)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Restore the starting board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleMoveHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListLevels)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full game rules and tile legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get detailed information about one board cell, including whether the ram can pass it, break it or die on it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to describe (0-based, top to bottom)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to describe (0-based, left to right)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, s.handleDescribeTile)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server over stdin/stdout
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool handlers

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	levelName, _ := args["level"].(string)

	session, err := s.service.CreateSession(ctx, levelName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s\n\n%s",
		session.ID, session.LevelName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions))
	for _, sess := range sessions {
		result += fmt.Sprintf("- %s (Level: %s, Created: %s)\n",
			sess.ID, sess.LevelName, sess.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	session, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(session)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	result, err := s.service.Move(ctx, sessionID, direction)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	moves, _ := args["moves"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	result, err := s.service.BulkMove(ctx, sessionID, moves)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(result)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	state, err := s.service.Reset(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Game reset successfully\n\n%s", formatGameState(state))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	opts := service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}
	if page, ok := args["page"].(float64); ok {
		opts.Page = int(page)
	}
	if limit, ok := args["limit"].(float64); ok {
		opts.Limit = int(limit)
	}

	history, err := s.service.GetMoveHistory(ctx, sessionID, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levels, err := s.service.ListLevels(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Levels:\n\n"
	for _, info := range levels {
		result += fmt.Sprintf("• %s\n  Grid: %dx%d, Walls: %d, Traps: %d, Emitters: %d, Weights: %d\n\n",
			info.LevelID, info.Height, info.Width, info.Walls, info.Traps, info.Emitters, info.Weights)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Ram Knight - Complete Instructions

GAME OBJECTIVE:
Drive the ram (G) onto the finish tile (F). The ram never takes a single
step: every move sends it sliding across the board until something stops it.

MOVEMENT:
• left (h), down (j), up (k), right (l)
• The ram slides over floor ( ), rubble (_) and its own trail (.) until it
  meets an obstruction or the board edge.

TILE LEGEND:
• G - the ram (your piece)
• @ - ram standing victorious next to the finish
• Y - ram defeated
• F - finish tile; reaching it wins the game
• M - wall; ramming it once cracks it to m
• m - damaged wall; ramming it again grinds it to rubble _
• _ - rubble; the ram slides straight over it
• . - trail left behind by the ram
• x - trap; sliding into it kills the ram
• o - hole; entering it stops the slide on the spot
• W - heavy weight; the ram shoves it exactly one tile per hit
• w - sliding weight; a hit sends it skidding and the ram follows one tile
• ^ v < > - laser emitters firing up/down/left/right
• | - vertical laser beam (lethal)
• - - horizontal laser beam (lethal)
• + - crossing laser beams (lethal)

WEIGHTS:
• A heavy weight (W) moves one tile per ram hit. It crushes traps and beams
  it lands on, and a hole swallows it, leaving rubble. A blocked weight
  stops the ram with no effect.
• A sliding weight (w) skids until obstructed, like the ram. When it moves,
  the ram advances one tile behind it.
• Pushed weights can shield or expose laser beams, so watch the board after
  every push.

LASERS:
• Emitters fire a beam until it hits a wall, weight, finish or another
  emitter. Beams are redrawn after every move.
• The ram dies if it slides into a beam, or if a redrawn beam lands on it.

STATUS CODES:
• 0 victory, 1 invalid, 2 unfinished, 3 defeated

STRATEGY NOTES:
• Plan the whole slide, not one step. The ram stops only where the board
  stops it.
• Use walls and weights as brakes to stop on a chosen column or row.
• Holes are one-time brakes: the slide ends in the hole cell.
• Before each move, trace where every laser beam will land afterwards.

Use bulk_move with an hjkl string once you have a full route planned.`

	return mcp.NewToolResultText(instructions), nil
}

func (s *Server) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	rowF, rowOK := args["row"].(float64)
	colF, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}
	row, col := int(rowF), int(colF)

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if row < 0 || row >= state.Height || col < 0 || col >= state.Width {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Cell (%d, %d) is out of bounds. Board is %d rows x %d cols (0-based)",
			row, col, state.Height, state.Width)), nil
	}

	ch := rune(state.Board[row][col])
	result := fmt.Sprintf("Cell (row %d, col %d): %q\n%s", row, col, ch, describeTile(ch))
	return mcp.NewToolResultText(result), nil
}

// describeTile explains one board character.
func describeTile(ch rune) string {
	switch ch {
	case 'G':
		return "The ram. This is your piece."
	case '@':
		return "Ram victorious. The game is won."
	case 'Y':
		return "Ram defeated. The game is lost."
	case 'F':
		return "Finish tile. Slide the ram here to win."
	case ' ':
		return "Floor. The ram slides straight over it."
	case '_':
		return "Rubble. Passable, the ram slides over it."
	case '.':
		return "Trail left by the ram. Passable."
	case 'M':
		return "Wall. One ram hit cracks it to m; it stops the slide and blocks lasers."
	case 'm':
		return "Damaged wall. One more hit grinds it to rubble; blocks lasers."
	case 'x':
		return "Trap. Sliding into it kills the ram. A pushed weight destroys it."
	case 'o':
		return "Hole. Entering it stops the slide; a weight pushed in fills it with rubble."
	case 'W':
		return "Heavy weight. Each ram hit shoves it exactly one tile; blocks lasers."
	case 'w':
		return "Sliding weight. A ram hit sends it skidding; lasers pass through it."
	case '^':
		return "Emitter firing a laser upward. Ramming it destroys it."
	case 'v':
		return "Emitter firing a laser downward. Ramming it destroys it."
	case '<':
		return "Emitter firing a laser to the left. Ramming it destroys it."
	case '>':
		return "Emitter firing a laser to the right. Ramming it destroys it."
	case '|':
		return "Vertical laser beam. Lethal to the ram."
	case '-':
		return "Horizontal laser beam. Lethal to the ram."
	case '+':
		return "Crossing laser beams. Lethal to the ram."
	}
	return "Unknown tile."
}

// Formatters

func formatGameState(state *service.GameState) string {
	var b strings.Builder
	b.WriteString("Board:\n")
	for _, row := range state.Board {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nStatus: %s (code %d)\n", state.Status, state.StatusCode)
	fmt.Fprintf(&b, "Moves so far: %d", state.TotalMoves)
	if state.Moves != "" {
		fmt.Fprintf(&b, " (%s)", state.Moves)
	}
	b.WriteByte('\n')
	if state.GameOver {
		b.WriteString("The game is over.\n")
	}
	return b.String()
}

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", info.ID)
	fmt.Fprintf(&b, "Level: %s\n", info.LevelName)
	fmt.Fprintf(&b, "Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Last accessed: %s\n\n", info.LastAccessedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(formatGameState(info.GameState))
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "Move executed. Status: %s (code %d)\n\n", result.Status, result.StatusCode)
	} else {
		fmt.Fprintf(&b, "Move failed. Status: %s (code %d)\n\n", result.Status, result.StatusCode)
	}
	if result.Message != "" {
		b.WriteString(result.Message)
		b.WriteString("\n\n")
	}
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Executed %d of %d moves. Status: %s (code %d)\n",
		result.MovesExecuted, result.RequestedMoves, result.Status, result.StatusCode)
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason)
	}
	b.WriteByte('\n')
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d of %d, %d total moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, entry := range history.Moves {
		fmt.Fprintf(&b, "%3d. %-5s (%s) -> %s\n",
			entry.MoveNumber, entry.Direction, entry.Command, entry.Status)
	}
	return b.String()
}
