// Package mcp provides the Model Context Protocol server for Ram Knight.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the current board
//   - move: Execute one sliding move
//   - bulk_move: Execute an hjkl command string
//   - reset_game: Restore the starting board
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with level selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_levels: List available levels
//   - game_instructions: Full rules and tile legend
//   - describe_tile: Explain one board cell
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: the underlying MCP server can be mounted on an HTTP endpoint
//
// Usage:
//
//	// Stdio mode
//	srv := mcp.NewServer(gameService)
//	srv.ServeStdio()
//
//	// HTTP mode
//	mcpServer := srv.GetMCPServer()
//	// mount mcpServer.HandleMessage behind an HTTP handler
//
// AI Integration:
//
// The MCP interface lets AI agents play autonomously: read the board, plan a
// route, push weights, dodge lasers and submit whole hjkl command strings.
package mcp
