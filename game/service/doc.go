// Package service defines the game-facing application layer: the GameService
// interface every transport (REST, WebSocket, MCP, CLI) talks to, and the
// result types they exchange.
//
// The service owns nothing itself; it composes a SessionManager for game
// lifecycle and a LevelManager for level files, and translates between wire
// shapes (directions as strings, boards as encoded rows) and engine types.
//
// Architecture:
//
//	transports (api, mcp, ui) -> GameService -> session.Manager -> engine.Game
//	                                          -> level.Manager  -> engine.Grid
package service
