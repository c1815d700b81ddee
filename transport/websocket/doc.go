// Package websocket provides the WebSocket transport for Ram Knight.
//
// A central Hub manages all connections using a hub-and-spoke model. Each
// client connection gets a dedicated read and write goroutine.
//
// Connections are session-aware: clients attach to a session when they
// connect, and board updates are broadcast only to clients watching the same
// session. Outgoing messages are JSON-encoded Message values carrying the
// session ID, an event name and, for state updates, the full encoded board.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a move changes a board:
//	hub.BroadcastToSession(sessionID, state)
//
// The hub event loop owns the session-to-client map, so registration,
// unregistration and broadcasting never race each other.
package websocket
