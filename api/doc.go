// Package api provides the HTTP REST API for Ram Knight.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Level listing and upload
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (body: {"level": "classic"})
//   - GET /api/sessions - List all sessions (sort, order, limit params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current board
//   - POST /api/sessions/{id}/move - Execute one move
//   - POST /api/sessions/{id}/bulk-move - Execute an hjkl command string
//   - POST /api/sessions/{id}/reset - Restore the starting board
//   - GET /api/sessions/{id}/history - Get move history with pagination
//
// Levels:
//   - GET /api/levels - List available levels
//   - POST /api/levels - Upload a level (body: {"name": ..., "content": ...})
//
// Other:
//   - GET /ws?session={id} - WebSocket upgrade for live board updates
//   - GET /health - Health check
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A move is sent as:
//
//	{"direction": "left"}   // or "h", "j", "k", "l"
//
// and a bulk move as:
//
//	{"moves": "hhjl"}
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{"error": "error message"}
package api
