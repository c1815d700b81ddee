// Package session provides session management for Ram Knight games.
//
// Manager is the main session manager. Each session owns its own game
// instance plus metadata like creation time and last access time. Session
// IDs are UUIDs and are matched case-insensitively.
//
// The manager is thread-safe: multiple goroutines can create, retrieve and
// modify different sessions concurrently.
//
// Persistence is optional. When a SessionPersistence is supplied, sessions
// are written through on create and on explicit Save calls, and sessions not
// found in memory are transparently loaded from storage. Two backends are
// provided: FilePersistence keeps one JSON file per session, while
// PostgresPersistence stores sessions in a game_sessions table.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "classic", grid)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Stale sessions can be removed with CleanupExpiredSessions.
package session
