// Package session provides session management for the maze runner.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session wraps a service.Runtime, the goroutine that owns that game's
// state; deleting or expiring a session shuts its runtime down.
//
// Session Identifiers:
//
// Sessions are identified by UUIDs generated at creation time. The ID is
// handed to the runtime builder before the session is stored, so transports
// that broadcast per-session state know their ID from the first snapshot.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and delete different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create(func(id string) *service.Runtime {
//		return service.NewRuntime(cfg)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// Sessions can be explicitly deleted or may expire based on inactivity.
// CleanupExpiredSessions removes sessions idle past a cutoff and closes
// their runtimes, freeing the goroutines behind them.
package session
