// Package websocket provides the WebSocket transport for Maze Runner.
//
// The websocket package implements:
//   - Real-time push of game state to watchers
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine pair that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded envelopes:
//   - State updates: {session_id: "...", event: "state_update", state: {...}}
//   - Application events: {session_id: "...", event: "session_deleted", data: ...}
//
// Connections are watch-only. Moves and other commands arrive over the
// REST API; the hub exists to push the resulting state changes out.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// The hub satisfies service.Broadcaster, so the game service can
//	// publish snapshots directly to it.
//	svc := service.NewGameService(sessions, fetcher, sink, service.Config{
//		Broadcaster: hub,
//	})
//
// Concurrency:
//
// The hub's Run loop owns the session map. Broadcast entry points queue
// onto a buffered channel and never block, so a slow or saturated watcher
// cannot stall a game runtime.
package websocket
