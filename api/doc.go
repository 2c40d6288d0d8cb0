// Package api provides the HTTP REST API for Maze Runner.
//
// The api package implements:
//   - RESTful endpoints for session and game operations
//   - Error-to-status mapping for the service layer's sentinel errors
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"player_id": "..."} optional)
//   - GET /api/sessions - List sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game snapshot
//   - POST /api/sessions/{id}/start - Begin a run (loads stage 1)
//   - POST /api/sessions/{id}/move - Move ({"direction": "up|down|left|right"})
//   - POST /api/sessions/{id}/advance - Load the next stage after a clear
//   - POST /api/sessions/{id}/restart - Restart the run from stage 1
//
// Observability:
//   - GET /api/stats - Session counts and analytics delivery counters
//   - GET /api/health - Liveness check
//
// WebSocket:
//   - GET /ws?session={id} - Watch a session's state updates
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{"error": "session not found: abc1"}
//
// A rejected move is not an error. It comes back 200 with the outcome in
// the body:
//
//	{"direction": "up", "outcome": "rejected", "reason": "blocked", "state": {...}}
//
// Status Mapping:
//
//   - 404 for unknown sessions
//   - 400 for unknown directions and malformed bodies
//   - 409 for commands sent to a session that is shutting down
//   - 500 for everything else
package api
