// Package levelsvc implements the level service: the HTTP API the game
// fetches its stage descriptors from.
//
// The package provides:
//   - A SQLite-backed stage store
//   - A seed routine installing the built-in ten-stage set
//   - The HTTP handler serving GET /level/{stage_number}
//
// Wire Format:
//
// A successful response wraps the descriptor in an envelope:
//
//	{"success": true, "data": {"stage_number": 1, "layout": "...", ...}}
//
// Failures carry {"error": "..."} with status 400 for a bad stage number,
// 404 for an unknown stage and 500 for storage trouble. Responses include
// permissive CORS headers so browser-hosted clients can call the API
// directly.
//
// The store and handler are deliberately independent of the game server;
// cmd/levelsvc runs them as their own process, which is also how the game's
// fetch timeouts and failure handling get exercised in development.
package levelsvc
