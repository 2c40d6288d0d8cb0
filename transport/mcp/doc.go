// Package mcp provides the Model Context Protocol interface for Maze Runner.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for session and game operations
//   - Text rendering of game state for language models
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create new game session
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - delete_session: Tear a session down
//   - start_game: Begin a run (loads stage 1)
//   - game_state: Get current game state with the maze rendered
//   - move: Execute single directional movement
//   - advance_stage: Load the next stage after a clear
//   - restart_game: Restart the run from stage 1
//   - game_instructions: Get comprehensive game instructions
//
// Architecture:
//
// The client is deliberately thin: every tool call is proxied to the REST
// API, so the MCP surface and the HTTP surface can never disagree about
// game rules. The only state held here is the base URL and an HTTP client.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to autonomously play the game,
// manage multiple concurrent sessions, and analyze maze layouts rendered
// as text grids.
package mcp
