// Package service provides the business logic layer for the maze runner.
//
// The service package implements:
//   - Multi-session game management
//   - The per-game runtime that drives the stage lifecycle
//   - Move processing and snapshot rendering
//   - Level fetching and analytics wiring
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// LevelFetcher retrieves stage descriptors from the level API.
// EventSink accepts fire-and-forget telemetry.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session hosts a Runtime: a single goroutine that owns
// one engine.Game and serializes every command against it, so the engine
// itself stays lock-free. Level fetches run off the loop and deliver back
// into it, which is what keeps movement input inert while a stage loads.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	svc := service.NewGameService(sessionMgr, levelClient, dispatcher, service.Config{
//		DefaultPlayerID: "anonymous",
//		TotalStages:     10,
//	})
//
//	info, err := svc.CreateSession(ctx, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Begin the run and play
//	snap, err := svc.StartGame(ctx, info.ID)
//	result, err := svc.Move(ctx, info.ID, "up")
//
// Session Management:
//
// Sessions are identified by UUIDs and maintain independent game state.
// Multiple sessions run concurrently; each one's runtime shuts down when the
// session is deleted or expires. Sessions track creation and last access
// time so an idle-session sweeper can reclaim them.
package service
