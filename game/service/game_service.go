package service

import (
	"context"
	"errors"
	"time"

	"github.com/localfirst-games/mazerunner/game/analytics"
	"github.com/localfirst-games/mazerunner/game/level"
)

// ErrSessionNotFound reports a session ID with no live session behind it.
var ErrSessionNotFound = errors.New("session not found")

// GameService defines all game-related operations exposed to transports
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, playerID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	StartGame(ctx context.Context, sessionID string) (*Snapshot, error)
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	AdvanceStage(ctx context.Context, sessionID string) (*Snapshot, error)
	RestartGame(ctx context.Context, sessionID string) (*Snapshot, error)

	// Game State
	GetState(ctx context.Context, sessionID string) (*Snapshot, error)
	Stats(ctx context.Context) (*ServiceStats, error)
}

// LevelFetcher retrieves stage descriptors. Implemented by level.Client.
type LevelFetcher interface {
	Fetch(ctx context.Context, stage int) (*level.Descriptor, error)
}

// EventSink accepts telemetry without ever blocking the caller. Implemented
// by analytics.Dispatcher.
type EventSink interface {
	Submit(analytics.Event)
	Stats() analytics.Stats
}

// Broadcaster pushes snapshots to watchers of a session. Implemented by the
// websocket hub. Implementations must not block; a slow watcher is the
// hub's problem, never the game loop's.
type Broadcaster interface {
	BroadcastSnapshot(sessionID string, snap *Snapshot)
}

// SessionManager defines session registry operations. Implemented by the
// session package.
type SessionManager interface {
	Create(build func(sessionID string) *Runtime) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Count() int
}

// Session is one hosted game: a runtime plus registry metadata.
type Session struct {
	ID             string
	Runtime        *Runtime
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
