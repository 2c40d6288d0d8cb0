package service

import (
	"time"

	"github.com/localfirst-games/mazerunner/game/analytics"
	"github.com/localfirst-games/mazerunner/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"player_id"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	State          *Snapshot `json:"state,omitempty"`
}

// Snapshot is a self-contained view of one game at a point in time.
// Transports render it directly; nothing in it aliases live engine state.
type Snapshot struct {
	PlayerID      string            `json:"player_id"`
	Phase         string            `json:"phase"` // idle|loading|playing|stage_complete|game_complete
	TotalStages   int               `json:"total_stages"`
	Stage         *StageView        `json:"stage,omitempty"` // nil while idle
	StagesCleared int               `json:"stages_cleared"`
	TotalMoves    int               `json:"total_moves"`
	TotalSeconds  float64           `json:"total_seconds"`
	Results       []StageResultView `json:"results,omitempty"`
	LastError     string            `json:"last_error,omitempty"` // most recent stage load failure, cleared on retry
}

// StageView describes the stage a game currently holds. While the stage is
// loading only Number and Status are populated; the maze itself appears
// once the descriptor has been fetched and parsed.
type StageView struct {
	Number         int             `json:"number"`
	Status         string          `json:"status"` // loading|playing|complete
	Grid           []string        `json:"grid,omitempty"`
	Width          int             `json:"width,omitempty"`
	Height         int             `json:"height,omitempty"`
	Start          engine.Position `json:"start"`
	End            engine.Position `json:"end"`
	Player         engine.Position `json:"player"`
	Moves          int             `json:"moves"`
	ElapsedSeconds float64         `json:"elapsed_seconds"`
}

// StageResultView records one cleared stage
type StageResultView struct {
	Stage   int     `json:"stage"`
	Moves   int     `json:"moves"`
	Seconds float64 `json:"seconds"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Direction string      `json:"direction"`
	Outcome   string      `json:"outcome"` // rejected|accepted|finished
	Reason    string      `json:"reason,omitempty"`
	Events    []GameEvent `json:"events,omitempty"`
	State     *Snapshot   `json:"state"`
}

// GameEvent represents a lifecycle event surfaced alongside a move
type GameEvent struct {
	Type      string    `json:"type"` // "stage_complete", "game_complete"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceStats summarizes the service for operators
type ServiceStats struct {
	ActiveSessions int             `json:"active_sessions"`
	Analytics      analytics.Stats `json:"analytics"`
}
