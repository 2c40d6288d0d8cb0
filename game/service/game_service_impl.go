package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localfirst-games/mazerunner/game/engine"
)

// Config carries the service-level settings shared by every session.
type Config struct {
	// DefaultPlayerID labels sessions created without an explicit player.
	DefaultPlayerID string
	// TotalStages is the length of a full run.
	TotalStages int
	// TickInterval spaces periodic snapshot broadcasts while a stage is in
	// play. Zero disables them.
	TickInterval time.Duration
	Logger       *log.Logger
	// Broadcaster, when set, receives every session's snapshots for fan-out
	// to watchers.
	Broadcaster Broadcaster
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	cfg      Config
	sessions SessionManager
	fetcher  LevelFetcher
	events   EventSink
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, fetcher LevelFetcher, events EventSink, cfg Config) GameService {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.TotalStages < 1 {
		cfg.TotalStages = 1
	}
	return &gameServiceImpl{
		cfg:      cfg,
		sessions: sessions,
		fetcher:  fetcher,
		events:   events,
	}
}

// CreateSession creates a new game session hosting its own runtime
func (s *gameServiceImpl) CreateSession(ctx context.Context, playerID string) (*SessionInfo, error) {
	if playerID == "" {
		playerID = s.cfg.DefaultPlayerID
	}
	sess, err := s.sessions.Create(func(sessionID string) *Runtime {
		rcfg := RuntimeConfig{
			PlayerID:     playerID,
			TotalStages:  s.cfg.TotalStages,
			Fetcher:      s.fetcher,
			Events:       s.events,
			Logger:       s.cfg.Logger,
			TickInterval: s.cfg.TickInterval,
		}
		if b := s.cfg.Broadcaster; b != nil {
			rcfg.OnSnapshot = func(snap *Snapshot) { b.BroadcastSnapshot(sessionID, snap) }
		}
		return NewRuntime(rcfg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.info(ctx, sess)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(ctx, sess)
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		info, err := s.info(ctx, sess)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

// DeleteSession removes a game session and shuts its runtime down
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// StartGame begins a run, or retries a stage whose load failed
func (s *gameServiceImpl) StartGame(ctx context.Context, sessionID string) (*Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Runtime.Start(ctx)
}

// Move executes one directional command in the session's game
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Runtime.Move(ctx, dir)
}

// AdvanceStage requests the next stage once the current one is cleared
func (s *gameServiceImpl) AdvanceStage(ctx context.Context, sessionID string) (*Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Runtime.Advance(ctx)
}

// RestartGame begins a fresh run after the current one has finished
func (s *gameServiceImpl) RestartGame(ctx context.Context, sessionID string) (*Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Runtime.Restart(ctx)
}

// GetState returns the session's current snapshot
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Runtime.Snapshot(ctx)
}

// Stats summarizes the service for operators
func (s *gameServiceImpl) Stats(ctx context.Context) (*ServiceStats, error) {
	return &ServiceStats{
		ActiveSessions: s.sessions.Count(),
		Analytics:      s.events.Stats(),
	}, nil
}

// info renders a session into its wire view.
func (s *gameServiceImpl) info(ctx context.Context, sess *Session) (*SessionInfo, error) {
	snap, err := sess.Runtime.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &SessionInfo{
		ID:             sess.ID,
		PlayerID:       snap.PlayerID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          snap,
	}, nil
}

// touch resolves a session and refreshes its idle timer.
func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		return nil, err
	}
	return sess, nil
}
