package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/localfirst-games/mazerunner/game/analytics"
	"github.com/localfirst-games/mazerunner/game/engine"
	"github.com/localfirst-games/mazerunner/game/level"
	"github.com/localfirst-games/mazerunner/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(build func(sessionID string) *service.Runtime) (*service.Session, error) {
	id := fmt.Sprintf("test_%d", len(m.sessions)+1)
	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Runtime:        build(id),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	sess, exists := m.sessions[id]
	if !exists {
		return fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	sess.Runtime.Close()
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	sess, exists := m.sessions[id]
	if !exists {
		return fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

func (m *MockSessionManager) Count() int {
	return len(m.sessions)
}

// stubFetcher implements service.LevelFetcher with a pluggable function
type stubFetcher struct {
	fetch func(ctx context.Context, stage int) (*level.Descriptor, error)
}

func (f *stubFetcher) Fetch(ctx context.Context, stage int) (*level.Descriptor, error) {
	return f.fetch(ctx, stage)
}

// captureSink implements service.EventSink and records everything submitted
type captureSink struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (c *captureSink) Submit(e analytics.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureSink) Stats() analytics.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return analytics.Stats{Submitted: int64(len(c.events))}
}

func (c *captureSink) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.events))
	for i, e := range c.events {
		result[i] = e.Type
	}
	return result
}

// corridorDescriptor is a minimal stage: two steps right from S reach E.
func corridorDescriptor(stage int) *level.Descriptor {
	return &level.Descriptor{
		StageNumber: stage,
		Layout:      "#####\n#S.E#\n#####",
		Width:       5,
		Height:      3,
		StartX:      1,
		StartY:      1,
		EndX:        3,
		EndY:        1,
	}
}

func instantFetch(ctx context.Context, stage int) (*level.Descriptor, error) {
	return corridorDescriptor(stage), nil
}

func newTestService(fetch func(ctx context.Context, stage int) (*level.Descriptor, error), totalStages int) (service.GameService, *captureSink) {
	sink := &captureSink{}
	svc := service.NewGameService(NewMockSessionManager(), &stubFetcher{fetch: fetch}, sink, service.Config{
		DefaultPlayerID: "anonymous",
		TotalStages:     totalStages,
	})
	return svc, sink
}

func waitForPhase(t *testing.T, svc service.GameService, sessionID, phase string) *service.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := svc.GetState(context.Background(), sessionID)
		if err != nil {
			t.Fatalf("GetState() error = %v", err)
		}
		if snap.Phase == phase {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session %s never reached phase %q", sessionID, phase)
	return nil
}

func waitRuntimePhase(t *testing.T, rt *service.Runtime, phase string) *service.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := rt.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if snap.Phase == phase {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("runtime never reached phase %q", phase)
	return nil
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(instantFetch, 3)

	tests := []struct {
		name       string
		playerID   string
		wantPlayer string
	}{
		{
			name:       "default player",
			playerID:   "",
			wantPlayer: "anonymous",
		},
		{
			name:       "explicit player",
			playerID:   "alice",
			wantPlayer: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.playerID)
			if err != nil {
				t.Fatalf("CreateSession() error = %v", err)
			}
			if info.PlayerID != tt.wantPlayer {
				t.Errorf("PlayerID = %q, want %q", info.PlayerID, tt.wantPlayer)
			}
			if info.State == nil || info.State.Phase != "idle" {
				t.Errorf("new session state = %+v, want idle", info.State)
			}
			if info.State.TotalStages != 3 {
				t.Errorf("TotalStages = %d, want 3", info.State.TotalStages)
			}
		})
	}
}

func TestGameService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(instantFetch, 3)

	first, err := svc.CreateSession(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if _, err := svc.CreateSession(ctx, "bob"); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	infos, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(infos) != 2 {
		t.Errorf("ListSessions() returned %d sessions, want 2", len(infos))
	}

	got, err := svc.GetSession(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.ID != first.ID || got.PlayerID != "alice" {
		t.Errorf("GetSession() = %+v, want id %s player alice", got, first.ID)
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, first.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("GetSession() after delete error = %v, want ErrSessionNotFound", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, want 1", stats.ActiveSessions)
	}
}

func TestGameService_MoveErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(instantFetch, 3)

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		direction string
		wantErr   error
	}{
		{
			name:      "unknown session",
			sessionID: "nonexistent",
			direction: "up",
			wantErr:   service.ErrSessionNotFound,
		},
		{
			name:      "unknown direction",
			sessionID: info.ID,
			direction: "diagonal",
			wantErr:   engine.ErrUnknownDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Move(ctx, tt.sessionID, tt.direction)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Move() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGameService_MoveBeforeStartIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(instantFetch, 3)

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	result, err := svc.Move(ctx, info.ID, "up")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "rejected" {
		t.Errorf("Outcome = %q, want rejected", result.Outcome)
	}
	if result.Reason == "" {
		t.Error("expected a reason for the rejected move")
	}
	if result.State.Phase != "idle" {
		t.Errorf("phase = %q, want idle", result.State.Phase)
	}
}

func TestGameService_FullRun(t *testing.T) {
	ctx := context.Background()
	svc, sink := newTestService(instantFetch, 2)

	info, err := svc.CreateSession(ctx, "runner")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	snap, err := svc.StartGame(ctx, info.ID)
	if err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	if snap.Phase != "loading" {
		t.Errorf("phase after start = %q, want loading", snap.Phase)
	}

	snap = waitForPhase(t, svc, info.ID, "playing")
	if snap.Stage == nil || snap.Stage.Number != 1 {
		t.Fatalf("stage after load = %+v, want stage 1", snap.Stage)
	}
	if len(snap.Stage.Grid) != 3 {
		t.Errorf("grid rows = %d, want 3", len(snap.Stage.Grid))
	}

	// Two steps right clear the corridor.
	result, err := svc.Move(ctx, info.ID, "right")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "accepted" {
		t.Errorf("first move outcome = %q, want accepted", result.Outcome)
	}
	result, err = svc.Move(ctx, info.ID, "right")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "finished" {
		t.Fatalf("second move outcome = %q, want finished", result.Outcome)
	}
	if len(result.Events) != 1 || result.Events[0].Type != "stage_complete" {
		t.Errorf("events = %+v, want one stage_complete", result.Events)
	}
	if result.State.Phase != "stage_complete" {
		t.Errorf("phase = %q, want stage_complete", result.State.Phase)
	}

	// Movement between stages is rejected.
	result, err = svc.Move(ctx, info.ID, "right")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "rejected" {
		t.Errorf("between-stage move outcome = %q, want rejected", result.Outcome)
	}

	if _, err := svc.AdvanceStage(ctx, info.ID); err != nil {
		t.Fatalf("AdvanceStage() error = %v", err)
	}
	snap = waitForPhase(t, svc, info.ID, "playing")
	if snap.Stage.Number != 2 {
		t.Fatalf("stage after advance = %d, want 2", snap.Stage.Number)
	}

	if _, err := svc.Move(ctx, info.ID, "right"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	result, err = svc.Move(ctx, info.ID, "right")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "finished" {
		t.Fatalf("final move outcome = %q, want finished", result.Outcome)
	}
	if len(result.Events) != 2 || result.Events[1].Type != "game_complete" {
		t.Errorf("final events = %+v, want stage_complete then game_complete", result.Events)
	}
	if result.State.Phase != "game_complete" {
		t.Errorf("phase = %q, want game_complete", result.State.Phase)
	}
	if result.State.TotalMoves != 4 {
		t.Errorf("TotalMoves = %d, want 4", result.State.TotalMoves)
	}
	if len(result.State.Results) != 2 {
		t.Errorf("Results = %+v, want 2 entries", result.State.Results)
	}

	if _, err := svc.RestartGame(ctx, info.ID); err != nil {
		t.Fatalf("RestartGame() error = %v", err)
	}
	snap = waitForPhase(t, svc, info.ID, "playing")
	if snap.Stage.Number != 1 || snap.TotalMoves != 0 || snap.StagesCleared != 0 {
		t.Errorf("state after restart = %+v, want fresh stage 1", snap)
	}

	want := []string{"game_start", "level_complete", "level_complete", "game_complete", "game_start"}
	got := sink.types()
	if len(got) != len(want) {
		t.Fatalf("event types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRuntime_MoveIgnoredWhileLoading(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	fetcher := &stubFetcher{fetch: func(ctx context.Context, stage int) (*level.Descriptor, error) {
		select {
		case <-gate:
			return corridorDescriptor(stage), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	rt := service.NewRuntime(service.RuntimeConfig{
		PlayerID:    "p",
		TotalStages: 1,
		Fetcher:     fetcher,
		Events:      &captureSink{},
	})
	defer rt.Close()

	snap, err := rt.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if snap.Phase != "loading" {
		t.Fatalf("phase = %q, want loading", snap.Phase)
	}
	if snap.Stage == nil || snap.Stage.Grid != nil {
		t.Errorf("loading snapshot stage = %+v, want no grid", snap.Stage)
	}

	result, err := rt.Move(ctx, engine.Right)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "rejected" {
		t.Errorf("move while loading outcome = %q, want rejected", result.Outcome)
	}

	close(gate)
	snap = waitRuntimePhase(t, rt, "playing")
	if snap.Stage.Moves != 0 {
		t.Errorf("moves after load = %d, want 0: loading input must not queue", snap.Stage.Moves)
	}

	result, err = rt.Move(ctx, engine.Right)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Outcome != "accepted" {
		t.Errorf("move after load outcome = %q, want accepted", result.Outcome)
	}
}

func TestRuntime_LoadFailureReturnsToIdleAndRetries(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	attempts := 0
	fetcher := &stubFetcher{fetch: func(ctx context.Context, stage int) (*level.Descriptor, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return nil, errors.New("level service down")
		}
		return corridorDescriptor(stage), nil
	}}
	sink := &captureSink{}
	rt := service.NewRuntime(service.RuntimeConfig{
		PlayerID:    "p",
		TotalStages: 3,
		Fetcher:     fetcher,
		Events:      sink,
	})
	defer rt.Close()

	if _, err := rt.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	snap := waitRuntimePhase(t, rt, "idle")
	if snap.LastError == "" {
		t.Error("expected LastError after a failed load")
	}

	// Starting again retries the same stage and clears the error.
	if _, err := rt.Start(ctx); err != nil {
		t.Fatalf("Start() retry error = %v", err)
	}
	snap = waitRuntimePhase(t, rt, "playing")
	if snap.Stage.Number != 1 {
		t.Errorf("retried stage = %d, want 1", snap.Stage.Number)
	}
	if snap.LastError != "" {
		t.Errorf("LastError = %q, want cleared", snap.LastError)
	}

	// The retry continues the run it already announced.
	types := sink.types()
	starts := 0
	for _, typ := range types {
		if typ == "game_start" {
			starts++
		}
	}
	if starts != 1 {
		t.Errorf("game_start submitted %d times, want 1", starts)
	}
}

func TestRuntime_CloseRejectsCommands(t *testing.T) {
	rt := service.NewRuntime(service.RuntimeConfig{
		PlayerID:    "p",
		TotalStages: 1,
		Fetcher:     &stubFetcher{fetch: instantFetch},
		Events:      &captureSink{},
	})
	rt.Close()
	rt.Close() // safe to repeat

	if _, err := rt.Start(context.Background()); !errors.Is(err, service.ErrRuntimeClosed) {
		t.Errorf("Start() after close error = %v, want ErrRuntimeClosed", err)
	}
}

func TestRuntime_PublishesSnapshots(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	var phases []string
	rt := service.NewRuntime(service.RuntimeConfig{
		PlayerID:    "p",
		TotalStages: 1,
		Fetcher:     &stubFetcher{fetch: instantFetch},
		Events:      &captureSink{},
		OnSnapshot: func(snap *service.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			phases = append(phases, snap.Phase)
		},
	})
	defer rt.Close()

	if _, err := rt.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitRuntimePhase(t, rt, "playing")

	mu.Lock()
	defer mu.Unlock()
	if len(phases) < 2 || phases[0] != "loading" || phases[1] != "playing" {
		t.Errorf("published phases = %v, want loading then playing", phases)
	}
}
