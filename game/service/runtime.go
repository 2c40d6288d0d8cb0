package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/localfirst-games/mazerunner/game/analytics"
	"github.com/localfirst-games/mazerunner/game/engine"
)

// ErrRuntimeClosed reports a command issued to a runtime that has shut down.
var ErrRuntimeClosed = errors.New("game runtime is closed")

// RuntimeConfig carries the settings for one game runtime. Fetcher and
// Events must be non-nil; the analytics dispatcher handles the
// not-configured case itself, so callers never pass nil to skip telemetry.
type RuntimeConfig struct {
	PlayerID    string
	TotalStages int
	Fetcher     LevelFetcher
	Events      EventSink
	Logger      *log.Logger

	// OnSnapshot, when set, receives a snapshot after every state change.
	// It is called from the runtime goroutine and must not block.
	OnSnapshot func(*Snapshot)

	// TickInterval spaces additional snapshots out while a stage is in
	// play, keeping watcher clocks moving between moves. Zero disables
	// the tick.
	TickInterval time.Duration

	// Clock overrides the runtime's time source in tests. Defaults to
	// time.Now.
	Clock func() time.Time
}

// Runtime hosts one game. A single goroutine owns the engine state and
// serializes every command, so the engine itself never takes a lock. Level
// fetches run on their own goroutines and deliver back into the loop;
// closing the runtime cancels whatever is in flight.
type Runtime struct {
	playerID string
	fetcher  LevelFetcher
	events   EventSink
	logger   *log.Logger
	publish  func(*Snapshot)
	tick     time.Duration
	now      func() time.Time

	game     *engine.Game
	lastErr  error
	started  bool
	fetchSeq int

	cmds    chan command
	fetches chan fetchResult
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdMove
	cmdAdvance
	cmdRestart
	cmdSnapshot
)

type command struct {
	kind  cmdKind
	dir   engine.Direction
	reply chan reply
}

type reply struct {
	snapshot *Snapshot
	move     *MoveResult
	err      error
}

type fetchResult struct {
	seq   int
	stage int
	grid  *engine.Grid
	err   error
}

// NewRuntime builds a runtime and starts its goroutine. The returned
// runtime is idle until StartGame is issued.
func NewRuntime(cfg RuntimeConfig) *Runtime {
	if cfg.TotalStages < 1 {
		cfg.TotalStages = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runtime{
		playerID: cfg.PlayerID,
		fetcher:  cfg.Fetcher,
		events:   cfg.Events,
		logger:   cfg.Logger,
		publish:  cfg.OnSnapshot,
		tick:     cfg.TickInterval,
		now:      cfg.Clock,
		game:     engine.NewGame(cfg.TotalStages),
		cmds:     make(chan command),
		fetches:  make(chan fetchResult, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

// Close stops the runtime goroutine and cancels any in-flight level fetch.
// Safe to call more than once.
func (r *Runtime) Close() {
	r.cancel()
	<-r.done
}

// Start begins a run, or retries the stage a failed load left behind.
func (r *Runtime) Start(ctx context.Context) (*Snapshot, error) {
	rep := r.send(ctx, command{kind: cmdStart})
	return rep.snapshot, rep.err
}

// Move feeds one directional command to the game.
func (r *Runtime) Move(ctx context.Context, d engine.Direction) (*MoveResult, error) {
	rep := r.send(ctx, command{kind: cmdMove, dir: d})
	return rep.move, rep.err
}

// Advance requests the next stage once the current one is cleared.
func (r *Runtime) Advance(ctx context.Context) (*Snapshot, error) {
	rep := r.send(ctx, command{kind: cmdAdvance})
	return rep.snapshot, rep.err
}

// Restart begins a fresh run after the current one has finished.
func (r *Runtime) Restart(ctx context.Context) (*Snapshot, error) {
	rep := r.send(ctx, command{kind: cmdRestart})
	return rep.snapshot, rep.err
}

// Snapshot returns the current state without changing it.
func (r *Runtime) Snapshot(ctx context.Context) (*Snapshot, error) {
	rep := r.send(ctx, command{kind: cmdSnapshot})
	return rep.snapshot, rep.err
}

// send hands a command to the runtime goroutine and waits for its reply.
func (r *Runtime) send(ctx context.Context, cmd command) reply {
	cmd.reply = make(chan reply, 1)
	select {
	case r.cmds <- cmd:
	case <-r.done:
		return reply{err: ErrRuntimeClosed}
	case <-ctx.Done():
		return reply{err: ctx.Err()}
	}
	select {
	case rep := <-cmd.reply:
		return rep
	case <-r.done:
		// The loop may have answered just before shutting down.
		select {
		case rep := <-cmd.reply:
			return rep
		default:
			return reply{err: ErrRuntimeClosed}
		}
	}
}

// run is the runtime goroutine. All engine access happens here.
func (r *Runtime) run() {
	defer close(r.done)

	var tick <-chan time.Time
	if r.tick > 0 && r.publish != nil {
		ticker := time.NewTicker(r.tick)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-r.ctx.Done():
			return
		case cmd := <-r.cmds:
			cmd.reply <- r.handle(cmd)
		case res := <-r.fetches:
			r.commitFetch(res)
		case <-tick:
			if r.game.Phase() == engine.PhasePlaying {
				r.broadcast(r.snapshot())
			}
		}
	}
}

func (r *Runtime) handle(cmd command) reply {
	switch cmd.kind {
	case cmdStart:
		return r.handleStart()
	case cmdMove:
		return r.handleMove(cmd.dir)
	case cmdAdvance:
		return r.handleAdvance()
	case cmdRestart:
		return r.handleRestart()
	}
	return reply{snapshot: r.snapshot()}
}

func (r *Runtime) handleStart() reply {
	stage, err := r.game.Start()
	if err != nil {
		return reply{err: err}
	}
	r.lastErr = nil
	// One game_start per run. A retry after a failed load continues the
	// run it already announced.
	if !r.started {
		r.started = true
		r.events.Submit(analytics.GameStart(r.playerID, r.now()))
	}
	r.beginFetch(stage)
	snap := r.snapshot()
	r.broadcast(snap)
	return reply{snapshot: snap}
}

func (r *Runtime) handleMove(d engine.Direction) reply {
	outcome, err := r.game.Move(d, r.now())
	result := &MoveResult{Direction: d.String(), Outcome: string(outcome)}
	if err != nil {
		result.Reason = err.Error()
		result.State = r.snapshot()
		return reply{move: result, snapshot: result.State}
	}
	switch outcome {
	case engine.MoveRejected:
		result.Reason = "blocked"
	case engine.MoveFinished:
		result.Events = r.finishStage()
	}
	result.State = r.snapshot()
	if outcome != engine.MoveRejected {
		r.broadcast(result.State)
	}
	return reply{move: result, snapshot: result.State}
}

// finishStage emits the telemetry for a cleared stage and, when the run is
// over, for the whole run. Called from the loop right after a finishing move.
func (r *Runtime) finishStage() []GameEvent {
	now := r.now()
	last := r.game.Results[len(r.game.Results)-1]
	r.events.Submit(analytics.LevelComplete(r.playerID, last.Stage, last.Duration, last.Moves, now))
	events := []GameEvent{{
		Type:      "stage_complete",
		Message:   fmt.Sprintf("Stage %d complete in %d moves", last.Stage, last.Moves),
		Timestamp: now,
	}}
	if r.game.Phase() == engine.PhaseGameComplete {
		r.events.Submit(analytics.GameComplete(r.playerID, r.game.TotalTime, r.game.TotalMoves, now))
		events = append(events, GameEvent{
			Type:      "game_complete",
			Message:   fmt.Sprintf("All %d stages complete in %d moves", r.game.TotalStages, r.game.TotalMoves),
			Timestamp: now,
		})
	}
	return events
}

func (r *Runtime) handleAdvance() reply {
	stage, err := r.game.Advance()
	if err != nil {
		return reply{err: err}
	}
	r.lastErr = nil
	r.beginFetch(stage)
	snap := r.snapshot()
	r.broadcast(snap)
	return reply{snapshot: snap}
}

func (r *Runtime) handleRestart() reply {
	stage, err := r.game.Restart()
	if err != nil {
		return reply{err: err}
	}
	r.lastErr = nil
	// A restarted run announces itself again.
	r.events.Submit(analytics.GameStart(r.playerID, r.now()))
	r.beginFetch(stage)
	snap := r.snapshot()
	r.broadcast(snap)
	return reply{snapshot: snap}
}

// beginFetch retrieves and parses a stage descriptor off the loop. The
// result comes back through r.fetches; the fetch context descends from the
// runtime's, so Close aborts it.
func (r *Runtime) beginFetch(stage int) {
	r.fetchSeq++
	seq := r.fetchSeq
	go func() {
		ctx, cancel := context.WithCancel(r.ctx)
		defer cancel()
		res := fetchResult{seq: seq, stage: stage}
		desc, err := r.fetcher.Fetch(ctx, stage)
		if err != nil {
			res.err = err
		} else {
			res.grid, res.err = engine.ParseGrid(desc.Layout, desc.Width, desc.Height,
				engine.Position{X: desc.StartX, Y: desc.StartY},
				engine.Position{X: desc.EndX, Y: desc.EndY})
		}
		select {
		case r.fetches <- res:
		case <-r.ctx.Done():
		}
	}()
}

// commitFetch lands a fetch result in the loop. A superseded fetch must not
// activate a stage it no longer owns.
func (r *Runtime) commitFetch(res fetchResult) {
	if res.seq != r.fetchSeq || r.game.Phase() != engine.PhaseLoading {
		return
	}
	if res.err != nil {
		r.lastErr = res.err
		r.game.FailLoad()
		r.logger.Printf("WARNING: stage %d load failed: %v", res.stage, res.err)
		r.broadcast(r.snapshot())
		return
	}
	r.game.Activate(res.grid, r.now())
	r.broadcast(r.snapshot())
}

func (r *Runtime) broadcast(snap *Snapshot) {
	if r.publish != nil {
		r.publish(snap)
	}
}

// snapshot renders the engine state into a wire-ready view. Runs on the
// loop goroutine only.
func (r *Runtime) snapshot() *Snapshot {
	now := r.now()
	snap := &Snapshot{
		PlayerID:      r.playerID,
		Phase:         string(r.game.Phase()),
		TotalStages:   r.game.TotalStages,
		StagesCleared: len(r.game.Results),
		TotalMoves:    r.game.TotalMoves,
		TotalSeconds:  r.game.TotalTime.Seconds(),
	}
	if r.lastErr != nil {
		snap.LastError = r.lastErr.Error()
	}
	for _, res := range r.game.Results {
		snap.Results = append(snap.Results, StageResultView{
			Stage:   res.Stage,
			Moves:   res.Moves,
			Seconds: res.Duration.Seconds(),
		})
	}
	cur := r.game.Current
	if cur == nil {
		return snap
	}
	view := &StageView{Number: cur.Number, Status: string(cur.Status)}
	if cur.Status != engine.StageLoading {
		view.Grid = cur.Grid.Rows()
		view.Width = cur.Grid.Width()
		view.Height = cur.Grid.Height()
		view.Start = cur.Grid.Start()
		view.End = cur.Grid.End()
		view.Player = cur.Player.Pos
		view.Moves = cur.Player.Moves
		view.ElapsedSeconds = cur.Elapsed(now).Seconds()
	}
	snap.Stage = view
	return snap
}
