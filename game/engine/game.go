package engine

import (
	"errors"
	"time"
)

// Phase is the externally visible lifecycle state of a run.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseLoading       Phase = "loading"
	PhasePlaying       Phase = "playing"
	PhaseStageComplete Phase = "stage_complete"
	PhaseGameComplete  Phase = "game_complete"
)

// Transition guards. Each lifecycle command is legal from exactly one phase;
// everything else reports which precondition failed.
var (
	ErrNotIdle     = errors.New("game is not idle")
	ErrNotLoading  = errors.New("no stage is loading")
	ErrNotPlaying  = errors.New("no stage is in play")
	ErrNotCleared  = errors.New("current stage is not cleared")
	ErrNotFinished = errors.New("run is not finished")
)

// StageResult records one cleared stage.
type StageResult struct {
	Stage    int           `json:"stage"`
	Moves    int           `json:"moves"`
	Duration time.Duration `json:"duration"`
}

// Game strings stages together into a run: the stage currently in play, the
// ordered results of cleared ones and the running totals a finished run
// reports. All methods mutate under the caller's discipline; the type itself
// takes no locks and performs no I/O.
type Game struct {
	TotalStages int
	Current     *Stage
	Results     []StageResult
	TotalMoves  int
	TotalTime   time.Duration

	next     int
	finished bool
}

// NewGame returns an idle run over the given number of stages.
func NewGame(totalStages int) *Game {
	return &Game{TotalStages: totalStages, next: 1}
}

// Phase derives the lifecycle state from the current stage and the
// completion flag. There is no separate state variable to fall out of sync.
func (g *Game) Phase() Phase {
	switch {
	case g.finished:
		return PhaseGameComplete
	case g.Current == nil:
		return PhaseIdle
	case g.Current.Status == StageLoading:
		return PhaseLoading
	case g.Current.Status == StageCleared:
		return PhaseStageComplete
	}
	return PhasePlaying
}

// Start moves an idle run into loading and returns the stage to fetch:
// stage 1 on a fresh run, or whatever stage a failed load left behind, so
// issuing Start again after a failure retries the same stage.
func (g *Game) Start() (int, error) {
	if g.Phase() != PhaseIdle {
		return 0, ErrNotIdle
	}
	g.Current = NewStage(g.next)
	return g.next, nil
}

// Activate commits a fetched and parsed grid to the loading stage.
func (g *Game) Activate(grid *Grid, now time.Time) error {
	if g.Phase() != PhaseLoading {
		return ErrNotLoading
	}
	g.Current.Activate(grid, now)
	return nil
}

// FailLoad abandons the loading stage and returns the run to idle. The
// stage target is kept, so a later Start retries it.
func (g *Game) FailLoad() error {
	if g.Phase() != PhaseLoading {
		return ErrNotLoading
	}
	g.Current = nil
	return nil
}

// Move feeds one directional command to the stage in play. A finishing move
// records the stage result, folds it into the run totals and, on the last
// stage, finishes the run.
func (g *Game) Move(d Direction, now time.Time) (MoveOutcome, error) {
	if g.Phase() != PhasePlaying {
		return MoveRejected, ErrNotPlaying
	}
	outcome := g.Current.Move(d, now)
	if outcome == MoveFinished {
		result := StageResult{
			Stage:    g.Current.Number,
			Moves:    g.Current.Player.Moves,
			Duration: g.Current.elapsed,
		}
		g.Results = append(g.Results, result)
		g.TotalMoves += result.Moves
		g.TotalTime += result.Duration
		g.next = g.Current.Number + 1
		if g.Current.Number >= g.TotalStages {
			g.finished = true
		}
	}
	return outcome, nil
}

// Advance moves a run with a cleared stage into loading for the next one
// and returns its number. A finished run takes Restart, not Advance.
func (g *Game) Advance() (int, error) {
	if g.Phase() != PhaseStageComplete {
		return 0, ErrNotCleared
	}
	g.Current = NewStage(g.next)
	return g.next, nil
}

// Restart resets every aggregate and begins a fresh run at stage 1. Legal
// only once the run has finished.
func (g *Game) Restart() (int, error) {
	if g.Phase() != PhaseGameComplete {
		return 0, ErrNotFinished
	}
	g.Results = nil
	g.TotalMoves = 0
	g.TotalTime = 0
	g.finished = false
	g.next = 1
	g.Current = NewStage(1)
	return 1, nil
}
