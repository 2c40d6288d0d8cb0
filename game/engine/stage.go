package engine

import "time"

// StageStatus tracks where a stage sits in its load/play/clear cycle
type StageStatus string

const (
	StageLoading StageStatus = "loading"
	StageActive  StageStatus = "playing"
	StageCleared StageStatus = "complete"
)

// Stage is one level in play: the grid, the player on it and the stage
// clock. A stage starts in Loading with no grid; Activate installs the
// fetched grid and starts the clock.
type Stage struct {
	Number    int
	Grid      *Grid
	Player    Player
	Status    StageStatus
	startedAt time.Time
	elapsed   time.Duration
}

// NewStage returns a stage in Loading state with no grid yet.
func NewStage(number int) *Stage {
	return &Stage{Number: number, Status: StageLoading}
}

// Activate installs the grid, places the player on the descriptor's entry
// coordinate with a zeroed move counter and starts the stage clock.
func (s *Stage) Activate(g *Grid, now time.Time) {
	s.Grid = g
	s.Player = Player{Pos: g.Start()}
	s.Status = StageActive
	s.startedAt = now
	s.elapsed = 0
}

// MoveOutcome describes what a single movement command did to a stage.
type MoveOutcome string

const (
	// MoveRejected means the candidate cell was a wall or out of bounds, or
	// the stage was not accepting input. Nothing changed.
	MoveRejected MoveOutcome = "rejected"
	// MoveAccepted means the player advanced one cell.
	MoveAccepted MoveOutcome = "accepted"
	// MoveFinished means the accepted move landed on the exit coordinate
	// and cleared the stage.
	MoveFinished MoveOutcome = "finished"
)

// Move proposes one step, commits it if the collision check accepts it and
// detects completion against the descriptor's exit coordinate. Rejected
// moves leave the player and every counter untouched.
func (s *Stage) Move(d Direction, now time.Time) MoveOutcome {
	if s.Status != StageActive {
		return MoveRejected
	}
	candidate := Propose(s.Player.Pos, d)
	if !Apply(s.Grid, candidate) {
		return MoveRejected
	}
	s.Player.Pos = candidate
	s.Player.Moves++
	if candidate == s.Grid.End() {
		s.Status = StageCleared
		s.elapsed = now.Sub(s.startedAt)
		return MoveFinished
	}
	return MoveAccepted
}

// Elapsed returns how long the stage has been in play, frozen at the
// clearing move once the stage is complete.
func (s *Stage) Elapsed(now time.Time) time.Duration {
	switch s.Status {
	case StageLoading:
		return 0
	case StageCleared:
		return s.elapsed
	}
	return now.Sub(s.startedAt)
}
