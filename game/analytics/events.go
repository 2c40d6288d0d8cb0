package analytics

import "time"

// Event names on the wire.
const (
	EventGameStart     = "game_start"
	EventLevelComplete = "level_complete"
	EventGameComplete  = "game_complete"
)

// Event is one telemetry datapoint. The three event kinds share a single
// struct; fields a kind does not carry stay zero and are omitted from the
// JSON. Timestamps and durations travel as epoch seconds and plain seconds.
type Event struct {
	Type        string  `json:"event_type"`
	PlayerID    string  `json:"player_id"`
	Timestamp   float64 `json:"timestamp"`
	StageNumber int     `json:"stage_number,omitempty"`
	TimeTaken   float64 `json:"time_taken,omitempty"`
	MovesCount  int     `json:"moves_count,omitempty"`
	TotalTime   float64 `json:"total_time,omitempty"`
	TotalMoves  int     `json:"total_moves,omitempty"`
}

// GameStart marks the beginning of a run, including the fresh run after a
// restart.
func GameStart(playerID string, at time.Time) Event {
	return Event{Type: EventGameStart, PlayerID: playerID, Timestamp: epoch(at)}
}

// LevelComplete records one cleared stage.
func LevelComplete(playerID string, stage int, took time.Duration, moves int, at time.Time) Event {
	return Event{
		Type:        EventLevelComplete,
		PlayerID:    playerID,
		Timestamp:   epoch(at),
		StageNumber: stage,
		TimeTaken:   took.Seconds(),
		MovesCount:  moves,
	}
}

// GameComplete records a finished run with its totals.
func GameComplete(playerID string, total time.Duration, totalMoves int, at time.Time) Event {
	return Event{
		Type:       EventGameComplete,
		PlayerID:   playerID,
		Timestamp:  epoch(at),
		TotalTime:  total.Seconds(),
		TotalMoves: totalMoves,
	}
}

// epoch renders a time as fractional seconds since the Unix epoch.
func epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
