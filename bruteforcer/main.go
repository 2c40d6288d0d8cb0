// Command bruteforcer plays a full maze run against a running game server
// over the REST API. Each stage is solved with a breadth-first search over
// the grid the server reports, then the moves are replayed one at a time.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type StageView struct {
	Number         int      `json:"number"`
	Status         string   `json:"status"`
	Grid           []string `json:"grid,omitempty"`
	Width          int      `json:"width,omitempty"`
	Height         int      `json:"height,omitempty"`
	Start          Position `json:"start"`
	End            Position `json:"end"`
	Player         Position `json:"player"`
	Moves          int      `json:"moves"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
}

type StageResult struct {
	Stage   int     `json:"stage"`
	Moves   int     `json:"moves"`
	Seconds float64 `json:"seconds"`
}

type Snapshot struct {
	PlayerID      string        `json:"player_id"`
	Phase         string        `json:"phase"`
	TotalStages   int           `json:"total_stages"`
	Stage         *StageView    `json:"stage,omitempty"`
	StagesCleared int           `json:"stages_cleared"`
	TotalMoves    int           `json:"total_moves"`
	TotalSeconds  float64       `json:"total_seconds"`
	Results       []StageResult `json:"results,omitempty"`
	LastError     string        `json:"last_error,omitempty"`
}

type SessionResponse struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	State    *Snapshot `json:"state,omitempty"`
}

type MoveResponse struct {
	Direction string    `json:"direction"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	State     *Snapshot `json:"state"`
}

type RestartResponse struct {
	Message string    `json:"message"`
	State   *Snapshot `json:"state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(playerID string) (*Snapshot, error) {
	var reqBody []byte
	var err error

	if playerID != "" {
		reqBody, err = json.Marshal(map[string]string{"player_id": playerID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.State, nil
}

func (c *Client) GetState() (*Snapshot, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var state Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &state, nil
}

func (c *Client) StartGame() (*Snapshot, error) {
	return c.postSnapshot("start")
}

func (c *Client) AdvanceStage() (*Snapshot, error) {
	return c.postSnapshot("advance")
}

func (c *Client) Restart() (*Snapshot, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/restart", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("restart: %w", err)
	}
	defer resp.Body.Close()

	var restartResp RestartResponse
	if err := json.NewDecoder(resp.Body).Decode(&restartResp); err != nil {
		return nil, fmt.Errorf("parse restart response: %w", err)
	}

	return restartResp.State, nil
}

func (c *Client) postSnapshot(action string) (*Snapshot, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/%s", c.baseURL, c.sessionID, action)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed: %s - %s", action, resp.Status, string(body))
	}

	var state Snapshot
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("parse %s response: %w", action, err)
	}

	return &state, nil
}

// Move executes a single move. A rejected move is not an error; the outcome
// comes back in the response.
func (c *Client) Move(direction string) (*MoveResponse, error) {
	reqBody, err := json.Marshal(map[string]string{"direction": direction})
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("execute move: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("move failed: %s - %s", resp.Status, string(body))
	}

	var moveResp MoveResponse
	if err := json.Unmarshal(body, &moveResp); err != nil {
		return nil, fmt.Errorf("parse move response: %w", err)
	}

	return &moveResp, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	playerID := flag.String("player", "bruteforcer", "Player ID for new sessions")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxMoves := flag.Int("max-moves", 5000, "Maximum moves for the whole run")
	maxAttempts := flag.Int("max-attempts", 10, "Maximum start retries after failed stage loads")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	var state *Snapshot
	var err error

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*playerID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	if state == nil {
		if state, err = client.GetState(); err != nil {
			log.Fatalf("Failed to fetch state: %v", err)
		}
	}

	// Restart is only legal once a run has finished; anything else resumes
	// from wherever the session currently is.
	if state.Phase == "game_complete" {
		log.Printf("🔄 Previous run already finished - restarting")
		if state, err = client.Restart(); err != nil {
			log.Fatalf("Failed to restart: %v", err)
		}
	}

	log.Printf("▶️  Playing run of %d stages (phase: %s)", state.TotalStages, state.Phase)

	solver := NewSolver()
	moveCount := 0
	startAttempts := 0

	for moveCount < *maxMoves {
		switch state.Phase {
		case "loading":
			// Stages arrive asynchronously; poll until this one is in.
			time.Sleep(100 * time.Millisecond)
			state, err = client.GetState()
			if err != nil {
				log.Fatalf("Failed to poll state: %v", err)
			}

		case "idle":
			// Idle covers both a fresh session and a failed stage load.
			startAttempts++
			if startAttempts > *maxAttempts {
				log.Fatalf("❌ Giving up after %d failed starts (last error: %s)", startAttempts-1, state.LastError)
			}
			if state.LastError != "" {
				log.Printf("⚠️  Stage load failed: %s - retrying", state.LastError)
				time.Sleep(500 * time.Millisecond)
			}
			state, err = client.StartGame()
			if err != nil {
				log.Fatalf("Failed to start game: %v", err)
			}

		case "playing":
			direction := solver.NextMove(state.Stage)
			if direction == "" {
				log.Fatalf("❌ No path to the exit on stage %d", state.Stage.Number)
			}

			moveResp, err := client.Move(direction)
			if err != nil {
				log.Fatalf("Move failed: %v", err)
			}
			moveCount++

			if moveResp.Outcome == "rejected" {
				// The plan disagreed with the server; drop it and replan
				// from the authoritative state.
				if *verbose {
					log.Printf("Move %s rejected (%s), replanning", direction, moveResp.Reason)
				}
				solver.Reset()
			} else if *verbose && moveCount%25 == 0 {
				log.Printf("Stage %d: position (%d,%d), %d moves so far",
					moveResp.State.Stage.Number, moveResp.State.Stage.Player.X, moveResp.State.Stage.Player.Y, moveCount)
			}
			state = moveResp.State

			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}

		case "stage_complete":
			log.Printf("✅ Stage %d cleared (%d/%d)", state.Stage.Number, state.StagesCleared, state.TotalStages)
			solver.Reset()
			state, err = client.AdvanceStage()
			if err != nil {
				log.Fatalf("Failed to advance: %v", err)
			}

		case "game_complete":
			log.Printf("\n🎉 RUN COMPLETE! %d stages in %d moves (%.1fs)",
				state.StagesCleared, state.TotalMoves, state.TotalSeconds)
			for _, r := range state.Results {
				log.Printf("  Stage %d: %d moves, %.1fs", r.Stage, r.Moves, r.Seconds)
			}
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)

		default:
			log.Fatalf("Unknown phase: %s", state.Phase)
		}
	}

	log.Printf("\n❌ Gave up after %d moves (phase: %s)", moveCount, state.Phase)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
