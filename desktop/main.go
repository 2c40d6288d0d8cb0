package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize          = 32
	headerHeight      = 80
	screenWidth       = 800
	screenHeight      = 720
	baseURL           = "http://localhost:8080"
	animationDuration = 150 * time.Millisecond // Smooth move animation
	crashDuration     = 400 * time.Millisecond // Rejected move animation

	footerText = "Arrows/WASD: Move | ENTER: Start/Next | R: Play again | ESC: Session select"
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenGame
)

// Position is a cell coordinate on the stage grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StageView is the active stage as the server renders it
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

// StageResult summarizes one cleared stage
type StageResult struct {
	Stage   int     `json:"stage"`
	Moves   int     `json:"moves"`
	Seconds float64 `json:"seconds"`
}

// Snapshot is the full session state from the Maze Runner server
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

// MoveResult is the server's verdict on a single move
type MoveResult struct {
	Direction string    `json:"direction"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	State     *Snapshot `json:"state,omitempty"`
}

// WSMessage represents WebSocket message wrapper
type WSMessage struct {
	SessionID string    `json:"session_id"`
	State     *Snapshot `json:"state,omitempty"`
	Event     string    `json:"event,omitempty"`
}

// SessionListItem represents a session from the server
type SessionListItem struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	CreatedAt string    `json:"created_at"`
	State     *Snapshot `json:"state,omitempty"`
}

// Session holds the watched session and its animation state
type Session struct {
	id            string
	state         *Snapshot
	wsConn        *websocket.Conn
	lastUpdate    time.Time
	prevPos       Position  // Previous position for interpolation
	targetPos     Position  // Target position for interpolation
	moveStartTime time.Time // When the move started
	animationTime float64   // Animation progress 0.0 to 1.0
	crashTime     time.Time // When a rejected move happened
	isCrashing    bool      // Currently showing crash animation
}

// Game represents the desktop game client
type Game struct {
	session       *Session
	stateMutex    sync.RWMutex
	currentScreen ScreenType
	welcomeScreen *WelcomeScreen
}

// WelcomeScreen manages the session selection screen state
type WelcomeScreen struct {
	availableSessions []SessionListItem
	cursorPos         int
	loading           bool
	errorMsg          string
}

// NewGame creates a new client, attaching to sessionID when given
func NewGame(sessionID string) *Game {
	g := &Game{
		currentScreen: ScreenWelcome,
		welcomeScreen: &WelcomeScreen{},
	}

	if sessionID != "" {
		if err := g.attachSession(sessionID); err != nil {
			log.Printf("Failed to attach session %s: %v", sessionID, err)
			g.loadWelcomeData()
		} else {
			g.currentScreen = ScreenGame
		}
	} else {
		g.loadWelcomeData()
	}

	return g
}

// attachSession switches the client to the given session, creating one on
// the server when sessionID is empty.
func (g *Game) attachSession(sessionID string) error {
	session := &Session{
		id:         sessionID,
		lastUpdate: time.Now(),
	}

	if sessionID == "" {
		if err := g.createSession(session); err != nil {
			return err
		}
	}

	if err := g.connectWebSocket(session); err != nil {
		log.Printf("WebSocket connect failed for %s: %v (falling back to polling)", session.id, err)
	}

	g.stateMutex.Lock()
	old := g.session
	g.session = session
	g.stateMutex.Unlock()

	if old != nil && old.wsConn != nil {
		old.wsConn.Close()
	}

	if session.wsConn != nil {
		go g.listenWebSocket(session)
	}

	g.fetchState(session)
	return nil
}

// createSession creates a new game session
func (g *Game) createSession(session *Session) error {
	url := fmt.Sprintf("%s/api/sessions", baseURL)

	resp, err := http.Post(url, "application/json", strings.NewReader(`{"player_id":"desktop"}`))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse session response: %v (body: %s)", err, string(body))
	}
	if result.ID == "" {
		return fmt.Errorf("server returned no session id (body: %s)", string(body))
	}

	session.id = result.ID
	log.Printf("Created new session: %s", session.id)
	return nil
}

// connectWebSocket establishes the watch connection
func (g *Game) connectWebSocket(session *Session) error {
	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", session.id)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	session.wsConn = conn
	log.Printf("WebSocket connected for session %s", session.id)
	return nil
}

// listenWebSocket consumes state updates until the connection drops. The
// server may batch several queued updates into one frame separated by
// newlines, so each frame is split before decoding.
func (g *Game) listenWebSocket(session *Session) {
	conn := session.wsConn
	defer func() {
		conn.Close()
		g.stateMutex.Lock()
		if session.wsConn == conn {
			session.wsConn = nil
		}
		g.stateMutex.Unlock()
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v (falling back to polling)", session.id, err)
			return
		}

		for _, raw := range bytes.Split(frame, []byte{'\n'}) {
			if len(raw) == 0 {
				continue
			}

			var msg WSMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				log.Printf("WebSocket JSON parse error: %v", err)
				continue
			}

			if msg.Event == "session_deleted" {
				log.Printf("Session %s was deleted on the server", session.id)
				continue
			}
			if msg.State == nil {
				continue
			}

			g.applySnapshot(session, msg.State)
		}
	}
}

// applySnapshot installs a new state and decides whether the player square
// should glide or jump. Changing stages always jumps.
func (g *Game) applySnapshot(session *Session, snap *Snapshot) {
	g.stateMutex.Lock()
	defer g.stateMutex.Unlock()

	old := session.state
	if snap.Stage != nil {
		newPos := snap.Stage.Player
		sameStage := old != nil && old.Stage != nil && old.Stage.Number == snap.Stage.Number

		if sameStage && old.Stage.Player != newPos {
			session.prevPos = old.Stage.Player
			session.targetPos = newPos
			session.moveStartTime = time.Now()
			session.animationTime = 0.0
			session.isCrashing = false
		} else if !sameStage {
			session.prevPos = newPos
			session.targetPos = newPos
			session.animationTime = 1.0
		}
	}

	session.state = snap
	session.lastUpdate = time.Now()
}

// fetchState gets the current session state from the server
func (g *Game) fetchState(session *Session) error {
	url := fmt.Sprintf("%s/api/sessions/%s/state", baseURL, session.id)
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	g.applySnapshot(session, &snap)
	return nil
}

// loadWelcomeData fetches the session list from the server
func (g *Game) loadWelcomeData() {
	ws := g.welcomeScreen
	ws.loading = true
	ws.errorMsg = ""

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions", baseURL))
	if err != nil {
		ws.errorMsg = fmt.Sprintf("Error loading sessions: %v", err)
		ws.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var sessionsResp struct {
		Sessions []SessionListItem `json:"sessions"`
	}
	if err := json.Unmarshal(body, &sessionsResp); err == nil {
		ws.availableSessions = sessionsResp.Sessions
		if ws.cursorPos >= len(ws.availableSessions) {
			ws.cursorPos = 0
		}
	}

	ws.loading = false
}

// sendMove posts one move for the watched session. Rejected moves are not
// broadcast by the server, so the crash animation is triggered here from
// the move response.
func (g *Game) sendMove(direction string) {
	g.stateMutex.RLock()
	session := g.session
	g.stateMutex.RUnlock()
	if session == nil {
		return
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", baseURL, session.id)
	payload := fmt.Sprintf(`{"direction":"%s"}`, direction)

	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		log.Printf("Move failed: %v", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}

	var result MoveResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("Failed to parse move response: %v (body: %s)", err, string(body))
		return
	}

	if result.State != nil {
		g.applySnapshot(session, result.State)
	}
	if result.Outcome == "rejected" {
		g.stateMutex.Lock()
		session.isCrashing = true
		session.crashTime = time.Now()
		g.stateMutex.Unlock()
	}
}

// sendAction posts a lifecycle action (start, advance, restart)
func (g *Game) sendAction(action string) {
	g.stateMutex.RLock()
	session := g.session
	g.stateMutex.RUnlock()
	if session == nil {
		return
	}

	url := fmt.Sprintf("%s/api/sessions/%s/%s", baseURL, session.id, action)
	resp, err := http.Post(url, "application/json", strings.NewReader("{}"))
	if err != nil {
		log.Printf("Action %s failed: %v", action, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("Action %s rejected: %s", action, string(body))
		return
	}

	g.fetchState(session)
}

// Update updates game logic
func (g *Game) Update() error {
	switch g.currentScreen {
	case ScreenWelcome:
		return g.updateWelcomeScreen()
	case ScreenGame:
		return g.updateGameScreen()
	}
	return nil
}

// updateWelcomeScreen handles session selection input
func (g *Game) updateWelcomeScreen() error {
	ws := g.welcomeScreen

	// Refresh data with F5
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.loadWelcomeData()
	}

	// Navigate with arrow keys
	totalItems := len(ws.availableSessions)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && ws.cursorPos < totalItems-1 {
		ws.cursorPos++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && ws.cursorPos > 0 {
		ws.cursorPos--
	}

	// Create and join a fresh session with N
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.attachSession(""); err != nil {
			ws.errorMsg = fmt.Sprintf("Failed to create session: %v", err)
		} else {
			g.currentScreen = ScreenGame
		}
	}

	// Join the highlighted session with Enter
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if ws.cursorPos >= 0 && ws.cursorPos < totalItems {
			if err := g.attachSession(ws.availableSessions[ws.cursorPos].ID); err != nil {
				ws.errorMsg = fmt.Sprintf("Failed to attach session: %v", err)
			} else {
				g.currentScreen = ScreenGame
			}
		} else {
			ws.errorMsg = "No session selected. Press N to create one."
		}
	}

	// Back to game screen with Escape (if a session is attached)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.session != nil {
		g.currentScreen = ScreenGame
	}

	return nil
}

// updateGameScreen handles game screen input
func (g *Game) updateGameScreen() error {
	g.stateMutex.Lock()
	session := g.session
	if session != nil {
		// Advance the move animation
		if session.animationTime < 1.0 {
			elapsed := time.Since(session.moveStartTime)
			session.animationTime = float64(elapsed) / float64(animationDuration)
			if session.animationTime > 1.0 {
				session.animationTime = 1.0
			}
		}

		// End crash animation after duration
		if session.isCrashing && time.Since(session.crashTime) > crashDuration {
			session.isCrashing = false
		}
	}
	g.stateMutex.Unlock()

	if session == nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.currentScreen = ScreenWelcome
			g.loadWelcomeData()
		}
		return nil
	}

	// Poll when the watch connection is missing or has dropped
	g.stateMutex.RLock()
	stale := session.wsConn == nil &&
		(session.state == nil || time.Since(session.lastUpdate) > 500*time.Millisecond)
	g.stateMutex.RUnlock()
	if stale {
		if err := g.fetchState(session); err != nil {
			log.Printf("Error fetching state for %s: %v", session.id, err)
		}
	}

	phase := g.currentPhase(session)

	// Moves only make sense mid-stage; the server rejects them elsewhere
	if phase == "playing" {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
			g.sendMove("up")
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.sendMove("down")
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
			g.sendMove("left")
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
			g.sendMove("right")
		}
	}

	// Enter starts a run or advances past a cleared stage
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch phase {
		case "idle":
			g.sendAction("start")
		case "stage_complete":
			g.sendAction("advance")
		}
	}

	// R begins a fresh run once the current one has finished
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && phase == "game_complete" {
		g.sendAction("restart")
	}

	// Return to session selection with Escape
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.currentScreen = ScreenWelcome
		g.loadWelcomeData()
	}

	return nil
}

// currentPhase reads the phase of the watched session
func (g *Game) currentPhase(session *Session) string {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	if session.state == nil {
		return ""
	}
	return session.state.Phase
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.currentScreen {
	case ScreenWelcome:
		g.drawWelcomeScreen(screen)
	case ScreenGame:
		g.drawGameScreen(screen)
	}
}

// drawWelcomeScreen renders the session selection screen
func (g *Game) drawWelcomeScreen(screen *ebiten.Image) {
	ws := g.welcomeScreen

	screen.Fill(color.RGBA{20, 20, 30, 255})

	y := 20
	ebitenutil.DebugPrintAt(screen, "=== MAZE RUNNER - SESSION SELECT ===", 260, y)
	y += 30

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading sessions...", 20, y)
		return
	}

	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ERROR: %s", ws.errorMsg), 20, y)
		y += 20
	}

	ebitenutil.DebugPrintAt(screen, "Available Sessions:", 20, y)
	y += 20

	if len(ws.availableSessions) == 0 {
		ebitenutil.DebugPrintAt(screen, "  No sessions found. Press N to create one.", 20, y)
		y += 20
	} else {
		for i, item := range ws.availableSessions {
			cursor := "  "
			if i == ws.cursorPos {
				cursor = "> "
			}

			phase := "?"
			progress := ""
			if item.State != nil {
				phase = item.State.Phase
				progress = fmt.Sprintf(" | cleared %d/%d | %d moves",
					item.State.StagesCleared, item.State.TotalStages, item.State.TotalMoves)
			}

			line := fmt.Sprintf("%s%s | %s | %s%s", cursor, item.ID, item.PlayerID, phase, progress)
			ebitenutil.DebugPrintAt(screen, line, 20, y)
			y += 15
		}
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "-----------------------------------------", 20, y)
	y += 20

	// Controls
	ebitenutil.DebugPrintAt(screen, "CONTROLS:", 20, y)
	y += 20
	ebitenutil.DebugPrintAt(screen, "  UP/DOWN  - Navigate sessions", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  ENTER    - Watch and play the selected session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  N        - Create a new session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  F5       - Refresh session list", 20, y)
	y += 15
	if g.session != nil {
		ebitenutil.DebugPrintAt(screen, "  ESC      - Back to game", 20, y)
	}
}

// drawGameScreen renders the watched session
func (g *Game) drawGameScreen(screen *ebiten.Image) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	session := g.session
	if session == nil {
		ebitenutil.DebugPrint(screen, "No session attached. Press ESC for session select.")
		return
	}

	state := session.state
	if state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	g.drawHeader(screen, session, state)

	if state.Phase == "game_complete" {
		g.drawResults(screen, state)
		ebitenutil.DebugPrintAt(screen, footerText, 10, screenHeight-20)
		return
	}

	stage := state.Stage
	if stage == nil || len(stage.Grid) == 0 {
		msg := fmt.Sprintf("Phase: %s", state.Phase)
		switch state.Phase {
		case "idle":
			msg = "Press ENTER to start a run"
			if state.LastError != "" {
				msg = fmt.Sprintf("Stage load failed: %s. Press ENTER to retry.", state.LastError)
			}
		case "loading":
			msg = "Loading stage..."
		}
		ebitenutil.DebugPrintAt(screen, msg, 20, headerHeight+40)
		ebitenutil.DebugPrintAt(screen, footerText, 10, screenHeight-20)
		return
	}

	// Draw the stage grid
	gridOffsetY := headerHeight
	for y, row := range stage.Grid {
		for x := 0; x < len(row); x++ {
			ch := row[x]
			ebitenutil.DrawRect(screen,
				float64(x*cellSize),
				float64(y*cellSize+gridOffsetY),
				cellSize-1, cellSize-1, getCellColor(ch))

			if ch == 'S' || ch == 'E' {
				ebitenutil.DebugPrintAt(screen, string(ch),
					x*cellSize+12, y*cellSize+gridOffsetY+8)
			}
		}
	}

	// Interpolate the player square for smooth animation
	t := session.animationTime
	if t > 1.0 {
		t = 1.0
	}
	displayX := float64(session.prevPos.X)*(1.0-t) + float64(session.targetPos.X)*t
	displayY := float64(session.prevPos.Y)*(1.0-t) + float64(session.targetPos.Y)*t

	playerColor := color.RGBA{100, 160, 255, 255}

	// Crash animation: shake and flash
	var shakeX, shakeY float64
	if session.isCrashing {
		crashProgress := time.Since(session.crashTime).Seconds() / crashDuration.Seconds()
		shakeIntensity := 4.0 * (1.0 - crashProgress)
		shakeX = shakeIntensity * math.Sin(crashProgress*40)
		shakeY = shakeIntensity * math.Cos(crashProgress*40)

		flashAmount := (1.0 - crashProgress) * 0.7
		playerColor.R = uint8(float64(playerColor.R)*(1.0-flashAmount) + 255*flashAmount)
	}

	screenX := displayX*float64(cellSize) + 3 + shakeX
	screenY := displayY*float64(cellSize) + float64(gridOffsetY) + 3 + shakeY

	ebitenutil.DrawRect(screen, screenX, screenY, cellSize-6, cellSize-6, playerColor)

	if state.Phase == "stage_complete" {
		banner := fmt.Sprintf("Stage %d cleared in %d moves! Press ENTER for the next stage.",
			stage.Number, stage.Moves)
		ebitenutil.DebugPrintAt(screen, banner, 20, gridOffsetY+len(stage.Grid)*cellSize+10)
	}

	ebitenutil.DebugPrintAt(screen, footerText, 10, screenHeight-20)
}

// drawHeader draws session identity and run progress
func (g *Game) drawHeader(screen *ebiten.Image, session *Session, state *Snapshot) {
	connStatus := "POLL"
	if session.wsConn != nil {
		connStatus = "WS"
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Session %s [%s] player=%s", session.id, connStatus, state.PlayerID), 10, 5)

	line := fmt.Sprintf("Phase: %s | Cleared: %d/%d | Total moves: %d",
		state.Phase, state.StagesCleared, state.TotalStages, state.TotalMoves)
	if state.Stage != nil {
		line = fmt.Sprintf("Stage %d/%d | Phase: %s | Moves: %d | Cleared: %d",
			state.Stage.Number, state.TotalStages, state.Phase, state.Stage.Moves, state.StagesCleared)
	}
	ebitenutil.DebugPrintAt(screen, line, 10, 25)

	if state.LastError != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Last error: %s", state.LastError), 10, 45)
	}
}

// drawResults renders the end-of-run summary
func (g *Game) drawResults(screen *ebiten.Image, state *Snapshot) {
	y := headerHeight + 20
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("RUN COMPLETE! %d stages in %d moves (%.1fs)",
			state.TotalStages, state.TotalMoves, state.TotalSeconds), 20, y)
	y += 25

	for _, res := range state.Results {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("  Stage %d: %d moves in %.1fs", res.Stage, res.Moves, res.Seconds), 20, y)
		y += 15
	}

	y += 10
	ebitenutil.DebugPrintAt(screen, "Press R to play again, ESC for session select.", 20, y)
}

// Layout returns the game screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// getCellColor returns the color for each maze cell character
func getCellColor(ch byte) color.Color {
	switch ch {
	case '#':
		return color.RGBA{45, 45, 60, 255} // Wall
	case '.':
		return color.RGBA{190, 190, 190, 255} // Open floor
	case 'S':
		return color.RGBA{0, 180, 0, 255} // Entry
	case 'E':
		return color.RGBA{230, 150, 0, 255} // Exit
	default:
		return color.RGBA{50, 50, 50, 255}
	}
}

func main() {
	// Accept a session ID as the optional first argument
	sessionID := ""
	if len(os.Args) > 1 {
		sessionID = os.Args[1]
	}

	game := NewGame(sessionID)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Maze Runner - Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
