package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/localfirst-games/mazerunner/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Maze Runner",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Maze Runner - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Guide the runner (@) from the start (S) to the exit (E) of each maze. Clear
every stage to complete the run.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- start_game: Begin a run (loads stage 1)
- game_state: Get current game state with the maze rendered
- move: Single move (up/down/left/right) - requires intent explanation
- advance_stage: Load the next stage after clearing one
- restart_game: Restart the run from stage 1
- delete_session: Tear a session down
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on the move tool serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with an optional player name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Player identifier for analytics (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session and shut its game down",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Begin a run. Loads stage 1 from the level service.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the runner one cell in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance_stage",
		Description: "Load the next stage after clearing the current one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvanceStage)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Restart the run from stage 1, zeroing all progress",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerID, _ := args["player_id"].(string)

	body := map[string]string{}
	if playerID != "" {
		body["player_id"] = playerID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPlayer: %s\n\nUse start_game to begin a run.\n", session.ID, session.PlayerID)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		phase := ""
		if s.State != nil {
			phase = s.State.Phase
		}
		result += fmt.Sprintf("- %s (Player: %s, Phase: %s, Created: %s)\n",
			s.ID, s.PlayerID, phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}

	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.Snapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Run started.\n\n" + formatSnapshot(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleAdvanceStage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.Snapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/advance", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRestartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *service.Snapshot `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Maze Runner - Complete Instructions

GAME OBJECTIVE:
Guide the runner from the start of each maze to its exit. A run is a fixed
sequence of stages; clear them all to complete the run.

GAME MECHANICS:
• Movement: One cell per move in a cardinal direction (up/down/left/right)
• Walls block: A move into a wall or off the grid is rejected and counts nothing
• Stage clear: Stepping onto the exit cell clears the stage instantly
• Progress: Moves and elapsed time are tracked per stage and for the whole run

GRID LEGEND:
• @ - Runner (your current position)
• # - Wall (impassable)
• . - Open path
• S - Start marker (where the runner spawns)
• E - Exit marker (render hint; the exit coordinate is authoritative)

RUN LIFECYCLE:
1. create_session, then start_game - stage 1 begins loading
2. While a stage is loading, moves are rejected, never queued
3. move until you reach the exit - the stage is cleared
4. advance_stage - the next stage loads
5. Clear the final stage and the run is complete
6. restart_game at any time to start over from stage 1

🤖 AI AGENTS - SUCCESS STRATEGIES:

🗺️ SYSTEMATIC MAZE MAPPING:
- Parse the grid character-by-character before planning a route
- Walls (#) and paths (.) can blur together in long rows; verify single-cell
  gaps position by position
- The exit coordinate in the state is authoritative; the E marker in the
  layout is only a render hint and may sit one cell off

🧩 CORRIDOR NAVIGATION:
- Mazes here are corridor-based: find the open rows and the gaps that
  connect them
- A "blocked" row usually has exactly one gap; scan for the single . in a
  run of #

🔄 ITERATIVE DEVELOPMENT:
1. Analysis: parse the grid, locate runner, start, and exit
2. Planning: trace a route corridor by corridor
3. Execution: issue moves one at a time, checking each outcome
4. Refinement: a rejected move means your map is wrong there; update it

🚨 PITFALLS TO AVOID:
- ❌ Moving while the stage is still loading (moves are dropped, not queued)
- ❌ Re-sending a rejected move without re-reading the grid
- ❌ Forgetting advance_stage after a clear; the game waits for it

MOVEMENT COMMANDS:
- up, down, left, right - single-cell moves in cardinal directions
- A rejected move is not an error: the response carries outcome "rejected"
  and the reason

STAGE COMPLETION:
- Reaching the exit reports outcome "finished" with a stage_complete event
- Clearing the final stage also reports a game_complete event with totals
- Per-stage results (moves, seconds) accumulate in the state

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique ID and maintains independent state
- Sessions idle too long are cleaned up by the server

Good luck in the maze! 🏃`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPlayer: %s\nCreated: %s\n\n%s",
		session.ID, session.PlayerID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.State))
}

func formatSnapshot(snap *service.Snapshot) string {
	if snap == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header
	stageNum := "-"
	if snap.Stage != nil {
		stageNum = fmt.Sprintf("%d", snap.Stage.Number)
	}
	result.WriteString(fmt.Sprintf("Phase: %s | Stage: %s/%d | Cleared: %d | Moves: %d | Time: %.1fs\n",
		snap.Phase, stageNum, snap.TotalStages, snap.StagesCleared, snap.TotalMoves, snap.TotalSeconds))

	switch snap.Phase {
	case "idle":
		result.WriteString("\nNo run in progress. Use start_game to begin.\n")
		if snap.LastError != "" {
			result.WriteString(fmt.Sprintf("Last load failure: %s\n", snap.LastError))
		}

	case "loading":
		if snap.Stage != nil {
			result.WriteString(fmt.Sprintf("\nLoading stage %d... moves are rejected until it arrives.\n", snap.Stage.Number))
		}

	case "playing":
		if snap.Stage != nil {
			result.WriteString("\n")
			result.WriteString(renderStage(snap.Stage))
			result.WriteString(fmt.Sprintf("\nStage moves: %d | Stage time: %.1fs\n",
				snap.Stage.Moves, snap.Stage.ElapsedSeconds))
		}

	case "stage_complete":
		if snap.Stage != nil {
			result.WriteString(fmt.Sprintf("\n✅ Stage %d cleared in %d moves. Use advance_stage to continue.\n",
				snap.Stage.Number, snap.Stage.Moves))
		}

	case "game_complete":
		result.WriteString("\n🎉 RUN COMPLETE!\n")
	}

	if len(snap.Results) > 0 {
		result.WriteString("\nResults so far:\n")
		for _, r := range snap.Results {
			result.WriteString(fmt.Sprintf("  Stage %d: %d moves, %.1fs\n", r.Stage, r.Moves, r.Seconds))
		}
	}

	return result.String()
}

// renderStage draws the maze with the runner overlaid as @.
func renderStage(stage *service.StageView) string {
	if len(stage.Grid) == 0 {
		return "(maze not loaded)\n"
	}

	var b strings.Builder
	for y, row := range stage.Grid {
		if y == stage.Player.Y && stage.Player.X >= 0 && stage.Player.X < len(row) {
			b.WriteString(row[:stage.Player.X])
			b.WriteString("@")
			b.WriteString(row[stage.Player.X+1:])
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var response string
	switch result.Outcome {
	case "accepted":
		response = fmt.Sprintf("✓ Moved %s\n", result.Direction)
	case "finished":
		response = fmt.Sprintf("✓ Moved %s and reached the exit!\n", result.Direction)
	default:
		response = fmt.Sprintf("✗ Move %s rejected (%s)\n", result.Direction, result.Reason)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatSnapshot(result.State)
	return response
}
