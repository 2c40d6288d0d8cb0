package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/localfirst-games/mazerunner/game/engine"
	"github.com/localfirst-games/mazerunner/game/service"
	"github.com/localfirst-games/mazerunner/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, playerID string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Game Operations
	StartGameFunc    func(ctx context.Context, sessionID string) (*service.Snapshot, error)
	MoveFunc         func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error)
	AdvanceStageFunc func(ctx context.Context, sessionID string) (*service.Snapshot, error)
	RestartGameFunc  func(ctx context.Context, sessionID string) (*service.Snapshot, error)

	// Game State
	GetStateFunc func(ctx context.Context, sessionID string) (*service.Snapshot, error)
	StatsFunc    func(ctx context.Context) (*service.ServiceStats, error)
}

// Session Management
func (m *MockGameService) CreateSession(ctx context.Context, playerID string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, playerID)
	}
	return &service.SessionInfo{
		ID:        "test-session",
		PlayerID:  playerID,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:        sessionID,
		PlayerID:  "anonymous",
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Game Operations
func (m *MockGameService) StartGame(ctx context.Context, sessionID string) (*service.Snapshot, error) {
	if m.StartGameFunc != nil {
		return m.StartGameFunc(ctx, sessionID)
	}
	return &service.Snapshot{Phase: "loading"}, nil
}

func (m *MockGameService) Move(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, direction)
	}
	return &service.MoveResult{
		Direction: direction,
		Outcome:   "accepted",
		State:     &service.Snapshot{Phase: "playing"},
	}, nil
}

func (m *MockGameService) AdvanceStage(ctx context.Context, sessionID string) (*service.Snapshot, error) {
	if m.AdvanceStageFunc != nil {
		return m.AdvanceStageFunc(ctx, sessionID)
	}
	return &service.Snapshot{Phase: "loading"}, nil
}

func (m *MockGameService) RestartGame(ctx context.Context, sessionID string) (*service.Snapshot, error) {
	if m.RestartGameFunc != nil {
		return m.RestartGameFunc(ctx, sessionID)
	}
	return &service.Snapshot{Phase: "loading"}, nil
}

// Game State
func (m *MockGameService) GetState(ctx context.Context, sessionID string) (*service.Snapshot, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, sessionID)
	}
	return &service.Snapshot{Phase: "idle"}, nil
}

func (m *MockGameService) Stats(ctx context.Context) (*service.ServiceStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &service.ServiceStats{}, nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default player",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, playerID string) (*service.SessionInfo, error) {
					return &service.SessionInfo{
						ID:             "sess-123",
						PlayerID:       "anonymous",
						CreatedAt:      time.Now(),
						LastAccessedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "sess-123" {
					t.Errorf("Expected session ID sess-123, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session with explicit player",
			requestBody: map[string]string{"player_id": "alice"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, playerID string) (*service.SessionInfo, error) {
					if playerID != "alice" {
						t.Errorf("Expected player ID 'alice', got %s", playerID)
					}
					return &service.SessionInfo{
						ID:        "sess-456",
						PlayerID:  playerID,
						CreatedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.PlayerID != "alice" {
					t.Errorf("Expected player ID 'alice', got %s", resp.PlayerID)
				}
			},
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, playerID string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions", tt.requestBody)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "List multiple sessions",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "sess-1", PlayerID: "alice"},
						{ID: "sess-2", PlayerID: "bob"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 2 {
					t.Errorf("Expected count 2, got %v", resp["count"])
				}
				sessions := resp["sessions"].([]interface{})
				if len(sessions) != 2 {
					t.Errorf("Expected 2 sessions, got %d", len(sessions))
				}
			},
		},
		{
			name:        "Sort by last accessed with limit",
			queryParams: "?sort=accessed&order=desc&limit=1",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					old := time.Now().Add(-time.Hour)
					recent := time.Now()
					return []*service.SessionInfo{
						{ID: "sess-old", LastAccessedAt: old},
						{ID: "sess-new", LastAccessedAt: recent},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				sessions := resp["sessions"].([]interface{})
				if len(sessions) != 1 {
					t.Fatalf("Expected 1 session after limit, got %d", len(sessions))
				}
				first := sessions[0].(map[string]interface{})
				if first["id"] != "sess-new" {
					t.Errorf("Expected most recently accessed session first, got %v", first["id"])
				}
			},
		},
		{
			name: "Handle empty session list",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 0 {
					t.Errorf("Expected count 0, got %v", resp["count"])
				}
			},
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockGameService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return nil, fmt.Errorf("registry error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "registry error" {
					t.Errorf("Expected error 'registry error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions"+tt.queryParams, nil)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Get existing session",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					if sessionID != "sess-123" {
						return nil, service.ErrSessionNotFound
					}
					return &service.SessionInfo{
						ID:        sessionID,
						PlayerID:  "alice",
						CreatedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "sess-123" {
					t.Errorf("Expected session ID sess-123, got %s", resp.ID)
				}
			},
		},
		{
			name:      "Session not found",
			sessionID: "nonexistent",
			setupMock: func(m *MockGameService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
				}
			},
			expectedStatus: http.StatusNotFound,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "session not found: nonexistent" {
					t.Errorf("Unexpected error message: %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions/"+tt.sessionID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleGetSession(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Delete existing session",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.DeleteSessionFunc = func(ctx context.Context, sessionID string) error {
					if sessionID != "sess-123" {
						return service.ErrSessionNotFound
					}
					return nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["message"] != "Session sess-123 deleted" {
					t.Errorf("Unexpected message: %s", resp["message"])
				}
			},
		},
		{
			name:      "Delete non-existent session",
			sessionID: "nonexistent",
			setupMock: func(m *MockGameService) {
				m.DeleteSessionFunc = func(ctx context.Context, sessionID string) error {
					return service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "session not found" {
					t.Errorf("Expected error 'session not found', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("DELETE", "/api/sessions/"+tt.sessionID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleDeleteSession(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

// Game Operations Tests

func TestStartGame(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Start begins loading stage 1",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.StartGameFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return &service.Snapshot{
						Phase:       "loading",
						TotalStages: 10,
						Stage:       &service.StageView{Number: 1, Status: "loading"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.Snapshot
				parseResponse(t, w, &resp)
				if resp.Phase != "loading" {
					t.Errorf("Expected phase 'loading', got %s", resp.Phase)
				}
				if resp.Stage == nil || resp.Stage.Number != 1 {
					t.Error("Expected stage 1 to be loading")
				}
			},
		},
		{
			name:      "Session not found",
			sessionID: "nonexistent",
			setupMock: func(m *MockGameService) {
				m.StartGameFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "Session shutting down",
			sessionID: "sess-closed",
			setupMock: func(m *MockGameService) {
				m.StartGameFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return nil, service.ErrRuntimeClosed
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/start", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleStartGame(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		requestBody    map[string]interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Valid move up",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"direction": "up"},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
					if direction != "up" {
						t.Errorf("Expected direction 'up', got %s", direction)
					}
					return &service.MoveResult{
						Direction: "up",
						Outcome:   "accepted",
						State: &service.Snapshot{
							Phase: "playing",
							Stage: &service.StageView{
								Number: 1,
								Player: engine.Position{X: 5, Y: 4},
							},
						},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.MoveResult
				parseResponse(t, w, &resp)
				if resp.Outcome != "accepted" {
					t.Errorf("Expected outcome 'accepted', got %s", resp.Outcome)
				}
				if resp.State.Stage.Player.Y != 4 {
					t.Errorf("Expected Y position 4, got %d", resp.State.Stage.Player.Y)
				}
			},
		},
		{
			name:        "Blocked move is still a 200",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"direction": "left"},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
					return &service.MoveResult{
						Direction: "left",
						Outcome:   "rejected",
						Reason:    "blocked",
						State:     &service.Snapshot{Phase: "playing"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.MoveResult
				parseResponse(t, w, &resp)
				if resp.Outcome != "rejected" || resp.Reason != "blocked" {
					t.Errorf("Expected rejected/blocked, got %s/%s", resp.Outcome, resp.Reason)
				}
			},
		},
		{
			name:        "Unknown direction",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"direction": "diagonal"},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
					return nil, fmt.Errorf("%w: %q", engine.ErrUnknownDirection, direction)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Session not found",
			sessionID:   "nonexistent",
			requestBody: map[string]interface{}{"direction": "up"},
			setupMock: func(m *MockGameService) {
				m.MoveFunc = func(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "session not found" {
					t.Errorf("Expected error 'session not found', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/move", tt.requestBody)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleMove(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestAdvanceStage(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Advance after clearing a stage",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.AdvanceStageFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return &service.Snapshot{
						Phase:         "loading",
						StagesCleared: 1,
						Stage:         &service.StageView{Number: 2, Status: "loading"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.Snapshot
				parseResponse(t, w, &resp)
				if resp.Stage == nil || resp.Stage.Number != 2 {
					t.Error("Expected stage 2 to be loading")
				}
			},
		},
		{
			name:      "Advance without a cleared stage",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.AdvanceStageFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return nil, engine.ErrNotCleared
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/advance", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleAdvanceStage(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestRestartGame(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Restart existing session",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.RestartGameFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return &service.Snapshot{
						Phase:         "loading",
						StagesCleared: 0,
						TotalMoves:    0,
						Stage:         &service.StageView{Number: 1, Status: "loading"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["message"] != "Game restarted successfully" {
					t.Errorf("Unexpected message: %v", resp["message"])
				}
				state := resp["state"].(map[string]interface{})
				if state["total_moves"].(float64) != 0 {
					t.Error("Expected move counter to be reset")
				}
			},
		},
		{
			name:      "Restart non-existent session",
			sessionID: "nonexistent",
			setupMock: func(m *MockGameService) {
				m.RestartGameFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/restart", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleRestartGame(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetState(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Get existing game state",
			sessionID: "sess-123",
			setupMock: func(m *MockGameService) {
				m.GetStateFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return &service.Snapshot{
						Phase:         "playing",
						TotalStages:   10,
						StagesCleared: 2,
						TotalMoves:    25,
						Stage: &service.StageView{
							Number: 3,
							Status: "playing",
							Player: engine.Position{X: 5, Y: 3},
						},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.Snapshot
				parseResponse(t, w, &resp)
				if resp.StagesCleared != 2 || resp.TotalMoves != 25 {
					t.Errorf("Expected cleared=2, moves=25, got cleared=%d, moves=%d",
						resp.StagesCleared, resp.TotalMoves)
				}
			},
		},
		{
			name:      "Session not found",
			sessionID: "nonexistent",
			setupMock: func(m *MockGameService) {
				m.GetStateFunc = func(ctx context.Context, sessionID string) (*service.Snapshot, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions/"+tt.sessionID+"/state", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleGetState(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestStats(t *testing.T) {
	mockService := &MockGameService{
		StatsFunc: func(ctx context.Context) (*service.ServiceStats, error) {
			return &service.ServiceStats{ActiveSessions: 3}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/stats", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp service.ServiceStats
	parseResponse(t, w, &resp)
	if resp.ActiveSessions != 3 {
		t.Errorf("Expected 3 active sessions, got %d", resp.ActiveSessions)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(&MockGameService{})
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/health", nil)

	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	parseResponse(t, w, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %s", resp["status"])
	}
}

func TestWebSocket(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:           "Missing session parameter",
			queryParams:    "",
			setupMock:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid session",
			queryParams: "?session=invalid",
			setupMock: func(m *MockGameService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, service.ErrSessionNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "Valid session",
			queryParams: "?session=sess-123",
			setupMock: func(m *MockGameService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return &service.SessionInfo{
						ID:       sessionID,
						PlayerID: "alice",
					}, nil
				}
			},
			expectedStatus: http.StatusSwitchingProtocols,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/ws"+tt.queryParams, nil)

			// For WebSocket upgrade test, we need proper headers
			if tt.expectedStatus == http.StatusSwitchingProtocols {
				req.Header.Set("Upgrade", "websocket")
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
				req.Header.Set("Sec-WebSocket-Version", "13")
			}

			server.handleWebSocket(w, req)

			// WebSocket upgrade fails in unit tests due to httptest.ResponseRecorder limitations
			if tt.expectedStatus == http.StatusSwitchingProtocols {
				// Can't test actual WebSocket upgrade with httptest.ResponseRecorder
				// It doesn't implement http.Hijacker interface
				// We accept 500 error in this case as it indicates the upgrade was attempted
				if w.Code == http.StatusInternalServerError {
					return
				}
			}

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
