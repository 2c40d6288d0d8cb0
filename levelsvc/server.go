package levelsvc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/localfirst-games/mazerunner/game/level"
)

// Server serves the level API: stage descriptors by number, wrapped in the
// envelope the game client expects.
type Server struct {
	store  *Store
	router *mux.Router
	logger *log.Logger
}

// NewServer creates a new level API server over the given store.
func NewServer(store *Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  store,
		router: mux.NewRouter(),
		logger: logger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)
	s.router.HandleFunc("/level/{stage_number}", s.handleGetLevel).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// corsMiddleware lets browser-hosted game clients call the API directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type levelResponse struct {
	Success bool              `json:"success"`
	Data    *level.Descriptor `json:"data"`
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["stage_number"]
	number, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid stage_number format")
		return
	}
	if number < 1 {
		respondError(w, http.StatusBadRequest, "Stage number must be at least 1")
		return
	}

	d, err := s.store.Stage(r.Context(), number)
	if errors.Is(err, ErrStageNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Stage %d not found", number))
		return
	}
	if err != nil {
		s.logger.Printf("WARNING: load stage %d: %v", number, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, levelResponse{Success: true, Data: d})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountStages(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"stages": count,
	})
}
