package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gridrush/rushhour/puzzle/service"
	"github.com/gridrush/rushhour/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.SolveService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(solveService service.SolveService, hub *websocket.Hub) *Server {
	s := &Server{
		service: solveService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Board catalog
	api.HandleFunc("/boards", s.handleListBoards).Methods("GET")
	api.HandleFunc("/boards", s.handleCreateBoard).Methods("POST")
	api.HandleFunc("/boards/{name}", s.handleGetBoard).Methods("GET")

	// Solving
	api.HandleFunc("/strategies", s.handleListStrategies).Methods("GET")
	api.HandleFunc("/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/solve-text", s.handleSolveText).Methods("POST")
	api.HandleFunc("/compare", s.handleCompare).Methods("POST")
	api.HandleFunc("/bench", s.handleBench).Methods("POST")

	// Stored results
	api.HandleFunc("/results", s.handleListResults).Methods("GET")
	api.HandleFunc("/results/{id}", s.handleGetResult).Methods("GET")
	api.HandleFunc("/results/{id}", s.handleDeleteResult).Methods("DELETE")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
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

// statusForSolveError classifies solve endpoint failures. The service layer
// reports problems as wrapped errors, so classification matches on the text.
func statusForSolveError(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "unknown strategy"):
		return http.StatusBadRequest
	case strings.Contains(msg, "malformed board"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Board Handlers

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.service.ListBoards(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, boards)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	boardName := vars["name"]

	// Remove .txt extension if present
	boardName = strings.TrimSuffix(boardName, ".txt")

	board, err := s.service.GetBoard(r.Context(), boardName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Board name is required")
		return
	}

	board, err := s.service.SaveBoard(r.Context(), req.Name, req.Text)
	if err != nil {
		if strings.Contains(err.Error(), "malformed board") {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save board: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Board saved successfully",
		"board_id": board.BoardID,
	})
}

// Solve Handlers

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.ListStrategies(r.Context()))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.hub != nil && req.Board != "" {
		s.hub.BroadcastSolveStarted(req.Board, req.Strategy)
	}

	resp, err := s.service.Solve(r.Context(), &req)
	if err != nil {
		respondError(w, statusForSolveError(err), err.Error())
		return
	}

	// Broadcast to WebSocket clients watching this board
	if s.hub != nil {
		s.hub.BroadcastSolveCompleted(resp.Board, resp)
	}

	// Compact server log for observability
	fmt.Printf("[SOLVE] board=%s strategy=%s found=%t cost=%d moves=%d expanded=%d in %.1fms\n",
		resp.Board, resp.Strategy, resp.Found, resp.Cost, resp.MoveCount, resp.Stats.Expanded, resp.DurationMS)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSolveText(w http.ResponseWriter, r *http.Request) {
	var req service.SolveTextRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "Board text is required")
		return
	}

	if s.hub != nil && req.Name != "" {
		s.hub.BroadcastSolveStarted(req.Name, req.Strategy)
	}

	resp, err := s.service.SolveText(r.Context(), &req)
	if err != nil {
		respondError(w, statusForSolveError(err), err.Error())
		return
	}

	// Broadcast to WebSocket clients watching this board
	if s.hub != nil {
		s.hub.BroadcastSolveCompleted(resp.Board, resp)
	}

	// Compact server log for observability
	fmt.Printf("[SOLVE] board=%s strategy=%s found=%t cost=%d moves=%d expanded=%d in %.1fms\n",
		resp.Board, resp.Strategy, resp.Found, resp.Cost, resp.MoveCount, resp.Stats.Expanded, resp.DurationMS)

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req service.CompareRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.service.Compare(r.Context(), &req)
	if err != nil {
		respondError(w, statusForSolveError(err), err.Error())
		return
	}

	// Compact server log for observability
	fmt.Printf("[COMPARE] board=%s strategies=%d\n", resp.Board, len(resp.Entries))

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	var req service.BenchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.service.Bench(r.Context(), &req)
	if err != nil {
		respondError(w, statusForSolveError(err), err.Error())
		return
	}

	// Compact server log for observability
	fmt.Printf("[BENCH] entries=%d\n", len(resp.Results))

	respondJSON(w, http.StatusOK, resp)
}

// Result Handlers

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListResults(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	order := query.Get("order")    // "asc" (default), "desc"
	limitStr := query.Get("limit") // number of results to return

	if order != "desc" {
		order = "asc"
	}

	sort.Slice(records, func(i, j int) bool {
		if order == "desc" {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	// Apply limit if specified
	limit := len(records)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(records) {
			limit = l
		}
	}
	records = records[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"results": records,
		"order":   order,
	})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resultID := vars["id"]

	record, err := s.service.GetResult(r.Context(), resultID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resultID := vars["id"]

	err := s.service.DeleteResult(r.Context(), resultID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Result %s deleted", resultID),
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	boardName := r.URL.Query().Get("board")
	if boardName == "" {
		http.Error(w, "board parameter required", http.StatusBadRequest)
		return
	}

	// Verify board exists
	_, err := s.service.GetBoard(context.Background(), boardName)
	if err != nil {
		http.Error(w, "Unknown board", http.StatusNotFound)
		return
	}

	// Upgrade to WebSocket
	s.hub.ServeWS(w, r, boardName)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
