package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/gridrush/rushhour/puzzle/service"
	"github.com/gridrush/rushhour/puzzle/solver"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected mcpServer to be initialized")
	}

	if client.GetMCPServer() != client.mcpServer {
		t.Error("Expected GetMCPServer to return the underlying server")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/api/test" {
			t.Errorf("Expected path /api/test, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var result map[string]string
	err := client.apiCall("GET", "/api/test", nil, &result)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("Expected status ok, got %s", result["status"])
	}
}

func TestClient_apiCall_POST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", ct)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if body["board"] != "classic" {
			t.Errorf("Expected board classic in body, got %v", body["board"])
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/solve", map[string]string{"board": "classic"}, nil)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-host-that-does-not-exist:9999")

	var result map[string]string
	err := client.apiCall("GET", "/api/test", nil, &result)
	if err == nil {
		t.Error("Expected error for unreachable host")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Something went wrong"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/test", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "Something went wrong") {
		t.Errorf("Expected server error message to pass through, got %v", err)
	}
}

func TestClient_apiCall_HTTPErrorNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/test", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "API error: 404") {
		t.Errorf("Expected generic API error, got %v", err)
	}
}

func TestClient_handleListBoards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/boards" {
			t.Errorf("Expected path /api/boards, got %s", r.URL.Path)
		}
		boards := []service.BoardInfo{
			{Filename: "classic.txt", BoardID: "classic", Name: "classic", Width: 6, Height: 6, VehicleCount: 8},
			{Filename: "easy.txt", BoardID: "easy", Name: "easy", Width: 6, Height: 6, VehicleCount: 3},
		}
		json.NewEncoder(w).Encode(boards)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_boards",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleListBoards(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListBoards failed: %v", err)
	}

	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content")
	}

	if !strings.Contains(textContent.Text, "Available Boards (2)") {
		t.Errorf("Expected board count header, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "- classic (6x6, 8 vehicles)") {
		t.Errorf("Expected classic board line, got: %s", textContent.Text)
	}
}

func TestClient_handleGetBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/boards/classic" {
			t.Errorf("Expected path /api/boards/classic, got %s", r.URL.Path)
		}
		detail := service.BoardDetail{
			BoardInfo: service.BoardInfo{
				Filename: "classic.txt", BoardID: "classic", Name: "classic",
				Width: 6, Height: 6, VehicleCount: 2,
			},
			Grid: []string{"......", "......", ".XX..O", ".....O", ".....O", "......"},
			Vehicles: []*service.VehicleInfo{
				{ID: "X", Orientation: "h", X: 1, Y: 2, Length: 2, Target: true},
				{ID: "O", Orientation: "v", X: 5, Y: 2, Length: 3},
			},
		}
		detail.Exit.X = 5
		detail.Exit.Y = 2
		json.NewEncoder(w).Encode(detail)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_board",
			Arguments: map[string]interface{}{
				"board": "classic",
			},
		},
	}

	result, err := client.handleGetBoard(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGetBoard failed: %v", err)
	}

	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content")
	}

	if !strings.Contains(textContent.Text, "Board: classic (6x6, 2 vehicles)") {
		t.Errorf("Expected board header, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Exit: (5,2)") {
		t.Errorf("Expected exit position, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, ".XX..O") {
		t.Errorf("Expected grid row, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "- X at (1,2) h len=2 (target)") {
		t.Errorf("Expected target vehicle line, got: %s", textContent.Text)
	}
}

func TestClient_handleSolveBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/solve" {
			t.Errorf("Expected POST /api/solve, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["board"] != "classic" {
			t.Errorf("Expected board classic, got %v", req["board"])
		}
		if req["strategy"] != "astar" {
			t.Errorf("Expected strategy astar, got %v", req["strategy"])
		}
		if req["store"] != true {
			t.Errorf("Expected store true, got %v", req["store"])
		}

		resp := service.SolveResponse{
			ResultID:  "ab12",
			Board:     "classic",
			Strategy:  "astar",
			Found:     true,
			Cost:      35,
			MoveCount: 2,
			Moves: []*service.MoveInfo{
				{Vehicle: "O", Direction: "down", Cost: 3},
				{Vehicle: "X", Direction: "right", Cost: 2},
			},
			Frames: [][]string{
				{".XX..O", ".....O"},
				{".XX...", ".....O"},
				{"..XX..", ".....O"},
			},
			Stats:      solver.Stats{Expanded: 310, Generated: 1200},
			DurationMS: 1.5,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "solve_board",
			Arguments: map[string]interface{}{
				"board":    "classic",
				"strategy": "astar",
				"store":    true,
			},
		},
	}

	result, err := client.handleSolveBoard(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolveBoard failed: %v", err)
	}

	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content")
	}

	if !strings.Contains(textContent.Text, "✓ Solved classic with astar") {
		t.Errorf("Expected solved header, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Cost: 35 | Moves: 2") {
		t.Errorf("Expected cost summary, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Stored as: ab12") {
		t.Errorf("Expected stored ID, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "1. O down (cost 3)") {
		t.Errorf("Expected numbered move, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Final position:") {
		t.Errorf("Expected final frame section, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "..XX..") {
		t.Errorf("Expected final frame row, got: %s", textContent.Text)
	}
}

func TestClient_handleSolveBoard_NoSolution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.SolveResponse{
			Board:      "jammed",
			Strategy:   "bfs",
			Found:      false,
			Message:    "no solution exists for this board",
			Stats:      solver.Stats{Expanded: 40, Generated: 41},
			DurationMS: 0.3,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "solve_board",
			Arguments: map[string]interface{}{
				"board": "jammed",
			},
		},
	}

	result, err := client.handleSolveBoard(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolveBoard failed: %v", err)
	}

	textContent := result.Content[0].(mcp.TextContent)
	if !strings.Contains(textContent.Text, "✗ No solution for jammed with bfs") {
		t.Errorf("Expected no-solution header, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "no solution exists") {
		t.Errorf("Expected message to be included, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Expanded: 40") {
		t.Errorf("Expected search counters, got: %s", textContent.Text)
	}
}

func TestClient_handleSolveBoard_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "board 'nope' not found. Available boards: [classic easy]"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "solve_board",
			Arguments: map[string]interface{}{
				"board": "nope",
			},
		},
	}

	result, err := client.handleSolveBoard(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolveBoard failed: %v", err)
	}

	if !result.IsError {
		t.Error("Expected error result for unknown board")
	}
	textContent := result.Content[0].(mcp.TextContent)
	if !strings.Contains(textContent.Text, "not found") {
		t.Errorf("Expected not-found message, got: %s", textContent.Text)
	}
}

func TestClient_handleSolveText(t *testing.T) {
	boardText := "..O\nXXO\n..."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/solve-text" {
			t.Errorf("Expected POST /api/solve-text, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["text"] != boardText {
			t.Errorf("Expected board text to pass through, got %v", req["text"])
		}
		if req["name"] != "tiny" {
			t.Errorf("Expected name tiny, got %v", req["name"])
		}

		resp := service.SolveResponse{
			Board:     "tiny",
			Strategy:  "bfs",
			Found:     true,
			Cost:      5,
			MoveCount: 2,
			Moves: []*service.MoveInfo{
				{Vehicle: "O", Direction: "down", Cost: 3},
				{Vehicle: "X", Direction: "right", Cost: 2},
			},
			Stats: solver.Stats{Expanded: 4, Generated: 7},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "solve_text",
			Arguments: map[string]interface{}{
				"text": boardText,
				"name": "tiny",
			},
		},
	}

	result, err := client.handleSolveText(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolveText failed: %v", err)
	}

	textContent := result.Content[0].(mcp.TextContent)
	if !strings.Contains(textContent.Text, "✓ Solved tiny with bfs") {
		t.Errorf("Expected solved header, got: %s", textContent.Text)
	}
}

func TestClient_handleCompareStrategies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/compare" {
			t.Errorf("Expected POST /api/compare, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		strategies, _ := req["strategies"].([]interface{})
		if len(strategies) != 2 {
			t.Errorf("Expected 2 strategies in body, got %v", req["strategies"])
		}

		resp := service.CompareResponse{
			Board: "classic",
			Entries: []*service.CompareEntry{
				{Strategy: "bfs", Found: true, Cost: 24, MoveCount: 12, Expanded: 310, Generated: 1200, DurationMS: 1.5},
				{Strategy: "ucs", Found: true, Cost: 22, MoveCount: 13, Expanded: 290, Generated: 1100, DurationMS: 1.8},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "compare_strategies",
			Arguments: map[string]interface{}{
				"board":      "classic",
				"strategies": []interface{}{"bfs", "ucs"},
			},
		},
	}

	result, err := client.handleCompareStrategies(context.Background(), request)
	if err != nil {
		t.Fatalf("handleCompareStrategies failed: %v", err)
	}

	textContent := result.Content[0].(mcp.TextContent)
	if !strings.Contains(textContent.Text, "Strategy comparison for classic") {
		t.Errorf("Expected comparison header, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "cost=24") {
		t.Errorf("Expected bfs cost, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "cost=22") {
		t.Errorf("Expected ucs cost, got: %s", textContent.Text)
	}
}

func TestClient_handleListStrategies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/strategies" {
			t.Errorf("Expected path /api/strategies, got %s", r.URL.Path)
		}
		strategies := []service.StrategyInfo{
			{ID: "bfs", Name: "Breadth-first search", Description: "Explores states in move order", OptimalMoves: true},
			{ID: "ucs", Name: "Uniform-cost search", Description: "Explores states in cost order", OptimalCost: true},
			{ID: "dfs", Name: "Depth-first search", Description: "Dives deep, no guarantees"},
		}
		json.NewEncoder(w).Encode(strategies)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_strategies",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleListStrategies(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListStrategies failed: %v", err)
	}

	textContent := result.Content[0].(mcp.TextContent)
	if !strings.Contains(textContent.Text, "• bfs - Breadth-first search") {
		t.Errorf("Expected bfs entry, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Guarantee: fewest moves") {
		t.Errorf("Expected moves guarantee, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Guarantee: minimum cost") {
		t.Errorf("Expected cost guarantee, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "Guarantee: none") {
		t.Errorf("Expected none guarantee for dfs, got: %s", textContent.Text)
	}
}

func TestClient_handleGetResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/results/ab12" {
			t.Errorf("Expected path /api/results/ab12, got %s", r.URL.Path)
		}
		record := service.SolveRecord{
			ID: "ab12",
			Response: &service.SolveResponse{
				Board:     "classic",
				Strategy:  "ucs",
				Found:     true,
				Cost:      22,
				MoveCount: 13,
				Stats:     solver.Stats{Expanded: 290, Generated: 1100},
			},
		}
		json.NewEncoder(w).Encode(record)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_result",
			Arguments: map[string]interface{}{
				"result_id": "ab12",
			},
		},
	}

	result, err := client.handleGetResult(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGetResult failed: %v", err)
	}

	textContent := result.Content[0].(mcp.TextContent)
	if !strings.Contains(textContent.Text, "Result: ab12") {
		t.Errorf("Expected result header, got: %s", textContent.Text)
	}
	if !strings.Contains(textContent.Text, "✓ Solved classic with ucs") {
		t.Errorf("Expected embedded solve summary, got: %s", textContent.Text)
	}
}

func TestClient_handleSolverInstructions(t *testing.T) {
	// Static text, no API call involved
	client := NewClient("http://localhost:0")

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "solver_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleSolverInstructions(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSolverInstructions failed: %v", err)
	}

	textContent := result.Content[0].(mcp.TextContent)
	for _, want := range []string{"BOARD FORMAT", "COST MODEL", "bfs", "astar", "blocking-vehicles"} {
		if !strings.Contains(textContent.Text, want) {
			t.Errorf("Expected instructions to mention %q", want)
		}
	}
}

func TestFormatSolveResponse_Nil(t *testing.T) {
	got := formatSolveResponse(nil)
	if got != "No solve response available" {
		t.Errorf("Expected placeholder for nil response, got %q", got)
	}
}

func TestClient_Integration(t *testing.T) {
	// One mock API serving the endpoints a session would touch in order
	mux := http.NewServeMux()
	mux.HandleFunc("/api/boards", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]service.BoardInfo{
			{Filename: "classic.txt", BoardID: "classic", Name: "classic", Width: 6, Height: 6, VehicleCount: 8},
		})
	})
	mux.HandleFunc("/api/solve", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(service.SolveResponse{
			ResultID: "ff01", Board: "classic", Strategy: "bfs", Found: true,
			Cost: 24, MoveCount: 12,
			Stats: solver.Stats{Expanded: 310, Generated: 1200},
		})
	})
	mux.HandleFunc("/api/results/ff01", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(service.SolveRecord{
			ID: "ff01",
			Response: &service.SolveResponse{
				Board: "classic", Strategy: "bfs", Found: true, Cost: 24, MoveCount: 12,
			},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	listReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_boards", Arguments: map[string]interface{}{}},
	}
	listResult, err := client.handleListBoards(ctx, listReq)
	if err != nil {
		t.Fatalf("list_boards failed: %v", err)
	}
	if !strings.Contains(listResult.Content[0].(mcp.TextContent).Text, "classic") {
		t.Error("Expected classic in board list")
	}

	solveReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "solve_board",
			Arguments: map[string]interface{}{"board": "classic", "store": true},
		},
	}
	solveResult, err := client.handleSolveBoard(ctx, solveReq)
	if err != nil {
		t.Fatalf("solve_board failed: %v", err)
	}
	if !strings.Contains(solveResult.Content[0].(mcp.TextContent).Text, "Stored as: ff01") {
		t.Error("Expected stored result ID in solve output")
	}

	getReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_result",
			Arguments: map[string]interface{}{"result_id": "ff01"},
		},
	}
	getResult, err := client.handleGetResult(ctx, getReq)
	if err != nil {
		t.Fatalf("get_result failed: %v", err)
	}
	if !strings.Contains(getResult.Content[0].(mcp.TextContent).Text, "Result: ff01") {
		t.Error("Expected stored result to be retrievable")
	}
}
