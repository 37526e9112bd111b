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
	"github.com/gridrush/rushhour/puzzle/service"
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
		// Dense boards can take a while under dfs
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rush Hour Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rush Hour Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

THE PUZZLE:
A grid of sliding vehicles. The target car (X) sits on a fixed row and can
only slide horizontally; free it by sliding the other vehicles out of its
way until X reaches the right edge. Every move slides one vehicle exactly
one cell and costs that vehicle's length, so shuffling a truck (length 3)
is more expensive than shuffling a car (length 2).

AVAILABLE TOOLS:
- list_boards: List the boards in the catalog
- get_board: Show one board's grid and vehicle roster
- solve_board: Solve a catalog board with a chosen strategy
- solve_text: Solve a board supplied inline as text
- compare_strategies: Run several strategies on one board side by side
- list_strategies: Describe the search strategies and their guarantees
- get_result: Fetch a stored solve by its ID
- solver_instructions: Board format reference and strategy guidance

STRATEGIES:
bfs finds a fewest-moves path, ucs and astar find a cheapest-cost path
(these can disagree because moves have unequal costs), dfs finds some
path quickly with no quality guarantee.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Board catalog
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List all puzzle boards available in the catalog",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_board",
		Description: "Get one board's grid and vehicle roster",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Board name from the catalog",
				},
			},
			Required: []string{"board"},
		},
	}, c.handleGetBoard)

	// Solving
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_board",
		Description: "Solve a catalog board and return the move sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Board name (optional, defaults to the catalog default)",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"bfs", "dfs", "ucs", "astar"},
					"description": "Search strategy (optional, defaults to bfs)",
				},
				"store": map[string]interface{}{
					"type":        "boolean",
					"description": "Keep the result on the server for later retrieval or replay",
				},
			},
		},
	}, c.handleSolveBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_text",
		Description: "Solve a board supplied inline as text, one row per line ('.' empty, 'X' target car, letters for other vehicles)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Board layout, rows separated by newlines",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for the board (optional)",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"bfs", "dfs", "ucs", "astar"},
					"description": "Search strategy (optional, defaults to bfs)",
				},
			},
			Required: []string{"text"},
		},
	}, c.handleSolveText)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compare_strategies",
		Description: "Run several strategies on the same board and compare cost, moves and expansions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Board name (optional, defaults to the catalog default)",
				},
				"strategies": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"bfs", "dfs", "ucs", "astar"},
					},
					"description": "Strategies to run (optional, defaults to all four)",
				},
			},
		},
	}, c.handleCompareStrategies)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_strategies",
		Description: "Describe the available search strategies and their optimality guarantees",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListStrategies)

	// Stored results
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_result",
		Description: "Fetch a stored solve by its ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"result_id": map[string]interface{}{
					"type":        "string",
					"description": "ID returned by solve_board with store=true",
				},
			},
			Required: []string{"result_id"},
		},
	}, c.handleGetResult)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get the board format reference and strategy guidance",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
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

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var boards []service.BoardInfo
	err := c.apiCall("GET", "/api/boards", nil, &boards)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Boards (%d):\n\n", len(boards))
	for _, b := range boards {
		result += fmt.Sprintf("- %s (%dx%d, %d vehicles)\n",
			b.BoardID, b.Width, b.Height, b.VehicleCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	boardName, _ := args["board"].(string)

	var board service.BoardDetail
	err := c.apiCall("GET", fmt.Sprintf("/api/boards/%s", boardName), nil, &board)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatBoardDetail(&board)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolveBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	boardName, _ := args["board"].(string)
	strategy, _ := args["strategy"].(string)
	store, _ := args["store"].(bool)

	body := map[string]interface{}{
		"board":    boardName,
		"strategy": strategy,
		"store":    store,
	}

	var resp service.SolveResponse
	err := c.apiCall("POST", "/api/solve", body, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSolveResponse(&resp)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolveText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	text, _ := args["text"].(string)
	name, _ := args["name"].(string)
	strategy, _ := args["strategy"].(string)

	body := map[string]interface{}{
		"text":     text,
		"name":     name,
		"strategy": strategy,
	}

	var resp service.SolveResponse
	err := c.apiCall("POST", "/api/solve-text", body, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSolveResponse(&resp)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCompareStrategies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	boardName, _ := args["board"].(string)
	strategiesRaw, _ := args["strategies"].([]interface{})

	// Convert strategies to string array
	strategies := make([]string, 0, len(strategiesRaw))
	for _, s := range strategiesRaw {
		if strategy, ok := s.(string); ok {
			strategies = append(strategies, strategy)
		}
	}

	body := map[string]interface{}{
		"board":      boardName,
		"strategies": strategies,
	}

	var resp service.CompareResponse
	err := c.apiCall("POST", "/api/compare", body, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatCompareResponse(&resp)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListStrategies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var strategies []service.StrategyInfo
	err := c.apiCall("GET", "/api/strategies", nil, &strategies)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Search Strategies:\n\n"
	for _, s := range strategies {
		result += fmt.Sprintf("• %s - %s\n  %s\n", s.ID, s.Name, s.Description)
		switch {
		case s.OptimalMoves:
			result += "  Guarantee: fewest moves\n\n"
		case s.OptimalCost:
			result += "  Guarantee: minimum cost\n\n"
		default:
			result += "  Guarantee: none\n\n"
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	resultID, _ := args["result_id"].(string)

	var record service.SolveRecord
	err := c.apiCall("GET", fmt.Sprintf("/api/results/%s", resultID), nil, &record)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Result: %s (stored %s)\n\n%s",
		record.ID, record.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSolveResponse(record.Response))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Rush Hour Solver - Complete Reference

THE PUZZLE:
Vehicles sit on a rectangular grid, each occupying 2 or 3 contiguous cells
in a row or column. A vehicle only slides along its own axis, one cell per
move, and never through or onto another vehicle. The target car X is
horizontal; the puzzle is solved when X reaches the rightmost column of
its row, where the exit sits.

BOARD FORMAT:
One row per line. '.' marks an empty cell. Every other character is a
vehicle ID; repeating a letter marks the cells that vehicle occupies.
IDs are case-sensitive and 'X' is reserved for the target car.

Example:
AA...O
P..Q.O
PXXQ.O
P..Q..
B...CC
B.RR..

Rules enforced by the parser:
- All rows must have the same width
- Each vehicle's cells must be contiguous and collinear
- Exactly one X, and it must be horizontal

COST MODEL:
Each move slides one vehicle one cell and costs that vehicle's LENGTH.
A 12-move solution that only shuffles cars (length 2) costs 24; a
10-move solution that shuffles trucks (length 3) can cost 30. Fewest
moves and cheapest cost are different objectives.

STRATEGIES:
• bfs - Breadth-first search. Optimal in MOVES. Good default.
• dfs - Depth-first search. Fast on some boards, paths can be terrible.
• ucs - Uniform-cost search. Optimal in COST.
• astar - A* with the blocking-vehicles heuristic (number of distinct
  vehicles standing between X and the exit). Optimal in COST, usually
  expands fewer states than ucs.

PRACTICAL GUIDANCE:
- Use compare_strategies to see the moves/cost trade-off on one board
- A "found": false response is not an error; the board is unsolvable
  and the counters tell you how much of the state space was checked
- Solve with store=true, then replay the stored frames over the
  WebSocket endpoint (/ws?board=...) to animate the solution
- Stored results are addressable by short IDs via get_result`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatBoardDetail(board *service.BoardDetail) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Board: %s (%dx%d, %d vehicles)\n",
		board.BoardID, board.Width, board.Height, board.VehicleCount))
	b.WriteString(fmt.Sprintf("Exit: (%d,%d)\n\n", board.Exit.X, board.Exit.Y))

	for _, row := range board.Grid {
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\nVehicles:\n")
	for _, v := range board.Vehicles {
		line := fmt.Sprintf("- %s at (%d,%d) %s len=%d", v.ID, v.X, v.Y, v.Orientation, v.Length)
		if v.Target {
			line += " (target)"
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func formatSolveResponse(resp *service.SolveResponse) string {
	if resp == nil {
		return "No solve response available"
	}

	var b strings.Builder

	if !resp.Found {
		b.WriteString(fmt.Sprintf("✗ No solution for %s with %s\n", resp.Board, resp.Strategy))
		if resp.Message != "" {
			b.WriteString(resp.Message + "\n")
		}
		b.WriteString(fmt.Sprintf("Expanded: %d | Generated: %d | %.1fms\n",
			resp.Stats.Expanded, resp.Stats.Generated, resp.DurationMS))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("✓ Solved %s with %s\n", resp.Board, resp.Strategy))
	b.WriteString(fmt.Sprintf("Cost: %d | Moves: %d | Expanded: %d | Generated: %d | %.1fms\n",
		resp.Cost, resp.MoveCount, resp.Stats.Expanded, resp.Stats.Generated, resp.DurationMS))
	if resp.ResultID != "" {
		b.WriteString(fmt.Sprintf("Stored as: %s\n", resp.ResultID))
	}

	if len(resp.Moves) > 0 {
		b.WriteString("\nMoves:\n")
		for i, m := range resp.Moves {
			b.WriteString(fmt.Sprintf("%d. %s %s (cost %d)\n", i+1, m.Vehicle, m.Direction, m.Cost))
		}
	}

	// Final frame shows the target car at the exit
	if len(resp.Frames) > 0 {
		b.WriteString("\nFinal position:\n")
		for _, row := range resp.Frames[len(resp.Frames)-1] {
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatCompareResponse(resp *service.CompareResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Strategy comparison for %s:\n\n", resp.Board))
	for _, e := range resp.Entries {
		status := "✓"
		if !e.Found {
			status = "✗"
		}
		b.WriteString(fmt.Sprintf("%-6s %s cost=%-4d moves=%-3d expanded=%-6d generated=%-6d %.1fms\n",
			e.Strategy, status, e.Cost, e.MoveCount, e.Expanded, e.Generated, e.DurationMS))
	}

	return b.String()
}
