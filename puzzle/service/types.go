package service

import (
	"time"

	"github.com/gridrush/rushhour/puzzle/bench"
	"github.com/gridrush/rushhour/puzzle/engine"
	"github.com/gridrush/rushhour/puzzle/solver"
)

// BoardInfo provides summary information about a catalog board
type BoardInfo struct {
	Filename     string `json:"filename"`
	BoardID      string `json:"board_id"` // The identifier to use when requesting solves
	Name         string `json:"name"`     // Display name
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	VehicleCount int    `json:"vehicle_count"`
}

// BoardDetail extends BoardInfo with the full layout
type BoardDetail struct {
	BoardInfo
	Grid     []string        `json:"grid"`
	Vehicles []*VehicleInfo  `json:"vehicles"`
	Exit     engine.Position `json:"exit"`
}

// VehicleInfo describes one vehicle of a board
type VehicleInfo struct {
	ID          string `json:"id"`
	Orientation string `json:"orientation"` // "h" or "v"
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Length      int    `json:"length"`
	Target      bool   `json:"target,omitempty"`
}

// SolveRequest asks for one solve of a catalog board
type SolveRequest struct {
	Board    string `json:"board"`
	Strategy string `json:"strategy"`        // bfs|dfs|ucs|astar, defaults to bfs
	Store    bool   `json:"store,omitempty"` // keep the result for later retrieval
}

// SolveTextRequest asks for one solve of an inline board layout
type SolveTextRequest struct {
	Name     string `json:"name,omitempty"` // Display name, defaults to "adhoc"
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
	Store    bool   `json:"store,omitempty"`
}

// MoveInfo is one step of a solution path
type MoveInfo struct {
	Vehicle   string `json:"vehicle"`
	Direction string `json:"direction"` // left|right|up|down
	Cost      int    `json:"cost"`      // The moved vehicle's length
}

// SolveResponse contains the outcome of one solve. Found false is a normal
// outcome meaning the search exhausted the state space without reaching the
// exit.
type SolveResponse struct {
	ResultID   string       `json:"result_id,omitempty"` // Set when the result was stored
	Board      string       `json:"board"`
	Strategy   string       `json:"strategy"`
	Found      bool         `json:"found"`
	Cost       int          `json:"cost"`
	MoveCount  int          `json:"move_count"`
	Moves      []*MoveInfo  `json:"moves,omitempty"`
	Frames     [][]string   `json:"frames,omitempty"` // Grid after each state, initial state first
	Stats      solver.Stats `json:"stats"`
	DurationMS float64      `json:"duration_ms"`
	Message    string       `json:"message,omitempty"`
}

// CompareRequest asks for the same board solved by several strategies
type CompareRequest struct {
	Board      string   `json:"board"`
	Strategies []string `json:"strategies,omitempty"` // Defaults to all four
}

// CompareEntry summarizes one strategy's run in a comparison
type CompareEntry struct {
	Strategy   string  `json:"strategy"`
	Found      bool    `json:"found"`
	Cost       int     `json:"cost"`
	MoveCount  int     `json:"move_count"`
	Expanded   int     `json:"expanded"`
	Generated  int     `json:"generated"`
	DurationMS float64 `json:"duration_ms"`
}

// CompareResponse contains per-strategy summaries for one board
type CompareResponse struct {
	Board   string          `json:"board"`
	Entries []*CompareEntry `json:"entries"`
}

// BenchRequest asks for averaged measurements over a boards x strategies grid
type BenchRequest struct {
	Boards     []string `json:"boards,omitempty"`     // Defaults to every catalog board
	Strategies []string `json:"strategies,omitempty"` // Defaults to all four
	Runs       int      `json:"runs,omitempty"`       // Repeats per pair, defaults to 3
}

// BenchResponse contains one aggregate per board and strategy pair
type BenchResponse struct {
	Results []*bench.Aggregate `json:"results"`
}

// StrategyInfo describes one search strategy and its guarantees
type StrategyInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	OptimalMoves bool   `json:"optimal_moves"` // Guarantees a fewest-moves path
	OptimalCost  bool   `json:"optimal_cost"`  // Guarantees a minimum-cost path
}

// SolveRecord is a stored solve addressable by a short ID
type SolveRecord struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Response  *SolveResponse `json:"response"`
}
