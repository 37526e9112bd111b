package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gridrush/rushhour/puzzle/bench"
	"github.com/gridrush/rushhour/puzzle/engine"
	"github.com/gridrush/rushhour/puzzle/solver"
)

// solveServiceImpl implements the SolveService interface
type solveServiceImpl struct {
	boards  BoardCatalog
	results ResultStore
}

// NewSolveService creates a new solve service instance. The service itself
// holds no mutable state; concurrency control lives in the catalog and the
// result store.
func NewSolveService(boards BoardCatalog, results ResultStore) SolveService {
	return &solveServiceImpl{
		boards:  boards,
		results: results,
	}
}

// ListBoards returns summary information for every catalog board
func (s *solveServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	boards, err := s.boards.ListBoards()
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard returns the full layout of one catalog board
func (s *solveServiceImpl) GetBoard(ctx context.Context, boardName string) (*BoardDetail, error) {
	b, err := s.loadBoard(boardName)
	if err != nil {
		return nil, err
	}
	return boardDetail(b), nil
}

// SaveBoard parses and stores a board layout under the given name
func (s *solveServiceImpl) SaveBoard(ctx context.Context, boardName, text string) (*BoardDetail, error) {
	if boardName == "" {
		return nil, fmt.Errorf("board name is required")
	}
	b, err := s.boards.SaveBoard(boardName, text)
	if err != nil {
		return nil, fmt.Errorf("failed to save board %s: %w", boardName, err)
	}
	return boardDetail(b), nil
}

// Solve runs one strategy on a catalog board
func (s *solveServiceImpl) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	b, err := s.loadBoard(req.Board)
	if err != nil {
		return nil, err
	}

	strategy, err := defaultStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	out, durationMS, err := runSolve(ctx, b, strategy)
	if err != nil {
		return nil, err
	}

	resp := buildResponse(b, strategy, out, durationMS)
	if req.Store {
		record, err := s.results.Create("", resp)
		if err != nil {
			return nil, fmt.Errorf("failed to store result: %w", err)
		}
		resp.ResultID = record.ID
	}
	return resp, nil
}

// SolveText runs one strategy on an inline board layout
func (s *solveServiceImpl) SolveText(ctx context.Context, req *SolveTextRequest) (*SolveResponse, error) {
	name := req.Name
	if name == "" {
		name = "adhoc"
	}

	b, err := engine.ParseBoard(name, req.Text)
	if err != nil {
		return nil, err
	}

	strategy, err := defaultStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	out, durationMS, err := runSolve(ctx, b, strategy)
	if err != nil {
		return nil, err
	}

	resp := buildResponse(b, strategy, out, durationMS)
	if req.Store {
		record, err := s.results.Create("", resp)
		if err != nil {
			return nil, fmt.Errorf("failed to store result: %w", err)
		}
		resp.ResultID = record.ID
	}
	return resp, nil
}

// Compare runs several strategies on the same board and summarizes each run
func (s *solveServiceImpl) Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error) {
	b, err := s.loadBoard(req.Board)
	if err != nil {
		return nil, err
	}

	strategies := solver.Strategies()
	if len(req.Strategies) > 0 {
		parsed := make([]solver.Strategy, 0, len(req.Strategies))
		for _, name := range req.Strategies {
			strategy, err := solver.ParseStrategy(name)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, strategy)
		}
		strategies = parsed
	}

	resp := &CompareResponse{Board: b.Name}
	for _, strategy := range strategies {
		out, durationMS, err := runSolve(ctx, b, strategy)
		if err != nil {
			return nil, fmt.Errorf("compare with %s: %w", strategy, err)
		}
		resp.Entries = append(resp.Entries, &CompareEntry{
			Strategy:   string(strategy),
			Found:      out.result.Found,
			Cost:       out.result.Cost,
			MoveCount:  out.result.Moves,
			Expanded:   out.stats.Expanded,
			Generated:  out.stats.Generated,
			DurationMS: durationMS,
		})
	}
	return resp, nil
}

// Bench runs the measurement harness over catalog boards
func (s *solveServiceImpl) Bench(ctx context.Context, req *BenchRequest) (*BenchResponse, error) {
	names := req.Boards
	if len(names) == 0 {
		infos, err := s.boards.ListBoards()
		if err != nil {
			return nil, fmt.Errorf("failed to list boards: %w", err)
		}
		for _, info := range infos {
			names = append(names, info.BoardID)
		}
	}

	var boards []*engine.Board
	if len(names) == 0 {
		// Empty catalog; fall back to the built-in default, which has no
		// backing file to load by name.
		b := s.boards.GetDefault()
		if b == nil {
			return nil, fmt.Errorf("no boards to benchmark")
		}
		boards = append(boards, b)
	}
	for _, name := range names {
		b, err := s.loadBoard(name)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}

	var strategies []solver.Strategy
	for _, name := range req.Strategies {
		strategy, err := solver.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}

	runner := &bench.Runner{Runs: req.Runs}
	results, err := runner.Run(ctx, boards, strategies)
	if err != nil {
		return nil, err
	}
	return &BenchResponse{Results: results}, nil
}

// ListStrategies describes the supported strategies and their guarantees
func (s *solveServiceImpl) ListStrategies(ctx context.Context) []*StrategyInfo {
	return []*StrategyInfo{
		{
			ID:           string(solver.BFS),
			Name:         "Breadth-first search",
			Description:  "Explores the frontier first in, first out and returns a fewest-moves path.",
			OptimalMoves: true,
		},
		{
			ID:          string(solver.DFS),
			Name:        "Depth-first search",
			Description: "Explores the frontier last in, first out; fast on some boards, no path quality guarantee.",
		},
		{
			ID:          string(solver.UCS),
			Name:        "Uniform-cost search",
			Description: "Expands the cheapest accumulated cost first and returns a minimum-cost path.",
			OptimalCost: true,
		},
		{
			ID:          string(solver.AStar),
			Name:        "A* search",
			Description: "Uniform-cost search guided by the blocking-vehicles heuristic.",
			OptimalCost: true,
		},
	}
}

// GetResult retrieves a stored solve by ID
func (s *solveServiceImpl) GetResult(ctx context.Context, resultID string) (*SolveRecord, error) {
	record, err := s.results.Get(resultID)
	if err != nil {
		return nil, fmt.Errorf("result not found: %w", err)
	}
	return record, nil
}

// ListResults returns all stored solves, oldest first
func (s *solveServiceImpl) ListResults(ctx context.Context) ([]*SolveRecord, error) {
	records := s.results.List()
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// DeleteResult removes a stored solve
func (s *solveServiceImpl) DeleteResult(ctx context.Context, resultID string) error {
	return s.results.Delete(resultID)
}

// loadBoard resolves a board name against the catalog, falling back to the
// default board for an empty name.
func (s *solveServiceImpl) loadBoard(name string) (*engine.Board, error) {
	if name == "" {
		if b := s.boards.GetDefault(); b != nil {
			return b, nil
		}
		return nil, fmt.Errorf("no board given and no default board available")
	}

	b, err := s.boards.LoadBoard(name)
	if err != nil {
		// Provide helpful error message with available options
		if strings.Contains(err.Error(), "board not found") {
			available, listErr := s.boards.ListBoards()
			if listErr == nil && len(available) > 0 {
				var boardIDs []string
				for _, info := range available {
					boardIDs = append(boardIDs, info.BoardID)
				}
				return nil, fmt.Errorf("board '%s' not found. Available boards: %v", name, boardIDs)
			}
			return nil, fmt.Errorf("board '%s' not found. Use /api/boards to list available boards", name)
		}
		return nil, fmt.Errorf("failed to load board %s: %w", name, err)
	}
	return b, nil
}

// defaultStrategy parses a strategy name, treating the empty string as BFS
func defaultStrategy(name string) (solver.Strategy, error) {
	if name == "" {
		return solver.BFS, nil
	}
	return solver.ParseStrategy(name)
}

// solveOutcome pairs a search result with the counters of the run that
// produced it.
type solveOutcome struct {
	result *solver.Result
	stats  solver.Stats
}

// runSolve executes one search on a worker goroutine so the caller's context
// deadline is honored. The solver itself has no cancellation; when the
// context expires the caller gets an error and the abandoned search winds
// down on its own. The channel is buffered so the worker can always exit.
func runSolve(ctx context.Context, b *engine.Board, strategy solver.Strategy) (*solveOutcome, float64, error) {
	sv, err := solver.New(strategy)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	done := make(chan *solveOutcome, 1)
	go func() {
		result := sv.Solve(b, b.InitialState())
		done <- &solveOutcome{result: result, stats: sv.Stats()}
	}()

	select {
	case out := <-done:
		return out, time.Since(start).Seconds() * 1000, nil
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("solve of %s with %s abandoned after %s: %w",
			b.Name, strategy, time.Since(start).Round(time.Millisecond), ctx.Err())
	}
}

// buildResponse translates a search outcome into wire types
func buildResponse(b *engine.Board, strategy solver.Strategy, out *solveOutcome, durationMS float64) *SolveResponse {
	resp := &SolveResponse{
		Board:      b.Name,
		Strategy:   string(strategy),
		Found:      out.result.Found,
		Cost:       out.result.Cost,
		MoveCount:  out.result.Moves,
		Stats:      out.stats,
		DurationMS: durationMS,
	}

	if !out.result.Found {
		resp.Message = fmt.Sprintf("no solution after expanding %d states", out.stats.Expanded)
		return resp
	}

	path := out.result.Path
	resp.Moves = make([]*MoveInfo, 0, out.result.Moves)
	resp.Frames = make([][]string, 0, len(path))
	for i, state := range path {
		resp.Frames = append(resp.Frames, state.Lines(b))
		if i == 0 {
			continue
		}
		moved, _ := state.MovedFrom(path[i-1])
		prev, _ := path[i-1].Vehicle(moved.ID)
		resp.Moves = append(resp.Moves, &MoveInfo{
			Vehicle:   string(moved.ID),
			Direction: engine.Direction(prev, moved),
			Cost:      moved.Length,
		})
	}
	return resp
}

// boardDetail translates a board into wire types
func boardDetail(b *engine.Board) *BoardDetail {
	detail := &BoardDetail{
		BoardInfo: BoardInfo{
			Filename:     b.Name + ".txt",
			BoardID:      b.Name,
			Name:         b.Name,
			Width:        b.Width,
			Height:       b.Height,
			VehicleCount: b.NumVehicles(),
		},
		Grid: b.InitialState().Lines(b),
		Exit: b.Goal,
	}
	for _, id := range b.IDs() {
		v, _ := b.Vehicle(id)
		detail.Vehicles = append(detail.Vehicles, &VehicleInfo{
			ID:          string(v.ID),
			Orientation: string(v.Orientation),
			X:           v.X,
			Y:           v.Y,
			Length:      v.Length,
			Target:      v.ID == b.Target,
		})
	}
	return detail
}
