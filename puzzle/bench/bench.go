package bench

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/gridrush/rushhour/puzzle/engine"
	"github.com/gridrush/rushhour/puzzle/solver"
)

const (
	// DefaultRuns is the per-pair repeat count when Runner.Runs is zero.
	DefaultRuns = 3
	// DefaultTimeout bounds one solve when Runner.Timeout is zero.
	DefaultTimeout = 30 * time.Second
)

// Metrics holds the measurements of a single timed solve.
type Metrics struct {
	Board     string
	Strategy  solver.Strategy
	Duration  time.Duration
	AllocKB   float64 // heap bytes allocated during the run, in KB
	Expanded  int
	Generated int
	Moves     int
	Cost      int
	Found     bool
}

// Aggregate averages the metrics of every run of one board and strategy
// pair. Found reflects the search outcome, which is identical across runs
// because the solvers are deterministic.
type Aggregate struct {
	Board        string  `json:"board"`
	Strategy     string  `json:"strategy"`
	Runs         int     `json:"runs"`
	AvgSeconds   float64 `json:"avg_seconds"`
	AvgAllocKB   float64 `json:"avg_alloc_kb"`
	AvgExpanded  float64 `json:"avg_expanded"`
	AvgGenerated float64 `json:"avg_generated"`
	AvgMoves     float64 `json:"avg_moves"`
	AvgCost      float64 `json:"avg_cost"`
	Found        bool    `json:"found"`
}

// Runner repeats timed solves over a boards x strategies grid. The zero
// value is usable and falls back to DefaultRuns and DefaultTimeout.
type Runner struct {
	Runs    int           // repeats per board+strategy pair
	Timeout time.Duration // budget for one solve
}

func (r *Runner) runCount() int {
	if r.Runs > 0 {
		return r.Runs
	}
	return DefaultRuns
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// Run benchmarks every board with every strategy and returns one aggregate
// per pair, in boards-outer strategies-inner order. An empty strategy list
// means all four. The context bounds the whole run; a single solve that
// exceeds the per-solve timeout aborts the benchmark with an error.
func (r *Runner) Run(ctx context.Context, boards []*engine.Board, strategies []solver.Strategy) ([]*Aggregate, error) {
	if len(strategies) == 0 {
		strategies = solver.Strategies()
	}

	aggregates := make([]*Aggregate, 0, len(boards)*len(strategies))
	for _, b := range boards {
		for _, strategy := range strategies {
			agg, err := r.runPair(ctx, b, strategy)
			if err != nil {
				return nil, err
			}
			aggregates = append(aggregates, agg)
		}
	}
	return aggregates, nil
}

// runPair measures one board+strategy pair over the configured repeat count.
func (r *Runner) runPair(ctx context.Context, b *engine.Board, strategy solver.Strategy) (*Aggregate, error) {
	runs := r.runCount()
	agg := &Aggregate{
		Board:    b.Name,
		Strategy: string(strategy),
		Runs:     runs,
	}

	for i := 0; i < runs; i++ {
		m, err := r.measure(ctx, b, strategy)
		if err != nil {
			return nil, err
		}
		agg.AvgSeconds += m.Duration.Seconds()
		agg.AvgAllocKB += m.AllocKB
		agg.AvgExpanded += float64(m.Expanded)
		agg.AvgGenerated += float64(m.Generated)
		agg.AvgMoves += float64(m.Moves)
		agg.AvgCost += float64(m.Cost)
		agg.Found = m.Found
	}

	n := float64(runs)
	agg.AvgSeconds /= n
	agg.AvgAllocKB /= n
	agg.AvgExpanded /= n
	agg.AvgGenerated /= n
	agg.AvgMoves /= n
	agg.AvgCost /= n
	return agg, nil
}

// measure runs one timed, allocation-profiled solve. The search itself has
// no cancellation, so it runs on a worker goroutine that is abandoned when
// the per-solve timeout or the caller's context expires. The channel is
// buffered so the worker can always exit.
func (r *Runner) measure(ctx context.Context, b *engine.Board, strategy solver.Strategy) (*Metrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("bench of %s with %s abandoned: %w", b.Name, strategy, err)
	}

	sv, err := solver.New(strategy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	// Settle the heap so the allocation delta mostly reflects the search.
	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	done := make(chan *solver.Result, 1)
	go func() {
		done <- sv.Solve(b, b.InitialState())
	}()

	var result *solver.Result
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("bench of %s with %s abandoned after %s: %w",
			b.Name, strategy, time.Since(start).Round(time.Millisecond), ctx.Err())
	}
	elapsed := time.Since(start)

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	stats := sv.Stats()
	return &Metrics{
		Board:    b.Name,
		Strategy: strategy,
		Duration: elapsed,
		// TotalAlloc is monotonic, so the delta is immune to collections
		// that run mid-search.
		AllocKB:   float64(after.TotalAlloc-before.TotalAlloc) / 1024,
		Expanded:  stats.Expanded,
		Generated: stats.Generated,
		Moves:     result.Moves,
		Cost:      result.Cost,
		Found:     result.Found,
	}, nil
}
