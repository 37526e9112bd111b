// Package bench measures the search strategies against a set of boards.
//
// A Runner repeats every board and strategy pair a configurable number of
// times, recording wall time, heap allocation, node counters and solution
// shape per run, then averages the runs into one Aggregate per pair. The
// solvers are deterministic, so only the timing and allocation columns vary
// between runs.
//
// Reports:
//
//   - WriteTable renders an aligned text summary for terminals.
//   - WriteCSV emits the historical evaluation layout (Board, Algorithm,
//     Avg_Time_s, Avg_Memory_KB, ...) for spreadsheet import.
//
// Usage:
//
//	runner := &bench.Runner{Runs: 5}
//	aggregates, err := runner.Run(ctx, boards, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	bench.WriteTable(os.Stdout, aggregates)
package bench
