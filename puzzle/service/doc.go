// Package service provides the business logic layer for the Rush Hour solver.
//
// The service package implements:
//   - Board catalog access and listing
//   - Solve orchestration across the four search strategies
//   - Strategy comparison on a single board
//   - Benchmark passthrough to the measurement harness
//   - Stored solve results for later retrieval and replay
//
// Core Interfaces:
//
// SolveService is the main service interface providing high-level solver
// operations. BoardCatalog loads and lists puzzle boards. ResultStore keeps
// completed solves addressable by short IDs.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the puzzle engine, translating engine states into wire types and enforcing
// per-request deadlines. Solvers run on worker goroutines, so a caller whose
// context expires gets an error while the abandoned search winds down on its
// own.
//
// Usage:
//
//	boards, err := catalog.NewManager("boards")
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc := service.NewSolveService(boards, results.NewManager())
//
//	resp, err := svc.Solve(ctx, &service.SolveRequest{
//		Board:    "classic",
//		Strategy: "astar",
//	})
//
// A solve that exhausts the state space without reaching the exit is a
// normal response with Found set to false, not an error.
package service
