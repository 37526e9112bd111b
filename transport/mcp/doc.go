// Package mcp provides a Model Context Protocol interface for the Rush Hour solver.
//
// The mcp package implements:
//   - A thin MCP client proxying every tool call to the REST API
//   - Tool definitions for board access, solving and stored results
//   - Text rendering of boards, solutions and strategy comparisons
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_boards: List the boards in the catalog
//   - get_board: Show one board's grid and vehicle roster
//   - solve_board: Solve a catalog board with a chosen strategy
//   - solve_text: Solve a board supplied inline as text
//   - compare_strategies: Run several strategies on one board side by side
//   - list_strategies: Describe the search strategies and their guarantees
//   - get_result: Fetch a stored solve by its ID
//   - solver_instructions: Board format reference and strategy guidance
//
// Architecture:
//
// The client holds no solver state of its own. Every tool handler issues an
// HTTP request against the REST server, so the MCP process and the web
// process see the same catalog and the same stored results. Running the MCP
// command therefore requires a reachable API server.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Browse the board catalog and inspect layouts
//   - Solve boards and read the move sequence and final position
//   - Compare strategy trade-offs (fewest moves vs cheapest cost)
//   - Store solves and retrieve them later by short ID
package mcp
