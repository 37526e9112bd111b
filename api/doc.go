// Package api provides HTTP REST API handlers for the Rush Hour solver.
//
// The api package implements:
//   - RESTful endpoints for solving boards
//   - Board catalog listing and upload
//   - Strategy comparison
//   - Stored result retrieval and replay
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Boards:
//   - GET /api/boards - List available boards
//   - POST /api/boards - Upload a new board layout
//   - GET /api/boards/{name} - Get one board with its vehicle list
//
// Solving:
//   - GET /api/strategies - List search strategies and their guarantees
//   - POST /api/solve - Solve a catalog board
//   - POST /api/solve-text - Solve an inline board layout
//   - POST /api/compare - Run several strategies on the same board
//   - POST /api/bench - Run the measurement harness over catalog boards
//
// Results:
//   - GET /api/results - List stored solves (order and limit query params)
//   - GET /api/results/{id} - Get one stored solve with its frames
//   - DELETE /api/results/{id} - Remove a stored solve
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Solve requests name a catalog board
// and a strategy; both default when omitted:
//
//	{
//	  "board": "classic",  // optional, defaults to the catalog default
//	  "strategy": "astar", // bfs|dfs|ucs|astar, defaults to bfs
//	  "store": true        // keep the result for later replay
//	}
//
// A successful solve response carries the move list, one rendered frame per
// path state, and the search counters:
//
//	{
//	  "board": "classic",
//	  "strategy": "astar",
//	  "found": true,
//	  "cost": 35,
//	  "move_count": 12,
//	  "moves": [{"vehicle": "C", "direction": "left", "cost": 2}, ...],
//	  "frames": [["AA...O", ...], ...],
//	  "stats": {"expanded": 310, "generated": 1021}
//	}
//
// WebSocket:
//
// GET /ws?board={name} upgrades to a WebSocket subscribed to that board's
// solve events. Stored results can be replayed over the socket frame by
// frame; see the transport/websocket package for the message protocol.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "board 'classik' not found. Available boards: [classic easy hard]"
//	}
package api
