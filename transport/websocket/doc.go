// Package websocket provides WebSocket transport for the Rush Hour solver.
//
// The websocket package implements:
//   - Real-time solve notifications per board
//   - Frame-by-frame playback of stored solutions
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. All shared state is
// owned by the hub's Run goroutine.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Incoming: {"command": "replay", "result_id": "ab12", "interval_ms": 200}
//   - Outgoing: {"topic": "classic", "event": "...", "data": {...}}
//
// Outgoing events are "solve_started" and "solve_completed" for live solves
// on the subscribed board, and "frame" followed by "playback_done" during a
// replay. Failures surface as an "error" event.
//
// Topic Subscription:
//
// Clients subscribe to a board by query parameter (?board=classic) when
// establishing the connection. Solve events are broadcast only to clients
// subscribed to the same board; replay frames go to the requesting client
// alone.
//
// Usage:
//
//	hub := websocket.NewHub(solveService)
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("board"))
//	})
//
// Connection Lifecycle:
//
// 1. Client connects with a board topic
// 2. Connection registered with hub
// 3. Client receives solve events, may request playback
// 4. Disconnection triggers cleanup
package websocket
