package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gridrush/rushhour/puzzle/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Frame pacing bounds for solution playback.
	defaultFrameInterval = 200 * time.Millisecond
	minFrameInterval     = 10 * time.Millisecond
	maxFrameInterval     = 2 * time.Second
)

var log = logrus.New()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: restrict origins before exposing the server beyond localhost
		return true
	},
}

// ResultSource provides stored solves for playback
type ResultSource interface {
	GetResult(ctx context.Context, resultID string) (*service.SolveRecord, error)
}

// Message represents a WebSocket message. Events are "solve_started",
// "solve_completed", "frame", "playback_done" and "error".
type Message struct {
	Topic string      `json:"topic,omitempty"`
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`

	// target routes a message to a single client instead of a topic.
	target *Client
}

// FramePayload is one step of a solution playback
type FramePayload struct {
	Index int               `json:"index"`
	Total int               `json:"total"`
	Grid  []string          `json:"grid"`
	Move  *service.MoveInfo `json:"move,omitempty"` // The move that produced this frame, absent on the first
}

// command is a client-to-server request read off the socket
type command struct {
	Command    string `json:"command"`
	ResultID   string `json:"result_id,omitempty"`
	IntervalMS int    `json:"interval_ms,omitempty"`
}

// Client represents a WebSocket client subscribed to one topic
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	topic string
}

// Hub maintains the set of active clients and broadcasts messages. Clients
// subscribe to a topic, usually a board name; solve events fan out to every
// client on the topic, while playback frames go to the requesting client
// only. All map access happens on the Run goroutine.
type Hub struct {
	// Registered clients by topic
	topics map[string]map[*Client]bool

	// Reverse index from client to its topic
	clients map[*Client]string

	// Stored solves for replay, may be nil
	results ResultSource

	// Outbound messages to clients
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub. A nil result source disables replay.
func NewHub(results ResultSource) *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		clients:    make(map[*Client]string),
		results:    results,
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, topic string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 256),
		topic: topic,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastSolveStarted announces that a solve began on a board
func (h *Hub) BroadcastSolveStarted(board, strategy string) {
	h.broadcast <- &Message{
		Topic: board,
		Event: "solve_started",
		Data: map[string]string{
			"board":    board,
			"strategy": strategy,
		},
	}
}

// BroadcastSolveCompleted fans a finished solve out to the board's topic
func (h *Hub) BroadcastSolveCompleted(board string, resp *service.SolveResponse) {
	h.broadcast <- &Message{
		Topic: board,
		Event: "solve_completed",
		Data:  resp,
	}
}

// BroadcastEvent sends a custom event to all clients on a topic
func (h *Hub) BroadcastEvent(topic string, event string, data interface{}) {
	h.broadcast <- &Message{
		Topic: topic,
		Event: event,
		Data:  data,
	}
}

// sendTo routes a message to a single client through the hub loop, which
// drops it if the client has already unregistered.
func (h *Hub) sendTo(client *Client, message *Message) {
	message.target = client
	h.broadcast <- message
}

// registerClient adds a client to a topic
func (h *Hub) registerClient(client *Client) {
	if h.topics[client.topic] == nil {
		h.topics[client.topic] = make(map[*Client]bool)
	}
	h.topics[client.topic][client] = true
	h.clients[client] = client.topic

	log.Printf("Client registered for topic %s (total clients: %d)",
		client.topic, len(h.topics[client.topic]))
}

// unregisterClient removes a client from its topic
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.topics[client.topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			delete(h.clients, client)
			close(client.send)

			// Clean up empty topics
			if len(clients) == 0 {
				delete(h.topics, client.topic)
			}

			log.Printf("Client unregistered from topic %s (remaining clients: %d)",
				client.topic, len(clients))
		}
	}
}

// broadcastMessage delivers a message to its target client or to every
// client on its topic.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal WebSocket message: %v", err)
		return
	}

	if message.target != nil {
		if _, ok := h.clients[message.target]; ok {
			select {
			case message.target.send <- data:
			default:
				h.unregisterClient(message.target)
			}
		}
		return
	}

	if clients, ok := h.topics[message.Topic]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// startReplay streams the frames of a stored solve to the requesting client
func (h *Hub) startReplay(client *Client, cmd *command) {
	if h.results == nil {
		h.sendTo(client, errorMessage("replay: result storage is not configured"))
		return
	}

	record, err := h.results.GetResult(context.Background(), cmd.ResultID)
	if err != nil {
		h.sendTo(client, errorMessage(fmt.Sprintf("replay: %v", err)))
		return
	}

	resp := record.Response
	if !resp.Found || len(resp.Frames) == 0 {
		h.sendTo(client, errorMessage(fmt.Sprintf("replay: result %s has no frames", record.ID)))
		return
	}

	interval := time.Duration(cmd.IntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	if interval < minFrameInterval {
		interval = minFrameInterval
	}
	if interval > maxFrameInterval {
		interval = maxFrameInterval
	}

	// Frames go through the hub loop, so a client that disconnects
	// mid-playback just stops receiving; the goroutine drains harmlessly.
	go func() {
		for i, grid := range resp.Frames {
			if i > 0 {
				time.Sleep(interval)
			}
			frame := &FramePayload{
				Index: i,
				Total: len(resp.Frames),
				Grid:  grid,
			}
			if i > 0 && i-1 < len(resp.Moves) {
				frame.Move = resp.Moves[i-1]
			}
			h.sendTo(client, &Message{Topic: client.topic, Event: "frame", Data: frame})
		}
		h.sendTo(client, &Message{
			Topic: client.topic,
			Event: "playback_done",
			Data: map[string]interface{}{
				"result_id": record.ID,
				"frames":    len(resp.Frames),
			},
		})
	}()
}

func errorMessage(text string) *Message {
	return &Message{
		Event: "error",
		Data:  map[string]string{"message": text},
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil || cmd.Command == "" {
			// Not a command, treat as keep-alive
			continue
		}

		switch cmd.Command {
		case "replay":
			c.hub.startReplay(c, &cmd)
		default:
			c.hub.sendTo(c, errorMessage(fmt.Sprintf("unknown command %q", cmd.Command)))
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
