package room

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Client wraps one websocket connection subscribed to a Room's updates.
// Grounded on the corpus's internal/websocket/client.go ReadPump/WritePump
// split and ping/pong keepalive, trimmed of command/query message
// handling since this spec's websocket is broadcast-only (the room
// state only ever advances through the HTTP apply endpoint).
type Client struct {
	conn    *websocket.Conn
	updates chan Update
	done    chan struct{}
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// NewClient wraps conn and the channel it should forward room updates
// from.
func NewClient(conn *websocket.Conn, updates chan Update) *Client {
	return &Client{conn: conn, updates: updates, done: make(chan struct{})}
}

// Run drives both pumps and blocks until the connection closes. Callers
// should invoke it from the HTTP handler goroutine that owns conn.
func (c *Client) Run() {
	go c.readPump()
	c.writePump()
}

// readPump only drains and discards incoming frames to keep pong
// handling alive; this websocket carries no client-to-server commands.
func (c *Client) readPump() {
	defer close(c.done)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case update, ok := <-c.updates:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				log.Printf("ERROR [room.Client.writePump]: marshal update: %v", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
