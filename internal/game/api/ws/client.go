package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second

	maxMessageBytes = 16 * 1024
	sendBufferSize  = 64
)

// Client is one connected websocket peer. Identity binds lazily: the first
// command naming a player ties the connection to that player, unless a
// verified token already did.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event

	mu         sync.Mutex
	playerName string
	gameID     string
	locale     string
	closed     bool
}

func (c *Client) bind(playerName, gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if playerName != "" {
		c.playerName = playerName
	}
	if gameID != "" {
		c.gameID = gameID
	}
}

func (c *Client) identity() (playerName, gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerName, c.gameID
}

// Locale returns the locale negotiated at upgrade time.
func (c *Client) Locale() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locale
}

// deliver queues an event, dropping it if the peer cannot keep up. Events
// arriving after shutdown are dropped; the send channel only closes under
// the same lock, so a late broadcast can never hit a closed channel.
func (c *Client) deliver(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- evt:
	default:
		log.Printf("ws: send buffer full, dropping %s", evt.Type)
	}
}

// shutdown closes the send channel exactly once.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: read: %v", err)
			}
			return
		}
		c.hub.dispatch(c, cmd)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
