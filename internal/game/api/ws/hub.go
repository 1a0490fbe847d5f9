// Package ws exposes the game service over a websocket hub. Clients send
// typed JSON commands; the hub pushes personalized events to every connection
// watching the affected game.
package ws

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/seabattle.space/internal/game/app"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
	errsi18n "github.com/louisbranch/seabattle.space/internal/platform/errors/i18n"
	platformi18n "github.com/louisbranch/seabattle.space/internal/platform/i18n"
)

const maxConnections = 512

// TokenVerifier resolves a bearer token to a username. A nil verifier leaves
// connections anonymous until their first command names a player.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: isValidOrigin,
}

func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	host := originURL.Host
	return strings.HasPrefix(host, "localhost:") || strings.HasPrefix(host, "127.0.0.1:") ||
		host == "localhost" || host == "127.0.0.1"
}

// Hub tracks live connections and fans service results out to them.
type Hub struct {
	service  *app.Service
	verifier TokenVerifier

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub creates a hub over the game service. verifier may be nil.
func NewHub(service *app.Service, verifier TokenVerifier) *Hub {
	return &Hub{
		service:  service,
		verifier: verifier,
		clients:  make(map[*Client]struct{}),
	}
}

// HandleWebSocket upgrades the request and runs the connection pumps. The
// locale query parameter selects the message catalog; an optional token query
// parameter binds the connection to a verified account.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Cheap pre-check so a full hub answers 503 without upgrading. The
	// authoritative check runs in register under the write lock.
	h.mu.RLock()
	count := len(h.clients)
	h.mu.RUnlock()
	if count >= maxConnections {
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	var playerName string
	if token := r.URL.Query().Get("token"); token != "" && h.verifier != nil {
		name, err := h.verifier.VerifyToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		playerName = name
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}

	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan Event, sendBufferSize),
		playerName: playerName,
		locale:     platformi18n.Resolve(r.URL.Query().Get("locale")),
	}
	if !h.register(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// register admits the connection unless the hub is at capacity. The check
// happens under the write lock, so concurrent upgrades cannot overshoot.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) >= maxConnections {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// unregister drops the connection and tells remaining players in the same
// game that their opponent went away.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, known := h.clients[c]
	if known {
		delete(h.clients, c)
	}
	h.mu.Unlock()
	if !known {
		return
	}
	c.shutdown()

	playerName, gameID := c.identity()
	if gameID == "" || playerName == "" {
		return
	}
	h.broadcastToGame(gameID, func(viewer *Client) (Event, bool) {
		return Event{Type: EvtPlayerDisconnected, Payload: playerDisconnectedPayload{
			GameID: gameID,
			Player: playerName,
		}}, true
	})
}

// broadcast sends one event to every connection.
func (h *Hub) broadcast(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.deliver(evt)
	}
}

// broadcastToGame sends a per-viewer event to every connection bound to
// gameID. The build callback may decline a viewer.
func (h *Hub) broadcastToGame(gameID string, build func(viewer *Client) (Event, bool)) {
	h.mu.RLock()
	var watching []*Client
	for c := range h.clients {
		if _, id := c.identity(); id == gameID {
			watching = append(watching, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range watching {
		if evt, ok := build(c); ok {
			c.deliver(evt)
		}
	}
}

// broadcastLobbies pushes the current open-lobby list to everyone.
func (h *Hub) broadcastLobbies(ctx context.Context) {
	h.broadcast(Event{Type: EvtLobbiesUpdated, Payload: h.service.ListOpenLobbies(ctx)})
}

// sendGameUpdate pushes a personalized snapshot of gameID to every
// connection watching it.
func (h *Hub) sendGameUpdate(ctx context.Context, eventType, gameID string) {
	h.broadcastToGame(gameID, func(viewer *Client) (Event, bool) {
		name, _ := viewer.identity()
		snap, err := h.service.GetSession(ctx, gameID, name)
		if err != nil {
			return Event{}, false
		}
		return Event{Type: eventType, Payload: snap}, true
	})
}

// sendError delivers a localized error event to one client.
func (h *Hub) sendError(c *Client, err error) {
	code := apperrors.CodeOf(err)
	catalog := errsi18n.GetCatalog(c.Locale())
	c.deliver(Event{Type: EvtError, Payload: errorPayload{
		Code:    string(code),
		Message: catalog.Format(string(code), apperrors.MetadataOf(err)),
	}})
}
