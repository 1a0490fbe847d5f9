// Package server wires the game runtime: storage, auth, the websocket hub,
// and the HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/api/auth"
	"github.com/louisbranch/seabattle.space/internal/game/api/ws"
	"github.com/louisbranch/seabattle.space/internal/game/app"
	gamesqlite "github.com/louisbranch/seabattle.space/internal/game/storage/sqlite"
	"github.com/louisbranch/seabattle.space/internal/platform/config"
)

const shutdownTimeout = 10 * time.Second

type serverEnv struct {
	DBPath      string `env:"SEABATTLE_DB_PATH"`
	TokenSecret string `env:"SEABATTLE_TOKEN_SECRET"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "game.db")
	}
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		// Dev fallback. Any real deployment sets SEABATTLE_TOKEN_SECRET.
		log.Printf("SEABATTLE_TOKEN_SECRET is not set, using an insecure development secret")
		cfg.TokenSecret = "seabattle-dev-secret"
	}
	return cfg
}

// Server hosts the game HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *gamesqlite.Store
}

// New creates a configured game server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured game server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	srvEnv := loadServerEnv()
	store, err := openGameStore(srvEnv.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	authManager, err := auth.NewManager(store, []byte(srvEnv.TokenSecret))
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("configure auth: %w", err)
	}
	service := app.NewService(store)
	hub := ws.NewHub(service, authManager)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWebSocket)
	authManager.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Server{
		listener:   listener,
		httpServer: &http.Server{Handler: mux},
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a game server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("game server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases game server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close game store: %v", err)
		}
	}
}

func openGameStore(path string) (*gamesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := gamesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game sqlite store: %w", err)
	}
	return store, nil
}
