package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestServeAndShutdown(t *testing.T) {
	t.Setenv("SEABATTLE_DB_PATH", t.TempDir()+"/game.db")
	t.Setenv("SEABATTLE_TOKEN_SECRET", "test-secret")

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.Addr() == "" {
		t.Fatal("expected a bound listener address")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
