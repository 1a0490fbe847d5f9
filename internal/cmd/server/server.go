// Package server parses game service flags and launches the service.
package server

import (
	"context"
	"flag"

	"github.com/louisbranch/seabattle.space/internal/game/server"
	entrypoint "github.com/louisbranch/seabattle.space/internal/platform/cmd"
)

// Config holds game server command configuration.
type Config struct {
	Port int `env:"SEABATTLE_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The game HTTP server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the game service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
