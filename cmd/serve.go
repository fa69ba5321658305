package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/rolodex/internal/server"
	"github.com/desertthunder/rolodex/internal/shared"
)

// Serve runs the local mock /users API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", shared.ErrInvalidFlag, cfg.Port)
	}

	mw := []server.Middleware{server.Recoverer(r.logger), server.RequestLogger(r.logger)}
	if latency := cmd.Duration("latency"); latency > 0 {
		mw = append(mw, server.Latency(latency))
	}

	users := server.NewUsersHandler(server.SeedUsers())
	router := server.NewMockAPI(users, mw...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Addr()
	r.writePlain("Mock API at http://%s/users (Ctrl+C to stop)\n", addr)
	r.writePlain("Point the client at it with [api] base_url = \"http://%s\"\n", addr)
	return server.Serve(ctx, addr, router, r.logger)
}
