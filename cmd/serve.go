package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/tunelyf/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP proxy until SIGINT or SIGTERM, then drains in-flight requests.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	router, err := server.NewProxyRouter(r.catalog, r.policies, r.config.Filter, r.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting proxy",
		"addr", r.config.Server.Addr(),
		"upstream", r.config.Upstream.BaseURL,
		"missing", r.config.Filter.Missing,
	)

	return server.NewServer(server.ServerOpts{
		Config:  r.config.Server,
		Handler: router,
		Logger:  r.logger,
	}).Run(ctx)
}
