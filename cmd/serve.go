package main

import (
	"context"

	"github.com/desertthunder/shelf/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the REST API until the process receives an interrupt.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	srv := &server.Server{
		Addr:    r.config.Server.Addr(),
		Handler: server.NewAPI(catalog, r.logger, version),
		Logger:  r.logger,
	}
	return srv.Run(ctx)
}
