package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved decisions over a read-only HTTP API",
		Long: `Start an HTTP server over a directory of saved decision files.

Endpoints:
  GET /api/health          Health check
  GET /api/summary         Aggregate metrics across all decisions
  GET /api/decisions       List decisions (sort, order query params)
  GET /api/decisions/{id}  One decision's full record`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := webserver.New(webserver.Config{
				Addr:         addr,
				DecisionsDir: dir,
				Logger:       slog.Default(),
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3000", "Address to listen on")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory of saved decision YAML files")

	return cmd
}
