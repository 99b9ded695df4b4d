package main

import (
	"fmt"

	"synth911/generator"
	"synth911/server"

	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generator over HTTP",
	Long: `Start an HTTP server exposing:

  POST /api/v1/generate   generate a table (JSON, or CSV with ?format=csv)
  GET  /api/v1/locales    list supported locales
  GET  /health            health check
  GET  /metrics           Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := generator.New(generator.WithLogger(logger))
		srv := server.New(gen, logger, settings.NumNames)
		return srv.ListenAndServe(cmd.Context(), fmt.Sprintf(":%d", settings.Port))
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8911, "Port to listen on")
	bindFlags(serveCmd.Flags(), "port")
}
