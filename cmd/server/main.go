package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/catalog"
	"github.com/jaki95/song-graph/internal/server"
)

func main() {
	catalogPath := flag.String("catalog", "", "Path to the catalog CSV file (required)")
	port := flag.String("port", "", "Server port (defaults to config)")
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if *catalogPath == "" {
		slog.Error("Missing required flag: -catalog")
		os.Exit(1)
	}
	if *port == "" {
		*port = cfg.Server.Port
	}

	// Load the catalog once; the server shares it read-only across requests.
	importer := catalog.NewCSVImporter()
	cat, err := importer.Import(context.Background(), *catalogPath)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "tracks", len(cat.Tracks))

	srv := server.New(cfg, cat)

	slog.Info("Starting song similarity API server", "port", *port)
	if err := srv.Start(*port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
