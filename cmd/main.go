package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/catalog"
	"github.com/jaki95/song-graph/internal/pipeline"
	"github.com/jaki95/song-graph/internal/storage"
)

func main() {
	catalogPath := flag.String("catalog", "", "Path to the catalog CSV file (required)")
	songName := flag.String("song", "", "Name of the song to find similar tracks for (required)")
	graphFile := flag.String("output", "", "Name of the exported graph file (defaults to config)")
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Validate required flags with explicit checks
	if *catalogPath == "" {
		log.Fatal("Missing required flag: -catalog")
	}
	if *songName == "" {
		log.Fatal("Missing required flag: -song")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)})))

	ctx := context.Background()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	importer := catalog.NewCSVImporter()
	importer.ShowProgress = true

	processor := pipeline.New(cfg, importer, store, os.Stdin, os.Stdout)

	opts := &pipeline.Options{
		CatalogPath: *catalogPath,
		TrackName:   *songName,
		GraphFile:   *graphFile,
	}

	if err := processor.Process(ctx, opts); err != nil {
		log.Fatal(err)
	}
}
