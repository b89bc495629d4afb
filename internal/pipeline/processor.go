package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/catalog"
	"github.com/jaki95/song-graph/internal/domain"
	"github.com/jaki95/song-graph/internal/graph"
	"github.com/jaki95/song-graph/internal/resolver"
	"github.com/jaki95/song-graph/internal/similarity"
	"github.com/jaki95/song-graph/internal/storage"
)

// Processor runs the full query pipeline: load catalog, resolve the track
// name, find similar tracks, build the star graph and export it. Interaction
// (the disambiguation prompt) goes through the injected reader and writer so
// the pipeline is testable without a terminal.
type Processor struct {
	cfg      *config.Config
	importer catalog.Importer
	store    storage.Storage

	input  io.Reader
	output io.Writer
}

func New(cfg *config.Config, importer catalog.Importer, store storage.Storage, input io.Reader, output io.Writer) *Processor {
	return &Processor{
		cfg:      cfg,
		importer: importer,
		store:    store,
		input:    input,
		output:   output,
	}
}

// Options holds the per-run parameters.
type Options struct {
	CatalogPath string
	TrackName   string
	// GraphFile overrides the configured artifact name when set.
	GraphFile string
}

// Process executes one query end to end. Load and export failures are
// returned as errors; an unknown track name or an invalid disambiguation
// choice is reported to the output writer and ends the run cleanly with no
// artifact written.
func (p *Processor) Process(ctx context.Context, opts *Options) error {
	cat, err := p.importer.Import(ctx, opts.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	fmt.Fprintf(p.output, "Loaded %d tracks from the dataset.\n", len(cat.Tracks))

	ref, err := p.resolveTrack(cat, opts.TrackName)
	if err != nil {
		return err
	}
	if ref == nil {
		return nil
	}

	thresholds := similarity.Thresholds{
		Danceability:  p.cfg.Thresholds.Danceability,
		Energy:        p.cfg.Thresholds.Energy,
		Tempo:         p.cfg.Thresholds.Tempo,
		Valence:       p.cfg.Thresholds.Valence,
		MinPopularity: p.cfg.Thresholds.MinPopularity,
	}
	similar := similarity.FindSimilar(cat.Tracks, ref, thresholds)
	top := similarity.Top(similar, p.cfg.Output.TopKSimilar)
	slog.Debug("similarity filter complete", "qualifying", len(similar), "kept", len(top))

	p.printSummary(ref, top)

	graphFile := opts.GraphFile
	if graphFile == "" {
		graphFile = p.cfg.Output.GraphFile
	}

	if err := p.exportGraph(graph.Build(ref, top), graphFile); err != nil {
		return err
	}

	fmt.Fprintf(p.output, "Graph exported to '%s'.\n", graphFile)
	return nil
}

// resolveTrack maps the queried name to a single track, prompting for a
// choice when several tracks share the name. A nil track with a nil error
// means the run ended cleanly without resolving (unknown name or invalid
// selection).
func (p *Processor) resolveTrack(cat *domain.Catalog, name string) (*domain.Track, error) {
	resolution, err := resolver.Resolve(cat, name, p.cfg.Output.TopKDisambiguation)
	if errors.Is(err, resolver.ErrNotFound) {
		fmt.Fprintf(p.output, "No song found with the name '%s'.\n", name)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !resolution.Ambiguous() {
		return resolution.Track, nil
	}

	candidates := resolution.Candidates
	fmt.Fprintf(p.output, "Multiple matches found. Please select one of the top %d most popular songs:\n", len(candidates))
	for i, track := range candidates {
		fmt.Fprintf(p.output, "%d: \"%s\" by %s (Album: %s, Popularity: %d)\n",
			i+1, track.TrackName, track.Artists, track.AlbumName, track.Popularity)
	}
	fmt.Fprint(p.output, "Enter the number of the correct song: ")

	selection, err := bufio.NewReader(p.input).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	track, err := resolver.Select(candidates, selection)
	if errors.Is(err, resolver.ErrInvalidSelection) {
		slog.Debug("selection rejected", "input", selection, "error", err)
		fmt.Fprintln(p.output, "Invalid selection.")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return track, nil
}

func (p *Processor) printSummary(ref *domain.Track, similar []*domain.Track) {
	fmt.Fprintf(p.output, "Top %d similar songs to \"%s\" by %s [%s]:\n",
		len(similar), ref.TrackName, ref.Artists, graph.Snapshot(ref).Label())
	for _, track := range similar {
		fmt.Fprintf(p.output, "  -> \"%s\" by %s [%s]\n",
			track.TrackName, track.Artists, graph.Snapshot(track).Label())
	}
}

func (p *Processor) exportGraph(subgraph *graph.Subgraph, name string) error {
	writer, err := p.store.GetWriter(name)
	if err != nil {
		return fmt.Errorf("failed to open graph output %s: %w", name, err)
	}

	if err := graph.Export(writer, subgraph); err != nil {
		writer.Close()
		return fmt.Errorf("failed to export graph: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close graph output %s: %w", name, err)
	}
	return nil
}
