package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/song-graph/internal/domain"
)

// Columns every catalog must provide. Optional columns (duration_ms, explicit,
// key, mode, acousticness, instrumentalness, liveness) are parsed when present.
var requiredColumns = []string{
	"track_id",
	"artists",
	"album_name",
	"track_name",
	"popularity",
	"danceability",
	"energy",
	"tempo",
	"valence",
}

type CSVImporter struct {
	// ShowProgress renders a byte-progress bar while reading the file.
	// Enabled by the CLI, left off by the server and tests.
	ShowProgress bool
}

func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

func (c *CSVImporter) Name() string {
	return "csv"
}

func (c *CSVImporter) Import(ctx context.Context, filePath string) (*domain.Catalog, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if c.ShowProgress {
		if info, statErr := file.Stat(); statErr == nil {
			bar := progressbar.NewOptions64(
				info.Size(),
				progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetTheme(progressbar.ThemeASCII),
				progressbar.OptionShowBytes(true),
				progressbar.OptionSetDescription("[cyan][1/2][reset] Loading catalog..."),
			)
			reader = io.TeeReader(file, bar)
		}
	}

	catalog, err := c.parseCatalog(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	if len(catalog.Tracks) == 0 {
		return nil, fmt.Errorf("no tracks found in catalog file %s", filePath)
	}

	return catalog, nil
}

func (c *CSVImporter) parseCatalog(r io.Reader) (*domain.Catalog, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	slog.Debug("Header row", "header", header)

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	catalog := &domain.Catalog{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog record: %w", err)
		}
		row++

		track, err := parseTrack(columns, record, row)
		if err != nil {
			return nil, err
		}
		catalog.Tracks = append(catalog.Tracks, track)
	}

	return catalog, nil
}

// indexColumns maps header names to field positions and verifies that every
// required column is present.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("catalog header is missing required column %q", name)
		}
	}

	return columns, nil
}

func parseTrack(columns map[string]int, record []string, row int) (*domain.Track, error) {
	track := &domain.Track{
		TrackID:   record[columns["track_id"]],
		Artists:   record[columns["artists"]],
		AlbumName: record[columns["album_name"]],
		TrackName: record[columns["track_name"]],
	}

	var err error
	if track.Popularity, err = parseIntField(columns, record, "popularity", row); err != nil {
		return nil, err
	}
	if track.Danceability, err = parseFloatField(columns, record, "danceability", row); err != nil {
		return nil, err
	}
	if track.Energy, err = parseFloatField(columns, record, "energy", row); err != nil {
		return nil, err
	}
	if track.Tempo, err = parseFloatField(columns, record, "tempo", row); err != nil {
		return nil, err
	}
	if track.Valence, err = parseFloatField(columns, record, "valence", row); err != nil {
		return nil, err
	}

	if _, ok := columns["duration_ms"]; ok {
		if track.DurationMS, err = parseIntField(columns, record, "duration_ms", row); err != nil {
			return nil, err
		}
	}
	if idx, ok := columns["explicit"]; ok {
		if track.Explicit, err = parseExplicit(record[idx], row); err != nil {
			return nil, err
		}
	}
	if _, ok := columns["key"]; ok {
		if track.Key, err = parseIntField(columns, record, "key", row); err != nil {
			return nil, err
		}
	}
	if _, ok := columns["mode"]; ok {
		if track.Mode, err = parseIntField(columns, record, "mode", row); err != nil {
			return nil, err
		}
	}
	if _, ok := columns["acousticness"]; ok {
		if track.Acousticness, err = parseFloatField(columns, record, "acousticness", row); err != nil {
			return nil, err
		}
	}
	if _, ok := columns["instrumentalness"]; ok {
		if track.Instrumentalness, err = parseFloatField(columns, record, "instrumentalness", row); err != nil {
			return nil, err
		}
	}
	if _, ok := columns["liveness"]; ok {
		if track.Liveness, err = parseFloatField(columns, record, "liveness", row); err != nil {
			return nil, err
		}
	}

	return track, nil
}

func parseFloatField(columns map[string]int, record []string, name string, row int) (float64, error) {
	token := record[columns[name]]
	value, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q: %w", row, name, token, err)
	}
	return value, nil
}

func parseIntField(columns map[string]int, record []string, name string, row int) (int, error) {
	token := record[columns[name]]
	value, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q: %w", row, name, token, err)
	}
	return value, nil
}

// parseExplicit accepts the truthy/falsy token vocabulary found in the wild.
// Anything outside it is a format error, not a silent false.
func parseExplicit(token string, row int) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("row %d: invalid explicit value %q", row, token)
	}
}
