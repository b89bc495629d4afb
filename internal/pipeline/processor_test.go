package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/catalog"
	"github.com/jaki95/song-graph/internal/storage"
)

const testCatalog = `track_id,artists,album_name,track_name,popularity,danceability,energy,tempo,valence
1,Artist A,Album A,Song A,85,0.8,0.9,120.0,0.7
2,Artist B,Album B,Song B,75,0.79,0.91,121.0,0.72
3,Artist C,Album C,Song C,65,0.5,0.5,90.0,0.3
4,Artist D,Album D,Song A,95,0.6,0.6,100.0,0.5
`

type testEnv struct {
	processor *Processor
	outputDir string
	stdout    *bytes.Buffer
}

func newTestEnv(t *testing.T, cfg *config.Config, input string) (*testEnv, string) {
	t.Helper()

	tempDir := t.TempDir()
	catalogPath := filepath.Join(tempDir, "catalog.csv")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0644))

	outputDir := filepath.Join(tempDir, "output")
	cfg.Storage.OutputDir = outputDir

	store, err := storage.New(context.Background(), cfg)
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	processor := New(cfg, catalog.NewCSVImporter(), store, strings.NewReader(input), stdout)

	return &testEnv{processor: processor, outputDir: outputDir, stdout: stdout}, catalogPath
}

func (e *testEnv) artifact(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(e.outputDir, name))
	require.NoError(t, err)
	return string(content)
}

func TestProcessEndToEnd(t *testing.T) {
	cfg := config.Default()
	cfg.Thresholds.Tempo = 5.0
	cfg.Thresholds.Valence = 0.05

	env, catalogPath := newTestEnv(t, cfg, "")

	err := env.processor.Process(context.Background(), &Options{
		CatalogPath: catalogPath,
		TrackName:   "Song B",
	})
	require.NoError(t, err)

	output := env.stdout.String()
	assert.Contains(t, output, "Loaded 4 tracks from the dataset.")
	assert.Contains(t, output, `Top 1 similar songs to "Song B" by Artist B`)
	assert.Contains(t, output, `  -> "Song A" by Artist A`)
	assert.Contains(t, output, "Graph exported to 'graph.dot'.")

	dot := env.artifact(t, "graph.dot")
	assert.Contains(t, dot, "digraph {")
	assert.Contains(t, dot, `"Song B" -> "Song A"`)
}

func TestProcessDisambiguation(t *testing.T) {
	cfg := config.Default()
	// "Song A" matches tracks 1 and 4; selection 1 picks the more popular
	// track 4, whose features put nothing else in range.
	env, catalogPath := newTestEnv(t, cfg, "1\n")

	err := env.processor.Process(context.Background(), &Options{
		CatalogPath: catalogPath,
		TrackName:   "Song A",
	})
	require.NoError(t, err)

	output := env.stdout.String()
	assert.Contains(t, output, "Multiple matches found. Please select one of the top 2 most popular songs:")
	assert.Contains(t, output, `1: "Song A" by Artist D (Album: Album D, Popularity: 95)`)
	assert.Contains(t, output, `2: "Song A" by Artist A (Album: Album A, Popularity: 85)`)
	assert.Contains(t, output, `Top 0 similar songs to "Song A" by Artist D`)

	dot := env.artifact(t, "graph.dot")
	assert.Contains(t, dot, `"Song A" [label="Danceability: 0.60, Energy: 0.60, Tempo: 100.00, Valence: 0.50, Popularity: 95"];`)
	assert.NotContains(t, dot, "->")
}

func TestProcessInvalidSelection(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"out of range", "3\n"},
		{"non-numeric", "x\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env, catalogPath := newTestEnv(t, config.Default(), tc.input)

			err := env.processor.Process(context.Background(), &Options{
				CatalogPath: catalogPath,
				TrackName:   "Song A",
			})
			require.NoError(t, err)

			assert.Contains(t, env.stdout.String(), "Invalid selection.")
			// No artifact is written
			_, statErr := os.Stat(filepath.Join(env.outputDir, "graph.dot"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestProcessTrackNotFound(t *testing.T) {
	env, catalogPath := newTestEnv(t, config.Default(), "")

	err := env.processor.Process(context.Background(), &Options{
		CatalogPath: catalogPath,
		TrackName:   "Song Z",
	})
	require.NoError(t, err)

	assert.Contains(t, env.stdout.String(), "No song found with the name 'Song Z'.")
	_, statErr := os.Stat(filepath.Join(env.outputDir, "graph.dot"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessLoadFailure(t *testing.T) {
	env, _ := newTestEnv(t, config.Default(), "")

	err := env.processor.Process(context.Background(), &Options{
		CatalogPath: filepath.Join(t.TempDir(), "missing.csv"),
		TrackName:   "Song A",
	})

	assert.ErrorContains(t, err, "failed to load catalog")
}

func TestProcessGraphFileOverride(t *testing.T) {
	env, catalogPath := newTestEnv(t, config.Default(), "")

	err := env.processor.Process(context.Background(), &Options{
		CatalogPath: catalogPath,
		TrackName:   "Song B",
		GraphFile:   "custom.dot",
	})
	require.NoError(t, err)

	assert.True(t, strings.Contains(env.stdout.String(), "Graph exported to 'custom.dot'."))
	assert.Contains(t, env.artifact(t, "custom.dot"), "digraph {")
}

func TestProcessIsDeterministic(t *testing.T) {
	cfg := config.Default()
	env, catalogPath := newTestEnv(t, cfg, "")

	opts := &Options{CatalogPath: catalogPath, TrackName: "Song B"}
	require.NoError(t, env.processor.Process(context.Background(), opts))
	first := env.artifact(t, "graph.dot")

	require.NoError(t, env.processor.Process(context.Background(), opts))
	second := env.artifact(t, "graph.dot")

	assert.Equal(t, first, second)
}
