package catalog

import (
	"context"
	"fmt"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/domain"
)

// Importer loads a track catalog from a given source.
type Importer interface {
	Import(ctx context.Context, source string) (*domain.Catalog, error)
	Name() string
}

const (
	CSVCatalog = "csv"
)

// NewImporter returns the importer for the configured catalog source.
func NewImporter(cfg *config.Config, source string) (Importer, error) {
	switch source {
	case CSVCatalog, "":
		return NewCSVImporter(), nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", source)
	}
}
