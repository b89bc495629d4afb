package resolver

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jaki95/song-graph/internal/domain"
)

// Resolution is the outcome of matching a track name against a catalog.
// Either Track is set (the name resolved to exactly one record) or Candidates
// holds the ranked shortlist a caller must pick from.
type Resolution struct {
	Track      *domain.Track
	Candidates []*domain.Track
}

// Ambiguous reports whether the caller still owes a disambiguation choice.
func (r *Resolution) Ambiguous() bool {
	return r.Track == nil
}

// Resolve matches name against every track in the catalog using
// case-insensitive exact equality. With multiple matches the candidates are
// ranked by popularity (descending, stable so catalog order breaks ties) and
// truncated to the topN most popular.
func Resolve(catalog *domain.Catalog, name string, topN int) (*Resolution, error) {
	var matches []*domain.Track
	for _, track := range catalog.Tracks {
		if strings.EqualFold(track.TrackName, name) {
			matches = append(matches, track)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if len(matches) == 1 {
		return &Resolution{Track: matches[0]}, nil
	}

	slog.Debug("multiple matches", "name", name, "count", len(matches))

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Popularity > matches[j].Popularity
	})
	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}

	return &Resolution{Candidates: matches}, nil
}

// Select picks one candidate by 1-based index. Bounds are checked against the
// truncated candidate list, so the last shortlist entry is always selectable.
func Select(candidates []*domain.Track, input string) (*domain.Track, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, strings.TrimSpace(input))
	}
	if n < 1 || n > len(candidates) {
		return nil, fmt.Errorf("%w: %d is outside 1-%d", ErrInvalidSelection, n, len(candidates))
	}
	return candidates[n-1], nil
}
