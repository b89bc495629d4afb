package similarity

import (
	"math"
	"sort"

	"github.com/jaki95/song-graph/internal/domain"
)

// Thresholds parameterize the similarity rule. Each tolerance bounds the
// absolute difference between a candidate's attribute and the reference's;
// MinPopularity is a strict lower bound.
type Thresholds struct {
	Danceability  float64
	Energy        float64
	Tempo         float64
	Valence       float64
	MinPopularity int
}

// DefaultThresholds returns the standard run parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Danceability:  0.05,
		Energy:        0.05,
		Tempo:         50.0,
		Valence:       0.1,
		MinPopularity: 70,
	}
}

// FindSimilar returns the tracks similar to ref under the conjunctive
// threshold rule, deduplicated by exact track name (first catalog occurrence
// wins) and sorted by popularity descending. The sort is stable so a fixed
// catalog order always yields the same result. An empty result is valid, not
// an error.
func FindSimilar(tracks []*domain.Track, ref *domain.Track, thresholds Thresholds) []*domain.Track {
	var similar []*domain.Track
	uniqueNames := make(map[string]struct{})

	for _, track := range tracks {
		if !matches(track, ref, thresholds) {
			continue
		}
		if _, seen := uniqueNames[track.TrackName]; seen {
			continue
		}
		uniqueNames[track.TrackName] = struct{}{}
		similar = append(similar, track)
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Popularity > similar[j].Popularity
	})

	return similar
}

// matches applies the all-or-nothing rule: every attribute delta must stay
// within its tolerance, popularity must strictly exceed the minimum, and a
// track is never similar to itself.
func matches(track, ref *domain.Track, t Thresholds) bool {
	return math.Abs(track.Danceability-ref.Danceability) <= t.Danceability &&
		math.Abs(track.Energy-ref.Energy) <= t.Energy &&
		math.Abs(track.Tempo-ref.Tempo) <= t.Tempo &&
		math.Abs(track.Valence-ref.Valence) <= t.Valence &&
		track.Popularity > t.MinPopularity &&
		track.TrackID != ref.TrackID
}

// Top returns the first k tracks of a ranked result. k <= 0 means no
// truncation.
func Top(tracks []*domain.Track, k int) []*domain.Track {
	if k <= 0 || len(tracks) <= k {
		return tracks
	}
	return tracks[:k]
}
