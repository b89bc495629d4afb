package graph

import (
	"fmt"

	"github.com/jaki95/song-graph/internal/domain"
)

// FeatureSnapshot is the fixed set of attributes rendered on nodes and edges.
type FeatureSnapshot struct {
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Tempo        float64 `json:"tempo"`
	Valence      float64 `json:"valence"`
	Popularity   int     `json:"popularity"`
}

// Snapshot extracts the renderable features of a track.
func Snapshot(track *domain.Track) FeatureSnapshot {
	return FeatureSnapshot{
		Danceability: track.Danceability,
		Energy:       track.Energy,
		Tempo:        track.Tempo,
		Valence:      track.Valence,
		Popularity:   track.Popularity,
	}
}

// Label renders the snapshot in the fixed output order. Field order and
// 2-decimal float formatting are part of the output contract.
func (f FeatureSnapshot) Label() string {
	return fmt.Sprintf(
		"Danceability: %.2f, Energy: %.2f, Tempo: %.2f, Valence: %.2f, Popularity: %d",
		f.Danceability, f.Energy, f.Tempo, f.Valence, f.Popularity,
	)
}

// Node is a graph vertex. It is keyed by track id; the display label is the
// track name, which is not unique across a catalog.
type Node struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Features FeatureSnapshot `json:"features"`
}

// Edge is one directed connection from the center to a similar track.
type Edge struct {
	Target Node `json:"target"`
}

// Subgraph is a strict one-hop star: one center node with an outgoing edge
// per similar track. No cycles, no deeper levels.
type Subgraph struct {
	Center Node   `json:"center"`
	Edges  []Edge `json:"edges"`
}

func node(track *domain.Track) Node {
	return Node{
		ID:       track.TrackID,
		Label:    track.TrackName,
		Features: Snapshot(track),
	}
}

// Build assembles the star graph for a reference track and its ranked
// neighbors. Edge order follows neighbor order, so a ranked input produces a
// ranked graph.
func Build(ref *domain.Track, neighbors []*domain.Track) *Subgraph {
	subgraph := &Subgraph{
		Center: node(ref),
		Edges:  make([]Edge, 0, len(neighbors)),
	}
	for _, neighbor := range neighbors {
		subgraph.Edges = append(subgraph.Edges, Edge{Target: node(neighbor)})
	}
	return subgraph
}
