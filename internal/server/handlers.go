package server

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jaki95/song-graph/internal/graph"
	"github.com/jaki95/song-graph/internal/resolver"
	"github.com/jaki95/song-graph/internal/similarity"
)

// findSimilar resolves the requested name, runs the similarity filter and
// returns the ranked result with its DOT serialization. An ambiguous name
// without a selection yields 409 with the candidate shortlist.
func (s *Server) findSimilar(c *gin.Context) {
	var req SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	resolution, err := resolver.Resolve(s.catalog, req.Name, s.cfg.Output.TopKDisambiguation)
	if errors.Is(err, resolver.ErrNotFound) {
		c.JSON(404, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(500, ErrorResponse{Error: err.Error()})
		return
	}

	ref := resolution.Track
	if resolution.Ambiguous() {
		if req.Selection == "" {
			c.JSON(409, AmbiguousResponse{
				Message:    "multiple matches found, resubmit with a selection",
				Candidates: resolution.Candidates,
			})
			return
		}

		ref, err = resolver.Select(resolution.Candidates, req.Selection)
		if errors.Is(err, resolver.ErrInvalidSelection) {
			c.JSON(400, ErrorResponse{Error: err.Error()})
			return
		}
		if err != nil {
			c.JSON(500, ErrorResponse{Error: err.Error()})
			return
		}
	}

	thresholds := similarity.Thresholds{
		Danceability:  s.cfg.Thresholds.Danceability,
		Energy:        s.cfg.Thresholds.Energy,
		Tempo:         s.cfg.Thresholds.Tempo,
		Valence:       s.cfg.Thresholds.Valence,
		MinPopularity: s.cfg.Thresholds.MinPopularity,
	}
	similar := similarity.Top(similarity.FindSimilar(s.catalog.Tracks, ref, thresholds), s.cfg.Output.TopKSimilar)
	subgraph := graph.Build(ref, similar)

	c.JSON(200, SimilarResponse{
		Reference: ref,
		Similar:   similar,
		Subgraph:  subgraph,
		DOT:       graph.ExportString(subgraph),
	})
}
