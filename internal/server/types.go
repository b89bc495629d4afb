package server

import (
	"github.com/jaki95/song-graph/internal/domain"
	"github.com/jaki95/song-graph/internal/graph"
)

// SimilarRequest asks for the tracks similar to a named song. Selection is
// the 1-based pick among the ranked candidates when the name is ambiguous.
type SimilarRequest struct {
	Name      string `json:"name" binding:"required"`
	Selection string `json:"selection,omitempty"`
}

// SimilarResponse carries the resolved reference, its ranked similar tracks
// and the exported DOT document.
type SimilarResponse struct {
	Reference *domain.Track   `json:"reference"`
	Similar   []*domain.Track `json:"similar"`
	Subgraph  *graph.Subgraph `json:"subgraph"`
	DOT       string          `json:"dot"`
}

// AmbiguousResponse lists the ranked candidates a caller must choose from by
// resubmitting the request with a selection.
type AmbiguousResponse struct {
	Message    string          `json:"message"`
	Candidates []*domain.Track `json:"candidates"`
}

// ErrorResponse is the generic error payload
type ErrorResponse struct {
	Error string `json:"error"`
}
