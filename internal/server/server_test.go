package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/song-graph/config"
	"github.com/jaki95/song-graph/internal/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &domain.Catalog{
		Tracks: []*domain.Track{
			{TrackID: "1", Artists: "Artist A", AlbumName: "Album A", TrackName: "Song A", Popularity: 85, Danceability: 0.8, Energy: 0.9, Tempo: 120.0, Valence: 0.7},
			{TrackID: "2", Artists: "Artist B", AlbumName: "Album B", TrackName: "Song B", Popularity: 75, Danceability: 0.79, Energy: 0.91, Tempo: 121.0, Valence: 0.72},
			{TrackID: "3", Artists: "Artist C", AlbumName: "Album C", TrackName: "Song C", Popularity: 65, Danceability: 0.5, Energy: 0.5, Tempo: 90.0, Valence: 0.3},
			{TrackID: "4", Artists: "Artist D", AlbumName: "Album D", TrackName: "Song A", Popularity: 95, Danceability: 0.6, Energy: 0.6, Tempo: 100.0, Valence: 0.5},
		},
	}

	return New(config.Default(), catalog)
}

func postSimilar(t *testing.T, server *Server, body SimilarRequest) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/api/v1/similar", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, float64(4), response["tracks"])
}

func TestFindSimilar(t *testing.T) {
	server := newTestServer(t)

	rr := postSimilar(t, server, SimilarRequest{Name: "Song B"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var response SimilarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "2", response.Reference.TrackID)
	require.Len(t, response.Similar, 1)
	assert.Equal(t, "Song A", response.Similar[0].TrackName)
	assert.Contains(t, response.DOT, `"Song B" -> "Song A"`)
	assert.Equal(t, "2", response.Subgraph.Center.ID)
}

func TestFindSimilarNotFound(t *testing.T) {
	server := newTestServer(t)

	rr := postSimilar(t, server, SimilarRequest{Name: "Song Z"})

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "Song Z")
}

func TestFindSimilarAmbiguous(t *testing.T) {
	server := newTestServer(t)

	rr := postSimilar(t, server, SimilarRequest{Name: "Song A"})

	assert.Equal(t, http.StatusConflict, rr.Code)

	var response AmbiguousResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response.Candidates, 2)
	// Ranked by popularity descending
	assert.Equal(t, "4", response.Candidates[0].TrackID)
	assert.Equal(t, "1", response.Candidates[1].TrackID)
}

func TestFindSimilarWithSelection(t *testing.T) {
	server := newTestServer(t)

	rr := postSimilar(t, server, SimilarRequest{Name: "Song A", Selection: "2"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var response SimilarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "1", response.Reference.TrackID)
}

func TestFindSimilarInvalidSelection(t *testing.T) {
	server := newTestServer(t)

	testCases := []struct {
		name      string
		selection string
	}{
		{"out of range", "3"},
		{"non-numeric", "x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postSimilar(t, server, SimilarRequest{Name: "Song A", Selection: tc.selection})

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestFindSimilarMissingName(t *testing.T) {
	server := newTestServer(t)

	rr := postSimilar(t, server, SimilarRequest{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
