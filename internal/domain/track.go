package domain

// Track represents one catalog entry: a song with its descriptive metadata and
// the audio features used for similarity matching. Tracks are built once at
// load time and never mutated afterwards.
type Track struct {
	TrackID    string `json:"track_id"`
	Artists    string `json:"artists"`
	AlbumName  string `json:"album_name"`
	TrackName  string `json:"track_name"`
	Popularity int    `json:"popularity"`

	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Tempo        float64 `json:"tempo"`
	Valence      float64 `json:"valence"`

	// Carried from the source catalog but not consulted by the similarity rule.
	DurationMS       int     `json:"duration_ms,omitempty"`
	Explicit         bool    `json:"explicit,omitempty"`
	Key              int     `json:"key,omitempty"`
	Mode             int     `json:"mode,omitempty"`
	Acousticness     float64 `json:"acousticness,omitempty"`
	Instrumentalness float64 `json:"instrumentalness,omitempty"`
	Liveness         float64 `json:"liveness,omitempty"`
}

// Catalog is a read-only snapshot of tracks in load order. Iteration order
// matters: disambiguation tie-breaks and name deduplication both follow it.
type Catalog struct {
	Tracks []*Track `json:"tracks"`
}
