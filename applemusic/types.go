package applemusic

// SearchResponse is the iTunes Search API payload.
type SearchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []SearchResult `json:"results"`
}

// SearchResult is one song entry from the iTunes Search API.
type SearchResult struct {
	TrackID           int64  `json:"trackId"`
	CollectionID      int64  `json:"collectionId"`
	TrackName         string `json:"trackName"`
	ArtistName        string `json:"artistName"`
	TrackViewURL      string `json:"trackViewUrl"`
	CollectionViewURL string `json:"collectionViewUrl"`
}

// Links is the Apple side of a track's match result. StoreCandidates is
// ordered most-specific-first; a client attempts each in turn. WebURL is the
// public fallback and may be empty when the search came back empty.
type Links struct {
	StoreCandidates []string
	WebURL          string
}
