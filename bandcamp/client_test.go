package bandcamp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const searchFixture = `<!DOCTYPE html>
<html><body>
<ul class="result-items">
  <li><a class="itemurl" href="https://band.bandcamp.com/track/song?from=search&search_item_id=1">result</a></li>
  <li><a class="itemurl" href="https://band.bandcamp.com/track/song?from=search&search_item_id=2">duplicate</a></li>
  <li><a class="itemurl" href="https://somebody.bandcamp.com/track/song-remix?from=search">remix</a></li>
  <li><a class="itemurl" href="https://band.bandcamp.com/album/full-length?from=search">album</a></li>
</ul>
</body></html>`

func newTestClient(ts *httptest.Server) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		searchURL:  ts.URL + "/search",
	}
}

func TestFindTrackDirectMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("item_type"); got != "t" {
			t.Errorf("item_type = %q; want %q", got, "t")
		}
		if !strings.Contains(req.URL.Query().Get("q"), "Band") {
			t.Errorf("query %q missing artist", req.URL.Query().Get("q"))
		}
		fmt.Fprint(w, searchFixture)
	}))
	defer ts.Close()

	result := newTestClient(ts).FindTrack(context.Background(), "Song", "Band")
	if result.Direct != "https://band.bandcamp.com/track/song" {
		t.Errorf("Direct = %q; want tracking params stripped track URL", result.Direct)
	}
	if result.SearchURL == "" {
		t.Error("SearchURL must always be present")
	}
}

func TestFindTrackBelowThreshold(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `<html><body><a href="https://unrelated.bandcamp.com/track/nothing-here">x</a></body></html>`)
	}))
	defer ts.Close()

	result := newTestClient(ts).FindTrack(context.Background(), "Song", "Band")
	if result.Direct != "" {
		t.Errorf("Direct = %q; want no direct match below threshold", result.Direct)
	}
	if result.SearchURL == "" {
		t.Error("SearchURL must always be present")
	}
}

func TestFindTrackDegradesOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	result := newTestClient(ts).FindTrack(context.Background(), "Song", "Band")
	if result.Direct != "" {
		t.Errorf("Direct = %q; want empty on upstream failure", result.Direct)
	}
	if result.SearchURL == "" {
		t.Error("SearchURL must survive upstream failure")
	}
}
