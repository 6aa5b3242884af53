// Package applemusic looks tracks up on the iTunes Search API and builds
// store deep links plus a public web fallback for each.
package applemusic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"storelink/config"
)

const searchEndpoint = "https://itunes.apple.com/search"

const searchLimit = 5

type Client struct {
	httpClient *http.Client
	searchURL  string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(config.Config.Options.HTTPTimeoutSec) * time.Second,
		},
		searchURL: searchEndpoint,
	}
}

// FindLinks searches the store for title by artist in the given two-letter
// storefront country and returns deep-link candidates plus a web URL.
// Zero results yield an empty Links value, not an error.
func (c *Client) FindLinks(ctx context.Context, title, artist, country string) (Links, error) {
	if country == "" {
		country = "US"
	}

	span := sentry.StartSpan(ctx, "applemusic.find_links")
	span.Description = "Search iTunes API for a track"
	span.SetTag("country", country)
	defer span.Finish()

	query := url.Values{}
	query.Set("term", title+" "+artist)
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", fmt.Sprintf("%d", searchLimit))
	query.Set("country", country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return Links{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnf("iTunes search failed for %q: %v", title, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return Links{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("iTunes search returned HTTP %d for %q", resp.StatusCode, title)
		span.Status = sentry.SpanStatusInternalError
		return Links{}, fmt.Errorf("itunes search: HTTP %d", resp.StatusCode)
	}

	var payload SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warnf("iTunes search returned malformed JSON for %q: %v", title, err)
		span.Status = sentry.SpanStatusInternalError
		return Links{}, fmt.Errorf("itunes search: %w", err)
	}

	if len(payload.Results) == 0 {
		log.Debugf("iTunes search found nothing for '%s %s'", title, artist)
		span.Status = sentry.SpanStatusNotFound
		return Links{}, nil
	}

	selected := selectResult(payload.Results, title, artist)

	links := Links{
		StoreCandidates: buildDeepLinks(selected, country),
		WebURL:          selected.TrackViewURL,
	}
	if links.WebURL == "" {
		links.WebURL = selected.CollectionViewURL
	}

	log.Debugf("iTunes matched '%s' by '%s' -> %s", selected.TrackName, selected.ArtistName, links.WebURL)
	span.Status = sentry.SpanStatusOK
	span.SetData("candidates", len(links.StoreCandidates))
	return links, nil
}

// selectResult picks the first result whose artist and track names both
// contain the query strings, falling back to the first result regardless of
// relevance. The fallback can be a silent wrong guess; callers cannot tell
// the two cases apart.
func selectResult(results []SearchResult, title, artist string) SearchResult {
	wantTitle := strings.ToLower(title)
	wantArtist := strings.ToLower(artist)

	for _, result := range results {
		if strings.Contains(strings.ToLower(result.ArtistName), wantArtist) &&
			strings.Contains(strings.ToLower(result.TrackName), wantTitle) {
			return result
		}
	}
	return results[0]
}
