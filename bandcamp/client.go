// Package bandcamp finds track pages through the public site search. The
// search page is plain HTML, so candidates are scraped out of the result
// markup and ranked with the shared scoring heuristic.
package bandcamp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"storelink/config"
	"storelink/match"
)

const searchEndpoint = "https://bandcamp.com/search"

const desktopUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Result is the Bandcamp side of a track's match result. SearchURL is
// always present; Direct is only set when a candidate met the confidence
// threshold.
type Result struct {
	Direct    string
	SearchURL string
}

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

// FindTrack searches for "<artist> <title>" and returns the best-scoring
// track page if it clears the confidence threshold. Lookup failures degrade
// to the search URL alone; this never hard-fails a request.
func (c *Client) FindTrack(ctx context.Context, title, artist string) Result {
	query := artist + " " + title
	searchURL := c.searchURL + "?" + url.Values{
		"q":         {query},
		"item_type": {"t"},
	}.Encode()

	result := Result{SearchURL: searchURL}

	span := sentry.StartSpan(ctx, "bandcamp.find_track")
	span.Description = "Search Bandcamp for a track"
	span.SetTag("query", query)
	defer span.Finish()

	candidates, err := c.searchCandidates(ctx, searchURL)
	if err != nil {
		log.Warnf("Bandcamp search degraded to fallback for %q: %v", query, err)
		span.Status = sentry.SpanStatusInternalError
		return result
	}

	best := ""
	bestScore := 0
	for _, candidate := range candidates {
		score := match.Score(title, artist, candidate, match.Bandcamp)
		log.Tracef("Bandcamp candidate %s scored %d", candidate, score)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if bestScore >= match.DirectMatchThreshold {
		log.Debugf("Bandcamp direct match for %q: %s (score %d)", query, best, bestScore)
		result.Direct = best
	} else if best != "" {
		log.Debugf("Bandcamp best candidate for %q below threshold: %s (score %d)", query, best, bestScore)
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("candidates", len(candidates))
	return result
}

// searchCandidates scrapes deduplicated track-page URLs out of the search
// result HTML, in page order.
func (c *Client) searchCandidates(ctx context.Context, searchURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", desktopUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	seen := map[string]bool{}
	candidates := []string{}
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.Contains(href, "/track/") {
			return
		}
		// Search result links carry tracking query params.
		if idx := strings.Index(href, "?"); idx >= 0 {
			href = href[:idx]
		}
		if seen[href] {
			return
		}
		seen[href] = true
		candidates = append(candidates, href)
	})

	return candidates, nil
}
