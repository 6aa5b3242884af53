package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"storelink/config"
)

// ErrUnresolvableLink means the full fallback chain ran out without
// producing a playlist ID.
var ErrUnresolvableLink = errors.New("could not parse playlist ID")

const desktopUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const oembedEndpoint = "https://open.spotify.com/oembed"

// shortLinkHosts are the shortening domains Spotify has used for share
// links. Matched exactly after www-stripping.
var shortLinkHosts = map[string]bool{
	"spotify.link": true,
	"spoti.fi":     true,
}

var (
	playlistURIRegex  = regexp.MustCompile(`^spotify:playlist:([A-Za-z0-9]+)$`)
	playlistPathRegex = regexp.MustCompile(`(?i)/playlist/([A-Za-z0-9]+)`)
	embedPathRegex    = regexp.MustCompile(`(?i)/embed/playlist/([A-Za-z0-9]+)`)
	embeddedURIRegex  = regexp.MustCompile(`spotify:playlist:([A-Za-z0-9]+)`)
	metaRefreshRegex  = regexp.MustCompile(`(?i)http-equiv=["']?refresh["'][^>]*url=([^"'>\s]+)`)
	jsRedirectRegex   = regexp.MustCompile(`window\.location(?:\.href)?\s*=\s*["']([^"']+)["']`)
	openSpotifyRegex  = regexp.MustCompile(`https?://open\.spotify\.com/[^\s"'<>\\]+`)
)

// Resolver turns free-form playlist references (native URIs, short links,
// web URLs) into a canonical playlist ID. Short-link redirect mechanics
// change without notice, so every expansion step fails soft and the next
// strategy gets a turn.
type Resolver struct {
	client     *http.Client
	oembedURL  string
	shortHosts map[string]bool
}

func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{
			Timeout: time.Duration(config.Config.Options.HTTPTimeoutSec) * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		oembedURL:  oembedEndpoint,
		shortHosts: shortLinkHosts,
	}
}

// ResolvePlaylistID resolves raw to a playlist ID or fails with
// ErrUnresolvableLink once every strategy is exhausted.
func (r *Resolver) ResolvePlaylistID(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if m := playlistURIRegex.FindStringSubmatch(raw); m != nil {
		log.Tracef("Resolved playlist ID from native URI: %s", m[1])
		return m[1], nil
	}

	span := sentry.StartSpan(ctx, "spotify.resolve_playlist_id")
	span.Description = "Resolve playlist reference to canonical ID"
	defer span.Finish()

	expanded := r.expand(ctx, raw)

	if m := playlistPathRegex.FindStringSubmatch(expanded); m != nil {
		log.Tracef("Resolved playlist ID from URL path: %s", m[1])
		span.Status = sentry.SpanStatusOK
		return m[1], nil
	}

	if id := r.oembedLookup(ctx, expanded); id != "" {
		log.Tracef("Resolved playlist ID via oEmbed probe: %s", id)
		span.Status = sentry.SpanStatusOK
		return id, nil
	}

	log.Warnf("Could not resolve playlist reference: %s", raw)
	span.Status = sentry.SpanStatusNotFound
	return "", ErrUnresolvableLink
}

// expand follows a short link to its target URL. Non-short-link inputs and
// every failure return the input unchanged.
func (r *Resolver) expand(ctx context.Context, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if !r.shortHosts[host] {
		return raw
	}

	if loc := r.headerLocation(ctx, http.MethodHead, raw); loc != "" {
		log.Tracef("Short link expanded via HEAD redirect: %s", loc)
		return loc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return raw
	}
	req.Header.Set("User-Agent", desktopUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		log.Warnf("Short link GET failed for %s: %v", raw, err)
		return raw
	}
	defer resp.Body.Close()

	if loc := resp.Header.Get("Location"); loc != "" {
		log.Tracef("Short link expanded via GET redirect: %s", loc)
		return loc
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return raw
	}

	if loc := scanRedirectHTML(string(body)); loc != "" {
		log.Tracef("Short link expanded via HTML scan: %s", loc)
		return loc
	}

	return raw
}

func (r *Resolver) headerLocation(ctx context.Context, method, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return ""
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.Header.Get("Location")
}

// scanRedirectHTML digs a target URL out of an HTML body: meta refresh
// first, then a window.location assignment, then any bare open.spotify.com
// URL. First match wins.
func scanRedirectHTML(body string) string {
	if m := metaRefreshRegex.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := jsRedirectRegex.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := openSpotifyRegex.FindString(body); m != "" {
		return m
	}
	return ""
}

// oembedLookup asks the embed-metadata endpoint about the expanded URL and
// pulls a playlist ID out of either the embed iframe path or an embedded
// native URI in the payload.
func (r *Resolver) oembedLookup(ctx context.Context, pageURL string) string {
	probeURL := r.oembedURL + "?url=" + url.QueryEscape(pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return ""
	}

	resp, err := r.client.Do(req)
	if err != nil {
		log.Warnf("oEmbed probe failed for %s: %v", pageURL, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("oEmbed probe returned HTTP %d for %s", resp.StatusCode, pageURL)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warnf("oEmbed probe returned non-JSON payload for %s", pageURL)
		return ""
	}

	// The interesting strings can sit in the iframe HTML snippet or any
	// other metadata field; scan the raw payload rather than trusting the
	// response shape. JSON encoders may escape forward slashes.
	text := strings.ReplaceAll(string(payload), `\/`, "/")

	if m := embedPathRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := embeddedURIRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
