// Package handlers wires the playlist-linking pipeline to HTTP: resolve the
// playlist reference, enumerate its tracks, fan out the store lookups and
// render the aggregate as JSON or CSV.
package handlers

import (
	"context"
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storelink/linker"
	"storelink/pages"
	"storelink/spotify"
)

// PlaylistResolver turns a free-form playlist reference into a canonical ID.
type PlaylistResolver interface {
	ResolvePlaylistID(ctx context.Context, raw string) (string, error)
}

// TrackFetcher enumerates a resolved playlist's tracks.
type TrackFetcher func(ctx context.Context, playlistID string) (*spotify.PlaylistResult, error)

type Manager struct {
	Resolver PlaylistResolver
	Tracks   TrackFetcher
	Linker   *linker.Linker
	Country  string
}

type LinksRequest struct {
	PlaylistURL string `json:"playlistUrl"`
	Country     string `json:"country"`
}

type TrackLinksJSON struct {
	AppleStoreCandidates []string `json:"appleStoreCandidates"`
	AppleWeb             *string  `json:"appleWeb"`
	Bandcamp             *string  `json:"bandcamp"`
	BandcampSearch       string   `json:"bandcampSearch"`
}

type ResultRow struct {
	Title  string         `json:"title"`
	Artist string         `json:"artist"`
	Links  TrackLinksJSON `json:"links"`
}

type LinksResponse struct {
	Playlist string      `json:"playlist"`
	Results  []ResultRow `json:"results"`
}

// Register mounts all routes on the router.
func (m *Manager) Register(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.Index))
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.POST("/playlist/links", m.PlaylistLinks)
	router.GET("/playlist/links.csv", m.PlaylistLinksCSV)
}

// PlaylistLinks handles POST /playlist/links.
func (m *Manager) PlaylistLinks(c *gin.Context) {
	var req LinksRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlaylistURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playlistUrl is required"})
		return
	}

	response, status, err := m.linkPlaylist(c.Request.Context(), req.PlaylistURL, req.Country)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

// PlaylistLinksCSV handles GET /playlist/links.csv?url=...&country=...
func (m *Manager) PlaylistLinksCSV(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	response, status, err := m.linkPlaylist(c.Request.Context(), rawURL, c.Query("country"))
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="playlist-links.csv"`)

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"title", "artist", "apple", "bandcamp", "bandcamp_search"})
	for _, row := range response.Results {
		apple := ""
		if row.Links.AppleWeb != nil {
			apple = *row.Links.AppleWeb
		} else if len(row.Links.AppleStoreCandidates) > 0 {
			apple = row.Links.AppleStoreCandidates[0]
		}
		direct := ""
		if row.Links.Bandcamp != nil {
			direct = *row.Links.Bandcamp
		}
		writer.Write([]string{row.Title, row.Artist, apple, direct, row.Links.BandcampSearch})
	}
	writer.Flush()
}

// linkPlaylist runs the whole pipeline. The returned status only matters
// when err is non-nil.
func (m *Manager) linkPlaylist(ctx context.Context, rawURL, country string) (*LinksResponse, int, error) {
	if country == "" {
		country = m.Country
	}

	playlistID, err := m.Resolver.ResolvePlaylistID(ctx, rawURL)
	if err != nil {
		log.Warnf("Playlist resolution failed for %q: %v", rawURL, err)
		return nil, http.StatusUnprocessableEntity, err
	}

	playlist, err := m.Tracks(ctx, playlistID)
	if err != nil {
		log.Errorf("Track listing failed for %s: %v", playlistID, err)
		return nil, http.StatusBadGateway, err
	}

	results := m.Linker.LinkAll(ctx, playlist.Tracks, country)

	response := &LinksResponse{
		Playlist: playlist.Name,
		Results:  make([]ResultRow, 0, len(results)),
	}
	for _, result := range results {
		links := TrackLinksJSON{
			AppleStoreCandidates: result.Links.AppleStoreCandidates,
			AppleWeb:             optional(result.Links.AppleWeb),
			Bandcamp:             optional(result.Links.BandcampDirect),
			BandcampSearch:       result.Links.BandcampSearch,
		}
		if links.AppleStoreCandidates == nil {
			links.AppleStoreCandidates = []string{}
		}
		response.Results = append(response.Results, ResultRow{
			Title:  result.Track.Title,
			Artist: result.Track.Artist,
			Links:  links,
		})
	}

	log.Debugf("Linked %d tracks for playlist '%s'", len(response.Results), playlist.Name)
	return response, http.StatusOK, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
