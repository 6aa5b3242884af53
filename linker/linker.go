// Package linker fans out per-track store lookups and aggregates the
// results in playlist order.
package linker

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storelink/applemusic"
	"storelink/bandcamp"
	"storelink/match"
	"storelink/spotify"
)

// AppleClient is the Apple/iTunes side of a lookup.
type AppleClient interface {
	FindLinks(ctx context.Context, title, artist, country string) (applemusic.Links, error)
}

// BandcampClient is the Bandcamp side of a lookup.
type BandcampClient interface {
	FindTrack(ctx context.Context, title, artist string) bandcamp.Result
}

// TrackLinks is the per-track match result. BandcampSearch is always
// populated; everything else is best effort.
type TrackLinks struct {
	AppleStoreCandidates []string
	AppleWeb             string
	BandcampDirect       string
	BandcampSearch       string
}

// Result pairs a playlist track with its store links.
type Result struct {
	Track spotify.Track
	Links TrackLinks
}

type Linker struct {
	apple    AppleClient
	bandcamp BandcampClient
	limit    int
}

// New builds a Linker that runs at most limit track lookups at once.
func New(apple AppleClient, bandcamp BandcampClient, limit int) *Linker {
	if limit < 1 {
		limit = 1
	}
	return &Linker{apple: apple, bandcamp: bandcamp, limit: limit}
}

// LinkAll looks up store links for every track. Output order equals input
// order, and a lookup failure never drops a row.
func (l *Linker) LinkAll(ctx context.Context, tracks []spotify.Track, country string) []Result {
	results := make([]Result, len(tracks))

	g := new(errgroup.Group)
	g.SetLimit(l.limit)
	for i, track := range tracks {
		i, track := i, track
		g.Go(func() error {
			results[i] = Result{Track: track, Links: l.linkOne(ctx, track, country)}
			return nil
		})
	}
	g.Wait()

	return results
}

// linkOne runs both store lookups for one track. The lookups are
// independent; neither failure blocks the other.
func (l *Linker) linkOne(ctx context.Context, track spotify.Track, country string) TrackLinks {
	title := match.CleanTitle(track.Title)

	var links TrackLinks
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		result := l.bandcamp.FindTrack(ctx, title, track.Artist)
		links.BandcampDirect = result.Direct
		links.BandcampSearch = result.SearchURL
	}()
	go func() {
		defer wg.Done()
		apple, err := l.apple.FindLinks(ctx, title, track.Artist, country)
		if err != nil {
			log.Warnf("Apple lookup degraded for '%s' by '%s': %v", track.Title, track.Artist, err)
			return
		}
		links.AppleStoreCandidates = apple.StoreCandidates
		links.AppleWeb = apple.WebURL
	}()
	wg.Wait()

	return links
}
