package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"storelink/config"
)

// ErrUpstreamFetch marks a non-success response from the Spotify catalog API.
// It aborts the whole request; there is no partial result to return.
var ErrUpstreamFetch = errors.New("failed to fetch playlist from Spotify")

var Spotify *spotifyclient.Client

// Track is one playlist entry. Artist holds all contributing artist names
// joined with ", " in their upstream order.
type Track struct {
	Title  string
	Artist string
}

type PlaylistResult struct {
	Name   string
	Tracks []Track
}

func NewSpotifyClient() error {
	ctx := context.Background()
	cfg := &clientcredentials.Config{
		ClientID:     config.Config.Spotify.ClientID,
		ClientSecret: config.Config.Spotify.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := cfg.Token(ctx)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	Spotify = spotifyclient.New(httpClient)
	return nil
}

// GetPlaylistTracks walks the playlist's full track listing, following the
// upstream pagination cursor until it is exhausted. Output order equals
// upstream order.
func GetPlaylistTracks(ctx context.Context, playlistID string) (*PlaylistResult, error) {
	return getPlaylistTracks(ctx, Spotify, playlistID)
}

func getPlaylistTracks(ctx context.Context, client *spotifyclient.Client, playlistID string) (*PlaylistResult, error) {
	log.Tracef("Fetching playlist tracks from Spotify API: %s", playlistID)

	span := sentry.StartSpan(ctx, "spotify.get_playlist_tracks")
	span.Description = "Get playlist tracks from Spotify API"
	span.SetTag("playlist_id", playlistID)
	defer span.Finish()

	playlist, err := client.GetPlaylist(ctx, spotifyclient.ID(playlistID))
	if err != nil {
		log.Errorf("Failed to fetch Spotify playlist %s: %v", playlistID, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	items, err := client.GetPlaylistItems(ctx, spotifyclient.ID(playlistID))
	if err != nil {
		log.Errorf("Failed to fetch Spotify playlist items %s: %v", playlistID, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	tracks := []Track{}
	for {
		for _, item := range items.Items {
			// Removed tracks and local files come through as null entries.
			if item.Track.Track == nil {
				continue
			}

			track := item.Track.Track
			names := make([]string, 0, len(track.Artists))
			for _, artist := range track.Artists {
				if artist.Name != "" {
					names = append(names, artist.Name)
				}
			}
			artist := strings.Join(names, ", ")

			if track.Name == "" || artist == "" {
				log.Warnf("Skipping malformed playlist entry in %s (title=%q artist=%q)", playlistID, track.Name, artist)
				continue
			}

			tracks = append(tracks, Track{Title: track.Name, Artist: artist})
		}

		err = client.NextPage(ctx, items)
		if errors.Is(err, spotifyclient.ErrNoMorePages) {
			break
		}
		if err != nil {
			log.Errorf("Failed to fetch next playlist page for %s: %v", playlistID, err)
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
		}
	}

	log.Debugf("Fetched %d tracks from Spotify playlist '%s'", len(tracks), playlist.Name)
	span.Status = sentry.SpanStatusOK
	span.SetData("tracks_count", len(tracks))

	return &PlaylistResult{Name: playlist.Name, Tracks: tracks}, nil
}
