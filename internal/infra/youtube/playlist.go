// Package youtube fetches playlist uploads through the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"postwatch/internal/resilience/circuitbreaker"
	"postwatch/internal/resilience/retry"
	"postwatch/internal/usecase/check"
)

const pageSize = 50

// PlaylistFetcher implements check.Fetcher for YouTube. The source id is a
// playlist id, typically the channel's uploads playlist.
type PlaylistFetcher struct {
	service     *yt.Service
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

// NewPlaylistFetcher builds a fetcher authenticated with the service
// account credentials at credentialsFile.
func NewPlaylistFetcher(ctx context.Context, credentialsFile string) (*PlaylistFetcher, error) {
	service, err := yt.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(yt.YoutubeReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("NewPlaylistFetcher: %w", err)
	}
	return &PlaylistFetcher{
		service:     service,
		breaker:     circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig: retry.FeedFetchConfig(),
	}, nil
}

// Fetch lists the newest page of playlist entries. One page is enough: the
// poll interval is far shorter than the time a channel needs to publish
// fifty videos.
func (f *PlaylistFetcher) Fetch(ctx context.Context, sourceID string) ([]check.Item, error) {
	var items []check.Item
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		result, err := f.breaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, sourceID)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("youtube fetch rejected, circuit open",
					slog.String("playlist_id", sourceID),
					slog.String("state", f.breaker.State().String()))
			}
			return err
		}
		items = result.([]check.Item)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %v", check.ErrFetchNetwork, retryErr)
	}
	return items, nil
}

func (f *PlaylistFetcher) doFetch(ctx context.Context, playlistID string) ([]check.Item, error) {
	resp, err := f.service.PlaylistItems.
		List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return mapPlaylistItems(resp.Items), nil
}

// mapPlaylistItems converts API entries into check items. The video id
// doubles as the dedup key; entries without one are skipped.
func mapPlaylistItems(entries []*yt.PlaylistItem) []check.Item {
	items := make([]check.Item, 0, len(entries))
	for _, entry := range entries {
		if entry.ContentDetails == nil || entry.ContentDetails.VideoId == "" {
			continue
		}
		videoID := entry.ContentDetails.VideoId
		items = append(items, check.Item{
			ID:  videoID,
			URL: fmt.Sprintf("https://youtube.com/watch?v=%s", videoID),
		})
	}
	return items
}
