// Package feed fetches subreddit RSS listings and maps them onto check
// items. It wraps the HTTP round trip with circuit breaker and retry logic.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"postwatch/internal/resilience/circuitbreaker"
	"postwatch/internal/resilience/retry"
	"postwatch/internal/usecase/check"
)

// RedditFetcher implements check.Fetcher for subreddits. The source id is
// the bare subreddit name; the fetcher derives the /new.rss listing URL.
type RedditFetcher struct {
	client      *http.Client
	userAgent   string
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

// NewRedditFetcher builds a fetcher using the given HTTP client. Reddit
// rejects default Go user agents, so userAgent must identify the bot.
func NewRedditFetcher(client *http.Client, userAgent string) *RedditFetcher {
	return &RedditFetcher{
		client:      client,
		userAgent:   userAgent,
		breaker:     circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig: retry.FeedFetchConfig(),
	}
}

// ListingURL returns the new-posts RSS URL for a subreddit. The name is
// percent-escaped so operator typos cannot alter the request path.
func ListingURL(subreddit string) string {
	return fmt.Sprintf("https://reddit.com/r/%s/new.rss", url.PathEscape(subreddit))
}

// Fetch retrieves the subreddit's newest posts, retrying transient failures.
func (f *RedditFetcher) Fetch(ctx context.Context, sourceID string) ([]check.Item, error) {
	return f.fetchURL(ctx, ListingURL(sourceID))
}

func (f *RedditFetcher) fetchURL(ctx context.Context, feedURL string) ([]check.Item, error) {
	var items []check.Item
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		result, err := f.breaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("reddit fetch rejected, circuit open",
					slog.String("url", feedURL),
					slog.String("state", f.breaker.State().String()))
			}
			return err
		}
		items = result.([]check.Item)
		return nil
	})
	if retryErr != nil {
		return nil, classifyFetchError(retryErr)
	}
	return items, nil
}

// doFetch performs a single round trip without retry or circuit breaker.
func (f *RedditFetcher) doFetch(ctx context.Context, feedURL string) ([]check.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("fetch %s", feedURL),
		}
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, &parseError{cause: err}
	}
	return mapFeedItems(parsed), nil
}

// mapFeedItems converts Atom entries into check items. Entries without a
// GUID cannot be deduplicated and are skipped.
func mapFeedItems(feed *gofeed.Feed) []check.Item {
	items := make([]check.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.GUID == "" {
			continue
		}
		item := check.Item{
			ID:  it.GUID,
			URL: it.Link,
		}
		if len(it.Authors) > 0 {
			item.Author = it.Authors[0].Name
		}
		if len(it.Categories) > 0 {
			item.Category = it.Categories[0]
		}
		items = append(items, item)
	}
	return items
}

// parseError tags malformed-document failures so they are not retried and
// classify as parse rather than network.
type parseError struct {
	cause error
}

func (e *parseError) Error() string { return fmt.Sprintf("parse feed: %v", e.cause) }
func (e *parseError) Unwrap() error { return e.cause }

func classifyFetchError(err error) error {
	var pe *parseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %v", check.ErrFetchParse, err)
	}
	return fmt.Errorf("%w: %v", check.ErrFetchNetwork, err)
}
