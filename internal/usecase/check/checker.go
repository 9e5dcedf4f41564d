// Package check implements the content-checking core: platform checkers that
// poll external sources for every registered channel link, filter out items
// that were already notified, persist the new ones and hand them to the
// dispatcher. All per-link and per-item failures are contained here; only a
// failure to load the link set ends a cycle early.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"postwatch/internal/domain/entity"
	"postwatch/internal/repository"
)

// Item is one candidate content item returned by a platform fetcher.
// Author and Category are optional; the dispatcher applies fallbacks.
type Item struct {
	ID       string // platform-assigned identifier, the dedup key
	Author   string
	Category string
	URL      string
}

// Fetcher retrieves the current batch of candidate items for one source
// identifier (playlist ID, subreddit name). Implementations wrap their
// failures in ErrFetchNetwork or ErrFetchParse.
//
// Order of the returned batch carries no meaning: feeds may backfill or
// reorder, so the checker evaluates every candidate independently.
type Fetcher interface {
	Fetch(ctx context.Context, sourceID string) ([]Item, error)
}

// Dispatcher delivers the notification for one newly discovered item.
type Dispatcher interface {
	Dispatch(ctx context.Context, link *entity.ChannelLink, item Item) error
}

// Checker runs one platform's full poll cycle. Adding a platform means adding
// a new implementation, not changing existing ones.
type Checker interface {
	Name() string
	Check(ctx context.Context) (*CycleStats, error)
}

// CycleStats summarizes one cycle for logs and metrics.
type CycleStats struct {
	Links          int
	Items          int64
	NewItems       int64
	Duplicates     int64
	FetchErrors    int64
	StoreErrors    int64
	DispatchErrors int64
	Duration       time.Duration
}

// Options tunes the shared cycle runner.
type Options struct {
	// LinkTimeout bounds the processing of a single link (fetch plus
	// per-item store and dispatch calls) so one slow source cannot stall
	// the rest of the batch.
	LinkTimeout time.Duration

	// MaxConcurrentLinks bounds how many links are processed at once.
	MaxConcurrentLinks int

	// Debug is surfaced in discovery log lines; the dispatcher applies the
	// actual mention suppression.
	Debug bool
}

// DefaultOptions returns the runner defaults used in production.
func DefaultOptions() Options {
	return Options{
		LinkTimeout:        30 * time.Second,
		MaxConcurrentLinks: 4,
	}
}

func (o Options) withDefaults() Options {
	if o.LinkTimeout <= 0 {
		o.LinkTimeout = 30 * time.Second
	}
	if o.MaxConcurrentLinks <= 0 {
		o.MaxConcurrentLinks = 1
	}
	return o
}

// runner holds the cycle algorithm shared by the platform checkers.
type runner struct {
	links      repository.ChannelLinkRepository
	posts      repository.PostRepository
	dispatcher Dispatcher
	opts       Options
	now        func() time.Time
}

func newRunner(links repository.ChannelLinkRepository, posts repository.PostRepository, dispatcher Dispatcher, opts Options) runner {
	return runner{
		links:      links,
		posts:      posts,
		dispatcher: dispatcher,
		opts:       opts.withDefaults(),
		now:        time.Now,
	}
}

// run executes one cycle for the named platform. It fails only when the link
// set cannot be loaded; every other error is logged and contained.
func (r *runner) run(ctx context.Context, platform string, fetcher Fetcher) (*CycleStats, error) {
	start := r.now()

	links, err := r.links.ListByPlatform(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("%w: list links for %s: %v", ErrStoreUnavailable, platform, err)
	}

	stats := &CycleStats{Links: len(links)}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.MaxConcurrentLinks)
	for _, link := range links {
		link := link
		eg.Go(func() error {
			r.processLink(egCtx, platform, fetcher, link, stats)
			// Contained failures never abort the batch.
			return nil
		})
	}
	_ = eg.Wait()

	stats.Duration = r.now().Sub(start)
	return stats, nil
}

// processLink handles one channel link: fetch, dedup, dispatch. Errors are
// logged and counted; processing always continues with the next item or link.
func (r *runner) processLink(ctx context.Context, platform string, fetcher Fetcher, link *entity.ChannelLink, stats *CycleStats) {
	logger := slog.Default()

	ctx, cancel := context.WithTimeout(ctx, r.opts.LinkTimeout)
	defer cancel()

	items, err := fetcher.Fetch(ctx, link.SourceID)
	if err != nil {
		atomic.AddInt64(&stats.FetchErrors, 1)
		logger.Warn("fetch failed, skipping link until next tick",
			slog.String("platform", platform),
			slog.Int64("link_id", link.ID),
			slog.String("source_id", link.SourceID),
			slog.Any("error", err))
		return
	}

	for _, item := range items {
		atomic.AddInt64(&stats.Items, 1)

		inserted, err := r.posts.RecordIfNew(ctx, item.ID, link.ID, r.now())
		if err != nil {
			// One bad insert must not abort the remaining items.
			atomic.AddInt64(&stats.StoreErrors, 1)
			logger.Warn("dedup store insert failed, skipping item",
				slog.String("platform", platform),
				slog.Int64("link_id", link.ID),
				slog.String("item_id", item.ID),
				slog.Any("error", err))
			continue
		}
		if !inserted {
			atomic.AddInt64(&stats.Duplicates, 1)
			continue
		}

		atomic.AddInt64(&stats.NewItems, 1)
		logger.Info("new post discovered",
			slog.String("platform", platform),
			slog.Int64("link_id", link.ID),
			slog.String("item_id", item.ID),
			slog.Bool("debug_mode", r.opts.Debug))

		if err := r.dispatcher.Dispatch(ctx, link, item); err != nil {
			// The item stays recorded as notified: re-sending on the next
			// tick would spam the channel.
			atomic.AddInt64(&stats.DispatchErrors, 1)
			logger.Warn("dispatch failed, item stays marked as notified",
				slog.String("platform", platform),
				slog.Int64("link_id", link.ID),
				slog.String("item_id", item.ID),
				slog.Any("error", err))
		}
	}
}

// YouTubeChecker polls YouTube playlists for new uploads.
type YouTubeChecker struct {
	runner
	fetcher Fetcher
}

// NewYouTubeChecker builds the YouTube platform checker.
func NewYouTubeChecker(links repository.ChannelLinkRepository, posts repository.PostRepository, fetcher Fetcher, dispatcher Dispatcher, opts Options) *YouTubeChecker {
	return &YouTubeChecker{
		runner:  newRunner(links, posts, dispatcher, opts),
		fetcher: fetcher,
	}
}

// Name returns the platform name this checker polls.
func (c *YouTubeChecker) Name() string { return entity.PlatformYouTube }

// Check runs one full YouTube poll cycle.
func (c *YouTubeChecker) Check(ctx context.Context) (*CycleStats, error) {
	return c.run(ctx, entity.PlatformYouTube, c.fetcher)
}

// RedditChecker polls subreddit feeds for new posts.
type RedditChecker struct {
	runner
	fetcher Fetcher
}

// NewRedditChecker builds the Reddit platform checker.
func NewRedditChecker(links repository.ChannelLinkRepository, posts repository.PostRepository, fetcher Fetcher, dispatcher Dispatcher, opts Options) *RedditChecker {
	return &RedditChecker{
		runner:  newRunner(links, posts, dispatcher, opts),
		fetcher: fetcher,
	}
}

// Name returns the platform name this checker polls.
func (c *RedditChecker) Name() string { return entity.PlatformReddit }

// Check runs one full Reddit poll cycle.
func (c *RedditChecker) Check(ctx context.Context) (*CycleStats, error) {
	return c.run(ctx, entity.PlatformReddit, c.fetcher)
}
