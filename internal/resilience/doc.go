// Package resilience holds the fault tolerance patterns the fetchers lean
// on: circuit breakers around the feed endpoints and retry with
// exponential backoff and jitter.
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchListing()
//	})
//
//	err = retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return poll()
//	})
package resilience
