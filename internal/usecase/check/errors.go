package check

import "errors"

// Sentinel errors for the polling cycle. Fetchers wrap ErrFetchNetwork or
// ErrFetchParse so the checker can classify failures without knowing the
// transport; dispatchers wrap ErrDelivery the same way.
var (
	// ErrStoreUnavailable means the channel links for a cycle could not be
	// loaded. The cycle ends early; the next scheduled tick retries.
	ErrStoreUnavailable = errors.New("channel link store unavailable")

	// ErrFetchNetwork covers transport failures, non-success HTTP statuses
	// and platform API errors (including auth failures).
	ErrFetchNetwork = errors.New("fetch: network failure")

	// ErrFetchParse covers responses that arrived but could not be decoded
	// as a feed.
	ErrFetchParse = errors.New("fetch: malformed feed")

	// ErrDelivery covers transport errors from the messaging destination.
	// The dedup record is never rolled back on delivery failure.
	ErrDelivery = errors.New("dispatch: delivery failure")
)
