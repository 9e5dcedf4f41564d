// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as Platform,
// ChannelLink and Post, along with their validation rules and domain errors.
package entity

// Platform names are reference data seeded at migration time. A ChannelLink
// always belongs to exactly one platform, which selects the fetcher/checker
// pairing used to poll it.
const (
	PlatformYouTube = "YouTube"
	PlatformReddit  = "Reddit"
)

// Platform represents one external content source (YouTube, Reddit, ...).
type Platform struct {
	ID          int64
	Name        string
	Description string
}

// KnownPlatform reports whether name matches one of the seeded platforms.
func KnownPlatform(name string) bool {
	return name == PlatformYouTube || name == PlatformReddit
}
