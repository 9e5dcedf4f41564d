package entity

import "time"

// Post records one content item that has already been surfaced to users. Its
// ItemID is the platform-assigned identifier (video id, feed entry id) and is
// unique across the whole store: the first writer wins, and a conflicting
// insert is the "already notified" signal, not an error.
//
// Posts are never mutated. They disappear only when their ChannelLink is
// deleted (FK cascade) or when the retention sweep removes entries far older
// than any platform's feed window.
type Post struct {
	ID            int64
	ItemID        string
	ChannelLinkID int64
	DiscoveredAt  time.Time
}
