package youtube

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	yt "google.golang.org/api/youtube/v3"

	"postwatch/internal/usecase/check"
)

func TestMapPlaylistItems(t *testing.T) {
	entries := []*yt.PlaylistItem{
		{ContentDetails: &yt.PlaylistItemContentDetails{VideoId: "dQw4w9WgXcQ"}},
		{ContentDetails: &yt.PlaylistItemContentDetails{}}, // private or deleted video
		{ContentDetails: nil},
		{ContentDetails: &yt.PlaylistItemContentDetails{VideoId: "abc123XYZ_-"}},
	}

	got := mapPlaylistItems(entries)
	want := []check.Item{
		{ID: "dQw4w9WgXcQ", URL: "https://youtube.com/watch?v=dQw4w9WgXcQ"},
		{ID: "abc123XYZ_-", URL: "https://youtube.com/watch?v=abc123XYZ_-"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mapPlaylistItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapPlaylistItems_Empty(t *testing.T) {
	if got := mapPlaylistItems(nil); len(got) != 0 {
		t.Errorf("mapPlaylistItems(nil) = %v, want empty", got)
	}
}
