package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"postwatch/internal/usecase/check"
)

const atomListing = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>newest submissions : golang</title>
  <entry>
    <author><name>/u/gopher</name></author>
    <category term="golang" label="r/golang"/>
    <id>t3_abc123</id>
    <link href="https://www.reddit.com/r/golang/comments/abc123/post/"/>
    <title>A post</title>
  </entry>
  <entry>
    <id>t3_def456</id>
    <link href="https://www.reddit.com/r/golang/comments/def456/post/"/>
    <title>Post without author or category</title>
  </entry>
</feed>`

func TestListingURL(t *testing.T) {
	tests := []struct {
		subreddit string
		want      string
	}{
		{"golang", "https://reddit.com/r/golang/new.rss"},
		{"weird/name", "https://reddit.com/r/weird%2Fname/new.rss"},
		{"spaced name", "https://reddit.com/r/spaced%20name/new.rss"},
	}
	for _, tt := range tests {
		if got := ListingURL(tt.subreddit); got != tt.want {
			t.Errorf("ListingURL(%q) = %q, want %q", tt.subreddit, got, tt.want)
		}
		escaped := url.PathEscape(tt.subreddit)
		decoded, err := url.PathUnescape(escaped)
		if err != nil {
			t.Errorf("PathUnescape(%q) err = %v", escaped, err)
		} else if decoded != tt.subreddit {
			t.Errorf("PathUnescape(%q) = %q, want %q", escaped, decoded, tt.subreddit)
		}
	}
}

func TestRedditFetcher_ParsesListing(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomListing))
	}))
	defer srv.Close()

	f := NewRedditFetcher(srv.Client(), "postwatch/1.0")
	items, err := f.fetchURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch err = %v", err)
	}

	if gotUserAgent != "postwatch/1.0" {
		t.Errorf("user agent = %q, want postwatch/1.0", gotUserAgent)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	want := check.Item{
		ID:       "t3_abc123",
		Author:   "/u/gopher",
		Category: "r/golang",
		URL:      "https://www.reddit.com/r/golang/comments/abc123/post/",
	}
	if items[0] != want {
		t.Errorf("items[0] = %+v, want %+v", items[0], want)
	}
	if items[1].Author != "" || items[1].Category != "" {
		t.Errorf("items[1] = %+v, want empty author and category", items[1])
	}
}

func TestRedditFetcher_ClassifiesHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "banned", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewRedditFetcher(srv.Client(), "postwatch/1.0")
	_, err := f.fetchURL(context.Background(), srv.URL)
	if !errors.Is(err, check.ErrFetchNetwork) {
		t.Fatalf("err = %v, want ErrFetchNetwork", err)
	}
}

func TestRedditFetcher_ClassifiesMalformedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not a feed</html>"))
	}))
	defer srv.Close()

	f := NewRedditFetcher(srv.Client(), "postwatch/1.0")
	_, err := f.fetchURL(context.Background(), srv.URL)
	if !errors.Is(err, check.ErrFetchParse) {
		t.Fatalf("err = %v, want ErrFetchParse", err)
	}
}
