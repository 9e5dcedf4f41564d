// Command diagnose_links probes every Reddit channel link in the database
// and reports whether its RSS listing still resolves. Run it when a
// subreddit goes quiet to tell a dead source from a broken one.
//
// Usage: DATABASE_URL=... go run scripts/diagnose_links.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mmcdole/gofeed"
)

// LinkDiagnostic is one probe result.
type LinkDiagnostic struct {
	DisplayName    string `json:"display_name"`
	SourceID       string `json:"source_id"`
	URL            string `json:"url"`
	Status         string `json:"status"` // OK, HTTP_ERROR, PARSE_ERROR, EMPTY, TIMEOUT
	HTTPCode       int    `json:"http_code,omitempty"`
	ItemCount      int    `json:"item_count"`
	ErrorMessage   string `json:"error_message,omitempty"`
	ResponseTimeMS int64  `json:"response_time_ms"`
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`
SELECT cl.display_name, cl.source_id
FROM channel_links cl
JOIN platforms p ON p.id = cl.platform_id
WHERE p.name = 'Reddit'
ORDER BY cl.display_name`)
	if err != nil {
		log.Fatalf("query links: %v", err)
	}
	defer rows.Close()

	client := &http.Client{Timeout: 15 * time.Second}
	var results []LinkDiagnostic
	for rows.Next() {
		var name, sourceID string
		if err := rows.Scan(&name, &sourceID); err != nil {
			log.Fatalf("scan: %v", err)
		}
		results = append(results, probe(client, name, sourceID))
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("rows: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func probe(client *http.Client, name, sourceID string) LinkDiagnostic {
	listing := fmt.Sprintf("https://reddit.com/r/%s/new.rss", url.PathEscape(sourceID))
	diag := LinkDiagnostic{DisplayName: name, SourceID: sourceID, URL: listing}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listing, nil)
	if err != nil {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	req.Header.Set("User-Agent", "postwatch-diagnose/1.0")

	start := time.Now()
	resp, err := client.Do(req)
	diag.ResponseTimeMS = time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() != nil {
			diag.Status = "TIMEOUT"
		} else {
			diag.Status = "HTTP_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}
	defer resp.Body.Close()

	diag.HTTPCode = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		diag.Status = "HTTP_ERROR"
		return diag
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
	} else {
		diag.Status = "OK"
	}
	return diag
}
