// Feed health checker for the source registry. Fetches every rss/query
// source, parses it with gofeed, and writes text and JSON reports with
// per-feed status, item counts, and redirect targets. Search-page sources
// are HTML, not feeds, and are skipped.
//
// Usage: go run scripts/diagnose_feeds.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"stormfeed/internal/config"
	"stormfeed/internal/domain/entity"
)

// FeedDiagnostic represents the diagnostic result for a single feed
type FeedDiagnostic struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	URL           string `json:"url"`
	Status        string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT", "REDIRECT", "SKIPPED"
	HTTPCode      int    `json:"http_code"`
	ItemCount     int    `json:"item_count"`
	LatestDate    string `json:"latest_date"`
	ErrorMessage  string `json:"error_message,omitempty"`
	FeedType      string `json:"feed_type"` // "rss", "atom", "json", "UNKNOWN"
	RedirectURL   string `json:"redirect_url,omitempty"`
	ResponseTime  int64  `json:"response_time_ms"`
	ContentLength int64  `json:"content_length"`
}

func main() {
	sources, err := config.LoadSources(os.Getenv("CRAWLER_SOURCES_PATH"))
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	log.Printf("Diagnosing %d sources...\n", len(sources))

	diagnostics := make([]FeedDiagnostic, 0, len(sources))
	for i, source := range sources {
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(sources), source.Name)

		if source.Kind == entity.SourceKindSearch {
			diagnostics = append(diagnostics, FeedDiagnostic{
				Name:         source.Name,
				Kind:         source.Kind,
				URL:          source.ResolvedURL(),
				Status:       "SKIPPED",
				ErrorMessage: "search page, not a feed",
			})
			continue
		}

		diagnostics = append(diagnostics, diagnoseFeed(source, 30*time.Second))

		// Rate limiting to be nice to servers
		time.Sleep(500 * time.Millisecond)
	}

	generateReport(diagnostics)
	generateJSONReport(diagnostics)
}

func diagnoseFeed(source entity.SourceDescriptor, timeout time.Duration) FeedDiagnostic {
	url := source.ResolvedURL()
	diag := FeedDiagnostic{
		Name: source.Name,
		Kind: source.Kind,
		URL:  url,
	}

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		diag.Status = "REQUEST_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	req.Header.Set("User-Agent", config.DefaultUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	diag.ResponseTime = time.Since(startTime).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
			diag.ErrorMessage = fmt.Sprintf("Request timeout after %v", timeout)
		} else {
			diag.Status = "HTTP_ERROR"
			diag.ErrorMessage = err.Error()
		}
		return diag
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	diag.HTTPCode = resp.StatusCode
	diag.ContentLength = resp.ContentLength

	if resp.Request.URL.String() != url {
		diag.RedirectURL = resp.Request.URL.String()
		diag.Status = "REDIRECT"
	}

	if resp.StatusCode != 200 {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status)
		return diag
	}

	feed, parseErr := gofeed.NewParser().Parse(resp.Body)
	if parseErr != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = parseErr.Error()
		diag.FeedType = "UNKNOWN"
		return diag
	}

	diag.FeedType = feed.FeedType
	diag.ItemCount = len(feed.Items)
	if len(feed.Items) > 0 {
		diag.LatestDate = feed.Items[0].Published
		if diag.LatestDate == "" {
			diag.LatestDate = feed.Items[0].Updated
		}
	}

	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "Feed has no items"
		return diag
	}

	if diag.Status != "REDIRECT" {
		diag.Status = "OK"
	}
	return diag
}

// writef is a helper to write to file and handle errors
func writef(f *os.File, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(f, format, args...)
	return err
}

func generateReport(diagnostics []FeedDiagnostic) {
	f, err := os.Create("feed_diagnostic_report.txt")
	if err != nil {
		log.Printf("Failed to create report file: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close report file: %v", err)
		}
	}()

	_ = writef(f, "===============================================\n")
	_ = writef(f, "Feed Diagnostic Report\n")
	_ = writef(f, "Generated: %s\n", time.Now().Format(time.RFC3339))
	_ = writef(f, "Total Sources: %d\n", len(diagnostics))
	_ = writef(f, "===============================================\n\n")

	statusCount := make(map[string]int)
	var okCount, errorCount int
	for _, d := range diagnostics {
		statusCount[d.Status]++
		switch d.Status {
		case "OK", "REDIRECT", "SKIPPED":
			okCount++
		default:
			errorCount++
		}
	}

	_ = writef(f, "SUMMARY:\n")
	_ = writef(f, "  Working: %d (%.1f%%)\n", okCount, float64(okCount)/float64(len(diagnostics))*100)
	_ = writef(f, "  Broken: %d (%.1f%%)\n", errorCount, float64(errorCount)/float64(len(diagnostics))*100)
	_ = writef(f, "\nSTATUS BREAKDOWN:\n")
	for status, count := range statusCount {
		_ = writef(f, "  %s: %d\n", status, count)
	}
	_ = writef(f, "\n")

	_ = writef(f, "DETAILED RESULTS:\n")
	_ = writef(f, "===============================================\n\n")

	_ = writef(f, "WORKING FEEDS (%d):\n", statusCount["OK"]+statusCount["REDIRECT"])
	_ = writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		if d.Status == "OK" || d.Status == "REDIRECT" {
			_ = writef(f, "Name: %s (%s)\n", d.Name, d.Kind)
			_ = writef(f, "  URL: %s\n", d.URL)
			_ = writef(f, "  Type: %s | Items: %d | Latest: %s\n", d.FeedType, d.ItemCount, d.LatestDate)
			_ = writef(f, "  Response: %dms | HTTP: %d\n", d.ResponseTime, d.HTTPCode)
			if d.RedirectURL != "" {
				_ = writef(f, "  Redirected to: %s\n", d.RedirectURL)
			}
			_ = writef(f, "\n")
		}
	}

	_ = writef(f, "\nBROKEN FEEDS (%d):\n", errorCount)
	_ = writef(f, "-------------------------------------------\n")
	for _, d := range diagnostics {
		switch d.Status {
		case "OK", "REDIRECT", "SKIPPED":
		default:
			_ = writef(f, "Name: %s (%s)\n", d.Name, d.Kind)
			_ = writef(f, "  URL: %s\n", d.URL)
			_ = writef(f, "  Status: %s | HTTP: %d\n", d.Status, d.HTTPCode)
			_ = writef(f, "  Error: %s\n", d.ErrorMessage)
			_ = writef(f, "  Response: %dms\n", d.ResponseTime)
			_ = writef(f, "\n")
		}
	}

	log.Println("Text report generated: feed_diagnostic_report.txt")
}

func generateJSONReport(diagnostics []FeedDiagnostic) {
	f, err := os.Create("feed_diagnostic_report.json")
	if err != nil {
		log.Printf("Failed to create JSON report: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close JSON report file: %v", err)
		}
	}()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Printf("Failed to write JSON report: %v", err)
		return
	}

	log.Println("JSON report generated: feed_diagnostic_report.json")
}
