// Package fetch retrieves the crowd-sourced sheet from wherever it is
// published. The bytes it returns go straight to ingest.Parse; no parsing
// happens here.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"grade-advisor/internal/httpx"
)

// ErrNotShareURL is returned when a URL does not look like a spreadsheet
// share link.
var ErrNotShareURL = errors.New("fetch: not a spreadsheet share URL")

// ExportURL rewrites a Google Sheets share link into its CSV export
// endpoint. Share links look like .../spreadsheets/d/<id>/edit?...; only
// the id is needed.
func ExportURL(shareURL string) (string, error) {
	_, rest, ok := strings.Cut(shareURL, "/d/")
	if !ok {
		return "", ErrNotShareURL
	}
	id, _, _ := strings.Cut(rest, "/")
	id, _, _ = strings.Cut(id, "?")
	if strings.TrimSpace(id) == "" {
		return "", ErrNotShareURL
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", id), nil
}

// CSV downloads the sheet as CSV bytes. Share links are rewritten to their
// export endpoint first; any other URL is fetched as-is. A nil client gets
// a default with a generous per-request timeout.
func CSV(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}

	url := rawURL
	if strings.Contains(rawURL, "/d/") && !strings.Contains(rawURL, "export?format=csv") {
		if rewritten, err := ExportURL(rawURL); err == nil {
			url = rewritten
		}
	}

	_, body, err := httpx.DoWithRetry(ctx, client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		req.Header.Set("Accept-Encoding", "br")
		return req, nil
	}, httpx.DefaultRetryConfig())
	if err != nil {
		return nil, fmt.Errorf("fetch: download dataset: %w", err)
	}
	return body, nil
}
