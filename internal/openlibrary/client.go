// Package openlibrary is a small client for the Open Library books API
// (https://openlibrary.org/dev/docs/api/books).
package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const userAgent = "Bookshelf/1.0 (https://github.com/mrlokans/bookshelf)"

// ErrNoRecord is returned when Open Library answers with an empty payload for an ISBN.
var ErrNoRecord = errors.New("no record for ISBN")

// Record is the subset of the jscmd=data payload the library uses.
type Record struct {
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle"`
	NumberOfPages int         `json:"number_of_pages"`
	PublishDate   string      `json:"publish_date"`
	Publishers    []Publisher `json:"publishers"`
	Authors       []Author    `json:"authors"`
}

type Publisher struct {
	Name string `json:"name"`
}

type Author struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StatusError reports a non-200 answer from Open Library.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

// Client fetches book records from Open Library. Calls are spaced by the
// configured minimum interval.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		timer := time.NewTimer(r.interval - since)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	r.lastCall = time.Now()
	return nil
}

// NewClient creates a client talking to baseURL through httpClient.
func NewClient(httpClient *http.Client, baseURL string, minInterval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: newRateLimiter(minInterval),
	}
}

// FetchByISBN requests the bibliographic record for isbn.
// An empty payload yields ErrNoRecord. The request is never retried.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*Record, error) {
	isbn = entities.NormalizeISBN(isbn)
	if isbn == "" {
		return nil, ErrNoRecord
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	bibKey := "ISBN:" + isbn
	query := url.Values{}
	query.Set("bibkeys", bibKey)
	query.Set("format", "json")
	query.Set("jscmd", "data")
	endpoint := fmt.Sprintf("%s/api/books?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decodeRecord(body, bibKey)
}

func decodeRecord(body []byte, bibKey string) (*Record, error) {
	var payload map[string]jsoniter.RawMessage
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	raw, ok := payload[bibKey]
	if !ok {
		return nil, ErrNoRecord
	}

	var record Record
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", bibKey, err)
	}
	return &record, nil
}

// FirstPublisher returns the first listed publisher name, or "".
func (r *Record) FirstPublisher() string {
	if len(r.Publishers) == 0 {
		return ""
	}
	return r.Publishers[0].Name
}

// FirstAuthor returns the first listed author, or a zero Author.
func (r *Record) FirstAuthor() Author {
	if len(r.Authors) == 0 {
		return Author{}
	}
	return r.Authors[0]
}

// Year extracts a 4-digit year from PublishDate, falling back to the raw value.
func (r *Record) Year() string {
	if year := extractYear(r.PublishDate); year > 0 {
		return fmt.Sprintf("%d", year)
	}
	return strings.TrimSpace(r.PublishDate)
}

// extractYear tries to extract a 4-digit year from a date string.
func extractYear(dateStr string) int {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) < 4 {
		return 0
	}

	formats := []string{
		"2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2006-01-02",
		"January 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.Year()
		}
	}

	// Last resort: find 4 consecutive digits
	for i := 0; i <= len(dateStr)-4; i++ {
		if dateStr[i] >= '0' && dateStr[i] <= '9' {
			yearStr := dateStr[i : i+4]
			var year int
			if _, err := fmt.Sscanf(yearStr, "%d", &year); err == nil && year > 1000 && year < 3000 {
				return year
			}
		}
	}

	return 0
}
