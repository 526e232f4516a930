package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"flipsniper/models"
)

const (
	feedRequestTimeout = 10 * time.Second
	feedRetryAttempts  = 3

	// Cap feed payloads; a listing feed page should never be anywhere near this.
	maxFeedBodyBytes = 4 * 1024 * 1024
)

// FeedClient fetches listings from a prepared remote JSON feed. It is used
// when LISTING_FEED_URL is configured; callers fall back to the synthetic
// generator when the feed cannot be reached.
type FeedClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFeedClient returns a feed client with a default HTTP client when one is
// not provided.
func NewFeedClient(baseURL string, httpClient *http.Client) *FeedClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: feedRequestTimeout}
	}
	return &FeedClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type feedResponse struct {
	Listings []models.Listing `json:"listings"`
}

// Fetch implements Supplier against the remote feed. Transient failures are
// retried with backoff before the error is surfaced.
func (c *FeedClient) Fetch(ctx context.Context, criterion models.WatchCriterion, source models.Marketplace) ([]models.Listing, error) {
	endpoint, err := c.buildURL(criterion, source)
	if err != nil {
		return nil, err
	}

	var listings []models.Listing
	err = retry.Do(
		func() error {
			fetched, err := c.fetchOnce(ctx, endpoint)
			if err != nil {
				return err
			}
			listings = fetched
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(feedRetryAttempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch listing feed: %w", err)
	}
	return listings, nil
}

func (c *FeedClient) buildURL(criterion models.WatchCriterion, source models.Marketplace) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse feed url: %w", err)
	}

	q := parsed.Query()
	q.Set("keyword", criterion.Keyword)
	q.Set("source", string(source))
	q.Set("zip", criterion.Zip)
	q.Set("radius", strconv.Itoa(criterion.Radius))
	q.Set("minPrice", strconv.Itoa(criterion.MinPrice))
	q.Set("maxPrice", strconv.Itoa(criterion.MaxPrice))
	if criterion.Category != "" && criterion.Category != models.CategoryAll {
		q.Set("category", criterion.Category)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func (c *FeedClient) fetchOnce(ctx context.Context, endpoint string) ([]models.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request listing feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("listing feed returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload feedResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}
	return payload.Listings, nil
}
