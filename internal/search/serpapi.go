// Package search wraps the SerpAPI Google search endpoints used for
// trend analysis and feature-image lookup.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// OrganicResult is one organic web result.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// ImageResult is one Google Images result.
type ImageResult struct {
	Original  string `json:"original"`
	Thumbnail string `json:"thumbnail"`
}

// Client calls SerpAPI with a fixed locale (hl=en, gl=in).
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

// NewClient creates a SerpAPI client. The API key is required.
func NewClient(apiKey string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("serpapi: api key is empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}, nil
}

// Organic runs a Google web search and returns the organic results.
func (c *Client) Organic(ctx context.Context, query string) ([]OrganicResult, error) {
	var payload struct {
		OrganicResults []OrganicResult `json:"organic_results"`
	}
	if err := c.get(ctx, "google", query, &payload); err != nil {
		return nil, err
	}
	return payload.OrganicResults, nil
}

// Images runs a Google Images search.
func (c *Client) Images(ctx context.Context, query string) ([]ImageResult, error) {
	var payload struct {
		ImagesResults []ImageResult `json:"images_results"`
	}
	if err := c.get(ctx, "google_images", query, &payload); err != nil {
		return nil, err
	}
	return payload.ImagesResults, nil
}

func (c *Client) get(ctx context.Context, engine, query string, out any) error {
	params := url.Values{}
	params.Set("engine", engine)
	params.Set("q", query)
	params.Set("hl", "en")
	params.Set("gl", "in")
	params.Set("num", "10")
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		const max = 1024
		if len(raw) > max {
			raw = raw[:max]
		}
		return fmt.Errorf("serpapi: unexpected status %s: %s", resp.Status, string(raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("serpapi: decode response: %w", err)
	}
	return nil
}
