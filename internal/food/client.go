// Package food is the client for the external food-lookup service. The
// calculation core never touches it; only the server's search proxy does.
package food

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Item is one food-search result with the nutrient fields the log needs.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ServingG      float64 `json:"serving_g"`
	Calories      int     `json:"calories"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	SugarG        float64 `json:"sugar_g"`
	GlycemicIndex float64 `json:"glycemic_index"`
}

// searchResponse is the wire shape of the lookup service's search endpoint.
type searchResponse struct {
	Items []Item `json:"items"`
}

// Client queries the food-lookup service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the lookup service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search queries the service for foods matching q.
func (c *Client) Search(ctx context.Context, q string) ([]Item, error) {
	u := c.baseURL + "/v1/foods/search?q=" + url.QueryEscape(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching foods: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("food search failed (status %d): %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return sr.Items, nil
}
