// Package prices fetches current coin prices from an external feed. Price
// data is decorative; any failure degrades to an empty result rather than
// surfacing an error state in the UI.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daoterm/daoterm/internal/logger"
)

// Quote is the current price of one coin type.
type Quote struct {
	CoinType  string  `json:"coin_type"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"` // percent
}

// Client queries the price feed endpoint.
type Client struct {
	url  string
	http *http.Client
}

// New creates a price feed client. An empty URL disables the feed; Fetch
// then always returns an empty map.
func New(feedURL string) *Client {
	return &Client{
		url:  feedURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns quotes for the requested coin types, keyed by coin type.
// Unknown coin types are omitted from the result.
func (c *Client) Fetch(ctx context.Context, coinTypes []string) (map[string]Quote, error) {
	if c.url == "" || len(coinTypes) == 0 {
		return map[string]Quote{}, nil
	}

	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("invalid price feed url: %w", err)
	}
	q := u.Query()
	q.Set("ids", strings.Join(coinTypes, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building price request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var quotes []Quote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("decoding price response: %w", err)
	}

	result := make(map[string]Quote, len(quotes))
	for _, quote := range quotes {
		result[quote.CoinType] = quote
	}
	logger.Debug("fetched %d/%d price quotes", len(result), len(coinTypes))
	return result, nil
}
