// Package catalog implements the client for the external music catalog
// search API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/echoplay/echoplay/internal/models"
)

// ErrDecode indicates the catalog responded with a body that does not
// match the expected search envelope.
var ErrDecode = errors.New("catalog: malformed response")

// searchEnvelope is the catalog's search response wrapper.
type searchEnvelope struct {
	Data []models.Track `json:"data"`
}

// Client issues keyword searches against the catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a catalog Client for the given base URL.
// A nil httpClient falls back to a client with a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Search issues GET <base>/search?q=<query> and decodes the JSON
// envelope into tracks. A catalog that finds nothing yields an empty
// slice and a nil error; transport failures and malformed bodies are
// returned as errors.
func (c *Client) Search(ctx context.Context, query string) ([]models.Track, error) {
	u := c.baseURL + "/search?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if envelope.Data == nil {
		return []models.Track{}, nil
	}
	return envelope.Data, nil
}

// Playable filters tracks down to those with a well-formed absolute
// preview URL. Song-picker flows require a playable URL; read-only
// listings should use the unfiltered result instead.
func Playable(tracks []models.Track) []models.Track {
	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.Preview == nil || *t.Preview == "" {
			continue
		}
		u, err := url.Parse(*t.Preview)
		if err != nil || !u.IsAbs() {
			continue
		}
		out = append(out, t)
	}
	return out
}
