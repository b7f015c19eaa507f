// Package catalog fetches practice location records from the provider
// reference service and indexes them for matching.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const requestTimeout = 30 * time.Second

// Client talks to the provider reference service.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client for the given base URL, e.g.
// https://provider-reference-v1.example.com/provider-reference/v1.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// flexString accepts JSON strings, numbers, and null. The reference service
// serializes monolith IDs as numbers but cloud IDs as strings.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type resolveRequest struct {
	MonolithPracticeIDs []string `json:"monolith_practice_ids"`
}

type resolveResponse struct {
	PracticeIDs []struct {
		MonolithPracticeID flexString `json:"monolith_practice_id"`
		PracticeID         flexString `json:"practice_id"`
	} `json:"practice_ids"`
}

// ResolveCloudIDs converts monolith practice IDs to cloud practice IDs.
// The result may be partial: IDs the service does not know are simply absent
// and callers treat them as already being cloud IDs.
func (c *Client) ResolveCloudIDs(ctx context.Context, monolithIDs []string) (map[string]string, error) {
	var resp resolveResponse
	err := c.post(ctx, "/practice/ids-by-monolith-ids~batchGet",
		resolveRequest{MonolithPracticeIDs: monolithIDs}, &resp)
	if err != nil {
		return nil, fmt.Errorf("resolve practice ids: %w", err)
	}

	out := make(map[string]string, len(resp.PracticeIDs))
	for _, item := range resp.PracticeIDs {
		if item.PracticeID != "" {
			out[string(item.MonolithPracticeID)] = string(item.PracticeID)
		}
	}
	c.log.Info().
		Int("requested", len(monolithIDs)).
		Int("resolved", len(out)).
		Msg("practice cloud ids resolved")
	return out, nil
}

// Location is one catalog record as returned by the reference service.
type Location struct {
	IsVirtual          *bool      `json:"is_virtual"`
	AddressLine1       string     `json:"address_1"`
	AddressLine2       string     `json:"address_2"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	Zip                flexString `json:"zip"`
	MonolithLocationID flexString `json:"monolith_location_id"`
	LocationID         flexString `json:"location_id"`
	PracticeID         flexString `json:"practice_id"`
}

type locationsRequest struct {
	PracticeIDs []string `json:"practice_ids"`
}

type locationsResponse struct {
	PracticeLocations []Location `json:"practice_locations"`
}

// Locations fetches all location records for one practice cloud ID.
func (c *Client) Locations(ctx context.Context, cloudID string) ([]Location, error) {
	var resp locationsResponse
	err := c.post(ctx, "/practice/location~batchGet",
		locationsRequest{PracticeIDs: []string{cloudID}}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch locations for practice %s: %w", cloudID, err)
	}
	return resp.PracticeLocations, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
