package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	pexelsDefaultBaseURL = "https://api.pexels.com/v1/search"

	// DefaultSearchTimeout bounds a single provider search call.
	DefaultSearchTimeout = 4 * time.Second
)

// PexelsClient searches the Pexels photo API.
type PexelsClient struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewPexelsClient creates a Pexels search client. baseURL and timeout fall
// back to defaults when zero.
func NewPexelsClient(apiKey, baseURL string, timeout time.Duration) *PexelsClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = pexelsDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return &PexelsClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// SearchImage returns the first result's large photo URL, or "" when the
// search had no usable hit.
func (p *PexelsClient) SearchImage(ctx context.Context, query string) (string, error) {
	reqURL, err := url.Parse(p.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	params := reqURL.Query()
	params.Set("query", query)
	params.Set("per_page", "1")
	reqURL.RawQuery = params.Encode()

	// Per-call deadline so a slow provider never blocks other options.
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("pexels search: status %d", resp.StatusCode)
	}

	var raw struct {
		Photos []struct {
			Src struct {
				Large    string `json:"large"`
				Medium   string `json:"medium"`
				Original string `json:"original"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode pexels response: %w", err)
	}
	if len(raw.Photos) == 0 {
		return "", nil
	}
	src := raw.Photos[0].Src
	for _, candidate := range []string{src.Large, src.Medium, src.Original} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", nil
}
