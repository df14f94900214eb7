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

const unsplashDefaultBaseURL = "https://api.unsplash.com/search/photos"

// UnsplashClient searches the Unsplash photo API.
type UnsplashClient struct {
	accessKey string
	baseURL   string
	timeout   time.Duration
	client    *http.Client
}

// NewUnsplashClient creates an Unsplash search client. baseURL and timeout
// fall back to defaults when zero.
func NewUnsplashClient(accessKey, baseURL string, timeout time.Duration) *UnsplashClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = unsplashDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return &UnsplashClient{
		accessKey: strings.TrimSpace(accessKey),
		baseURL:   baseURL,
		timeout:   timeout,
		client:    &http.Client{},
	}
}

// SearchImage returns the first result's regular photo URL, or "" when the
// search had no usable hit.
func (u *UnsplashClient) SearchImage(ctx context.Context, query string) (string, error) {
	reqURL, err := url.Parse(u.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	params := reqURL.Query()
	params.Set("query", query)
	params.Set("per_page", "1")
	reqURL.RawQuery = params.Encode()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unsplash search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unsplash search: status %d", resp.StatusCode)
	}

	var raw struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
				Small   string `json:"small"`
				Full    string `json:"full"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode unsplash response: %w", err)
	}
	if len(raw.Results) == 0 {
		return "", nil
	}
	urls := raw.Results[0].URLs
	for _, candidate := range []string{urls.Regular, urls.Small, urls.Full} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", nil
}
