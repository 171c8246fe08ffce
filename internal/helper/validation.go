package helper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ValidateFeedURL checks that feedURL is an absolute http(s) URL.
func ValidateFeedURL(feedURL string) error {
	u, err := url.ParseRequestURI(feedURL)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid feed URL: missing host")
	}
	return nil
}

// CheckReachable validates feedURL and issues a GET, requiring a 2xx answer.
func CheckReachable(ctx context.Context, client *http.Client, feedURL, userAgent string) error {
	if err := ValidateFeedURL(feedURL); err != nil {
		return err
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bad response status: %s", resp.Status)
	}

	return nil
}
