package changelog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ariel-frischer/whatsnew/internal/build"
)

// DefaultRemoteTimeout is the default timeout for served catalogue fetches.
const DefaultRemoteTimeout = 5 * time.Second

// maxRemoteSize caps the size of a served catalogue.
const maxRemoteSize = 4 << 20

// FetchRemote fetches the catalogue served at url.
// The context can be used to control timeout and cancellation.
func FetchRemote(ctx context.Context, url string) (*Catalogue, error) {
	if url == "" {
		return nil, errors.New("fetching remote changelog: no URL configured")
	}
	cat, err := fetchFromURL(ctx, http.DefaultClient, url)
	if err != nil {
		return nil, fmt.Errorf("fetching remote changelog: %w", err)
	}
	return cat, nil
}

// FetchRemoteWithFallback fetches the served catalogue and falls back to the
// embedded one if the fetch fails. The boolean reports whether the returned
// catalogue came from the remote source; the remote error, if any, is
// returned alongside a usable fallback so callers can log it.
func FetchRemoteWithFallback(ctx context.Context, url string) (*Catalogue, bool, error) {
	cat, err := FetchRemote(ctx, url)
	if err == nil {
		return cat, true, nil
	}

	embedded, embErr := LoadEmbedded()
	if embErr != nil {
		return nil, false, fmt.Errorf("remote failed (%v) and embedded failed: %w", err, embErr)
	}

	return embedded, false, err
}

// fetchFromURL fetches and parses a catalogue from a URL.
func fetchFromURL(ctx context.Context, client *http.Client, url string) (*Catalogue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, */*")
	req.Header.Set("User-Agent", build.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return LoadFromReader(bytes.NewReader(body))
}
