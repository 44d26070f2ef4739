// Package source reads session and schedule files from local paths or from
// http(s) URLs. Remote reads honor ETag / Last-Modified and keep a disk
// cache so a failing upstream does not stop a rebuild.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	appLog "confsched/internal/log"
)

// cacheEntry holds HTTP cache metadata for one URL.
type cacheEntry struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fetcher resolves a location to its bytes.
type Fetcher struct {
	client   *http.Client
	cacheDir string
}

// NewFetcher creates a Fetcher that keeps remote bodies under cacheDir.
// An empty cacheDir falls back to a relative directory.
func NewFetcher(cacheDir string) *Fetcher {
	if cacheDir == "" {
		cacheDir = "./var/source-cache"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		cacheDir: cacheDir,
	}
}

// IsRemote reports whether loc is an http(s) URL.
func IsRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

// Read returns the content at loc, a local path or an http(s) URL.
func (f *Fetcher) Read(ctx context.Context, loc string) ([]byte, error) {
	if loc == "" {
		return nil, errors.New("source: location is empty")
	}
	if !IsRemote(loc) {
		return os.ReadFile(loc)
	}
	body, _, err := f.fetch(ctx, loc)
	return body, err
}

// fetch performs a conditional GET, falling back to the cached body on
// network errors and non-OK responses.
func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, bool, error) {
	cachePath := f.cachePathForURL(url)
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		return nil, false, err
	}

	meta, _ := f.loadCacheMeta(cachePath)
	cachedBody, _ := f.loadCacheBody(cachePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	appLog.Debug("source fetch start", "url", redactURL(url))

	resp, err := f.client.Do(req)
	if err != nil {
		if len(cachedBody) > 0 {
			appLog.Error("source fetch network error, using cached body", err, "url", redactURL(url))
			return cachedBody, true, nil
		}
		return nil, false, fmt.Errorf("source: fetch %s: %w", redactURL(url), err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, false, readErr
		}
		newMeta := cacheEntry{
			URL:          url,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}
		if err := f.saveCache(cachePath, newMeta, body); err != nil {
			appLog.Error("source cache save failed", err, "url", redactURL(url))
		}
		appLog.Info("source fetch success", "url", redactURL(url), "bytes", len(body))
		return body, false, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			return nil, false, errors.New("source: 304 Not Modified but no cached body available")
		}
		appLog.Debug("source not modified; using cache", "url", redactURL(url))
		return cachedBody, true, nil

	default:
		if len(cachedBody) > 0 {
			appLog.Error("source fetch non-OK, using cached body", errors.New(resp.Status), "url", redactURL(url), "status", resp.StatusCode)
			return cachedBody, true, nil
		}
		return nil, false, fmt.Errorf("source: fetch %s: %s", redactURL(url), resp.Status)
	}
}

func (f *Fetcher) cachePathForURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:8]))
}

func (f *Fetcher) loadCacheMeta(cachePath string) (cacheEntry, error) {
	var meta cacheEntry
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheEntry{}, err
	}
	return meta, nil
}

func (f *Fetcher) loadCacheBody(cachePath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(cachePath, "body.yaml"))
}

func (f *Fetcher) saveCache(cachePath string, meta cacheEntry, body []byte) error {
	// Body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.yaml"), body, 0o600); err != nil {
		return err
	}
	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

// redactURL keeps scheme and host only, so tokens in paths or query
// strings stay out of the logs.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"
	i := strings.Index(u, "://")
	if i == -1 {
		return "source://...(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + redactedSuffix
}
