// Package source fetches rule source texts over HTTP, with mirror fallback
// and an on-disk cache that stands in when every mirror is unreachable.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MoeYc/Surge/jsoncfg"
	"go.uber.org/zap"
	"lukechampine.com/blake3"
)

// Config describes one rule source.
type Config struct {
	// Name identifies the source in logs and names its cache file.
	// It must be usable as a file name.
	Name string `json:"name"`

	// Format is the rule text format, one of the ruletext format names.
	Format string `json:"format"`

	// URLs lists the source URL and its mirrors, tried in order.
	URLs []string `json:"urls"`

	// Timeout bounds each fetch attempt. Defaults to 30s.
	Timeout jsoncfg.Duration `json:"timeout,omitzero"`

	// Retries is the number of additional rounds over the URL list
	// after the first round fails. Defaults to 2; a negative value
	// means a single round.
	Retries int `json:"retries,omitzero"`
}

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 2
)

// Fetcher downloads source texts and maintains the cache directory.
// An empty cache directory disables caching.
type Fetcher struct {
	cacheDir  string
	userAgent string
	client    http.Client
	logger    *zap.Logger
}

// NewFetcher returns a [Fetcher] writing cache files under cacheDir.
func NewFetcher(cacheDir, userAgent string, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cacheDir:  cacheDir,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch downloads the source text, trying each URL in order and making
// further rounds over the list with backoff until the retry budget is
// spent. A fetched body refreshes the source's cache file; when every
// attempt fails, a previously cached body is returned instead.
func (f *Fetcher) Fetch(ctx context.Context, cfg Config) (string, error) {
	timeout := cfg.Timeout.Value()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.Retries
	switch {
	case retries < 0:
		retries = 0
	case retries == 0:
		retries = defaultRetries
	}

	var errs []error
	for round := 0; round <= retries; round++ {
		if round > 0 {
			if err := sleep(ctx, time.Duration(round)*time.Second); err != nil {
				errs = append(errs, err)
				break
			}
		}
		for _, url := range cfg.URLs {
			body, err := f.fetchOnce(ctx, url, timeout)
			if err != nil {
				f.logger.Warn("Failed to fetch source",
					zap.String("source", cfg.Name),
					zap.String("url", url),
					zap.Int("round", round),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("%s: %w", url, err))
				continue
			}
			f.updateCache(cfg.Name, body)
			return string(body), nil
		}
	}

	if body, err := f.readCache(cfg.Name); err == nil {
		f.logger.Warn("Using cached copy of unreachable source",
			zap.String("source", cfg.Name),
			zap.Errors("fetchErrors", errs),
		)
		return string(body), nil
	}
	return "", fmt.Errorf("failed to fetch source %s: %w", cfg.Name, errors.Join(errs...))
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher) cachePath(name string) string {
	return filepath.Join(f.cacheDir, name+".txt")
}

func (f *Fetcher) readCache(name string) ([]byte, error) {
	if f.cacheDir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(f.cachePath(name))
}

// updateCache rewrites the cache file unless the cached content already
// hashes to the same digest. Cache write failures are logged, not returned:
// the fetched body is still good.
func (f *Fetcher) updateCache(name string, body []byte) {
	if f.cacheDir == "" {
		return
	}
	if cached, err := f.readCache(name); err == nil && blake3.Sum256(cached) == blake3.Sum256(body) {
		return
	}

	path := f.cachePath(name)
	tmpPath := path + ".tmp"
	err := os.WriteFile(tmpPath, body, 0o644)
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		f.logger.Warn("Failed to update source cache",
			zap.String("source", name),
			zap.String("path", path),
			zap.Error(err),
		)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
