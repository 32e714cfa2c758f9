package images

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher downloads remote images that have to be embedded inline
type Fetcher struct {
	HTTPClient *http.Client
	// CacheDir, when set, keeps downloaded bytes between runs.
	CacheDir string
	// MaxBytes bounds a single download.
	MaxBytes int64
}

// NewFetcher creates a new image fetcher
func NewFetcher(cacheDir string) *Fetcher {
	if strings.HasPrefix(cacheDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			cacheDir = filepath.Join(homeDir, cacheDir[1:])
		}
	}
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		CacheDir: cacheDir,
		MaxBytes: 32 * 1024 * 1024,
	}
}

// Fetch returns the bytes behind url, consulting the cache first
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	cachedPath := f.cachePath(url)
	if cachedPath != "" {
		if data, err := os.ReadFile(cachedPath); err == nil {
			slog.Debug("Using cached image", "url", url, "path", cachedPath)
			return data, nil
		}
	}

	data, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}

	if cachedPath != "" {
		if err := os.MkdirAll(filepath.Dir(cachedPath), 0755); err != nil {
			slog.Warn("Failed to create image cache directory", "dir", f.CacheDir, "error", err)
		} else if err := os.WriteFile(cachedPath, data, 0644); err != nil {
			slog.Warn("Failed to cache image", "url", url, "error", err)
		}
	}

	return data, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = 32 * 1024 * 1024
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image too large (max %d bytes)", limit)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image response was empty")
	}

	slog.Debug("Downloaded image", "url", url, "bytes", len(data))
	return data, nil
}

func (f *Fetcher) cachePath(url string) string {
	if f.CacheDir == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(f.CacheDir, hex.EncodeToString(sum[:]))
}
