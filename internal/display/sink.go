package display

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives finished markup.
type Sink interface {
	Display(ctx context.Context, markup string) error
}

// WriterSink writes markup to W, e.g. os.Stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Display(ctx context.Context, markup string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(s.W, markup); err != nil {
		return fmt.Errorf("failed to write markup: %w", err)
	}
	return nil
}

// FileSink writes markup to Path, creating parent directories.
type FileSink struct {
	Path string
}

func (s FileSink) Display(ctx context.Context, markup string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	slog.Info("Gallery written", "path", s.Path, "bytes", len(markup))
	return nil
}

// Capture keeps the most recent markup in memory.
type Capture struct {
	mu   sync.Mutex
	last string
	n    int
}

func (c *Capture) Display(_ context.Context, markup string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = markup
	c.n++
	return nil
}

// Last returns the latest markup and how many times Display was called.
func (c *Capture) Last() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.n
}
