// Package dataset loads grid rows from files, stdin and URLs.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ygelfand/kogrid/internal/cache"
	"github.com/ygelfand/kogrid/internal/grid"
	"golang.org/x/sync/errgroup"
)

// Loader resolves data sources. The zero value reads files and stdin and
// fetches URLs with http.DefaultClient without caching.
type Loader struct {
	Cache  *cache.Manager
	TTL    time.Duration
	Client *http.Client
	Stdin  io.Reader
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads one source: a file path, "-" for stdin, or an http(s) URL.
func (l *Loader) Load(ctx context.Context, source string) ([]grid.Row, error) {
	format, err := FormatFromPath(source)
	if err != nil {
		return nil, err
	}

	body, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	rows, err := Decode(bytes.NewReader(body), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	slog.Debug("Dataset: loaded", "source", source, "format", format, "rows", len(rows))
	return rows, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == "-":
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.ReadAll(in)
	case isURL(source):
		if l.Cache == nil {
			return l.fetch(ctx, source)
		}
		var body []byte
		err := cache.WithCache(l.Cache, l.Cache.Key("dataset", source), l.TTL, &body, func() (*[]byte, error) {
			b, err := l.fetch(ctx, source)
			if err != nil {
				return nil, err
			}
			return &b, nil
		})
		return body, err
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
		return b, nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	slog.Debug("Dataset: fetching", "url", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// LoadAll loads every source concurrently and concatenates the rows in
// argument order. The first failure cancels the rest.
func (l *Loader) LoadAll(ctx context.Context, sources []string) ([]grid.Row, error) {
	results := make([][]grid.Row, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		g.Go(func() error {
			rows, err := l.Load(ctx, source)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []grid.Row{}
	for _, rows := range results {
		all = append(all, rows...)
	}
	return all, nil
}
