package http

import (
	"context"
	"fmt"
	"sort"

	"github.com/fwojciec/hastitle"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once.
const DefaultConcurrency = 4

// Ensure Source implements hastitle.DocumentSource.
var _ hastitle.DocumentSource = (*Source)(nil)

// Source fetches remote pages for a lint run. Pages come from URLs and
// from the page entries of every sitemap in Sitemaps.
type Source struct {
	URLs     []string
	Sitemaps []string

	Fetcher hastitle.Fetcher
	Sitemap hastitle.SitemapReader

	// Limiter paces requests per host when set.
	Limiter hastitle.DomainLimiter

	Concurrency int
}

// Documents resolves sitemaps, fetches every page and returns them ordered
// by URL. The first fetch failure aborts the run.
func (s *Source) Documents(ctx context.Context) ([]*hastitle.Document, error) {
	urls, err := s.pageURLs(ctx)
	if err != nil {
		return nil, err
	}

	parallel := s.Concurrency
	if parallel <= 0 {
		parallel = DefaultConcurrency
	}

	docs := make([]*hastitle.Document, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, u := range urls {
		g.Go(func() error {
			if s.Limiter != nil {
				if err := s.Limiter.Wait(gctx, hostOf(u)); err != nil {
					return err
				}
			}
			content, err := s.Fetcher.Fetch(gctx, u)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", u, err)
			}
			docs[i] = &hastitle.Document{
				Path:        u,
				Content:     content,
				ContentHash: hastitle.ComputeHash(content),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

func (s *Source) pageURLs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, u := range s.URLs {
		add(u)
	}
	for _, sm := range s.Sitemaps {
		if s.Sitemap == nil {
			return nil, hastitle.Errorf(hastitle.EINVALID, "no sitemap reader configured")
		}
		pages, err := s.Sitemap.SitemapURLs(ctx, sm)
		if err != nil {
			return nil, fmt.Errorf("read sitemap %s: %w", sm, err)
		}
		for _, u := range pages {
			add(u)
		}
	}
	return urls, nil
}
