package mock

import (
	"context"

	"github.com/fwojciec/hastitle"
)

var _ hastitle.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of hastitle.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ hastitle.SitemapReader = (*SitemapReader)(nil)

// SitemapReader is a mock implementation of hastitle.SitemapReader.
type SitemapReader struct {
	SitemapURLsFn func(ctx context.Context, url string) ([]string, error)
}

func (s *SitemapReader) SitemapURLs(ctx context.Context, url string) ([]string, error) {
	return s.SitemapURLsFn(ctx, url)
}

var _ hastitle.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of hastitle.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
