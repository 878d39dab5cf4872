package hastitle

import "context"

// Fetcher retrieves the source of a remote page.
type Fetcher interface {
	// Fetch returns the response body for url.
	// Returns ENOTFOUND when the server answers 404 or 410.
	Fetch(ctx context.Context, url string) (string, error)
}

// SitemapReader lists page URLs from a sitemap.
type SitemapReader interface {
	// SitemapURLs returns the page URLs of the sitemap at url, following
	// sitemap indexes. The result is deduplicated and keeps document order.
	SitemapURLs(ctx context.Context, url string) ([]string, error)
}

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	Wait(ctx context.Context, domain string) error
}
