package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/hastitle"
)

// Ensure SitemapReader implements hastitle.SitemapReader.
var _ hastitle.SitemapReader = (*SitemapReader)(nil)

// maxSitemapDepth bounds how deep sitemap indexes may nest.
const maxSitemapDepth = 5

// SitemapReader lists page URLs from XML sitemaps.
type SitemapReader struct {
	client *http.Client
}

// NewSitemapReader creates a new SitemapReader with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapReader(client *http.Client) *SitemapReader {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapReader{client: client}
}

// SitemapURLs fetches the sitemap at sitemapURL and returns its page URLs.
// A <sitemapindex> is followed recursively. Duplicate URLs are dropped.
func (s *SitemapReader) SitemapURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	if _, err := url.ParseRequestURI(sitemapURL); err != nil {
		return nil, hastitle.Errorf(hastitle.EINVALID, "invalid sitemap URL %q", sitemapURL)
	}

	seenSitemaps := make(map[string]bool)
	urls, err := s.read(ctx, sitemapURL, seenSitemaps, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *SitemapReader) read(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true
	if depth > maxSitemapDepth {
		return nil, hastitle.Errorf(hastitle.EINVALID, "sitemap index nested deeper than %d levels", maxSitemapDepth)
	}

	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, hastitle.Errorf(hastitle.EINVALID, "parse sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, hastitle.Errorf(hastitle.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			child, err := s.read(ctx, loc, seen, depth+1)
			if err != nil {
				return nil, err
			}
			urls = append(urls, child...)
		}
		return urls, nil
	case "urlset":
		return locs(root, "url"), nil
	default:
		return nil, hastitle.Errorf(hastitle.EINVALID, "unexpected sitemap root <%s> in %s", root.Tag, sitemapURL)
	}
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapReader) fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound, http.StatusGone:
		resp.Body.Close()
		return nil, hastitle.Errorf(hastitle.ENOTFOUND, "sitemap %s not found", targetURL)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
}
