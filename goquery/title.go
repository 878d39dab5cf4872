// Package goquery reads page titles from a parsed HTML5 DOM.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hastitle"
	"golang.org/x/net/html"
)

// Ensure TitleReader implements hastitle.TitleReader at compile time.
var _ hastitle.TitleReader = (*TitleReader)(nil)

// TitleReader returns the first head title of the parsed document. The
// HTML5 parser repairs markup, so a stray <title> before <head> ends up in
// the head and is reported here even though marker extraction ignores it.
type TitleReader struct{}

// NewTitleReader creates a new TitleReader.
func NewTitleReader() *TitleReader {
	return &TitleReader{}
}

// ReadTitle parses rawHTML and returns the trimmed text of head > title.
func (r *TitleReader) ReadTitle(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", hastitle.Errorf(hastitle.EINVALID, "empty HTML input")
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", hastitle.Errorf(hastitle.EINVALID, "failed to parse HTML: %v", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	return strings.TrimSpace(doc.Find("head > title").First().Text()), nil
}
