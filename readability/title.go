// Package readability reads page titles with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/hastitle"
	"github.com/go-shiori/go-readability"
)

// Ensure TitleReader implements hastitle.TitleReader at compile time.
var _ hastitle.TitleReader = (*TitleReader)(nil)

// TitleReader wraps go-readability. Its title heuristics consider the
// <title> tag, headings and metadata.
type TitleReader struct{}

// NewTitleReader creates a new TitleReader.
func NewTitleReader() *TitleReader {
	return &TitleReader{}
}

// ReadTitle returns the article title readability derives from rawHTML.
func (r *TitleReader) ReadTitle(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", hastitle.Errorf(hastitle.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(article.Title), nil
}
