// Package trafilatura reads page titles from go-trafilatura metadata.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/hastitle"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure TitleReader implements hastitle.TitleReader at compile time.
var _ hastitle.TitleReader = (*TitleReader)(nil)

// TitleReader wraps go-trafilatura. The metadata title prefers OpenGraph
// and other meta tags over the <title> element.
type TitleReader struct{}

// NewTitleReader creates a new TitleReader.
func NewTitleReader() *TitleReader {
	return &TitleReader{}
}

// ReadTitle returns the metadata title trafilatura extracts from rawHTML.
func (r *TitleReader) ReadTitle(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", hastitle.Errorf(hastitle.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.Metadata.Title), nil
}
