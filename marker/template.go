package marker

import "github.com/fwojciec/hastitle"

// Ensure TemplateBlockExtractor implements hastitle.TitleExtractor at compile time.
var _ hastitle.TitleExtractor = (*TemplateBlockExtractor)(nil)

// TemplateBlockExtractor captures the body of a templating title block.
type TemplateBlockExtractor struct {
	Open  string
	Close string
}

// NewTemplateBlockExtractor creates an extractor for {% block title %}...{% endblock %}.
func NewTemplateBlockExtractor() *TemplateBlockExtractor {
	m := DefaultMarkers()
	return &TemplateBlockExtractor{Open: m.TemplateOpen, Close: m.TemplateClose}
}

// Extract captures the text between the first opening marker and the
// closing marker that follows it. An unterminated block is not a match.
func (e *TemplateBlockExtractor) Extract(src string) (hastitle.Match, bool) {
	title, rest, ok := Delimited(src, e.Open, e.Close)
	if !ok {
		return hastitle.Match{}, false
	}

	// A match must consume input.
	if rest == src {
		return hastitle.Match{}, false
	}

	return hastitle.Match{Title: title, Remaining: rest}, true
}
