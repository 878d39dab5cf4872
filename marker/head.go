package marker

import "github.com/fwojciec/hastitle"

// Ensure HeadTitleExtractor implements hastitle.TitleExtractor at compile time.
var _ hastitle.TitleExtractor = (*HeadTitleExtractor)(nil)

// HeadTitleExtractor captures the <title> text inside the first <head> region.
// Title tags before or after the head region are ignored.
type HeadTitleExtractor struct {
	HeadOpen   string
	HeadClose  string
	TitleOpen  string
	TitleClose string
}

// NewHeadTitleExtractor creates an extractor for <head>...<title>...</title>...</head>.
func NewHeadTitleExtractor() *HeadTitleExtractor {
	m := DefaultMarkers()
	return &HeadTitleExtractor{
		HeadOpen:   m.HeadOpen,
		HeadClose:  m.HeadClose,
		TitleOpen:  m.TitleOpen,
		TitleClose: m.TitleClose,
	}
}

// Extract locates the head region, then the title within it. The match
// remainder is everything after the closing head marker.
func (e *HeadTitleExtractor) Extract(src string) (hastitle.Match, bool) {
	head, rest, ok := Delimited(src, e.HeadOpen, e.HeadClose)
	if !ok {
		return hastitle.Match{}, false
	}

	// Both title markers must sit inside the head region.
	title, _, ok := Delimited(head, e.TitleOpen, e.TitleClose)
	if !ok {
		return hastitle.Match{}, false
	}

	if rest == src {
		return hastitle.Match{}, false
	}

	return hastitle.Match{Title: title, Remaining: rest}, true
}
