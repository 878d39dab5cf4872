// Package marker implements title extraction by literal marker search.
//
// Extractors scan forward for an opening marker, then for the closing marker
// after it, and capture the text strictly between them. Markers are matched
// byte for byte; no markup is parsed or normalised.
package marker

import (
	"strings"

	"github.com/fwojciec/hastitle"
)

// Strategy names used by NewDetector.
const (
	StrategyHTML     = "html"
	StrategyTemplate = "template"
)

// Markers holds the literal delimiters recognised by the extractors.
type Markers struct {
	TemplateOpen  string
	TemplateClose string
	HeadOpen      string
	HeadClose     string
	TitleOpen     string
	TitleClose    string
}

// DefaultMarkers returns the Django/Jinja title block and HTML head/title markers.
func DefaultMarkers() Markers {
	return Markers{
		TemplateOpen:  "{% block title %}",
		TemplateClose: "{% endblock %}",
		HeadOpen:      "<head>",
		HeadClose:     "</head>",
		TitleOpen:     "<title>",
		TitleClose:    "</title>",
	}
}

// Delimited finds the first open marker in src and the first close marker
// after it. It returns the text between them and the text after close.
// ok is false when either marker is missing.
func Delimited(src, open, close string) (inner, rest string, ok bool) {
	i := strings.Index(src, open)
	if i < 0 {
		return "", "", false
	}
	start := i + len(open)

	j := strings.Index(src[start:], close)
	if j < 0 {
		return "", "", false
	}
	end := start + j

	return src[start:end], src[end+len(close):], true
}

// NewDetector returns the canonical detector: the HTML head title takes
// priority and the template title block is the fallback.
func NewDetector() *hastitle.Detector {
	return NewDetectorWith(DefaultMarkers())
}

// NewDetectorWith returns the canonical detector built from m.
func NewDetectorWith(m Markers) *hastitle.Detector {
	return hastitle.NewDetector(
		hastitle.Strategy{
			Name: StrategyHTML,
			Extractor: &HeadTitleExtractor{
				HeadOpen:   m.HeadOpen,
				HeadClose:  m.HeadClose,
				TitleOpen:  m.TitleOpen,
				TitleClose: m.TitleClose,
			},
		},
		hastitle.Strategy{
			Name: StrategyTemplate,
			Extractor: &TemplateBlockExtractor{
				Open:  m.TemplateOpen,
				Close: m.TemplateClose,
			},
		},
	)
}

// HasTitle reports whether src declares a non-empty title using the default markers.
func HasTitle(src string) bool {
	return NewDetector().HasTitle(src)
}
