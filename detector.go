package hastitle

import "strings"

// TitleDetector decides whether a page source declares a title.
type TitleDetector interface {
	Detect(src string) Detection
}

var _ TitleDetector = (*Detector)(nil)

// Strategy is a named extractor consulted by a Detector.
type Strategy struct {
	Name      string
	Extractor TitleExtractor
}

// Detection is the outcome of running a Detector over a page source.
type Detection struct {
	// Matched is true when one of the strategies found its construct.
	Matched bool

	// Strategy names the strategy that matched. Empty when nothing matched.
	Strategy string

	// Title is the untrimmed captured text of the matching strategy.
	Title string
}

// TrimmedTitle returns the captured title without surrounding whitespace.
func (d Detection) TrimmedTitle() string {
	return strings.TrimSpace(d.Title)
}

// HasTitle reports whether a strategy matched and its title is non-empty.
func (d Detection) HasTitle() bool {
	return d.Matched && d.TrimmedTitle() != ""
}

// Detector runs strategies in priority order.
//
// The first strategy that reports a structural match decides the result,
// even when its title is empty; later strategies are only consulted when
// earlier ones find nothing. A Detector holds no mutable state and is safe
// for concurrent use.
type Detector struct {
	Strategies []Strategy
}

// NewDetector returns a Detector over the given strategies.
func NewDetector(strategies ...Strategy) *Detector {
	return &Detector{Strategies: strategies}
}

// Detect returns the detection for src.
func (d *Detector) Detect(src string) Detection {
	for _, s := range d.Strategies {
		m, ok := s.Extractor.Extract(src)
		if !ok {
			continue
		}
		return Detection{
			Matched:  true,
			Strategy: s.Name,
			Title:    m.Title,
		}
	}
	return Detection{}
}

// HasTitle reports whether src declares a non-empty title.
func (d *Detector) HasTitle(src string) bool {
	return d.Detect(src).HasTitle()
}
