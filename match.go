package hastitle

import "strings"

// Match is the result of a successful structural extraction.
type Match struct {
	// Title is the raw text between the delimiting markers. It is not
	// trimmed; callers decide emptiness through HasTitle.
	Title string

	// Remaining is the suffix of the source after the consumed region.
	// It never equals the source the match was taken from.
	Remaining string
}

// HasTitle reports whether the captured text is non-empty once leading and
// trailing whitespace is removed.
func (m Match) HasTitle() bool {
	return strings.TrimSpace(m.Title) != ""
}

// TitleExtractor locates a title construct in a page source.
type TitleExtractor interface {
	// Extract scans src for the construct. The bool result is false when the
	// construct is absent or unterminated; both cases are reported the same.
	Extract(src string) (Match, bool)
}

// TitleReader reads a page title the way a full HTML parser sees it.
// Readers are used for comparison only and never decide a verdict.
type TitleReader interface {
	// ReadTitle returns the title text, or an empty string when the parser
	// finds none. Returns EINVALID for empty input.
	ReadTitle(html string) (string, error)
}
