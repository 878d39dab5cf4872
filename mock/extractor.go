package mock

import "github.com/fwojciec/hastitle"

var _ hastitle.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of hastitle.TitleExtractor.
type TitleExtractor struct {
	ExtractFn func(src string) (hastitle.Match, bool)
}

func (e *TitleExtractor) Extract(src string) (hastitle.Match, bool) {
	return e.ExtractFn(src)
}

var _ hastitle.TitleReader = (*TitleReader)(nil)

// TitleReader is a mock implementation of hastitle.TitleReader.
type TitleReader struct {
	ReadTitleFn func(html string) (string, error)
}

func (r *TitleReader) ReadTitle(html string) (string, error) {
	return r.ReadTitleFn(html)
}

var _ hastitle.TitleDetector = (*TitleDetector)(nil)

// TitleDetector is a mock implementation of hastitle.TitleDetector.
type TitleDetector struct {
	DetectFn func(src string) hastitle.Detection
}

func (d *TitleDetector) Detect(src string) hastitle.Detection {
	return d.DetectFn(src)
}
