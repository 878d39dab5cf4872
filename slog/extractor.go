// Package slog provides log/slog decorators for hastitle services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/hastitle"
)

// Ensure LoggingExtractor implements hastitle.TitleExtractor.
var _ hastitle.TitleExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a TitleExtractor with logging of every attempt.
type LoggingExtractor struct {
	next     hastitle.TitleExtractor
	strategy string
	logger   *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. The strategy name is
// attached to each log record.
func NewLoggingExtractor(next hastitle.TitleExtractor, strategy string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, strategy: strategy, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(src string) (m hastitle.Match, ok bool) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"strategy", e.strategy,
			"matched", ok,
			"bytes", len(src),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(src)
}

// WrapDetector returns a copy of d with every strategy wrapped in a LoggingExtractor.
func WrapDetector(d *hastitle.Detector, logger *slog.Logger) *hastitle.Detector {
	strategies := make([]hastitle.Strategy, len(d.Strategies))
	for i, s := range d.Strategies {
		strategies[i] = hastitle.Strategy{
			Name:      s.Name,
			Extractor: NewLoggingExtractor(s.Extractor, s.Name, logger),
		}
	}
	return hastitle.NewDetector(strategies...)
}
