// Package lint checks page sources in bulk and reports the ones without a title.
package lint

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/hastitle"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Linter.Concurrency is not positive.
const DefaultConcurrency = 8

// Linter runs a detector over every document from a source.
type Linter struct {
	Source   hastitle.DocumentSource
	Detector hastitle.TitleDetector

	// Findings records the run when set.
	Findings hastitle.FindingService

	// Root is the label recorded on the run.
	Root string

	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Report holds the outcome of a lint run.
type Report struct {
	RunID     string
	Total     int
	Missing   int
	CacheHits int
	Findings  []*hastitle.Finding
}

// MissingFindings returns the findings for documents without a title.
func (r *Report) MissingFindings() []*hastitle.Finding {
	var out []*hastitle.Finding
	for _, f := range r.Findings {
		if !f.HasTitle {
			out = append(out, f)
		}
	}
	return out
}

// ProgressEvent reports progress during a lint run.
type ProgressEvent struct {
	Type     ProgressType
	Checked  int
	Total    int
	Path     string
	HasTitle bool
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressChecked
	ProgressFinished
)

// ProgressFunc is a callback for reporting lint progress.
type ProgressFunc func(event ProgressEvent)

type checkResult struct {
	position int
	finding  *hastitle.Finding
}

// Lint checks all documents. The progress callback, if provided, is invoked
// from the calling goroutine.
func (l *Linter) Lint(ctx context.Context, progress ProgressFunc) (*Report, error) {
	now := l.Now
	if now == nil {
		now = time.Now
	}

	docs, err := l.Source.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	var run *hastitle.Run
	if l.Findings != nil {
		run = &hastitle.Run{Root: l.Root, StartedAt: now().UTC()}
		if run.Root == "" {
			run.Root = "."
		}
		if err := l.Findings.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("create run: %w", err)
		}
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(docs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	cache := NewCache()
	resultCh := make(chan checkResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var waitErr error
	go func() {
		for i, doc := range docs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				det := cache.Detect(l.Detector, doc)
				resultCh <- checkResult{
					position: i,
					finding: &hastitle.Finding{
						Path:        doc.Path,
						ContentHash: doc.ContentHash,
						Strategy:    det.Strategy,
						Title:       det.TrimmedTitle(),
						HasTitle:    det.HasTitle(),
						CheckedAt:   now().UTC(),
					},
				}
				return nil
			})
		}
		waitErr = g.Wait()
		close(resultCh)
	}()

	findings := make([]*hastitle.Finding, total)
	var checked int
	for result := range resultCh {
		checked++
		findings[result.position] = result.finding
		if progress != nil {
			progress(ProgressEvent{
				Type:     ProgressChecked,
				Checked:  checked,
				Total:    total,
				Path:     result.finding.Path,
				HasTitle: result.finding.HasTitle,
			})
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Total:     total,
		CacheHits: cache.Hits(),
		Findings:  findings,
	}
	for _, f := range findings {
		if !f.HasTitle {
			report.Missing++
		}
	}

	if run != nil {
		report.RunID = run.ID
		for _, f := range findings {
			f.RunID = run.ID
			if err := l.Findings.CreateFinding(ctx, f); err != nil {
				return nil, fmt.Errorf("create finding %q: %w", f.Path, err)
			}
		}
		if _, err := l.Findings.UpdateRun(ctx, run.ID, hastitle.RunUpdate{
			Total:   &report.Total,
			Missing: &report.Missing,
		}); err != nil {
			return nil, fmt.Errorf("update run: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Checked: total, Total: total})
	}

	return report, nil
}
