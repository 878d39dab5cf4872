package lint_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/lint"
	"github.com/fwojciec/hastitle/marker"
	"github.com/fwojciec/hastitle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(docs ...*hastitle.Document) *mock.DocumentSource {
	return &mock.DocumentSource{
		DocumentsFn: func(ctx context.Context) ([]*hastitle.Document, error) {
			return docs, nil
		},
	}
}

func doc(path, content string) *hastitle.Document {
	return &hastitle.Document{Path: path, Content: content, ContentHash: hastitle.ComputeHash(content)}
}

func TestLinter_Lint(t *testing.T) {
	t.Parallel()

	t.Run("reports missing titles in document order", func(t *testing.T) {
		t.Parallel()

		l := &lint.Linter{
			Source: source(
				doc("a.html", "<head><title>A</title></head>"),
				doc("b.html", "<head><title> </title></head>{% block title %}B{% endblock %}"),
				doc("c.jinja", "{% block title %} C {% endblock %}"),
				doc("d.html", "<body>nothing</body>"),
			),
			Detector:    marker.NewDetector(),
			Concurrency: 2,
		}

		report, err := l.Lint(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 4, report.Total)
		assert.Equal(t, 2, report.Missing)
		require.Len(t, report.Findings, 4)
		assert.Equal(t, "a.html", report.Findings[0].Path)
		assert.Equal(t, "A", report.Findings[0].Title)
		assert.Equal(t, marker.StrategyHTML, report.Findings[0].Strategy)
		assert.False(t, report.Findings[1].HasTitle)
		assert.Equal(t, marker.StrategyHTML, report.Findings[1].Strategy)
		assert.Equal(t, "C", report.Findings[2].Title)
		assert.Equal(t, marker.StrategyTemplate, report.Findings[2].Strategy)
		assert.Empty(t, report.Findings[3].Strategy)

		missing := report.MissingFindings()
		require.Len(t, missing, 2)
		assert.Equal(t, "b.html", missing[0].Path)
		assert.Equal(t, "d.html", missing[1].Path)
		assert.Empty(t, report.RunID)
	})

	t.Run("serves identical content from cache", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		calls := 0
		detector := &mock.TitleDetector{
			DetectFn: func(src string) hastitle.Detection {
				mu.Lock()
				calls++
				mu.Unlock()
				return hastitle.Detection{Matched: true, Strategy: "x", Title: "T"}
			},
		}
		l := &lint.Linter{
			Source:      source(doc("a.html", "same"), doc("b.html", "same"), doc("c.html", "same")),
			Detector:    detector,
			Concurrency: 1,
		}

		report, err := l.Lint(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 2, report.CacheHits)
		assert.Equal(t, 0, report.Missing)
	})

	t.Run("emits progress events", func(t *testing.T) {
		t.Parallel()

		l := &lint.Linter{
			Source:   source(doc("a.html", "<head><title>A</title></head>"), doc("b.html", "")),
			Detector: marker.NewDetector(),
		}

		var events []lint.ProgressEvent
		_, err := l.Lint(context.Background(), func(e lint.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, lint.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, lint.ProgressChecked, events[1].Type)
		assert.Equal(t, 1, events[1].Checked)
		assert.Equal(t, lint.ProgressChecked, events[2].Type)
		assert.Equal(t, 2, events[2].Checked)
		assert.Equal(t, lint.ProgressFinished, events[3].Type)
	})

	t.Run("records run and findings", func(t *testing.T) {
		t.Parallel()

		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		var created []*hastitle.Finding
		var updated hastitle.RunUpdate
		findings := &mock.FindingService{
			CreateRunFn: func(ctx context.Context, run *hastitle.Run) error {
				assert.Equal(t, "site", run.Root)
				assert.Equal(t, fixed, run.StartedAt)
				run.ID = "run-1"
				return nil
			},
			CreateFindingFn: func(ctx context.Context, f *hastitle.Finding) error {
				created = append(created, f)
				return nil
			},
			UpdateRunFn: func(ctx context.Context, id string, upd hastitle.RunUpdate) (*hastitle.Run, error) {
				assert.Equal(t, "run-1", id)
				updated = upd
				return &hastitle.Run{ID: id}, nil
			},
		}
		l := &lint.Linter{
			Source:   source(doc("a.html", "<head><title>A</title></head>"), doc("b.html", "")),
			Detector: marker.NewDetector(),
			Findings: findings,
			Root:     "site",
			Now:      func() time.Time { return fixed },
		}

		report, err := l.Lint(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "run-1", report.RunID)
		require.Len(t, created, 2)
		assert.Equal(t, "run-1", created[0].RunID)
		assert.Equal(t, fixed, created[0].CheckedAt)
		require.NotNil(t, updated.Total)
		require.NotNil(t, updated.Missing)
		assert.Equal(t, 2, *updated.Total)
		assert.Equal(t, 1, *updated.Missing)
	})

	t.Run("returns source error", func(t *testing.T) {
		t.Parallel()

		l := &lint.Linter{
			Source: &mock.DocumentSource{
				DocumentsFn: func(ctx context.Context) ([]*hastitle.Document, error) {
					return nil, hastitle.Errorf(hastitle.ENOTFOUND, "path \"x\" not found")
				},
			},
			Detector: marker.NewDetector(),
		}

		_, err := l.Lint(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, hastitle.ENOTFOUND, hastitle.ErrorCode(err))
	})

	t.Run("returns storage error", func(t *testing.T) {
		t.Parallel()

		l := &lint.Linter{
			Source:   source(doc("a.html", "")),
			Detector: marker.NewDetector(),
			Findings: &mock.FindingService{
				CreateRunFn: func(ctx context.Context, run *hastitle.Run) error {
					return errors.New("database is locked")
				},
			},
		}

		_, err := l.Lint(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create run")
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l := &lint.Linter{
			Source:   source(doc("a.html", ""), doc("b.html", "")),
			Detector: marker.NewDetector(),
		}

		_, err := l.Lint(ctx, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		l := &lint.Linter{Source: source(), Detector: marker.NewDetector()}

		report, err := l.Lint(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 0, report.Total)
		assert.Empty(t, report.MissingFindings())
	})
}

func TestCache_Detect(t *testing.T) {
	t.Parallel()

	c := lint.NewCache()
	d := marker.NewDetector()

	first := c.Detect(d, &hastitle.Document{Content: "{% block title %}X{% endblock %}"})
	second := c.Detect(d, &hastitle.Document{Content: "{% block title %}X{% endblock %}"})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Hits())

	c.Detect(d, &hastitle.Document{Content: "<head></head>"})
	assert.Equal(t, 1, c.Hits(), "distinct content is a miss")
}
