package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/lint"
	"github.com/fwojciec/hastitle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources_Documents(t *testing.T) {
	t.Parallel()

	t.Run("merges sources ordered by path", func(t *testing.T) {
		t.Parallel()

		s := lint.Sources{
			source(doc("site/b.html", ""), doc("site/d.html", "")),
			source(doc("https://a.example/", ""), doc("site/c.html", "")),
		}

		docs, err := s.Documents(context.Background())

		require.NoError(t, err)
		var paths []string
		for _, d := range docs {
			paths = append(paths, d.Path)
		}
		assert.Equal(t, []string{"https://a.example/", "site/b.html", "site/c.html", "site/d.html"}, paths)
	})

	t.Run("returns first error", func(t *testing.T) {
		t.Parallel()

		s := lint.Sources{
			&mock.DocumentSource{
				DocumentsFn: func(_ context.Context) ([]*hastitle.Document, error) {
					return nil, errors.New("boom")
				},
			},
			source(doc("a.html", "")),
		}

		_, err := s.Documents(context.Background())

		assert.EqualError(t, err, "boom")
	})
}
