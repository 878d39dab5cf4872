package lint

import (
	"context"
	"sort"

	"github.com/fwojciec/hastitle"
)

// Ensure Sources implements hastitle.DocumentSource.
var _ hastitle.DocumentSource = (Sources)(nil)

// Sources joins several sources into one, ordered by path.
type Sources []hastitle.DocumentSource

// Documents loads every source in turn. The first error aborts.
func (s Sources) Documents(ctx context.Context) ([]*hastitle.Document, error) {
	var docs []*hastitle.Document
	for _, src := range s {
		d, err := src.Documents(ctx)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d...)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}
