package mock

import (
	"context"

	"github.com/fwojciec/hastitle"
)

var _ hastitle.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of hastitle.DocumentSource.
type DocumentSource struct {
	DocumentsFn func(ctx context.Context) ([]*hastitle.Document, error)
}

func (s *DocumentSource) Documents(ctx context.Context) ([]*hastitle.Document, error) {
	return s.DocumentsFn(ctx)
}
