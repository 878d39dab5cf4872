package mock

import (
	"context"

	"github.com/fwojciec/hastitle"
)

var _ hastitle.FindingService = (*FindingService)(nil)

// FindingService is a mock implementation of hastitle.FindingService.
type FindingService struct {
	CreateRunFn     func(ctx context.Context, run *hastitle.Run) error
	UpdateRunFn     func(ctx context.Context, id string, upd hastitle.RunUpdate) (*hastitle.Run, error)
	CreateFindingFn func(ctx context.Context, finding *hastitle.Finding) error
	FindRunsFn      func(ctx context.Context, filter hastitle.RunFilter) ([]*hastitle.Run, error)
	FindFindingsFn  func(ctx context.Context, filter hastitle.FindingFilter) ([]*hastitle.Finding, error)
	DeleteRunFn     func(ctx context.Context, id string) error
}

func (s *FindingService) CreateRun(ctx context.Context, run *hastitle.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *FindingService) UpdateRun(ctx context.Context, id string, upd hastitle.RunUpdate) (*hastitle.Run, error) {
	return s.UpdateRunFn(ctx, id, upd)
}

func (s *FindingService) CreateFinding(ctx context.Context, finding *hastitle.Finding) error {
	return s.CreateFindingFn(ctx, finding)
}

func (s *FindingService) FindRuns(ctx context.Context, filter hastitle.RunFilter) ([]*hastitle.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *FindingService) FindFindings(ctx context.Context, filter hastitle.FindingFilter) ([]*hastitle.Finding, error) {
	return s.FindFindingsFn(ctx, filter)
}

func (s *FindingService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
