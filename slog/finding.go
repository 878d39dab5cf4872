package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hastitle"
)

// Ensure LoggingFindingService implements hastitle.FindingService.
var _ hastitle.FindingService = (*LoggingFindingService)(nil)

// LoggingFindingService wraps a FindingService with debug logging.
type LoggingFindingService struct {
	next   hastitle.FindingService
	logger *slog.Logger
}

// NewLoggingFindingService creates a new LoggingFindingService.
func NewLoggingFindingService(next hastitle.FindingService, logger *slog.Logger) *LoggingFindingService {
	return &LoggingFindingService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the operation.
func (s *LoggingFindingService) CreateRun(ctx context.Context, run *hastitle.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create run",
			"id", run.ID,
			"root", run.Root,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// UpdateRun delegates to the wrapped service and logs the operation.
func (s *LoggingFindingService) UpdateRun(ctx context.Context, id string, upd hastitle.RunUpdate) (run *hastitle.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("update run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateRun(ctx, id, upd)
}

// CreateFinding delegates to the wrapped service and logs the operation.
func (s *LoggingFindingService) CreateFinding(ctx context.Context, finding *hastitle.Finding) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create finding",
			"path", finding.Path,
			"has_title", finding.HasTitle,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateFinding(ctx, finding)
}

// FindRuns delegates to the wrapped service and logs the operation.
func (s *LoggingFindingService) FindRuns(ctx context.Context, filter hastitle.RunFilter) (runs []*hastitle.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find runs",
			"count", len(runs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}

// FindFindings delegates to the wrapped service and logs the operation.
func (s *LoggingFindingService) FindFindings(ctx context.Context, filter hastitle.FindingFilter) (findings []*hastitle.Finding, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find findings",
			"count", len(findings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFindings(ctx, filter)
}

// DeleteRun delegates to the wrapped service and logs the operation.
func (s *LoggingFindingService) DeleteRun(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRun(ctx, id)
}
