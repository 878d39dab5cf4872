package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/hastitle"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hastitle.FindingService = (*FindingService)(nil)

// FindingService implements hastitle.FindingService using SQLite.
type FindingService struct {
	db *DB
}

// NewFindingService creates a new FindingService.
func NewFindingService(db *DB) *FindingService {
	return &FindingService{db: db}
}

// CreateRun creates a new run.
func (s *FindingService) CreateRun(ctx context.Context, run *hastitle.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, root, started_at, total, missing)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.StartedAt.Format(time.RFC3339), run.Total, run.Missing)

	return err
}

// UpdateRun updates the totals of a run.
func (s *FindingService) UpdateRun(ctx context.Context, id string, upd hastitle.RunUpdate) (*hastitle.Run, error) {
	runs, err := s.FindRuns(ctx, hastitle.RunFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, hastitle.Errorf(hastitle.ENOTFOUND, "run not found")
	}
	run := runs[0]

	if upd.Total != nil {
		run.Total = *upd.Total
	}
	if upd.Missing != nil {
		run.Missing = *upd.Missing
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs SET total = ?, missing = ? WHERE id = ?
	`, run.Total, run.Missing, id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// CreateFinding stores a finding.
func (s *FindingService) CreateFinding(ctx context.Context, finding *hastitle.Finding) error {
	if err := finding.Validate(); err != nil {
		return err
	}

	finding.ID = uuid.New().String()
	if finding.CheckedAt.IsZero() {
		finding.CheckedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO findings (id, run_id, path, content_hash, strategy, title, has_title, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, finding.ID, finding.RunID, finding.Path, finding.ContentHash, finding.Strategy,
		finding.Title, finding.HasTitle, finding.CheckedAt.Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY") {
		return hastitle.Errorf(hastitle.ENOTFOUND, "run %q not found", finding.RunID)
	}

	return err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *FindingService) FindRuns(ctx context.Context, filter hastitle.RunFilter) ([]*hastitle.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, root, started_at, total, missing FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*hastitle.Run
	for rows.Next() {
		var run hastitle.Run
		var startedAt string

		if err := rows.Scan(&run.ID, &run.Root, &startedAt, &run.Total, &run.Missing); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindFindings retrieves findings matching the filter, ordered by path.
func (s *FindingService) FindFindings(ctx context.Context, filter hastitle.FindingFilter) ([]*hastitle.Finding, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, path, content_hash, strategy, title, has_title, checked_at FROM findings WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}
	if filter.HasTitle != nil {
		query.WriteString(" AND has_title = ?")
		args = append(args, *filter.HasTitle)
	}

	query.WriteString(" ORDER BY path ASC, checked_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var findings []*hastitle.Finding
	for rows.Next() {
		var f hastitle.Finding
		var checkedAt string

		if err := rows.Scan(&f.ID, &f.RunID, &f.Path, &f.ContentHash, &f.Strategy,
			&f.Title, &f.HasTitle, &checkedAt); err != nil {
			return nil, err
		}
		if f.CheckedAt, err = parseRFC3339(checkedAt, "checked_at"); err != nil {
			return nil, err
		}

		findings = append(findings, &f)
	}

	return findings, rows.Err()
}

// DeleteRun removes a run and, through the foreign key cascade, its findings.
func (s *FindingService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return hastitle.Errorf(hastitle.ENOTFOUND, "run %q not found", id)
	}

	return nil
}

func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		// SQLite requires LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
