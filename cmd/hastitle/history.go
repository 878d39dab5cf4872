package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/hastitle"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Delete != "" {
		if err := deps.Findings.DeleteRun(deps.Ctx, c.Delete); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "deleted run %s\n", c.Delete)
		return nil
	}
	if c.RunID != "" {
		return c.listMissing(deps)
	}

	runs, err := deps.Findings.FindRuns(deps.Ctx, hastitle.RunFilter{Limit: c.Limit})
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'hastitle lint --db' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d/%d missing  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Missing, r.Total, r.Root)
	}
	return nil
}

func (c *HistoryCmd) listMissing(deps *Dependencies) error {
	runs, err := deps.Findings.FindRuns(deps.Ctx, hastitle.RunFilter{ID: &c.RunID, Limit: 1})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return hastitle.Errorf(hastitle.ENOTFOUND, "run %q not found. Use 'hastitle history' to see recorded runs.", c.RunID)
	}

	hasTitle := false
	findings, err := deps.Findings.FindFindings(deps.Ctx, hastitle.FindingFilter{
		RunID:    &c.RunID,
		HasTitle: &hasTitle,
	})
	if err != nil {
		return err
	}

	for _, f := range findings {
		fmt.Fprintf(deps.Stdout, "MISSING %s\n", f.Path)
	}
	return nil
}
