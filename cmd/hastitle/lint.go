package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/hastitle"
	"github.com/fwojciec/hastitle/config"
	"github.com/fwojciec/hastitle/fs"
	hshttp "github.com/fwojciec/hastitle/http"
	"github.com/fwojciec/hastitle/lint"
)

// Run executes the lint command.
func (c *LintCmd) Run(deps *Dependencies) error {
	cfg := config.Merge(deps.Config, config.Config{
		Extensions:  c.Ext,
		Exclude:     c.Exclude,
		Concurrency: c.Concurrency,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := c.source(deps, cfg)
	if err != nil {
		return err
	}

	linter := &lint.Linter{
		Source:      source,
		Detector:    deps.Detector,
		Findings:    deps.Findings,
		Root:        strings.Join(slices.Concat(c.Paths, c.Sitemap), " "),
		Concurrency: cfg.Concurrency,
	}

	var progress lint.ProgressFunc
	if deps.Terminal && !c.Quiet {
		progress = func(e lint.ProgressEvent) {
			switch e.Type {
			case lint.ProgressChecked:
				fmt.Fprintf(deps.Stderr, "\rchecked %d/%d", e.Checked, e.Total)
			case lint.ProgressFinished:
				if e.Total > 0 {
					fmt.Fprint(deps.Stderr, "\r\033[K")
				}
			}
		}
	}

	report, err := linter.Lint(deps.Ctx, progress)
	if err != nil {
		return err
	}

	switch c.Format {
	case "ndjson":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		for _, f := range report.Findings {
			if err := enc.Encode(f); err != nil {
				return fmt.Errorf("encode finding: %w", err)
			}
		}
	default:
		for _, f := range report.MissingFindings() {
			fmt.Fprintf(deps.Stdout, "MISSING %s\n", f.Path)
		}
	}

	if !c.Quiet {
		fmt.Fprintf(deps.Stderr, "%d of %d pages missing a title\n", report.Missing, report.Total)
		if report.RunID != "" {
			fmt.Fprintf(deps.Stderr, "recorded run %s\n", report.RunID)
		}
	}

	if report.Missing > 0 {
		return hastitle.Errorf(hastitle.ENOTITLE, "%d pages missing a title", report.Missing)
	}
	return nil
}

// source splits the arguments into local paths and remote URLs.
func (c *LintCmd) source(deps *Dependencies, cfg config.Config) (hastitle.DocumentSource, error) {
	var local, remote []string
	for _, p := range c.Paths {
		if isRemote(p) {
			remote = append(remote, p)
		} else {
			local = append(local, p)
		}
	}
	if len(local) == 0 && len(remote) == 0 && len(c.Sitemap) == 0 {
		return nil, hastitle.Errorf(hastitle.EINVALID, "nothing to lint. Pass paths, URLs or --sitemap")
	}

	var sources lint.Sources
	if len(local) > 0 {
		walker := fs.NewWalker(local...)
		walker.Extensions = cfg.Extensions
		walker.Exclude = cfg.Exclude
		sources = append(sources, walker)
	}
	if len(remote) > 0 || len(c.Sitemap) > 0 {
		if deps.Fetcher == nil {
			return nil, hastitle.Errorf(hastitle.EINVALID, "no fetcher configured for remote pages")
		}
		sources = append(sources, &hshttp.Source{
			URLs:        remote,
			Sitemaps:    c.Sitemap,
			Fetcher:     deps.Fetcher,
			Sitemap:     deps.Sitemap,
			Limiter:     hshttp.NewDomainLimiter(c.RPS),
			Concurrency: cfg.Concurrency,
		})
	}

	if len(sources) == 1 {
		return sources[0], nil
	}
	return sources, nil
}

func isRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}
