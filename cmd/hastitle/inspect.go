package main

import (
	"fmt"

	"github.com/fwojciec/hastitle"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	det := deps.Detector.Detect(c.Text)

	strategy := det.Strategy
	if strategy == "" {
		strategy = "none"
	}
	fmt.Fprintf(deps.Stdout, "marker: strategy=%s matched=%t has_title=%t title=%q\n",
		strategy, det.Matched, det.HasTitle(), det.TrimmedTitle())

	for _, r := range deps.Readers {
		title, err := r.Reader.ReadTitle(c.Text)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%s: error: %s\n", r.Name, hastitle.ErrorMessage(err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s: title=%q\n", r.Name, title)
	}

	return nil
}
