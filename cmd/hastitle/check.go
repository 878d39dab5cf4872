package main

import (
	"fmt"

	"github.com/fwojciec/hastitle"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	det := deps.Detector.Detect(c.Text)
	if !det.HasTitle() {
		return hastitle.Errorf(hastitle.ENOTITLE, "no title")
	}

	if c.Print {
		fmt.Fprintln(deps.Stdout, det.TrimmedTitle())
	}
	return nil
}
