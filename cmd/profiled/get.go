package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/profiled"
)

// Run executes the get command. The envelope is printed on failure too.
func (c *GetCmd) Run(deps *Dependencies) error {
	p, err := deps.Scraper.Scrape(deps.Ctx, c.Vanity)
	if err == nil && p.IsEmpty() {
		err = profiled.Errorf(profiled.ENOTFOUND, "profile not found")
	}

	if werr := writeResponse(deps, profiled.NewResponse(p, err)); werr != nil {
		return werr
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profiled.ErrorMessage(err))
		return err
	}
	return nil
}

func writeResponse(deps *Dependencies, resp profiled.Response) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
