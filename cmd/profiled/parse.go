package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/extract"
	"github.com/fwojciec/profiled/goquery"
)

// Run executes the parse command over saved snapshots, without a browser.
func (c *ParseCmd) Run(deps *Dependencies) error {
	profileHTML, err := c.read(deps, c.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", profiled.ErrorMessage(err))
		return err
	}
	pages := map[string]string{c.URL: profileHTML}

	if c.Skills != "" {
		skillsHTML, err := c.read(deps, c.Skills)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", profiled.ErrorMessage(err))
			return err
		}
		skillsURL, err := extract.SkillsURL(c.URL, deps.Extractor.Layout.SkillsPath)
		if err != nil {
			return err
		}
		pages[skillsURL] = skillsHTML
	}

	doc := goquery.NewDocument(pages)
	defer doc.Close()
	if err := doc.Navigate(deps.Ctx, c.URL); err != nil {
		return err
	}

	p := deps.Extractor.Extract(deps.Ctx, doc)
	return writeResponse(deps, profiled.NewResponse(p, nil))
}

// read loads a snapshot from a local file or an http(s) URL.
func (c *ParseCmd) read(deps *Dependencies, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if deps.Snapshots == nil {
			return "", profiled.Errorf(profiled.EUNAVAILABLE, "fetching snapshots over HTTP is not configured")
		}
		return deps.Snapshots.Fetch(deps.Ctx, source)
	}

	b, err := os.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", profiled.Errorf(profiled.ENOTFOUND, "snapshot %q not found", source)
		}
		return "", fmt.Errorf("reading snapshot: %w", err)
	}
	return string(b), nil
}
