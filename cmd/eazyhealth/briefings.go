package main

import (
	"fmt"

	"github.com/trinav-code/eazyhealth"
)

// Run executes the briefings command.
func (c *BriefingsCmd) Run(deps *Dependencies) error {
	filter := eazyhealth.BriefingFilter{Limit: c.Limit}
	if c.Type != "" {
		st, err := eazyhealth.ParseSourceType(c.Type)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
			return err
		}
		filter.SourceType = &st
	}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	briefings, err := deps.Briefings.FindBriefings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}

	if len(briefings) == 0 {
		fmt.Fprintln(deps.Stdout, "No briefings found. Use 'eazyhealth briefing' to generate one.")
		return nil
	}

	for _, b := range briefings {
		fmt.Fprintf(deps.Stdout, "%s  %-15s  %s  %s\n",
			b.CreatedAt.Format("2006-01-02"), b.SourceType, b.Slug, b.Title)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	b, err := deps.Briefings.FindBriefingBySlug(deps.Ctx, c.Slug)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, b)
	}
	printBriefing(deps.Stdout, b)
	return nil
}
