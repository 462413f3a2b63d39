package main

import (
	"fmt"

	"github.com/trinav-code/eazyhealth"
)

// Run executes the logs command.
func (c *LogsCmd) Run(deps *Dependencies) error {
	filter := eazyhealth.ExplainerLogFilter{Limit: c.Limit}
	if c.Query != "" {
		filter.Query = &c.Query
	}

	logs, err := deps.ExplainerLogs.FindExplainerLogs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}

	if len(logs) == 0 {
		fmt.Fprintln(deps.Stdout, "No explain requests recorded.")
		return nil
	}

	for _, l := range logs {
		input := l.Query
		switch {
		case input != "":
			input = "query: " + input
		case l.SourceURL != "":
			input = "url: " + l.SourceURL
		default:
			input = "text: " + eazyhealth.Excerpt(l.InputExcerpt, 60)
		}
		title := ""
		if l.Output != nil {
			title = l.Output.Title
		}
		fmt.Fprintf(deps.Stdout, "%s  %-11s  %s  -> %s\n",
			l.CreatedAt.Format("2006-01-02 15:04"), l.ReadingLevel, input, title)
	}

	return nil
}
