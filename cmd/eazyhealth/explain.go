package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trinav-code/eazyhealth"
)

// Run executes the explain command.
func (c *ExplainCmd) Run(deps *Dependencies) error {
	level, err := eazyhealth.ParseReadingLevel(c.Level)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}

	ex, err := deps.Pipeline.Explain(deps.Ctx, eazyhealth.ExplainRequest{
		Query:        c.Query,
		URL:          c.URL,
		RawText:      c.Text,
		ReadingLevel: level,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, ex)
	}
	printExplanation(deps.Stdout, ex)
	return nil
}

func printExplanation(w io.Writer, ex *eazyhealth.Explanation) {
	fmt.Fprintf(w, "# %s\n", ex.Result.Title)
	for _, s := range ex.Result.Sections {
		fmt.Fprintf(w, "\n## %s\n\n%s\n", s.Heading, s.Content)
	}
	if len(ex.Sources) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, s := range ex.Sources {
			fmt.Fprintf(w, "- %s (%s)\n", s.Title, s.URL)
		}
	}
	fmt.Fprintf(w, "\n%s\n", ex.Result.Disclaimer)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
