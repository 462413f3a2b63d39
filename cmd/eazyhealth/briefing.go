package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/pipeline"
	"gopkg.in/yaml.v3"
)

// Run executes the "briefing data" command.
func (c *BriefingDataCmd) Run(deps *Dependencies) error {
	req := pipeline.BriefingRequest{
		SourceType:  eazyhealth.DataAnalysis,
		UseMockData: c.Mock,
	}
	if c.StatsFile != "" {
		stats, err := readStats(c.StatsFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
			return err
		}
		req.Stats = stats
	}
	if !c.Mock && req.Stats == nil {
		fmt.Fprintln(deps.Stderr, "error: one of --stats-file or --mock is required")
		return eazyhealth.Errorf(eazyhealth.EINVALID, "statistics payload required")
	}
	return runBriefing(deps, req, c.Level, c.DryRun)
}

// Run executes the "briefing articles" command.
func (c *BriefingArticlesCmd) Run(deps *Dependencies) error {
	req := pipeline.BriefingRequest{
		SourceType:  eazyhealth.ArticleSummary,
		Topic:       c.Topic,
		MaxArticles: c.Max,
	}
	return runBriefing(deps, req, c.Level, c.DryRun)
}

func runBriefing(deps *Dependencies, req pipeline.BriefingRequest, level string, dryRun bool) error {
	lvl, err := eazyhealth.ParseReadingLevel(level)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}
	req.ReadingLevel = lvl

	deps.Pipeline.DryRun = dryRun
	b, err := deps.Pipeline.GenerateBriefing(deps.Ctx, req)
	if eazyhealth.ErrorCode(err) == eazyhealth.ECONFLICT {
		fmt.Fprintf(deps.Stderr, "Briefing not stored: %s\n", eazyhealth.ErrorMessage(err))
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eazyhealth.ErrorMessage(err))
		return err
	}

	printBriefing(deps.Stdout, b)
	if dryRun {
		fmt.Fprintln(deps.Stderr, "Dry run: briefing not stored.")
	} else {
		fmt.Fprintf(deps.Stderr, "Stored briefing %s\n", b.Slug)
	}
	return nil
}

// readStats decodes a statistics payload. JSON files parse as YAML.
func readStats(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "failed to open stats file: %v", err)
	}
	defer f.Close()

	var stats map[string]any
	if err := yaml.NewDecoder(f).Decode(&stats); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "stats file %s is empty", path)
		}
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "failed to parse stats file: %v", err)
	}
	if len(stats) == 0 {
		return nil, eazyhealth.Errorf(eazyhealth.EINVALID, "stats file %s is empty", path)
	}
	return stats, nil
}

func printBriefing(w io.Writer, b *eazyhealth.Briefing) {
	fmt.Fprintf(w, "# %s\n\n", b.Title)
	fmt.Fprintf(w, "Slug: %s\n", b.Slug)
	fmt.Fprintf(w, "Type: %s\n", b.SourceType)
	fmt.Fprintf(w, "Level: %s\n", b.ReadingLevel)
	if !b.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created: %s\n", b.CreatedAt.Format("2006-01-02 15:04"))
	}
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(b.Tags, ", "))
	}
	if b.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", b.Summary)
	}
	if b.Body != "" {
		fmt.Fprintf(w, "\n%s\n", b.Body)
	}
	if len(b.SourceURLs) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, u := range b.SourceURLs {
			fmt.Fprintf(w, "- %s\n", u)
		}
	}
	fmt.Fprintf(w, "\n%s\n", b.Disclaimer)
}
