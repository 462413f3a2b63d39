package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/trinav-code/eazyhealth"
	"github.com/trinav-code/eazyhealth/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	Briefings     eazyhealth.BriefingService
	ExplainerLogs eazyhealth.ExplainerLogService
	Pipeline      *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to a YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Explain   ExplainCmd   `cmd:"" help:"Explain a health topic, article or text in plain language"`
	Briefing  BriefingCmd  `cmd:"" help:"Generate a health briefing"`
	Briefings BriefingsCmd `cmd:"" help:"List recent briefings"`
	Show      ShowCmd      `cmd:"" help:"Show a briefing"`
	Logs      LogsCmd      `cmd:"" help:"List recent explain requests"`
}

// ExplainCmd is the "explain" subcommand.
type ExplainCmd struct {
	Query string `short:"q" help:"Health question or topic" xor:"input"`
	URL   string `short:"u" name:"url" help:"Article URL" xor:"input"`
	Text  string `short:"t" help:"Raw text to explain" xor:"input"`
	Level string `short:"l" default:"grade6" enum:"grade3,grade6,grade8,high_school,college" help:"Reading level"`
	JSON  bool   `help:"Print the explanation as JSON"`
}

// BriefingCmd groups the briefing generation subcommands.
type BriefingCmd struct {
	Data     BriefingDataCmd     `cmd:"" help:"Briefing from disease statistics"`
	Articles BriefingArticlesCmd `cmd:"" help:"Briefing summarizing recent articles"`
}

// BriefingDataCmd is the "briefing data" subcommand.
type BriefingDataCmd struct {
	StatsFile string `short:"f" help:"YAML or JSON statistics payload" type:"existingfile" xor:"stats"`
	Mock      bool   `help:"Use the built-in demonstration statistics" xor:"stats"`
	Level     string `short:"l" default:"grade8" enum:"grade3,grade6,grade8,high_school,college" help:"Reading level"`
	DryRun    bool   `short:"n" help:"Print the briefing without storing it"`
}

// BriefingArticlesCmd is the "briefing articles" subcommand.
type BriefingArticlesCmd struct {
	Topic  string `short:"T" required:"" help:"Health topic to search for"`
	Max    int    `short:"m" default:"3" help:"Maximum number of articles"`
	Level  string `short:"l" default:"grade8" enum:"grade3,grade6,grade8,high_school,college" help:"Reading level"`
	DryRun bool   `short:"n" help:"Print the briefing without storing it"`
}

// BriefingsCmd is the "briefings" subcommand.
type BriefingsCmd struct {
	Type  string `help:"Filter by source type (data_analysis, article_summary)"`
	Tag   string `help:"Filter by tag"`
	Limit int    `default:"20" help:"Maximum number of briefings"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Slug string `arg:"" help:"Briefing slug"`
	JSON bool   `help:"Print the briefing as JSON"`
}

// LogsCmd is the "logs" subcommand.
type LogsCmd struct {
	Query string `help:"Only show requests with this exact query"`
	Limit int    `default:"20" help:"Maximum number of entries"`
}
