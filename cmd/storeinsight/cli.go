package main

import (
	"context"
	"io"

	"github.com/fwojciec/storeinsight"
	"github.com/fwojciec/storeinsight/competitor"
	"github.com/fwojciec/storeinsight/fs"
	"github.com/fwojciec/storeinsight/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Records  storeinsight.ExtractionRecordService
	Insights storeinsight.InsightService
	Analyzer *competitor.Analyzer
	Reports  *fs.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract     ExtractCmd     `cmd:"" help:"Extract insights from a Shopify storefront"`
	Competitors CompetitorsCmd `cmd:"" help:"Discover and score competitors for a storefront"`
	History     HistoryCmd     `cmd:"" help:"List past extraction records"`
	Stats       StatsCmd       `cmd:"" help:"Show aggregate extraction statistics"`
	Delete      DeleteCmd      `cmd:"" help:"Delete extraction records for a URL"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL  string `arg:"" help:"Storefront URL"`
	JSON bool   `short:"j" help:"Print the full insights as JSON"`
	Out  string `short:"o" help:"Write the full insights to a JSON file"`
}

// CompetitorsCmd is the "competitors" subcommand.
type CompetitorsCmd struct {
	URL  string `arg:"" help:"Storefront URL"`
	Max  int    `short:"n" default:"5" help:"Maximum number of competitors to return"`
	JSON bool   `short:"j" help:"Print the full analysis as JSON"`
	Out  string `short:"o" help:"Write the full analysis to a JSON file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `arg:"" optional:"" help:"Filter by website URL"`
	Status string `short:"s" help:"Filter by status (success, partial, failed)"`
	Limit  int    `short:"l" default:"20" help:"Maximum number of records to show"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Website URL whose records to delete"`
	Force bool   `help:"Confirm deletion"`
}
