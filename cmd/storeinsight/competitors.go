package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/storeinsight"
)

// Run executes the competitors command.
func (c *CompetitorsCmd) Run(deps *Dependencies) error {
	analysis, err := deps.Analyzer.Analyze(deps.Ctx, c.URL, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		if err := deps.Reports.WriteJSON(c.Out, analysis); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote analysis to %s\n", c.Out)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	if len(analysis.Competitors) == 0 {
		fmt.Fprintln(deps.Stdout, "No competitors found.")
		return nil
	}

	for i, comp := range analysis.Competitors {
		name := comp.CompetitorName
		if name == "" {
			name = comp.WebsiteURL
		}
		fmt.Fprintf(deps.Stdout, "%d. %s  %.2f  %s\n", i+1, name, comp.SimilarityScore, comp.WebsiteURL)
		for _, adv := range comp.CompetitiveAdvantages {
			fmt.Fprintf(deps.Stdout, "   - %s\n", adv)
		}
	}

	if analysis.AnalysisSummary != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", analysis.AnalysisSummary)
	}
	return nil
}
