package main

import (
	"fmt"

	"github.com/fwojciec/storeinsight"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Records.RecordStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
		return err
	}

	if stats.TotalExtractions == 0 {
		fmt.Fprintln(deps.Stdout, "No extraction records yet. Use 'storeinsight extract' to create one.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Total extractions:   %d\n", stats.TotalExtractions)
	fmt.Fprintf(deps.Stdout, "  Successful:        %d\n", stats.SuccessfulExtractions)
	fmt.Fprintf(deps.Stdout, "  Partial:           %d\n", stats.PartialExtractions)
	fmt.Fprintf(deps.Stdout, "  Failed:            %d\n", stats.FailedExtractions)
	fmt.Fprintf(deps.Stdout, "Success rate:        %.0f%%\n", stats.SuccessRate*100)
	fmt.Fprintf(deps.Stdout, "Avg extraction time: %.2fs\n", stats.AvgExtractionTime)

	return nil
}
