package main

import (
	"fmt"

	"github.com/fwojciec/storeinsight"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := storeinsight.RecordFilter{Limit: c.Limit}
	if c.URL != "" {
		url := recordedURL(c.URL)
		filter.WebsiteURL = &url
	}
	if c.Status != "" {
		status := storeinsight.ExtractionStatus(c.Status)
		if !status.Valid() {
			fmt.Fprintf(deps.Stderr, "error: invalid status %q (want success, partial, or failed)\n", c.Status)
			return storeinsight.Errorf(storeinsight.EINVALID, "invalid status %q", c.Status)
		}
		filter.Status = &status
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No extraction records found. Use 'storeinsight extract' to create one.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %4d points  %6.2fs  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.Status, rec.DataPoints, rec.ExtractionTime, rec.WebsiteURL)
		if rec.ErrorMessage != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", rec.ErrorMessage)
		}
	}

	return nil
}

// recordedURL maps user input to the form records are stored under:
// normalized for completed runs, raw for inputs that never normalized.
func recordedURL(input string) string {
	if normalized, err := storeinsight.NormalizeURL(input); err == nil {
		return normalized
	}
	return input
}
