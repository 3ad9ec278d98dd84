package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/storeinsight"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	insights, err := deps.Insights.ExtractInsights(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		if err := deps.Reports.WriteJSON(c.Out, insights); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote insights to %s\n", c.Out)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(insights)
	}

	printInsights(deps, insights)
	return nil
}

// printInsights renders a human-readable summary of extracted insights.
func printInsights(deps *Dependencies, insights *storeinsight.StoreInsights) {
	name := insights.BrandName
	if name == "" {
		name = insights.WebsiteURL
	}
	fmt.Fprintf(deps.Stdout, "%s (%s)\n", name, insights.WebsiteURL)
	fmt.Fprintf(deps.Stdout, "  Products:       %d (%d hero)\n", len(insights.ProductCatalog), len(insights.HeroProducts))
	fmt.Fprintf(deps.Stdout, "  Policies:       %d\n", insights.PolicyCount())
	fmt.Fprintf(deps.Stdout, "  FAQs:           %d\n", len(insights.FAQs))
	fmt.Fprintf(deps.Stdout, "  Social handles: %d\n", insights.SocialHandles.Count())

	if emails := insights.ContactDetails.Emails; len(emails) > 0 {
		fmt.Fprintf(deps.Stdout, "  Contact:        %s\n", strings.Join(emails, ", "))
	}
	if insights.BrandContext != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", insights.BrandContext)
	}
	fmt.Fprintf(deps.Stdout, "\n%d data points extracted\n", insights.DataPoints())
}
