package main

import (
	"fmt"

	"github.com/fwojciec/storeinsight"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return storeinsight.Errorf(storeinsight.EINVALID, "use --force to confirm deletion")
	}

	deleted, err := deps.Records.DeleteRecordsByURL(deps.Ctx, recordedURL(c.URL))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeinsight.ErrorMessage(err))
		return err
	}

	if deleted == 0 {
		fmt.Fprintf(deps.Stdout, "No records found for %q\n", c.URL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d record(s) for %q\n", deleted, c.URL)
	return nil
}
