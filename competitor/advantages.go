package competitor

import (
	"fmt"

	"github.com/fwojciec/storeinsight"
)

const (
	// advantageRatio is how much larger a candidate's catalog or FAQ set
	// must be before it counts as an advantage.
	advantageRatio = 1.5

	maxAdvantages = 5
)

// Advantages derives rule-based statements about where the candidate beats
// the main brand. The output is deterministic and capped.
func Advantages(main, candidate *storeinsight.StoreInsights) []string {
	var advantages []string

	if mainN, candN := len(main.ProductCatalog), len(candidate.ProductCatalog); candN > 0 &&
		float64(candN) > float64(mainN)*advantageRatio {
		advantages = append(advantages, fmt.Sprintf("larger catalog (%d products vs %d)", candN, mainN))
	}

	if mainN, candN := main.SocialHandles.Count(), candidate.SocialHandles.Count(); candN > mainN {
		advantages = append(advantages, fmt.Sprintf("broader social presence (%d channels vs %d)", candN, mainN))
	}

	if mainN, candN := main.PolicyCount(), candidate.PolicyCount(); candN > mainN {
		advantages = append(advantages, fmt.Sprintf("more published policies (%d vs %d)", candN, mainN))
	}

	if mainN, candN := len(main.FAQs), len(candidate.FAQs); candN > 0 &&
		float64(candN) > float64(mainN)*advantageRatio {
		advantages = append(advantages, fmt.Sprintf("more extensive FAQ coverage (%d entries vs %d)", candN, mainN))
	}

	if mainN, candN := main.ContactDetails.Count(), candidate.ContactDetails.Count(); candN > mainN {
		advantages = append(advantages, fmt.Sprintf("more contact options (%d vs %d)", candN, mainN))
	}

	if len(advantages) > maxAdvantages {
		advantages = advantages[:maxAdvantages]
	}
	return advantages
}
