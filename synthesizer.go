package storeinsight

import "context"

// Synthesizer is the optional external text-structuring collaborator. It is
// nondeterministic, so callers must treat every method as best-effort and
// fall back to their deterministic input on any error. A Synthesizer failure
// never fails a run.
type Synthesizer interface {
	// SummarizeBrand condenses raw about-page text into a short brand
	// description.
	SummarizeBrand(ctx context.Context, text string) (string, error)

	// StructureFAQs cleans up and categorizes extracted FAQ pairs.
	StructureFAQs(ctx context.Context, faqs []FAQ) ([]FAQ, error)

	// SummarizeAnalysis rephrases a templated competitor analysis summary.
	// The numeric content of the draft must be preserved.
	SummarizeAnalysis(ctx context.Context, draft string) (string, error)
}
