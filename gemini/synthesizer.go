// Package gemini implements the optional text-structuring collaborators
// using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/storeinsight"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Synthesizer implements storeinsight.Synthesizer at compile time.
var _ storeinsight.Synthesizer = (*Synthesizer)(nil)

// Synthesizer implements storeinsight.Synthesizer using Google Gemini. All
// methods are best-effort from the caller's perspective; errors returned
// here must never fail a run.
type Synthesizer struct {
	client *genai.Client
}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer(client *genai.Client) *Synthesizer {
	return &Synthesizer{client: client}
}

// SummarizeBrand condenses raw about-page text into a short brand
// description.
func (s *Synthesizer) SummarizeBrand(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", storeinsight.Errorf(storeinsight.EINVALID, "text required")
	}

	prompt := fmt.Sprintf("The following text was extracted from an online store's about page. Summarize the brand in 2-3 sentences: what it sells, who it sells to, and what makes it distinctive. Use only the information given.\n\n<text>%s</text>", text)

	return s.generate(ctx, prompt)
}

// StructureFAQs cleans up extracted FAQ pairs and infers a category for
// each. On any failure the caller keeps the original pairs.
func (s *Synthesizer) StructureFAQs(ctx context.Context, faqs []storeinsight.FAQ) ([]storeinsight.FAQ, error) {
	if len(faqs) == 0 {
		return faqs, nil
	}

	raw, err := json.Marshal(faqs)
	if err != nil {
		return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "marshal faqs: %v", err)
	}

	prompt := fmt.Sprintf("The following JSON array holds question/answer pairs scraped from an online store's FAQ page. Clean up whitespace and truncation artifacts without changing meaning, and set each pair's \"category\" field to one of: shipping, returns, payment, product, account, other. Respond with the corrected JSON array only, no prose.\n\n%s", raw)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var structured []storeinsight.FAQ
	if err := json.Unmarshal([]byte(stripCodeFence(answer)), &structured); err != nil {
		return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "unmarshal structured faqs: %v", err)
	}
	if len(structured) != len(faqs) {
		return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "structured faq count mismatch: got %d, want %d", len(structured), len(faqs))
	}
	return structured, nil
}

// SummarizeAnalysis rephrases a templated competitor analysis summary into
// natural language, preserving its numbers.
func (s *Synthesizer) SummarizeAnalysis(ctx context.Context, draft string) (string, error) {
	if draft == "" {
		return "", storeinsight.Errorf(storeinsight.EINVALID, "draft required")
	}

	prompt := fmt.Sprintf("Rewrite the following competitor analysis summary as 2-3 fluent sentences. Keep every number and store name exactly as given; add no facts.\n\n<draft>%s</draft>", draft)

	return s.generate(ctx, prompt)
}

func (s *Synthesizer) generate(ctx context.Context, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", storeinsight.Errorf(storeinsight.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a precise assistant that restructures e-commerce text. Work only with the information provided and never invent facts, names or numbers.",
			}},
		},
		Temperature: &temp,
	}
}

// stripCodeFence removes a surrounding markdown code fence, which Gemini
// sometimes adds around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
