package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storeinsight"
)

// maxFAQs caps the number of extracted question/answer pairs.
const maxFAQs = 20

// faqSlugs lists well-known FAQ page paths, tried in order.
var faqSlugs = []string{
	"/pages/faq",
	"/pages/faqs",
	"/pages/frequently-asked-questions",
	"/pages/help",
	"/faq",
	"/help",
	"/support",
}

// Ensure FAQService implements storeinsight.FAQService.
var _ storeinsight.FAQService = (*FAQService)(nil)

// FAQService extracts question/answer pairs from FAQ-style pages. It
// recognizes accordion structures (details/summary, common accordion class
// names) and plain heading/paragraph Q&A patterns.
type FAQService struct {
	fetcher storeinsight.Fetcher
	md      storeinsight.HTMLConverter
}

// FAQOption configures a FAQService.
type FAQOption func(*FAQService)

// WithAnswerMarkdown renders answers as Markdown instead of collapsed plain
// text, preserving lists, links, and tables inside answer bodies.
func WithAnswerMarkdown(conv storeinsight.HTMLConverter) FAQOption {
	return func(s *FAQService) {
		s.md = conv
	}
}

// NewFAQService creates a FAQService.
func NewFAQService(fetcher storeinsight.Fetcher, opts ...FAQOption) *FAQService {
	s := &FAQService{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FAQs tries candidate pages in order and returns the first page's parsed
// pairs. An empty result means no FAQ page was found; parse failures are not
// errors.
func (s *FAQService) FAQs(ctx context.Context, websiteURL string, candidatePages []string) ([]storeinsight.FAQ, error) {
	candidates := make([]string, 0, len(faqSlugs)+len(candidatePages))
	for _, slug := range faqSlugs {
		candidates = append(candidates, websiteURL+slug)
	}
	for _, page := range candidatePages {
		if matchesKeywords(page, []string{"faq", "frequently-asked", "help"}) {
			candidates = append(candidates, page)
		}
	}

	for _, u := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := s.fetcher.Fetch(ctx, u)
		if err != nil {
			continue
		}

		if faqs := parseFAQPage(body, s.md); len(faqs) > 0 {
			return faqs, nil
		}
	}

	return nil, nil
}

// ParseFAQs extracts question/answer pairs from a single page's HTML with
// answers rendered as plain text.
func ParseFAQs(html string) []storeinsight.FAQ {
	return parseFAQPage(html, nil)
}

func parseFAQPage(html string, md storeinsight.HTMLConverter) []storeinsight.FAQ {
	doc := parse(html)
	if doc == nil {
		return nil
	}

	faqs := parseAccordions(doc, md)
	if len(faqs) == 0 {
		faqs = parseHeadingPairs(doc, md)
	}

	if len(faqs) > maxFAQs {
		faqs = faqs[:maxFAQs]
	}
	return faqs
}

// answerText renders an answer node, preserving structure as Markdown when
// a converter is available.
func answerText(sel *goquery.Selection, md storeinsight.HTMLConverter) string {
	if md != nil {
		if h, err := goquery.OuterHtml(sel); err == nil {
			if converted, err := md.Convert(h); err == nil && converted != "" {
				return converted
			}
		}
	}
	return collapseSpace(sel.Text())
}

// parseAccordions handles structured FAQ markup: native details/summary
// elements and common accordion container classes.
func parseAccordions(doc *goquery.Document, md storeinsight.HTMLConverter) []storeinsight.FAQ {
	var faqs []storeinsight.FAQ
	seen := make(map[string]bool)

	add := func(question, answer string) {
		question = collapseSpace(question)
		answer = strings.TrimSpace(answer)
		if question == "" || answer == "" || seen[question] {
			return
		}
		seen[question] = true
		faqs = append(faqs, storeinsight.FAQ{Question: question, Answer: answer})
	}

	doc.Find("details").Each(func(_ int, sel *goquery.Selection) {
		summary := sel.Find("summary").First()
		if summary.Length() == 0 {
			return
		}
		body := sel.Clone()
		body.Find("summary").Remove()
		add(summary.Text(), answerText(body, md))
	})

	doc.Find(".faq, .faq-item, .accordion-item, .accordion__item").Each(func(_ int, sel *goquery.Selection) {
		q := sel.Find(".question, .faq-question, .accordion-title, h3, h4").First()
		a := sel.Find(".answer, .faq-answer, .accordion-content, .content, p").First()
		if q.Length() == 0 || a.Length() == 0 {
			return
		}
		add(q.Text(), answerText(a, md))
	})

	return faqs
}

// parseHeadingPairs handles plain Q&A text: an h3/h4 containing a question
// mark followed by a paragraph or div sibling.
func parseHeadingPairs(doc *goquery.Document, md storeinsight.HTMLConverter) []storeinsight.FAQ {
	var faqs []storeinsight.FAQ
	seen := make(map[string]bool)

	doc.Find("h3, h4").Each(func(_ int, sel *goquery.Selection) {
		question := collapseSpace(sel.Text())
		if !strings.Contains(question, "?") || seen[question] {
			return
		}

		next := sel.NextFiltered("p, div").First()
		if next.Length() == 0 {
			return
		}
		answer := answerText(next, md)
		if len(answer) < 10 {
			return
		}

		seen[question] = true
		faqs = append(faqs, storeinsight.FAQ{Question: question, Answer: answer})
	})

	return faqs
}
