// Package extract orchestrates store extraction runs. It coordinates the
// root fetch, platform detection, concurrent content extraction, and
// finalization of the run record.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/storeinsight"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Ensure Orchestrator implements storeinsight.InsightService at compile time.
var _ storeinsight.InsightService = (*Orchestrator)(nil)

// DefaultRunTimeout bounds a whole extraction run.
const DefaultRunTimeout = 2 * time.Minute

// Orchestrator drives one extraction run per call. Collaborator fields must
// be set before use; Synthesizer, Pages, Cache and Logger are optional.
type Orchestrator struct {
	Fetcher     storeinsight.Fetcher
	Detector    storeinsight.StoreDetector
	Catalog     storeinsight.CatalogService
	Policies    storeinsight.PolicyService
	FAQs        storeinsight.FAQService
	Social      storeinsight.SocialExtractor
	Contact     storeinsight.ContactService
	Links       storeinsight.LinkExtractor
	Brand       storeinsight.BrandExtractor
	Text        storeinsight.TextExtractor
	Records     storeinsight.ExtractionRecordService
	Synthesizer storeinsight.Synthesizer
	Pages       storeinsight.PageDiscoverer
	Cache       storeinsight.InsightCache
	Timeout     time.Duration
	Logger      *slog.Logger
}

// slots holds each fan-out task's outcome. Every task writes only its own
// fields, so no locking is needed around the errgroup barrier.
type slots struct {
	candidates  []string
	catalog     []storeinsight.Product
	catalogErr  error
	policies    map[storeinsight.PolicyType]*storeinsight.Policy
	policiesErr error
	faqs        []storeinsight.FAQ
	faqsErr     error
	contact     storeinsight.ContactDetails
	brandCtx    string
}

// ExtractInsights runs the full extraction pipeline for a store and records
// the attempt. It returns an error only when the run fails as a whole:
// invalid input, an unreachable or unrecognized store, or an internal fault.
// Missing optional content degrades the run to partial instead.
func (o *Orchestrator) ExtractInsights(ctx context.Context, websiteURL string) (insights *storeinsight.StoreInsights, err error) {
	start := time.Now()
	runURL := recordURL(websiteURL)

	// A fault in an extractor or in aggregation must still finalize the run
	// and leave its record behind.
	defer func() {
		if p := recover(); p != nil {
			o.logger().Error("extraction fault", "url", runURL, "fault", p)
			insights = nil
			err = storeinsight.Errorf(storeinsight.EINTERNAL, "internal error while extracting %s", runURL)
			o.record(ctx, runURL, storeinsight.StatusFailed, err, 0, start)
		}
	}()

	normalized, err := storeinsight.NormalizeURL(websiteURL)
	if err != nil {
		o.record(ctx, runURL, storeinsight.StatusFailed, err, 0, start)
		return nil, err
	}
	runURL = normalized

	if o.Cache != nil {
		if cached, ok := o.Cache.Get(normalized); ok {
			return cached, nil
		}
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	homepageHTML, err := o.Fetcher.Fetch(ctx, normalized)
	if err != nil {
		err = unreachable(normalized, err)
		o.record(ctx, normalized, storeinsight.StatusFailed, err, 0, start)
		return nil, err
	}

	if !o.Detector.Detect(homepageHTML) {
		err := storeinsight.Errorf(storeinsight.EUNREACHABLE, "no supported storefront platform detected at %s", normalized)
		o.record(ctx, normalized, storeinsight.StatusFailed, err, 0, start)
		return nil, err
	}

	s := o.fanOut(ctx, normalized, homepageHTML)
	insights = o.aggregate(ctx, normalized, homepageHTML, s)

	status := storeinsight.StatusSuccess
	var runErrs []error
	for _, taskErr := range []error{s.catalogErr, s.policiesErr, s.faqsErr} {
		if taskErr != nil {
			status = storeinsight.StatusPartial
			runErrs = append(runErrs, taskErr)
		}
	}
	if ctx.Err() != nil {
		status = storeinsight.StatusPartial
		runErrs = append(runErrs, ctx.Err())
	}

	o.record(ctx, normalized, status, joinErrors(runErrs), insights.DataPoints(), start)

	if status == storeinsight.StatusSuccess && o.Cache != nil {
		o.Cache.Put(normalized, insights)
		o.logger().Debug("cached insights", "url", normalized, "fingerprint", insights.Fingerprint())
	}
	return insights, nil
}

// fanOut launches the concurrent retrieval and extraction tasks. Task
// failures land in their slots; nothing here cancels sibling tasks.
func (o *Orchestrator) fanOut(ctx context.Context, websiteURL, homepageHTML string) *slots {
	s := &slots{}

	if o.Pages != nil {
		pages, err := o.Pages.DiscoverPages(ctx, websiteURL)
		if err != nil {
			o.logger().Debug("page discovery failed", "url", websiteURL, "error", err)
		}
		s.candidates = pages
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.catalog, s.catalogErr = o.Catalog.Products(gctx, websiteURL)
		return nil
	})

	g.Go(func() error {
		s.policies, s.policiesErr = o.Policies.Policies(gctx, websiteURL, s.candidates)
		return nil
	})

	g.Go(func() error {
		s.faqs, s.faqsErr = o.FAQs.FAQs(gctx, websiteURL, s.candidates)
		return nil
	})

	g.Go(func() error {
		s.contact = o.Contact.ContactDetails(gctx, homepageHTML, websiteURL)
		return nil
	})

	g.Go(func() error {
		s.brandCtx = o.brandContext(gctx, websiteURL, homepageHTML)
		return nil
	})

	_ = g.Wait()
	return s
}

// aggregate merges completed task outcomes into the run's StoreInsights.
// It runs single-threaded after the fan-out barrier.
func (o *Orchestrator) aggregate(ctx context.Context, websiteURL, homepageHTML string, s *slots) *storeinsight.StoreInsights {
	catalog := s.catalog
	if catalog == nil {
		catalog = []storeinsight.Product{}
	}

	faqs := s.faqs
	if faqs == nil {
		faqs = []storeinsight.FAQ{}
	}
	if o.Synthesizer != nil && len(faqs) > 0 {
		if structured, err := o.Synthesizer.StructureFAQs(ctx, faqs); err == nil {
			faqs = structured
		}
	}

	insights := &storeinsight.StoreInsights{
		WebsiteURL:     websiteURL,
		BrandName:      o.Brand.BrandName(homepageHTML, websiteURL),
		ProductCatalog: catalog,
		HeroProducts:   o.Catalog.HeroProducts(homepageHTML, websiteURL, catalog),
		FAQs:           faqs,
		SocialHandles:  o.Social.SocialHandles(homepageHTML),
		ContactDetails: s.contact,
		ImportantLinks: o.Links.ImportantLinks(homepageHTML, websiteURL),
		BrandContext:   s.brandCtx,
		ExtractedAt:    time.Now().UTC(),
	}
	for t, p := range s.policies {
		insights.SetPolicy(t, p)
	}
	return insights
}

// brandContext extracts and summarizes the store's about page. It is
// best-effort: any failure simply leaves brand context empty.
func (o *Orchestrator) brandContext(ctx context.Context, websiteURL, homepageHTML string) string {
	if o.Synthesizer == nil || o.Text == nil {
		return ""
	}

	aboutURL := o.Links.ImportantLinks(homepageHTML, websiteURL).AboutUs
	if aboutURL == "" {
		aboutURL = websiteURL + "/pages/about-us"
	}

	body, err := o.Fetcher.Fetch(ctx, aboutURL)
	if err != nil {
		return ""
	}

	_, text, err := o.Text.Text(body)
	if err != nil || text == "" {
		return ""
	}

	summary, err := o.Synthesizer.SummarizeBrand(ctx, text)
	if err != nil {
		o.logger().Debug("brand summary failed", "url", websiteURL, "error", err)
		return text
	}
	return summary
}

// record finalizes the run's extraction record. Record persistence uses a
// context detached from the run's cancellation so a timed-out run still
// leaves its audit trail.
func (o *Orchestrator) record(ctx context.Context, websiteURL string, status storeinsight.ExtractionStatus, runErr error, dataPoints int, start time.Time) {
	rec := &storeinsight.ExtractionRecord{
		ID:             uuid.New().String(),
		WebsiteURL:     websiteURL,
		Status:         status,
		ExtractionTime: time.Since(start).Seconds(),
		DataPoints:     dataPoints,
		CreatedAt:      time.Now().UTC(),
	}
	if runErr != nil {
		rec.ErrorMessage = storeinsight.ErrorMessage(runErr)
	}

	if err := o.Records.CreateRecord(context.WithoutCancel(ctx), rec); err != nil {
		o.logger().Error("create extraction record failed", "url", websiteURL, "error", err)
	}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// unreachable maps a root fetch failure onto the store-unreachable failure
// mode. Invalid input and context errors pass through unchanged.
func unreachable(websiteURL string, err error) error {
	if storeinsight.ErrorCode(err) == storeinsight.EINVALID {
		return err
	}
	return storeinsight.Errorf(storeinsight.EUNREACHABLE, "store unreachable at %s: %s", websiteURL, storeinsight.ErrorMessage(err))
}

// recordURL keeps record creation valid even when the input URL was
// rejected.
func recordURL(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "(empty)"
	}
	return input
}

// joinErrors collapses task errors into one representative error for the
// run record. The first error's message leads.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, storeinsight.ErrorMessage(err))
	}
	return storeinsight.Errorf(storeinsight.ErrorCode(errs[0]), "%s", strings.Join(msgs, "; "))
}
