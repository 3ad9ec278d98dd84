package extract_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/fwojciec/storeinsight"
	"github.com/fwojciec/storeinsight/extract"
	"github.com/fwojciec/storeinsight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingService captures created records for assertions.
type recordingService struct {
	mu      sync.Mutex
	records []*storeinsight.ExtractionRecord
	mock.ExtractionRecordService
}

func newRecordingService() *recordingService {
	s := &recordingService{}
	s.CreateRecordFn = func(ctx context.Context, rec *storeinsight.ExtractionRecord) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.records = append(s.records, rec)
		return nil
	}
	return s
}

func (s *recordingService) all() []*storeinsight.ExtractionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

// testOrchestrator returns an orchestrator whose collaborators all succeed
// with a small fixed data set. Tests override individual fields.
func testOrchestrator(records *recordingService) *extract.Orchestrator {
	catalog := []storeinsight.Product{
		{ID: "1", Title: "Canvas Tote", Handle: "canvas-tote", Price: "49.00"},
		{ID: "2", Title: "Commuter Backpack", Handle: "commuter-backpack", Price: "129.00"},
	}

	return &extract.Orchestrator{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body>cdn.shopify.com</body></html>", nil
			},
		},
		Detector: &mock.StoreDetector{},
		Catalog: &mock.CatalogService{
			ProductsFn: func(ctx context.Context, websiteURL string) ([]storeinsight.Product, error) {
				return catalog, nil
			},
			HeroProductsFn: func(homepageHTML, websiteURL string, catalog []storeinsight.Product) []storeinsight.Product {
				return catalog[:1]
			},
		},
		Policies: &mock.PolicyService{
			PoliciesFn: func(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error) {
				return map[storeinsight.PolicyType]*storeinsight.Policy{
					storeinsight.PolicyPrivacy: {Content: "We respect your privacy.", URL: websiteURL + "/policies/privacy-policy"},
				}, nil
			},
		},
		FAQs: &mock.FAQService{
			FAQsFn: func(ctx context.Context, websiteURL string, candidatePages []string) ([]storeinsight.FAQ, error) {
				return []storeinsight.FAQ{{Question: "Do you ship worldwide?", Answer: "Yes."}}, nil
			},
		},
		Social: &mock.SocialExtractor{
			SocialHandlesFn: func(homepageHTML string) storeinsight.SocialHandles {
				return storeinsight.SocialHandles{Instagram: "acmesupply"}
			},
		},
		Contact: &mock.ContactService{
			ContactDetailsFn: func(ctx context.Context, homepageHTML, websiteURL string) storeinsight.ContactDetails {
				return storeinsight.ContactDetails{Emails: []string{"hello@acmesupply.com"}}
			},
		},
		Links: &mock.LinkExtractor{},
		Brand: &mock.BrandExtractor{
			BrandNameFn: func(homepageHTML, websiteURL string) string { return "Acme Supply" },
		},
		Records: records,
	}
}

func TestOrchestrator_ExtractInsights(t *testing.T) {
	t.Parallel()

	t.Run("successful run populates insights and records success", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)

		insights, err := o.ExtractInsights(context.Background(), "https://AcmeSupply.com/")

		require.NoError(t, err)
		require.NotNil(t, insights)
		assert.Equal(t, "https://acmesupply.com", insights.WebsiteURL)
		assert.Equal(t, "Acme Supply", insights.BrandName)
		assert.Len(t, insights.ProductCatalog, 2)
		assert.Len(t, insights.HeroProducts, 1)
		require.NotNil(t, insights.PrivacyPolicy)
		assert.Len(t, insights.FAQs, 1)
		assert.Equal(t, "acmesupply", insights.SocialHandles.Instagram)

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusSuccess, recs[0].Status)
		assert.Equal(t, "https://acmesupply.com", recs[0].WebsiteURL)
		assert.Equal(t, insights.DataPoints(), recs[0].DataPoints)
		assert.Empty(t, recs[0].ErrorMessage)
		assert.Greater(t, recs[0].ExtractionTime, 0.0)
	})

	t.Run("invalid input fails without a network call but still records", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Error("unexpected network call for invalid input")
				return "", nil
			},
		}

		_, err := o.ExtractInsights(context.Background(), "ftp://acmesupply.com")

		require.Error(t, err)
		assert.Equal(t, storeinsight.EINVALID, storeinsight.ErrorCode(err))

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusFailed, recs[0].Status)
		assert.Zero(t, recs[0].DataPoints)
		assert.NotEmpty(t, recs[0].ErrorMessage)
	})

	t.Run("unreachable root fails the run with zero data points", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", storeinsight.Errorf(storeinsight.ENOTFOUND, "connect failed")
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://down.example.com")

		require.Error(t, err)
		assert.Nil(t, insights)
		assert.Equal(t, storeinsight.EUNREACHABLE, storeinsight.ErrorCode(err))

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusFailed, recs[0].Status)
		assert.Zero(t, recs[0].DataPoints)
	})

	t.Run("missing storefront marker fails the run", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Detector = &mock.StoreDetector{
			DetectFn: func(html string) bool { return false },
		}

		_, err := o.ExtractInsights(context.Background(), "https://blog.example.com")

		require.Error(t, err)
		assert.Equal(t, storeinsight.EUNREACHABLE, storeinsight.ErrorCode(err))

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusFailed, recs[0].Status)
	})

	t.Run("failing policy extraction leaves the slot empty and degrades to partial", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Policies = &mock.PolicyService{
			PoliciesFn: func(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error) {
				return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "policy fetch failed")
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		require.NotNil(t, insights)
		assert.Nil(t, insights.PrivacyPolicy)
		assert.Len(t, insights.ProductCatalog, 2)
		assert.Len(t, insights.FAQs, 1)

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusPartial, recs[0].Status)
		assert.Contains(t, recs[0].ErrorMessage, "policy fetch failed")
	})

	t.Run("failing catalog degrades to partial, not failed", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Catalog = &mock.CatalogService{
			ProductsFn: func(ctx context.Context, websiteURL string) ([]storeinsight.Product, error) {
				return nil, storeinsight.Errorf(storeinsight.ENOTFOUND, "feed not found")
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		assert.Empty(t, insights.ProductCatalog)

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusPartial, recs[0].Status)
	})

	t.Run("legitimately absent optional content still counts as success", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Policies = &mock.PolicyService{
			PoliciesFn: func(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error) {
				return map[storeinsight.PolicyType]*storeinsight.Policy{}, nil
			},
		}
		o.FAQs = &mock.FAQService{
			FAQsFn: func(ctx context.Context, websiteURL string, candidatePages []string) ([]storeinsight.FAQ, error) {
				return nil, nil
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		assert.Empty(t, insights.FAQs)

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusSuccess, recs[0].Status)
	})

	t.Run("cache hit skips extraction entirely", func(t *testing.T) {
		t.Parallel()

		cached := &storeinsight.StoreInsights{WebsiteURL: "https://acmesupply.com", BrandName: "Cached Brand"}

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Error("unexpected network call on cache hit")
				return "", nil
			},
		}
		o.Cache = &mock.InsightCache{
			GetFn: func(websiteURL string) (*storeinsight.StoreInsights, bool) {
				return cached, true
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "acmesupply.com")

		require.NoError(t, err)
		assert.Same(t, cached, insights)
		assert.Empty(t, records.all())
	})

	t.Run("successful run is stored in the cache", func(t *testing.T) {
		t.Parallel()

		var putURL string
		records := newRecordingService()
		o := testOrchestrator(records)
		o.Cache = &mock.InsightCache{
			PutFn: func(websiteURL string, insights *storeinsight.StoreInsights) {
				putURL = websiteURL
			},
		}

		_, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		assert.Equal(t, "https://acmesupply.com", putURL)
	})

	t.Run("partial run is not cached", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Catalog = &mock.CatalogService{
			ProductsFn: func(ctx context.Context, websiteURL string) ([]storeinsight.Product, error) {
				return nil, storeinsight.Errorf(storeinsight.ENOTFOUND, "feed not found")
			},
		}
		o.Cache = &mock.InsightCache{
			PutFn: func(websiteURL string, insights *storeinsight.StoreInsights) {
				t.Error("partial result must not be cached")
			},
		}

		_, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
	})

	t.Run("synthesizer failure keeps the raw FAQ pairs", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Synthesizer = &mock.Synthesizer{
			StructureFAQsFn: func(ctx context.Context, faqs []storeinsight.FAQ) ([]storeinsight.FAQ, error) {
				return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "model unavailable")
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		require.Len(t, insights.FAQs, 1)
		assert.Equal(t, "Do you ship worldwide?", insights.FAQs[0].Question)

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusSuccess, recs[0].Status)
	})

	t.Run("discovered pages are passed to policy and FAQ extraction", func(t *testing.T) {
		t.Parallel()

		discovered := []string{"https://acmesupply.com/pages/our-privacy-promise"}
		var policyPages, faqPages []string

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Pages = &mock.PageDiscoverer{
			DiscoverPagesFn: func(ctx context.Context, websiteURL string) ([]string, error) {
				return discovered, nil
			},
		}
		o.Policies = &mock.PolicyService{
			PoliciesFn: func(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error) {
				policyPages = candidatePages
				return nil, nil
			},
		}
		o.FAQs = &mock.FAQService{
			FAQsFn: func(ctx context.Context, websiteURL string, candidatePages []string) ([]storeinsight.FAQ, error) {
				faqPages = candidatePages
				return nil, nil
			},
		}

		_, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		assert.Equal(t, discovered, policyPages)
		assert.Equal(t, discovered, faqPages)
	})

	t.Run("caching a successful run logs the insights fingerprint", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		records := newRecordingService()
		o := testOrchestrator(records)
		o.Cache = extract.NewCache(extract.DefaultCacheTTL)
		o.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "cached insights")
		assert.Contains(t, buf.String(), insights.Fingerprint())
	})

	t.Run("fault in an extractor fails the run and still records it", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Catalog = &mock.CatalogService{
			ProductsFn: func(ctx context.Context, websiteURL string) ([]storeinsight.Product, error) {
				panic("malformed feed state")
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.Error(t, err)
		assert.Nil(t, insights)
		assert.Equal(t, storeinsight.EINTERNAL, storeinsight.ErrorCode(err))

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusFailed, recs[0].Status)
		assert.Equal(t, "https://acmesupply.com", recs[0].WebsiteURL)
		assert.Zero(t, recs[0].DataPoints)
	})

	t.Run("fault during aggregation fails the run and still records it", func(t *testing.T) {
		t.Parallel()

		records := newRecordingService()
		o := testOrchestrator(records)
		o.Social = &mock.SocialExtractor{
			SocialHandlesFn: func(homepageHTML string) storeinsight.SocialHandles {
				panic("selector state corrupted")
			},
		}

		insights, err := o.ExtractInsights(context.Background(), "https://acmesupply.com")

		require.Error(t, err)
		assert.Nil(t, insights)
		assert.Equal(t, storeinsight.EINTERNAL, storeinsight.ErrorCode(err))

		recs := records.all()
		require.Len(t, recs, 1)
		assert.Equal(t, storeinsight.StatusFailed, recs[0].Status)
	})
}
