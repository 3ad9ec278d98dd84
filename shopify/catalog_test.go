package shopify_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/storeinsight"
	"github.com/fwojciec/storeinsight/mock"
	"github.com/fwojciec/storeinsight/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedPage builds a products.json page for the given product IDs.
func feedPage(ids ...int) string {
	entries := make([]string, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, fmt.Sprintf(`{
			"id": %d,
			"title": "Product %d",
			"handle": "product-%d",
			"vendor": "Acme",
			"product_type": "Widget",
			"tags": ["tools", "metal"],
			"images": [{"src": "https://cdn.example.com/%d.jpg"}],
			"variants": [{"id": %d, "title": "Default", "price": "19.99", "compare_at_price": "24.99", "sku": "SKU%d", "available": true}]
		}`, id, id, id, id, id*10, id))
	}
	return `{"products":[` + strings.Join(entries, ",") + `]}`
}

func TestCatalogService_Products(t *testing.T) {
	t.Parallel()

	t.Run("paginates until a short page", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				switch {
				case strings.Contains(url, "page=1"):
					return feedPage(1, 2), nil
				case strings.Contains(url, "page=2"):
					return feedPage(3, 4), nil
				case strings.Contains(url, "page=3"):
					return feedPage(5), nil
				}
				return `{"products":[]}`, nil
			},
		}

		svc := shopify.NewCatalogService(fetcher, shopify.WithPageSize(2))
		products, err := svc.Products(context.Background(), "https://example.com")

		require.NoError(t, err)
		require.Len(t, products, 5)
		assert.Len(t, fetched, 3, "5 products at page size 2 takes exactly 3 fetches")
		assert.Equal(t, "1", products[0].ID)
		assert.Equal(t, "Product 1", products[0].Title)
		assert.Equal(t, "19.99", products[0].Price)
		assert.Equal(t, "24.99", products[0].CompareAtPrice)
		assert.Equal(t, []string{"tools", "metal"}, products[0].Tags)
		assert.Equal(t, "https://example.com/products/product-1", products[0].URL)
		assert.True(t, products[0].Available)
	})

	t.Run("deduplicates product IDs repeated across pages", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				switch {
				case strings.Contains(url, "page=1"):
					return feedPage(1, 2), nil
				case strings.Contains(url, "page=2"):
					return feedPage(2), nil
				}
				return `{"products":[]}`, nil
			},
		}

		svc := shopify.NewCatalogService(fetcher, shopify.WithPageSize(2))
		products, err := svc.Products(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("extraction is deterministic for identical content", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.Contains(url, "page=1") {
					return feedPage(3, 1, 2), nil
				}
				return `{"products":[]}`, nil
			},
		}

		svc := shopify.NewCatalogService(fetcher)
		first, err := svc.Products(context.Background(), "https://example.com")
		require.NoError(t, err)
		second, err := svc.Products(context.Background(), "https://example.com")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("tags as comma-joined string are split", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.Contains(url, "page=1") {
					return `{"products":[{"id": 7, "title": "T", "handle": "t", "tags": "a, b,c"}]}`, nil
				}
				return `{"products":[]}`, nil
			},
		}

		svc := shopify.NewCatalogService(fetcher)
		products, err := svc.Products(context.Background(), "https://example.com")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, []string{"a", "b", "c"}, products[0].Tags)
		assert.True(t, products[0].Available, "products without variants are assumed orderable")
	})

	t.Run("feed fetch failure on first page is an error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", storeinsight.Errorf(storeinsight.ENOTFOUND, "HTTP 404")
			},
		}

		svc := shopify.NewCatalogService(fetcher)
		_, err := svc.Products(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Equal(t, storeinsight.ENOTFOUND, storeinsight.ErrorCode(err))
	})

	t.Run("non-JSON first page is not a feed", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>not a feed</html>", nil
			},
		}

		svc := shopify.NewCatalogService(fetcher)
		_, err := svc.Products(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Equal(t, storeinsight.ENOTFOUND, storeinsight.ErrorCode(err))
	})
}

func TestCatalogService_HeroProducts(t *testing.T) {
	t.Parallel()

	catalog := []storeinsight.Product{
		{ID: "1", Title: "Alpha", Handle: "alpha"},
		{ID: "2", Title: "Beta", Handle: "beta"},
		{ID: "3", Title: "Gamma", Handle: "gamma"},
	}

	t.Run("preserves first-appearance order and deduplicates by handle", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/products/gamma">Gamma</a>
			<a href="/products/alpha?variant=1">Alpha</a>
			<a href="/products/gamma#reviews">Gamma again</a>
			<a href="/collections/all">All</a>
			<a href="/products/unknown-handle">Not in catalog</a>
		</body></html>`

		svc := shopify.NewCatalogService(&mock.Fetcher{})
		heroes := svc.HeroProducts(html, "https://example.com", catalog)

		require.Len(t, heroes, 2)
		assert.Equal(t, "gamma", heroes[0].Handle)
		assert.Equal(t, "alpha", heroes[1].Handle)
	})

	t.Run("caps at the hero limit", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/products/alpha">a</a><a href="/products/beta">b</a><a href="/products/gamma">c</a>`

		svc := shopify.NewCatalogService(&mock.Fetcher{}, shopify.WithHeroLimit(2))
		heroes := svc.HeroProducts(html, "https://example.com", catalog)

		assert.Len(t, heroes, 2)
	})

	t.Run("empty catalog yields no heroes", func(t *testing.T) {
		t.Parallel()

		svc := shopify.NewCatalogService(&mock.Fetcher{})
		heroes := svc.HeroProducts(`<a href="/products/alpha">a</a>`, "https://example.com", nil)

		assert.Empty(t, heroes)
	})
}
