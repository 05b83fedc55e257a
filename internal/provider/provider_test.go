package provider

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/shopsearch/internal/config"
	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
)

// fakeDoer serves canned JSON responses and counts calls.
type fakeDoer struct {
	body  string
	err   error
	calls int
}

func (d *fakeDoer) Do(*http.Request) (*http.Response, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(d.body)),
	}, nil
}

// memoryCache is an in-process Cache for tests.
type memoryCache struct {
	entries map[string][]domain.Product
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]domain.Product)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]domain.Product, bool) {
	products, ok := c.entries[key]
	return products, ok
}

func (c *memoryCache) Set(_ context.Context, key string, products []domain.Product, _ time.Duration) {
	c.entries[key] = products
}

func testConfig() config.ProviderConfig {
	return config.ProviderConfig{
		APIKey:     "test-key",
		BaseURL:    "https://provider.test/search.json",
		Location:   "India",
		Language:   "en",
		Country:    "in",
		PerSiteNum: 10,
	}
}

const meeshoBody = `{
	"shopping_results": [
		{"title": "Kurta A", "extracted_price": 500, "source": "Meesho", "product_link": "https://www.meesho.com/a"},
		{"title": "Kurta B", "extracted_price": 999, "source": "Meesho", "product_link": "https://www.meesho.com/b"}
	]
}`

func TestSearchWithoutAPIKeyReturnsEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	doer := &fakeDoer{body: meeshoBody}

	svc := New(cfg, doer, nil, logger.NewNoOp())

	products := svc.Search(context.Background(), "kurta", []string{"meesho"}, domain.Filters{})
	assert.Empty(t, products)
	assert.Zero(t, doer.calls)
}

func TestSearchProviderFailureReturnsEmpty(t *testing.T) {
	doer := &fakeDoer{err: assert.AnError}
	svc := New(testConfig(), doer, nil, logger.NewNoOp())

	products := svc.Search(context.Background(), "kurta", []string{"meesho"}, domain.Filters{})
	assert.Empty(t, products)
}

func TestSearchCachesResults(t *testing.T) {
	doer := &fakeDoer{body: meeshoBody}
	svc := New(testConfig(), doer, newMemoryCache(), logger.NewNoOp())

	first := svc.Search(context.Background(), "kurta", []string{"meesho"}, domain.Filters{})
	require.Len(t, first, 2)
	assert.Equal(t, 1, doer.calls)

	second := svc.Search(context.Background(), "kurta", []string{"meesho"}, domain.Filters{})
	assert.Equal(t, first, second)
	assert.Equal(t, 1, doer.calls)
}

func TestCacheKeyIgnoresSiteAndFilterOrder(t *testing.T) {
	a := cacheKey("kurta", []string{"meesho", "nykaa"}, domain.Filters{Sizes: []string{"M", "L"}})
	b := cacheKey("kurta", []string{"nykaa", "meesho"}, domain.Filters{Sizes: []string{"L", "M"}})
	assert.Equal(t, a, b)

	c := cacheKey("saree", []string{"meesho", "nykaa"}, domain.Filters{Sizes: []string{"M", "L"}})
	assert.NotEqual(t, a, c)
}

func TestFilterByPrice(t *testing.T) {
	products := []domain.Product{
		{Title: "a", Price: 100},
		{Title: "b", Price: 500},
		{Title: "c", Price: 999},
		{Title: "d", Price: 1500},
	}

	minPrice := 200.0
	maxPrice := 1000.0

	filtered := filterByPrice(products, &minPrice, &maxPrice)
	require.Len(t, filtered, 2)
	assert.Equal(t, "b", filtered[0].Title)
	assert.Equal(t, "c", filtered[1].Title)

	// Boundary values are kept.
	exactMin := 500.0
	exactMax := 999.0
	filtered = filterByPrice(products, &exactMin, &exactMax)
	require.Len(t, filtered, 2)

	// No bounds means no filtering.
	assert.Len(t, filterByPrice(products, nil, nil), 4)
}

func TestSortProducts(t *testing.T) {
	products := []domain.Product{
		{Title: "inline-cheap", Confidence: 0.8, Price: 100},
		{Title: "shopping-cheap", Confidence: 0.9, Price: 300},
		{Title: "shopping-dear", Confidence: 0.9, Price: 500},
	}

	sortProducts(products)

	assert.Equal(t, "shopping-dear", products[0].Title)
	assert.Equal(t, "shopping-cheap", products[1].Title)
	assert.Equal(t, "inline-cheap", products[2].Title)
}
