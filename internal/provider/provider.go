// Package provider adapts search jobs to the external product-search API.
// It builds per-site queries, normalizes heterogeneous response shapes into
// uniform product records, and caches results.
package provider

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/jonesrussell/shopsearch/internal/config"
	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
)

// cacheTTL is how long identical query results are reused.
const cacheTTL = time.Hour

// Doer abstracts the HTTP client for testing.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service calls the external product-search provider.
type Service struct {
	cfg    config.ProviderConfig
	client Doer
	cache  Cache
	logger logger.Interface
}

// New creates a new provider service. The credential and call parameters
// come from the injected config; there is no ambient global state.
func New(cfg config.ProviderConfig, client Doer, cache Cache, log logger.Interface) *Service {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if cache == nil {
		cache = NoOpCache{}
	}

	return &Service{
		cfg:    cfg,
		client: client,
		cache:  cache,
		logger: log,
	}
}

// Search runs one provider call per requested site and returns the merged,
// filtered, ordered product list.
//
// The contract is best-effort: a missing credential or a provider failure
// degrades to an empty result list and is logged, never returned as an
// error. Job-level failure is driven by "zero products saved", not by
// provider faults.
func (s *Service) Search(ctx context.Context, query string, sites []string, filters domain.Filters) []domain.Product {
	if s.cfg.APIKey == "" {
		s.logger.Error("provider API key not configured")
		return []domain.Product{}
	}

	key := cacheKey(query, sites, filters)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.logger.Info("returning cached provider results",
			"query", query,
			"count", len(cached),
		)
		return cached
	}

	// One call per site: the provider does not return balanced results
	// across sites for multi-site queries.
	all := make([]domain.Product, 0)
	for _, site := range sites {
		searchQuery := BuildQuery(query, filters, site)

		resp, err := s.fetch(ctx, searchQuery, filters)
		if err != nil {
			s.logger.Error("provider call failed",
				"site", site,
				"error", err,
			)
			return []domain.Product{}
		}

		siteProducts := parseResponse(resp, site, s.logger)
		all = append(all, siteProducts...)

		s.logger.Info("provider call completed",
			"site", site,
			"count", len(siteProducts),
		)
	}

	all = filterByPrice(all, filters.MinPrice, filters.MaxPrice)
	sortProducts(all)

	s.cache.Set(ctx, key, all, cacheTTL)

	s.logger.Info("provider search completed",
		"query", query,
		"total", len(all),
	)

	return all
}

// sortProducts orders by confidence descending, then price descending
// within equal confidence.
func sortProducts(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Confidence != products[j].Confidence {
			return products[i].Confidence > products[j].Confidence
		}
		return products[i].Price > products[j].Price
	})
}

// filterByPrice drops products outside the requested bounds. A product is
// dropped if price < min or price > max.
func filterByPrice(products []domain.Product, minPrice, maxPrice *float64) []domain.Product {
	if minPrice == nil && maxPrice == nil {
		return products
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
