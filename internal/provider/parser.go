package provider

import (
	"strconv"
	"strings"

	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
)

const (
	// shoppingConfidence is assigned to primary shopping results.
	shoppingConfidence = 0.9

	// inlineConfidence is assigned to the secondary inline-products
	// shape, a fallback source of matches.
	inlineConfidence = 0.8
)

// response is the provider's response envelope. Only the fields the
// adapter consumes are modeled.
type response struct {
	ShoppingResults []item         `json:"shopping_results"`
	InlineProducts  []item         `json:"inline_products"`
	SearchMetadata  searchMetadata `json:"search_metadata"`
	Error           string         `json:"error"`
}

type searchMetadata struct {
	Status string `json:"status"`
}

// item is a single raw result. Price, rating, and reviews arrive in
// heterogeneous shapes (numbers or strings), so they stay untyped until
// extraction.
type item struct {
	Title            string `json:"title"`
	Price            any    `json:"price"`
	ExtractedPrice   any    `json:"extracted_price"`
	Source           string `json:"source"`
	Link             string `json:"link"`
	ProductLink      string `json:"product_link"`
	Thumbnail        string `json:"thumbnail"`
	SerpapiThumbnail string `json:"serpapi_thumbnail"`
	Rating           any    `json:"rating"`
	Reviews          any    `json:"reviews"`
}

// parseResponse normalizes both response shapes into product records.
// siteFilter keeps only results attributed to the requested site.
func parseResponse(resp *response, siteFilter string, log logger.Interface) []domain.Product {
	products := make([]domain.Product, 0, len(resp.ShoppingResults)+len(resp.InlineProducts))

	for i := range resp.ShoppingResults {
		if p, ok := parseShoppingItem(&resp.ShoppingResults[i], siteFilter); ok {
			products = append(products, p)
		}
	}

	for i := range resp.InlineProducts {
		if p, ok := parseInlineItem(&resp.InlineProducts[i], siteFilter); ok {
			products = append(products, p)
		}
	}

	log.Debug("parsed provider response",
		"shopping_results", len(resp.ShoppingResults),
		"inline_products", len(resp.InlineProducts),
		"parsed", len(products),
	)

	return products
}

func parseShoppingItem(it *item, siteFilter string) (domain.Product, bool) {
	price, ok := itemPrice(it)
	if !ok {
		return domain.Product{}, false
	}

	productURL := it.ProductLink
	if productURL == "" {
		productURL = it.Link
	}

	site := it.Source
	if site == "" {
		site = SiteFromURL(productURL)
	}
	site = strings.ToLower(site)

	if siteFilter != "" && !strings.Contains(site, strings.ToLower(siteFilter)) {
		return domain.Product{}, false
	}

	imageURL := it.Thumbnail
	if imageURL == "" {
		imageURL = it.SerpapiThumbnail
	}

	return domain.Product{
		Title:        it.Title,
		Price:        price,
		ImageURL:     imageURL,
		ProductURL:   productURL,
		Site:         site,
		Confidence:   shoppingConfidence,
		Rating:       toFloat(it.Rating),
		ReviewsCount: toInt(it.Reviews),
	}, true
}

func parseInlineItem(it *item, siteFilter string) (domain.Product, bool) {
	price, ok := itemPrice(it)
	if !ok {
		return domain.Product{}, false
	}

	site := SiteFromURL(it.Link)

	if siteFilter != "" && !strings.Contains(site, strings.ToLower(siteFilter)) {
		return domain.Product{}, false
	}

	return domain.Product{
		Title:      it.Title,
		Price:      price,
		ImageURL:   it.Thumbnail,
		ProductURL: it.Link,
		Site:       site,
		Confidence: inlineConfidence,
	}, true
}

// itemPrice prefers the provider's pre-extracted numeric price, falling
// back to parsing the display string. A zero price is not usable.
func itemPrice(it *item) (float64, bool) {
	if price, ok := ExtractPrice(it.ExtractedPrice); ok && price > 0 {
		return price, true
	}
	if price, ok := ExtractPrice(it.Price); ok && price > 0 {
		return price, true
	}
	return 0, false
}

func toFloat(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func toInt(value any) *int {
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		cleaned := strings.ReplaceAll(v, ",", "")
		if n, err := strconv.Atoi(cleaned); err == nil {
			return &n
		}
	}
	return nil
}
