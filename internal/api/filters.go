package api

import (
	"strings"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// Allowed filter values. Anything else is dropped at the boundary.
var (
	allowedSizes = map[string]bool{
		"XS": true, "S": true, "M": true, "L": true, "XL": true, "XXL": true,
	}
	allowedMaterials = map[string]bool{
		"cotton": true, "silk": true, "polyester": true, "linen": true, "denim": true,
	}
)

const maxRating = 5.0

// normalizeFilters converts raw filter input into domain filters.
// Unrecognized sizes and materials, negative prices, and out-of-range
// ratings are silently dropped; filters never fail a request.
func normalizeFilters(req FiltersRequest) domain.Filters {
	var f domain.Filters

	for _, raw := range req.Size {
		size := strings.ToUpper(strings.TrimSpace(raw))
		if allowedSizes[size] {
			f.Sizes = append(f.Sizes, size)
		}
	}

	for _, raw := range req.Material {
		material := strings.ToLower(strings.TrimSpace(raw))
		if allowedMaterials[material] {
			f.Materials = append(f.Materials, material)
		}
	}

	if req.MinPrice != nil && *req.MinPrice >= 0 {
		f.MinPrice = req.MinPrice
	}
	if req.MaxPrice != nil && *req.MaxPrice >= 0 {
		f.MaxPrice = req.MaxPrice
	}
	if req.MinRating != nil && *req.MinRating >= 0 && *req.MinRating <= maxRating {
		f.MinRating = req.MinRating
	}

	return f
}
